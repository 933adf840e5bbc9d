package domain

import "github.com/google/uuid"

// SupervisorGroup is a named set of users under one ADMIN's management scope
type SupervisorGroup struct {
	BaseModel
	Name         string                  `gorm:"type:varchar(255);not null" json:"name"`
	SupervisorID uuid.UUID               `gorm:"type:uuid;not null;index:idx_supervisor_groups_supervisor_id" json:"supervisorId"`
	Supervisor   *User                   `gorm:"foreignKey:SupervisorID;constraint:OnDelete:CASCADE" json:"supervisor,omitempty"`
	Members      []SupervisorGroupMember `gorm:"foreignKey:SupervisorGroupID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

// SupervisorGroupMember is the membership of a user in a supervisor group
type SupervisorGroupMember struct {
	SupervisorGroupID uuid.UUID `gorm:"type:uuid;primaryKey" json:"supervisorGroupId"`
	UserID            uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_supervisor_group_members_user_id" json:"userId"`
	User              *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// TableName specifies the table name for SupervisorGroup
func (SupervisorGroup) TableName() string {
	return "supervisor_groups"
}

// TableName specifies the table name for SupervisorGroupMember
func (SupervisorGroupMember) TableName() string {
	return "supervisor_group_members"
}
