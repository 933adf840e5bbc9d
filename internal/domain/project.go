package domain

import "github.com/google/uuid"

// Project groups tasks into a board column
type Project struct {
	BaseModel
	Name              string           `gorm:"type:varchar(255);not null" json:"name"`
	Description       string           `gorm:"type:text" json:"description"`
	Color             *string          `gorm:"type:varchar(20)" json:"color"`
	Icon              *string          `gorm:"type:varchar(50)" json:"icon"`
	IsArchived        bool             `gorm:"not null;default:false;index:idx_projects_is_archived" json:"isArchived"`
	CreatorID         uuid.UUID        `gorm:"type:uuid;not null;index:idx_projects_creator_id" json:"creatorId"`
	TeamID            *uuid.UUID       `gorm:"type:uuid;index:idx_projects_team_id" json:"teamId"`
	SupervisorGroupID *uuid.UUID       `gorm:"type:uuid;index:idx_projects_supervisor_group_id" json:"supervisorGroupId"`
	Creator           *User            `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Team              *Team            `gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL" json:"team,omitempty"`
	SupervisorGroup   *SupervisorGroup `gorm:"foreignKey:SupervisorGroupID;constraint:OnDelete:SET NULL" json:"supervisorGroup,omitempty"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}
