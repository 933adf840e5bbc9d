package domain

// Team is a department users can belong to
type Team struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Members     []User `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

// TableName specifies the table name for Team
func (Team) TableName() string {
	return "teams"
}
