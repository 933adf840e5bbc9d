package domain

import "github.com/google/uuid"

// Comment is an append-only remark on a task
type Comment struct {
	BaseModel
	TaskID  uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_task_id" json:"taskId"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_user_id" json:"userId"`
	Content string    `gorm:"type:text;not null" json:"content"`
	User    *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
