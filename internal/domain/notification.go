package domain

import "github.com/google/uuid"

// NotificationType represents the type of notification
type NotificationType string

const (
	NotificationTaskAssigned NotificationType = "TASK_ASSIGNED"
	NotificationCommentAdded NotificationType = "COMMENT_ADDED"
	NotificationTaskOverdue  NotificationType = "TASK_OVERDUE"
)

// Notification is a message for one user
type Notification struct {
	BaseModel
	UserID  uuid.UUID        `gorm:"type:uuid;not null;index:idx_notifications_user_id" json:"userId"`
	Type    NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Content string           `gorm:"type:text;not null" json:"content"`
	TaskID  *uuid.UUID       `gorm:"type:uuid;index:idx_notifications_task_id" json:"taskId"`
	Read    bool             `gorm:"not null;default:false" json:"read"`
	User    *User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
