package dto

import (
	"time"

	"github.com/google/uuid"
)

// NotificationResponse represents a notification
type NotificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	Type      string     `json:"type" example:"TASK_ASSIGNED"`
	Content   string     `json:"content"`
	TaskID    *uuid.UUID `json:"taskId"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"createdAt"`
}
