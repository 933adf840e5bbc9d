package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCommentRequest represents the request to create a new comment
// @Description HTML is stripped from content; content empty after stripping is rejected
type CreateCommentRequest struct {
	TaskID  uuid.UUID `json:"taskId" binding:"required"`
	Content string    `json:"content" binding:"required,min=1,max=5000"`
}

// CommentResponse represents the comment response
type CommentResponse struct {
	ID        uuid.UUID    `json:"id"`
	TaskID    uuid.UUID    `json:"taskId"`
	UserID    uuid.UUID    `json:"userId"`
	User      *UserSummary `json:"user,omitempty"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"createdAt"`
}
