package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TopicInput is a checklist item given on task creation. Both a bare string
// and an object with a title are accepted.
type TopicInput struct {
	Title string `json:"title" example:"Write migration"`
}

// UnmarshalJSON implements json.Unmarshaler
func (t *TopicInput) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '"' {
		return json.Unmarshal(data, &t.Title)
	}
	type plain TopicInput
	return json.Unmarshal(data, (*plain)(t))
}

// CreateTaskRequest represents the request to create a task
// @Description priority defaults to MEDIUM. topics are stored in the given order.
type CreateTaskRequest struct {
	Title       string       `json:"title" binding:"required,max=255" example:"Prepare release notes"`
	Description string       `json:"description" binding:"max=5000"`
	Priority    string       `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH" example:"HIGH"`
	DueDate     *time.Time   `json:"dueDate" example:"2026-12-31T18:00:00Z"`
	ProjectID   *uuid.UUID   `json:"projectId"`
	AssigneeIDs []uuid.UUID  `json:"assigneeIds"`
	Topics      []TopicInput `json:"topics"`
}

// UpdateTaskRequest represents the request to update a task. All fields are optional.
// @Description a status value must be a legal transition for the caller
type UpdateTaskRequest struct {
	Title       *string      `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string      `json:"description" binding:"omitempty,max=5000"`
	Priority    *string      `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	Status      *string      `json:"status" binding:"omitempty,oneof=OPEN IN_PROGRESS WAITING_APPROVAL COMPLETED"`
	DueDate     *time.Time   `json:"dueDate"`
	AssigneeIDs *[]uuid.UUID `json:"assigneeIds"`
}

// UpdateTaskStatusRequest represents a manual status transition
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=OPEN IN_PROGRESS WAITING_APPROVAL COMPLETED" example:"IN_PROGRESS"`
}

// MoveTaskRequest represents moving a task to a project column and position
// @Description projectId null moves the task out of any project
type MoveTaskRequest struct {
	ProjectID *uuid.UUID `json:"projectId"`
	Position  *int       `json:"position" binding:"required,min=0" example:"0"`
}

// TaskFilterQuery holds the list filters
type TaskFilterQuery struct {
	Status     string `form:"status" binding:"omitempty,oneof=OPEN IN_PROGRESS WAITING_APPROVAL COMPLETED OVERDUE"`
	Priority   string `form:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	AssigneeID string `form:"assigneeId" binding:"omitempty,uuid"`
	ProjectID  string `form:"projectId" binding:"omitempty,uuid"`
}

// AssigneeResponse represents one assignee of a task
type AssigneeResponse struct {
	UserID uuid.UUID    `json:"userId"`
	User   *UserSummary `json:"user,omitempty"`
}

// TopicResponse represents a checklist item
type TopicResponse struct {
	ID          uuid.UUID    `json:"id"`
	TaskID      uuid.UUID    `json:"taskId"`
	Title       string       `json:"title"`
	Status      string       `json:"status"`
	OrderIndex  int          `json:"orderIndex"`
	CompletedBy *uuid.UUID   `json:"completedBy"`
	CompletedAt *time.Time   `json:"completedAt"`
	Completer   *UserSummary `json:"completer,omitempty"`
}

// HistoryResponse represents one audit entry
type HistoryResponse struct {
	ID        uuid.UUID       `json:"id"`
	Action    string          `json:"action"`
	Details   string          `json:"details"`
	Changes   json.RawMessage `json:"changes,omitempty" swaggertype:"object"`
	UserID    uuid.UUID       `json:"userId"`
	User      *UserSummary    `json:"user,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// TaskResponse represents a task in lists and after writes
// @Description displayStatus is OVERDUE when the due date has passed on an unfinished task
type TaskResponse struct {
	ID            uuid.UUID          `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Priority      string             `json:"priority"`
	Status        string             `json:"status"`
	DisplayStatus string             `json:"displayStatus"`
	IsOverdue     bool               `json:"isOverdue"`
	DueDate       *time.Time         `json:"dueDate"`
	CreatorID     uuid.UUID          `json:"creatorId"`
	Creator       *UserSummary       `json:"creator,omitempty"`
	ProjectID     *uuid.UUID         `json:"projectId"`
	Position      int                `json:"position"`
	Assignees     []AssigneeResponse `json:"assignees"`
	Topics        []TopicResponse    `json:"topics"`
	Progress      int                `json:"progress"`
	CommentCount  int64              `json:"commentCount"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// TaskDetailResponse adds comments and history to a task
type TaskDetailResponse struct {
	TaskResponse
	Project  *ProjectSummary   `json:"project,omitempty"`
	Comments []CommentResponse `json:"comments"`
	History  []HistoryResponse `json:"history"`
}

// CreateTopicRequest represents the request to append a checklist item
type CreateTopicRequest struct {
	Title string `json:"title" binding:"required,max=255" example:"Review copy"`
}

// ToggleTopicResponse is the result of flipping a checklist item
// @Description newTaskStatus is null when no automatic transition fired
type ToggleTopicResponse struct {
	Topic         TopicResponse `json:"topic"`
	TaskProgress  int           `json:"taskProgress" example:"50"`
	NewTaskStatus *string       `json:"newTaskStatus"`
}
