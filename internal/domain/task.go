package domain

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the persisted workflow state of a task
type TaskStatus string

const (
	TaskStatusOpen            TaskStatus = "OPEN"
	TaskStatusInProgress      TaskStatus = "IN_PROGRESS"
	TaskStatusWaitingApproval TaskStatus = "WAITING_APPROVAL"
	TaskStatusCompleted       TaskStatus = "COMPLETED"
)

// TaskStatuses lists every persisted status
var TaskStatuses = []TaskStatus{
	TaskStatusOpen,
	TaskStatusInProgress,
	TaskStatusWaitingApproval,
	TaskStatusCompleted,
}

// Valid reports whether s is one of the persisted statuses
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusWaitingApproval, TaskStatusCompleted:
		return true
	}
	return false
}

// ParseTaskStatus converts a raw value to a TaskStatus.
// OVERDUE is rejected: it is a read-time view, never a stored state.
func ParseTaskStatus(s string) (TaskStatus, error) {
	st := TaskStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid task status %q", s)
	}
	return st, nil
}

// Value implements driver.Valuer
func (s TaskStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid task status %q", string(s))
	}
	return string(s), nil
}

// Scan implements sql.Scanner
func (s *TaskStatus) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into TaskStatus", value)
	}
	st, err := ParseTaskStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// DisplayStatus is the status shown to clients, including the derived OVERDUE view
type DisplayStatus string

// DisplayStatusOverdue is shown when the due date has passed on an unfinished task
const DisplayStatusOverdue DisplayStatus = "OVERDUE"

// Priority of a task
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ParsePriority converts a raw value to a Priority
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q", s)
	}
	return p, nil
}

// Task is a unit of work with assignees and checklist topics
type Task struct {
	BaseModel
	Title             string         `gorm:"type:varchar(255);not null" json:"title"`
	Description       string         `gorm:"type:text" json:"description"`
	Priority          Priority       `gorm:"type:varchar(10);not null;default:'MEDIUM';index:idx_tasks_priority" json:"priority"`
	Status            TaskStatus     `gorm:"type:varchar(30);not null;default:'OPEN';index:idx_tasks_status" json:"status"`
	DueDate           *time.Time     `gorm:"type:timestamp;index:idx_tasks_due_date" json:"dueDate"`
	CreatorID         uuid.UUID      `gorm:"type:uuid;not null;index:idx_tasks_creator_id" json:"creatorId"`
	ProjectID         *uuid.UUID     `gorm:"type:uuid;index:idx_tasks_project_id" json:"projectId"`
	Position          int            `gorm:"not null;default:0" json:"position"`
	OverdueNotifiedAt *time.Time     `gorm:"type:timestamp" json:"-"`
	Creator           *User          `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Project           *Project       `gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL" json:"project,omitempty"`
	Assignees         []TaskAssignee `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"assignees,omitempty"`
	Topics            []TaskTopic    `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"topics,omitempty"`
	Comments          []Comment      `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	History           []TaskHistory  `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"history,omitempty"`
}

// TaskAssignee is the membership of a user in a task's assignee set
type TaskAssignee struct {
	TaskID uuid.UUID `gorm:"type:uuid;primaryKey" json:"taskId"`
	UserID uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_task_assignees_user_id" json:"userId"`
	User   *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// IsCreator reports whether userID created the task
func (t *Task) IsCreator(userID uuid.UUID) bool {
	return t.CreatorID == userID
}

// IsAssignee reports whether userID is among the task's assignees
func (t *Task) IsAssignee(userID uuid.UUID) bool {
	for _, a := range t.Assignees {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

// AssigneeIDs returns the ids of the assigned users
func (t *Task) AssigneeIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(t.Assignees))
	for _, a := range t.Assignees {
		ids = append(ids, a.UserID)
	}
	return ids
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// TableName specifies the table name for TaskAssignee
func (TaskAssignee) TableName() string {
	return "task_assignees"
}
