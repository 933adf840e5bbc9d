package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TopicStatus is the state of a checklist item
type TopicStatus string

const (
	TopicStatusPending    TopicStatus = "PENDING"
	TopicStatusInProgress TopicStatus = "IN_PROGRESS"
	TopicStatusDone       TopicStatus = "DONE"
)

// Valid reports whether s is a known topic status
func (s TopicStatus) Valid() bool {
	return s == TopicStatusPending || s == TopicStatusInProgress || s == TopicStatusDone
}

// ParseTopicStatus converts a raw value to a TopicStatus
func ParseTopicStatus(s string) (TopicStatus, error) {
	st := TopicStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid topic status %q", s)
	}
	return st, nil
}

// TaskTopic is a checklist item of a task
type TaskTopic struct {
	BaseModel
	TaskID      uuid.UUID   `gorm:"type:uuid;not null;index:idx_task_topics_task_id" json:"taskId"`
	Title       string      `gorm:"type:varchar(255);not null" json:"title"`
	Status      TopicStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	OrderIndex  int         `gorm:"not null;default:0" json:"orderIndex"`
	CompletedBy *uuid.UUID  `gorm:"type:uuid" json:"completedBy"`
	CompletedAt *time.Time  `gorm:"type:timestamp" json:"completedAt"`
	Completer   *User       `gorm:"foreignKey:CompletedBy;constraint:OnDelete:SET NULL" json:"completer,omitempty"`
}

// IsDone reports whether the topic is checked
func (t *TaskTopic) IsDone() bool {
	return t.Status == TopicStatusDone
}

// TableName specifies the table name for TaskTopic
func (TaskTopic) TableName() string {
	return "task_topics"
}
