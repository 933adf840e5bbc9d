package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// HistoryAction labels an audit entry
type HistoryAction string

const (
	HistoryActionCreated          HistoryAction = "CREATED"
	HistoryActionUpdated          HistoryAction = "UPDATED"
	HistoryActionStatusChanged    HistoryAction = "STATUS_CHANGED"
	HistoryActionStatusAutoUpdate HistoryAction = "STATUS_AUTO_UPDATE"
	HistoryActionTopicAdded       HistoryAction = "TOPIC_ADDED"
	HistoryActionTopicUpdate      HistoryAction = "TOPIC_UPDATE"
	HistoryActionMoved            HistoryAction = "MOVED"
)

// TaskHistory is one immutable audit entry of a task
type TaskHistory struct {
	BaseModel
	TaskID  uuid.UUID      `gorm:"type:uuid;not null;index:idx_task_histories_task_id" json:"taskId"`
	UserID  uuid.UUID      `gorm:"type:uuid;not null;index:idx_task_histories_user_id" json:"userId"`
	Action  HistoryAction  `gorm:"type:varchar(30);not null" json:"action"`
	Details string         `gorm:"type:text;not null" json:"details"`
	Changes datatypes.JSON `json:"changes,omitempty"`
	User    *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// TableName specifies the table name for TaskHistory
func (TaskHistory) TableName() string {
	return "task_histories"
}
