package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-tracker-api/internal/domain"
)

// HistoryRepository is the append-only task audit log. There is deliberately
// no update or delete.
type HistoryRepository interface {
	Append(ctx context.Context, entry *domain.TaskHistory) error
	FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]*domain.TaskHistory, error)
}

type historyRepositoryImpl struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new instance of HistoryRepository
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepositoryImpl{db: db}
}

func (r *historyRepositoryImpl) Append(ctx context.Context, entry *domain.TaskHistory) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(entry).Error
}

// FindByTaskID returns the task's entries, newest first
func (r *historyRepositoryImpl) FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]*domain.TaskHistory, error) {
	var entries []*domain.TaskHistory
	if err := conn(ctx, r.db).
		Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
