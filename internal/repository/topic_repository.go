package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-tracker-api/internal/domain"
)

// TopicRepository defines the interface for checklist topic data access
type TopicRepository interface {
	Create(ctx context.Context, topic *domain.TaskTopic) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.TaskTopic, error)
	FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]domain.TaskTopic, error)
	NextOrderIndex(ctx context.Context, taskID uuid.UUID) (int, error)
	Update(ctx context.Context, topic *domain.TaskTopic) error
}

type topicRepositoryImpl struct {
	db *gorm.DB
}

// NewTopicRepository creates a new instance of TopicRepository
func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepositoryImpl{db: db}
}

func (r *topicRepositoryImpl) Create(ctx context.Context, topic *domain.TaskTopic) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(topic).Error
}

func (r *topicRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.TaskTopic, error) {
	var topic domain.TaskTopic
	if err := conn(ctx, r.db).Preload("Completer").Where("id = ?", id).First(&topic).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}

// FindByTaskID returns the task's topics in checklist order
func (r *topicRepositoryImpl) FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]domain.TaskTopic, error) {
	var topics []domain.TaskTopic
	if err := conn(ctx, r.db).
		Where("task_id = ?", taskID).
		Order("order_index ASC").
		Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

// NextOrderIndex returns the index after the last topic, 0 for an empty checklist
func (r *topicRepositoryImpl) NextOrderIndex(ctx context.Context, taskID uuid.UUID) (int, error) {
	var next int
	if err := conn(ctx, r.db).
		Model(&domain.TaskTopic{}).
		Where("task_id = ?", taskID).
		Select("COALESCE(MAX(order_index), -1) + 1").
		Row().
		Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}

// Update writes status, completion metadata and title
func (r *topicRepositoryImpl) Update(ctx context.Context, topic *domain.TaskTopic) error {
	return updateOne(conn(ctx, r.db).
		Model(&domain.TaskTopic{}).
		Where("id = ?", topic.ID).
		Select("title", "status", "completed_by", "completed_at", "updated_at").
		Updates(map[string]interface{}{
			"title":        topic.Title,
			"status":       topic.Status,
			"completed_by": topic.CompletedBy,
			"completed_at": topic.CompletedAt,
			"updated_at":   time.Now().UTC(),
		}))
}
