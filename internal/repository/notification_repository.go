package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-tracker-api/internal/domain"
)

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	CreateBatch(ctx context.Context, notifications []*domain.Notification) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
}

type notificationRepositoryImpl struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

func (r *notificationRepositoryImpl) CreateBatch(ctx context.Context, notifications []*domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return conn(ctx, r.db).Omit(clause.Associations).Create(&notifications).Error
}

// FindByUserID returns userID's notifications, newest first
func (r *notificationRepositoryImpl) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	var notifications []*domain.Notification
	if err := conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flags one notification owned by userID as read. A notification of
// another user is reported as gorm.ErrRecordNotFound.
func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	var n domain.Notification
	if err := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&n).Error; err != nil {
		return err
	}
	return conn(ctx, r.db).Model(&n).UpdateColumn("read", true).Error
}
