package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/dto"
	"task-tracker-api/internal/metrics"
	"task-tracker-api/internal/repository"
	"task-tracker-api/internal/response"
)

// NotificationService defines the interface for notification business logic
type NotificationService interface {
	GetNotifications(ctx context.Context, userID uuid.UUID) ([]dto.NotificationResponse, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
}

type notificationServiceImpl struct {
	notificationRepo repository.NotificationRepository
	logger           *zap.Logger
}

// NewNotificationService creates a new instance of NotificationService
func NewNotificationService(notificationRepo repository.NotificationRepository, logger *zap.Logger) NotificationService {
	return &notificationServiceImpl{notificationRepo: notificationRepo, logger: logger}
}

func (s *notificationServiceImpl) GetNotifications(ctx context.Context, userID uuid.UUID) ([]dto.NotificationResponse, error) {
	notifications, err := s.notificationRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load notifications", err.Error())
	}

	out := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, toNotificationResponse(n))
	}
	return out, nil
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if err := s.notificationRepo.MarkRead(ctx, notificationID, userID); err != nil {
		return notFoundOr(err, "Notification not found", "Failed to update notification")
	}
	return nil
}

// notifier fans a message out to users
type notifier struct {
	repo    repository.NotificationRepository
	metrics *metrics.Metrics
}

// notify stores one notification per recipient, skipping duplicates and
// exclude (usually the acting user). It returns how many were stored.
func (n notifier) notify(ctx context.Context, typ domain.NotificationType, taskID *uuid.UUID, content string, recipients []uuid.UUID, exclude uuid.UUID) (int, error) {
	batch := make([]*domain.Notification, 0, len(recipients))
	for _, userID := range uniqueIDs(recipients) {
		if userID == exclude {
			continue
		}
		batch = append(batch, &domain.Notification{
			UserID:  userID,
			Type:    typ,
			Content: content,
			TaskID:  taskID,
		})
	}
	if len(batch) == 0 {
		return 0, nil
	}
	if err := n.repo.CreateBatch(ctx, batch); err != nil {
		return 0, err
	}
	return len(batch), nil
}

// sent records delivered notifications once the surrounding transaction committed
func (n notifier) sent(typ domain.NotificationType, count int) {
	if count > 0 {
		n.metrics.AddNotificationsSent(string(typ), count)
	}
}
