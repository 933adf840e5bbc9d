package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/metrics"
	"task-tracker-api/internal/repository"
)

// OverdueService notifies users about tasks that passed their due date
type OverdueService interface {
	NotifyOverdue(ctx context.Context) (int, error)
}

type overdueServiceImpl struct {
	taskRepo   repository.TaskRepository
	transactor repository.Transactor
	notifier   notifier
	logger     *zap.Logger
	now        func() time.Time
}

// NewOverdueService creates a new instance of OverdueService
func NewOverdueService(taskRepo repository.TaskRepository, notificationRepo repository.NotificationRepository, transactor repository.Transactor, m *metrics.Metrics, logger *zap.Logger) OverdueService {
	return &overdueServiceImpl{
		taskRepo:   taskRepo,
		transactor: transactor,
		notifier:   notifier{repo: notificationRepo, metrics: m},
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// NotifyOverdue sends TASK_OVERDUE to the assignees of every past-due,
// unfinished task not notified yet, or to the creator when nobody is assigned.
// Each task is stamped so it is reported once per due date. It returns the
// number of tasks handled; a failing task is logged and skipped.
func (s *overdueServiceImpl) NotifyOverdue(ctx context.Context) (int, error) {
	now := s.now()
	tasks, err := s.taskRepo.FindOverdueUnnotified(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to find overdue tasks: %w", err)
	}

	handled := 0
	for _, task := range tasks {
		recipients := task.AssigneeIDs()
		if len(recipients) == 0 {
			recipients = append(recipients, task.CreatorID)
		}
		task := task

		var sent int
		err := s.transactor.Transaction(ctx, func(ctx context.Context) error {
			n, err := s.notifier.notify(ctx, domain.NotificationTaskOverdue, &task.ID,
				fmt.Sprintf("Task %q is overdue", task.Title), recipients, uuid.Nil)
			if err != nil {
				return err
			}
			sent = n
			return s.taskRepo.MarkOverdueNotified(ctx, task.ID, now)
		})
		if err != nil {
			s.logger.Error("Failed to notify overdue task",
				zap.String("task_id", task.ID.String()),
				zap.Error(err))
			continue
		}
		s.notifier.sent(domain.NotificationTaskOverdue, sent)
		handled++
	}
	return handled, nil
}
