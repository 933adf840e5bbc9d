package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/dto"
	"task-tracker-api/internal/metrics"
	"task-tracker-api/internal/repository"
	"task-tracker-api/internal/response"
	"task-tracker-api/internal/sanitize"
	"task-tracker-api/internal/workflow"
)

// TopicService defines the interface for checklist business logic
type TopicService interface {
	AddTopic(ctx context.Context, userID, taskID uuid.UUID, req *dto.CreateTopicRequest) (*dto.TopicResponse, error)
	ToggleTopic(ctx context.Context, userID, taskID, topicID uuid.UUID) (*dto.ToggleTopicResponse, error)
}

type topicServiceImpl struct {
	topicRepo  repository.TopicRepository
	taskRepo   repository.TaskRepository
	userRepo   repository.UserRepository
	transactor repository.Transactor
	history    historyRecorder
	metrics    *metrics.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// NewTopicService creates a new instance of TopicService
func NewTopicService(topicRepo repository.TopicRepository, taskRepo repository.TaskRepository, userRepo repository.UserRepository, historyRepo repository.HistoryRepository, transactor repository.Transactor, m *metrics.Metrics, logger *zap.Logger) TopicService {
	return &topicServiceImpl{
		topicRepo:  topicRepo,
		taskRepo:   taskRepo,
		userRepo:   userRepo,
		transactor: transactor,
		history:    historyRecorder{repo: historyRepo},
		metrics:    m,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// AddTopic appends a PENDING topic. It never fires an automatic transition.
func (s *topicServiceImpl) AddTopic(ctx context.Context, userID, taskID uuid.UUID, req *dto.CreateTopicRequest) (*dto.TopicResponse, error) {
	actor, err := loadActor(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, notFoundOr(err, "Task not found", "Failed to load task")
	}
	if !canEditTask(task, actor) {
		return nil, response.NewAppError(response.ErrCodeForbidden, "You cannot edit this task", "")
	}

	title := sanitize.Text(req.Title)
	if title == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Topic title is required", "")
	}

	topic := &domain.TaskTopic{TaskID: taskID, Title: title, Status: domain.TopicStatusPending}
	err = s.transactor.Transaction(ctx, func(ctx context.Context) error {
		next, err := s.topicRepo.NextOrderIndex(ctx, taskID)
		if err != nil {
			return err
		}
		topic.OrderIndex = next
		if err := s.topicRepo.Create(ctx, topic); err != nil {
			return err
		}
		return s.history.record(ctx, taskID, userID, domain.HistoryActionTopicAdded,
			fmt.Sprintf("Topic %q added", title), nil)
	})
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to add topic", err.Error())
	}

	resp := toTopicResponse(topic)
	return &resp, nil
}

// ToggleTopic flips a topic between DONE and PENDING and applies the automatic
// status transition it causes. The topic write, the task status write and both
// history entries commit together; the task is re-read inside the transaction.
func (s *topicServiceImpl) ToggleTopic(ctx context.Context, userID, taskID, topicID uuid.UUID) (*dto.ToggleTopicResponse, error) {
	var (
		toggled  domain.TopicStatus
		from     domain.TaskStatus
		next     domain.TaskStatus
		auto     bool
		progress int
	)

	err := s.transactor.Transaction(ctx, func(ctx context.Context) error {
		topic, err := s.topicRepo.FindByID(ctx, topicID)
		if err != nil {
			return notFoundOr(err, "Topic not found", "Failed to load topic")
		}
		if topic.TaskID != taskID {
			return response.NewAppError(response.ErrCodeNotFound, "Topic not found", "")
		}
		task, err := s.taskRepo.FindByID(ctx, taskID)
		if err != nil {
			return notFoundOr(err, "Task not found", "Failed to load task")
		}

		workflow.ApplyToggle(topic, userID, s.now())
		toggled = topic.Status
		if err := s.topicRepo.Update(ctx, topic); err != nil {
			return err
		}
		if err := s.history.record(ctx, taskID, userID, domain.HistoryActionTopicUpdate,
			fmt.Sprintf("Topic %q changed to %s", topic.Title, toggled), nil); err != nil {
			return err
		}

		topics, err := s.topicRepo.FindByTaskID(ctx, taskID)
		if err != nil {
			return err
		}
		progress = workflow.Progress(topics)

		from = task.Status
		next, auto = workflow.AutoTransition(task.Status, topics, toggled)
		if !auto {
			return nil
		}
		if err := s.taskRepo.UpdateStatus(ctx, taskID, next); err != nil {
			return err
		}
		return s.history.record(ctx, taskID, userID, domain.HistoryActionStatusAutoUpdate,
			fmt.Sprintf("Status changed to %s (Topic Progress)", next), nil)
	})
	if err != nil {
		var appErr *response.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to toggle topic", err.Error())
	}

	s.metrics.RecordTopicToggle(string(toggled))
	if auto {
		s.metrics.RecordStatusTransition(string(from), string(next), metrics.TriggerAuto)
		s.logger.Info("Task status auto-updated",
			zap.String("task_id", taskID.String()),
			zap.String("from", string(from)),
			zap.String("to", string(next)))
	}

	topic, err := s.topicRepo.FindByID(ctx, topicID)
	if err != nil {
		return nil, notFoundOr(err, "Topic not found", "Failed to load topic")
	}

	resp := &dto.ToggleTopicResponse{
		Topic:        toTopicResponse(topic),
		TaskProgress: progress,
	}
	if auto {
		status := string(next)
		resp.NewTaskStatus = &status
	}
	return resp, nil
}
