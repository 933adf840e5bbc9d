package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/dto"
	"task-tracker-api/internal/metrics"
	"task-tracker-api/internal/repository"
	"task-tracker-api/internal/response"
	"task-tracker-api/internal/sanitize"
)

// CommentService defines the interface for comment business logic
type CommentService interface {
	CreateComment(ctx context.Context, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	GetComments(ctx context.Context, taskID uuid.UUID) ([]dto.CommentResponse, error)
}

type commentServiceImpl struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	transactor  repository.Transactor
	notifier    notifier
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository, userRepo repository.UserRepository, notificationRepo repository.NotificationRepository, transactor repository.Transactor, m *metrics.Metrics, logger *zap.Logger) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		transactor:  transactor,
		notifier:    notifier{repo: notificationRepo, metrics: m},
		metrics:     m,
		logger:      logger,
	}
}

// CreateComment stores a comment and notifies the task's creator and assignees
func (s *commentServiceImpl) CreateComment(ctx context.Context, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, req.TaskID)
	if err != nil {
		return nil, notFoundOr(err, "Task not found", "Failed to load task")
	}

	content := sanitize.Text(req.Content)
	if content == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Comment content is required", "")
	}

	author, err := loadActor(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{TaskID: task.ID, UserID: userID, Content: content}
	recipients := append([]uuid.UUID{task.CreatorID}, task.AssigneeIDs()...)

	var notified int
	err = s.transactor.Transaction(ctx, func(ctx context.Context) error {
		if err := s.commentRepo.Create(ctx, comment); err != nil {
			return err
		}
		n, err := s.notifier.notify(ctx, domain.NotificationCommentAdded, &task.ID,
			fmt.Sprintf("%s commented on %q", author.Name, task.Title), recipients, userID)
		notified = n
		return err
	})
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create comment", err.Error())
	}

	s.metrics.IncrementCommentCreated()
	s.notifier.sent(domain.NotificationCommentAdded, notified)

	comment.User = author
	resp := toCommentResponse(comment)
	return &resp, nil
}

func (s *commentServiceImpl) GetComments(ctx context.Context, taskID uuid.UUID) ([]dto.CommentResponse, error) {
	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		return nil, notFoundOr(err, "Task not found", "Failed to load task")
	}
	comments, err := s.commentRepo.FindByTaskID(ctx, taskID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load comments", err.Error())
	}
	out := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(c))
	}
	return out, nil
}
