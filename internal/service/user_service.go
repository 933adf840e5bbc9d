package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/dto"
	"task-tracker-api/internal/repository"
	"task-tracker-api/internal/response"
)

// UserService defines the interface for user business logic
type UserService interface {
	ListUsers(ctx context.Context, viewerID uuid.UUID) ([]dto.UserResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, req *dto.UpdateRoleRequest) (*dto.UserResponse, error)
}

type userServiceImpl struct {
	userRepo   repository.UserRepository
	visibility visibilityResolver
	logger     *zap.Logger
}

// NewUserService creates a new instance of UserService. userScope selects what
// ADMIN viewers see on the user list.
func NewUserService(userRepo repository.UserRepository, groupRepo repository.SupervisorGroupRepository, userScope string, logger *zap.Logger) UserService {
	return &userServiceImpl{
		userRepo:   userRepo,
		visibility: visibilityResolver{groupRepo: groupRepo, userScope: userScope},
		logger:     logger,
	}
}

func (s *userServiceImpl) ListUsers(ctx context.Context, viewerID uuid.UUID) ([]dto.UserResponse, error) {
	viewer, err := loadActor(ctx, s.userRepo, viewerID)
	if err != nil {
		return nil, err
	}
	pol, err := s.visibility.resolve(ctx, viewer)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx, pol.Users())
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list users", err.Error())
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "Failed to load user")
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userServiceImpl) UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, req *dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only supervisors can change roles", "")
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid role", err.Error())
	}

	if err := s.userRepo.UpdateRole(ctx, targetID, role); err != nil {
		return nil, notFoundOr(err, "User not found", "Failed to update role")
	}

	s.logger.Info("User role updated",
		zap.String("actor_id", actorID.String()),
		zap.String("user_id", targetID.String()),
		zap.String("role", string(role)))

	return s.GetProfile(ctx, targetID)
}
