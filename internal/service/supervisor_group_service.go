package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/dto"
	"task-tracker-api/internal/repository"
	"task-tracker-api/internal/response"
	"task-tracker-api/internal/sanitize"
)

// SupervisorGroupService defines the interface for supervisor group business logic
type SupervisorGroupService interface {
	CreateGroup(ctx context.Context, actorID uuid.UUID, req *dto.CreateSupervisorGroupRequest) (*dto.SupervisorGroupResponse, error)
	GetMyGroups(ctx context.Context, actorID uuid.UUID) ([]dto.SupervisorGroupResponse, error)
	UpdateGroup(ctx context.Context, actorID, groupID uuid.UUID, req *dto.UpdateSupervisorGroupRequest) (*dto.SupervisorGroupResponse, error)
	DeleteGroup(ctx context.Context, actorID, groupID uuid.UUID) error
}

type supervisorGroupServiceImpl struct {
	groupRepo  repository.SupervisorGroupRepository
	userRepo   repository.UserRepository
	transactor repository.Transactor
	logger     *zap.Logger
}

// NewSupervisorGroupService creates a new instance of SupervisorGroupService
func NewSupervisorGroupService(groupRepo repository.SupervisorGroupRepository, userRepo repository.UserRepository, transactor repository.Transactor, logger *zap.Logger) SupervisorGroupService {
	return &supervisorGroupServiceImpl{
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		transactor: transactor,
		logger:     logger,
	}
}

func (s *supervisorGroupServiceImpl) CreateGroup(ctx context.Context, actorID uuid.UUID, req *dto.CreateSupervisorGroupRequest) (*dto.SupervisorGroupResponse, error) {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only supervisors can create groups", "")
	}

	name := sanitize.Text(req.Name)
	if name == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Group name is required", "")
	}
	memberIDs := uniqueIDs(req.MemberIDs)
	if err := requireUsers(ctx, s.userRepo, memberIDs, "member ids"); err != nil {
		return nil, err
	}

	group := &domain.SupervisorGroup{Name: name, SupervisorID: actorID}
	if err := s.groupRepo.Create(ctx, group, memberIDs); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create group", err.Error())
	}

	s.logger.Info("Supervisor group created",
		zap.String("group_id", group.ID.String()),
		zap.String("supervisor_id", actorID.String()),
		zap.Int("members", len(memberIDs)))

	return s.load(ctx, group.ID)
}

func (s *supervisorGroupServiceImpl) GetMyGroups(ctx context.Context, actorID uuid.UUID) ([]dto.SupervisorGroupResponse, error) {
	groups, err := s.groupRepo.FindBySupervisor(ctx, actorID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list groups", err.Error())
	}
	out := make([]dto.SupervisorGroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, toSupervisorGroupResponse(g))
	}
	return out, nil
}

func (s *supervisorGroupServiceImpl) UpdateGroup(ctx context.Context, actorID, groupID uuid.UUID, req *dto.UpdateSupervisorGroupRequest) (*dto.SupervisorGroupResponse, error) {
	if _, err := s.ownedGroup(ctx, actorID, groupID); err != nil {
		return nil, err
	}

	var name string
	if req.Name != nil {
		name = sanitize.Text(*req.Name)
		if name == "" {
			return nil, response.NewAppError(response.ErrCodeValidation, "Group name is required", "")
		}
	}
	var memberIDs []uuid.UUID
	if req.MemberIDs != nil {
		memberIDs = uniqueIDs(*req.MemberIDs)
		if err := requireUsers(ctx, s.userRepo, memberIDs, "member ids"); err != nil {
			return nil, err
		}
	}

	err := s.transactor.Transaction(ctx, func(ctx context.Context) error {
		if req.Name != nil {
			if err := s.groupRepo.UpdateName(ctx, groupID, name); err != nil {
				return err
			}
		}
		if req.MemberIDs != nil {
			if err := s.groupRepo.ReplaceMembers(ctx, groupID, memberIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, "Group not found", "Failed to update group")
	}

	return s.load(ctx, groupID)
}

func (s *supervisorGroupServiceImpl) DeleteGroup(ctx context.Context, actorID, groupID uuid.UUID) error {
	if _, err := s.ownedGroup(ctx, actorID, groupID); err != nil {
		return err
	}
	if err := s.groupRepo.Delete(ctx, groupID); err != nil {
		return notFoundOr(err, "Group not found", "Failed to delete group")
	}

	s.logger.Info("Supervisor group deleted",
		zap.String("group_id", groupID.String()),
		zap.String("supervisor_id", actorID.String()))
	return nil
}

// ownedGroup loads a group and checks that actorID supervises it
func (s *supervisorGroupServiceImpl) ownedGroup(ctx context.Context, actorID, groupID uuid.UUID) (*domain.SupervisorGroup, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, notFoundOr(err, "Group not found", "Failed to load group")
	}
	if group.SupervisorID != actorID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only the group's supervisor can change it", "")
	}
	return group, nil
}

func (s *supervisorGroupServiceImpl) load(ctx context.Context, groupID uuid.UUID) (*dto.SupervisorGroupResponse, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, notFoundOr(err, "Group not found", "Failed to load group")
	}
	resp := toSupervisorGroupResponse(group)
	return &resp, nil
}
