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

// TeamService defines the interface for team business logic
type TeamService interface {
	CreateTeam(ctx context.Context, req *dto.CreateTeamRequest) (*dto.TeamResponse, error)
	GetTeams(ctx context.Context) ([]dto.TeamResponse, error)
	AddMember(ctx context.Context, teamID uuid.UUID, req *dto.AddTeamMemberRequest) (*dto.UserResponse, error)
}

type teamServiceImpl struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewTeamService creates a new instance of TeamService
func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository, logger *zap.Logger) TeamService {
	return &teamServiceImpl{teamRepo: teamRepo, userRepo: userRepo, logger: logger}
}

func (s *teamServiceImpl) CreateTeam(ctx context.Context, req *dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	name := sanitize.Text(req.Name)
	if name == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Team name is required", "")
	}

	team := &domain.Team{Name: name, Description: sanitize.Text(req.Description)}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create team", err.Error())
	}

	resp := toTeamResponse(team)
	return &resp, nil
}

func (s *teamServiceImpl) GetTeams(ctx context.Context) ([]dto.TeamResponse, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list teams", err.Error())
	}
	out := make([]dto.TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, toTeamResponse(t))
	}
	return out, nil
}

func (s *teamServiceImpl) AddMember(ctx context.Context, teamID uuid.UUID, req *dto.AddTeamMemberRequest) (*dto.UserResponse, error) {
	if _, err := s.teamRepo.FindByID(ctx, teamID); err != nil {
		return nil, notFoundOr(err, "Team not found", "Failed to load team")
	}

	if err := s.userRepo.UpdateTeam(ctx, req.UserID, &teamID); err != nil {
		return nil, notFoundOr(err, "User not found", "Failed to add team member")
	}

	user, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "Failed to load user")
	}
	resp := toUserResponse(user)
	return &resp, nil
}
