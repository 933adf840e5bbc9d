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

// ProjectService defines the interface for project business logic
type ProjectService interface {
	GetProjects(ctx context.Context, userID uuid.UUID) ([]dto.ProjectResponse, error)
	CreateProject(ctx context.Context, userID uuid.UUID, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	UpdateProject(ctx context.Context, userID, projectID uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error
}

type projectServiceImpl struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	teamRepo    repository.TeamRepository
	groupRepo   repository.SupervisorGroupRepository
	logger      *zap.Logger
}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, teamRepo repository.TeamRepository, groupRepo repository.SupervisorGroupRepository, logger *zap.Logger) ProjectService {
	return &projectServiceImpl{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		teamRepo:    teamRepo,
		groupRepo:   groupRepo,
		logger:      logger,
	}
}

func (s *projectServiceImpl) GetProjects(ctx context.Context, userID uuid.UUID) ([]dto.ProjectResponse, error) {
	projects, err := s.projectRepo.FindVisibleTo(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list projects", err.Error())
	}

	ids := make([]uuid.UUID, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	counts, err := s.projectRepo.CountTasks(ctx, ids)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count project tasks", err.Error())
	}

	out := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p, counts[p.ID]))
	}
	return out, nil
}

func (s *projectServiceImpl) CreateProject(ctx context.Context, userID uuid.UUID, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	name := sanitize.Text(req.Name)
	if name == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Project name is required", "")
	}

	if req.TeamID != nil {
		if _, err := s.teamRepo.FindByID(ctx, *req.TeamID); err != nil {
			if isNotFound(err) {
				return nil, response.NewAppError(response.ErrCodeValidation, "Unknown team", "")
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load team", err.Error())
		}
	}
	if req.SupervisorGroupID != nil {
		if _, err := s.groupRepo.FindByID(ctx, *req.SupervisorGroupID); err != nil {
			if isNotFound(err) {
				return nil, response.NewAppError(response.ErrCodeValidation, "Unknown supervisor group", "")
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load supervisor group", err.Error())
		}
	}

	project := &domain.Project{
		Name:              name,
		Description:       sanitize.Text(req.Description),
		Color:             req.Color,
		Icon:              req.Icon,
		CreatorID:         userID,
		TeamID:            req.TeamID,
		SupervisorGroupID: req.SupervisorGroupID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create project", err.Error())
	}

	s.logger.Info("Project created",
		zap.String("project_id", project.ID.String()),
		zap.String("creator_id", userID.String()))

	resp := toProjectResponse(project, 0)
	return &resp, nil
}

func (s *projectServiceImpl) UpdateProject(ctx context.Context, userID, projectID uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.manageableProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := sanitize.Text(*req.Name)
		if name == "" {
			return nil, response.NewAppError(response.ErrCodeValidation, "Project name is required", "")
		}
		project.Name = name
	}
	if req.Description != nil {
		project.Description = sanitize.Text(*req.Description)
	}
	if req.Color != nil {
		project.Color = req.Color
	}
	if req.Icon != nil {
		project.Icon = req.Icon
	}
	if req.IsArchived != nil {
		project.IsArchived = *req.IsArchived
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update project", err.Error())
	}

	counts, err := s.projectRepo.CountTasks(ctx, []uuid.UUID{project.ID})
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count project tasks", err.Error())
	}
	resp := toProjectResponse(project, counts[project.ID])
	return &resp, nil
}

// DeleteProject removes the project. Its tasks stay and lose the project reference.
func (s *projectServiceImpl) DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error {
	if _, err := s.manageableProject(ctx, userID, projectID); err != nil {
		return err
	}
	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return notFoundOr(err, "Project not found", "Failed to delete project")
	}

	s.logger.Info("Project deleted",
		zap.String("project_id", projectID.String()),
		zap.String("user_id", userID.String()))
	return nil
}

// manageableProject loads a project the user may edit: its creator or an ADMIN
func (s *projectServiceImpl) manageableProject(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, error) {
	actor, err := loadActor(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, notFoundOr(err, "Project not found", "Failed to load project")
	}
	if project.CreatorID != userID && !actor.IsAdmin() {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only the creator or a supervisor can change this project", "")
	}
	return project, nil
}
