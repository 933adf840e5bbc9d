package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-tracker-api/internal/domain"
)

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Team, error)
	List(ctx context.Context) ([]*domain.Team, error)
}

type teamRepositoryImpl struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepositoryImpl{db: db}
}

func (r *teamRepositoryImpl) Create(ctx context.Context, team *domain.Team) error {
	return conn(ctx, r.db).Create(team).Error
}

func (r *teamRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	var team domain.Team
	if err := conn(ctx, r.db).Preload("Members").Where("id = ?", id).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// List returns all teams with their members
func (r *teamRepositoryImpl) List(ctx context.Context) ([]*domain.Team, error) {
	var teams []*domain.Team
	if err := conn(ctx, r.db).Preload("Members").Order("name ASC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}
