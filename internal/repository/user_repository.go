package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/policy"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error)
	List(ctx context.Context, pred policy.UserPredicate) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error
	UpdateTeam(ctx context.Context, id uuid.UUID, teamID *uuid.UUID) error
}

type userRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	return conn(ctx, r.db).Create(user).Error
}

// FindByID loads a user with its team
func (r *userRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	if err := conn(ctx, r.db).Preload("Team").Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := conn(ctx, r.db).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDs returns the users that exist among ids
func (r *userRepositoryImpl) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	if len(ids) == 0 {
		return []*domain.User{}, nil
	}
	var users []*domain.User
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// List returns the users matching pred ordered by name
func (r *userRepositoryImpl) List(ctx context.Context, pred policy.UserPredicate) ([]*domain.User, error) {
	query := conn(ctx, r.db).Preload("Team").Order("name ASC")
	if !pred.Unrestricted {
		if len(pred.UserIDs) == 0 {
			return []*domain.User{}, nil
		}
		query = query.Where("id IN ?", pred.UserIDs)
	}

	var users []*domain.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepositoryImpl) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	return updateOne(conn(ctx, r.db).Model(&domain.User{}).Where("id = ?", id).Update("role", role))
}

func (r *userRepositoryImpl) UpdateTeam(ctx context.Context, id uuid.UUID, teamID *uuid.UUID) error {
	return updateOne(conn(ctx, r.db).Model(&domain.User{}).Where("id = ?", id).Update("team_id", teamID))
}

// updateOne converts a write that touched no row into gorm.ErrRecordNotFound
func updateOne(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
