package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-tracker-api/internal/domain"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	FindVisibleTo(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error)
	CountTasks(ctx context.Context, projectIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type projectRepositoryImpl struct {
	db *gorm.DB
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

func (r *projectRepositoryImpl) Create(ctx context.Context, project *domain.Project) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(project).Error
}

func (r *projectRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	if err := conn(ctx, r.db).Preload("Creator").Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindVisibleTo returns the non-archived projects userID created or holds an
// assigned task in, newest first
func (r *projectRepositoryImpl) FindVisibleTo(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error) {
	var projects []*domain.Project
	err := conn(ctx, r.db).
		Preload("Creator").
		Where("projects.is_archived = ?", false).
		Where(`projects.creator_id = ? OR EXISTS (
			SELECT 1 FROM tasks t
			JOIN task_assignees ta ON ta.task_id = t.id
			WHERE t.project_id = projects.id AND ta.user_id = ?)`, userID, userID).
		Order("projects.created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

type projectTaskCount struct {
	ProjectID uuid.UUID
	Count     int64
}

// CountTasks returns the number of tasks per project; projects without tasks are absent
func (r *projectRepositoryImpl) CountTasks(ctx context.Context, projectIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(projectIDs))
	if len(projectIDs) == 0 {
		return counts, nil
	}

	var rows []projectTaskCount
	if err := conn(ctx, r.db).
		Model(&domain.Task{}).
		Select("project_id, COUNT(*) AS count").
		Where("project_id IN ?", projectIDs).
		Group("project_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ProjectID] = row.Count
	}
	return counts, nil
}

func (r *projectRepositoryImpl) Update(ctx context.Context, project *domain.Project) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(project).Error
}

// Delete detaches the project's tasks and removes the project
func (r *projectRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Task{}).Where("project_id = ?", id).Update("project_id", nil).Error; err != nil {
			return err
		}
		return updateOne(tx.Where("id = ?", id).Delete(&domain.Project{}))
	})
}
