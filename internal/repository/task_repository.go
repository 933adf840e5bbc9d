package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/policy"
)

// TaskFilter narrows a task listing. Overdue selects the derived OVERDUE view
// as of Now and is exclusive with Status.
type TaskFilter struct {
	Status     *domain.TaskStatus
	Overdue    bool
	Now        time.Time
	Priority   *domain.Priority
	AssigneeID *uuid.UUID
	ProjectID  *uuid.UUID
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter, pred policy.TaskPredicate) ([]*domain.Task, error)
	CountComments(ctx context.Context, taskIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	Update(ctx context.Context, task *domain.Task) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) error
	ReplaceAssignees(ctx context.Context, id uuid.UUID, userIDs []uuid.UUID) error
	ShiftPositions(ctx context.Context, projectID *uuid.UUID, from int, excludeID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOverdueUnnotified(ctx context.Context, now time.Time) ([]*domain.Task, error)
	MarkOverdueNotified(ctx context.Context, id uuid.UUID, at time.Time) error
}

type taskRepositoryImpl struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepositoryImpl{db: db}
}

func orderedTopics(db *gorm.DB) *gorm.DB {
	return db.Order("order_index ASC")
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

// Create inserts the task together with its assignee and topic rows
func (r *taskRepositoryImpl) Create(ctx context.Context, task *domain.Task) error {
	return conn(ctx, r.db).Create(task).Error
}

// FindByID loads a task with assignees and ordered topics
func (r *taskRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	if err := conn(ctx, r.db).
		Preload("Assignees").
		Preload("Topics", orderedTopics).
		Where("id = ?", id).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindDetail loads everything shown on the task page
func (r *taskRepositoryImpl) FindDetail(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	if err := conn(ctx, r.db).
		Preload("Creator").
		Preload("Project").
		Preload("Assignees.User").
		Preload("Topics", orderedTopics).
		Preload("Topics.Completer").
		Preload("Comments", newestFirst).
		Preload("Comments.User").
		Preload("History", newestFirst).
		Preload("History.User").
		Where("id = ?", id).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns the tasks matching filter and pred, newest first
func (r *taskRepositoryImpl) List(ctx context.Context, filter TaskFilter, pred policy.TaskPredicate) ([]*domain.Task, error) {
	query := conn(ctx, r.db).
		Model(&domain.Task{}).
		Preload("Creator").
		Preload("Project").
		Preload("Assignees.User").
		Preload("Topics", orderedTopics)

	query = applyTaskPredicate(query, pred)

	switch {
	case filter.Overdue:
		query = query.Where("tasks.due_date IS NOT NULL AND tasks.due_date < ? AND tasks.status <> ?",
			filter.Now, domain.TaskStatusCompleted)
	case filter.Status != nil:
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.AssigneeID != nil {
		query = query.Where("EXISTS (SELECT 1 FROM task_assignees fa WHERE fa.task_id = tasks.id AND fa.user_id = ?)", *filter.AssigneeID)
	}
	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}

	var tasks []*domain.Task
	if err := query.Order("tasks.created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// applyTaskPredicate translates a visibility predicate to SQL
func applyTaskPredicate(query *gorm.DB, pred policy.TaskPredicate) *gorm.DB {
	if pred.Unrestricted {
		return query
	}
	if len(pred.AssigneeIDs) == 0 {
		return query.Where("tasks.creator_id = ?", pred.CreatorID)
	}
	return query.Where(`tasks.creator_id = ? OR EXISTS (
		SELECT 1 FROM task_assignees ta WHERE ta.task_id = tasks.id AND ta.user_id IN ?)`,
		pred.CreatorID, pred.AssigneeIDs)
}

type taskCommentCount struct {
	TaskID uuid.UUID
	Count  int64
}

// CountComments returns the number of comments per task
func (r *taskRepositoryImpl) CountComments(ctx context.Context, taskIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(taskIDs))
	if len(taskIDs) == 0 {
		return counts, nil
	}
	var rows []taskCommentCount
	if err := conn(ctx, r.db).
		Model(&domain.Comment{}).
		Select("task_id, COUNT(*) AS count").
		Where("task_id IN ?", taskIDs).
		Group("task_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.TaskID] = row.Count
	}
	return counts, nil
}

// Update writes the task's own columns; child collections are left alone
func (r *taskRepositoryImpl) Update(ctx context.Context, task *domain.Task) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(task).Error
}

func (r *taskRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) error {
	return updateOne(conn(ctx, r.db).Model(&domain.Task{}).Where("id = ?", id).Update("status", status))
}

// ReplaceAssignees swaps the assignee set
func (r *taskRepositoryImpl) ReplaceAssignees(ctx context.Context, id uuid.UUID, userIDs []uuid.UUID) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&domain.TaskAssignee{}).Error; err != nil {
			return err
		}
		if len(userIDs) == 0 {
			return nil
		}
		rows := make([]domain.TaskAssignee, 0, len(userIDs))
		for _, uid := range userIDs {
			rows = append(rows, domain.TaskAssignee{TaskID: id, UserID: uid})
		}
		return tx.Omit("User").Create(&rows).Error
	})
}

// ShiftPositions moves every task of the column at or after from one slot down
func (r *taskRepositoryImpl) ShiftPositions(ctx context.Context, projectID *uuid.UUID, from int, excludeID uuid.UUID) error {
	query := conn(ctx, r.db).Model(&domain.Task{}).
		Where("position >= ? AND id <> ?", from, excludeID)
	if projectID == nil {
		query = query.Where("project_id IS NULL")
	} else {
		query = query.Where("project_id = ?", *projectID)
	}
	return query.UpdateColumn("position", gorm.Expr("position + 1")).Error
}

// Delete removes the task and everything it owns
func (r *taskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		children := []interface{}{
			&domain.TaskAssignee{},
			&domain.TaskTopic{},
			&domain.Comment{},
			&domain.TaskHistory{},
		}
		for _, child := range children {
			if err := tx.Where("task_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&domain.Notification{}).Where("task_id = ?", id).Update("task_id", nil).Error; err != nil {
			return err
		}
		return updateOne(tx.Where("id = ?", id).Delete(&domain.Task{}))
	})
}

// FindOverdueUnnotified returns unfinished past-due tasks whose assignees have
// not been told yet
func (r *taskRepositoryImpl) FindOverdueUnnotified(ctx context.Context, now time.Time) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := conn(ctx, r.db).
		Preload("Assignees").
		Where("due_date IS NOT NULL AND due_date < ?", now).
		Where("status <> ?", domain.TaskStatusCompleted).
		Where("overdue_notified_at IS NULL").
		Order("due_date ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepositoryImpl) MarkOverdueNotified(ctx context.Context, id uuid.UUID, at time.Time) error {
	return updateOne(conn(ctx, r.db).Model(&domain.Task{}).Where("id = ?", id).UpdateColumn("overdue_notified_at", at))
}
