package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/policy"
	"task-tracker-api/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *domain.User) error
	FindByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	FindByIDsFunc   func(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error)
	ListFunc        func(ctx context.Context, pred policy.UserPredicate) ([]*domain.User, error)
	UpdateRoleFunc  func(ctx context.Context, id uuid.UUID, role domain.Role) error
	UpdateTeamFunc  func(ctx context.Context, id uuid.UUID, teamID *uuid.UUID) error
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockUserRepository) List(ctx context.Context, pred policy.UserPredicate) ([]*domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, pred)
	}
	return nil, nil
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, id, role)
	}
	return nil
}

func (m *MockUserRepository) UpdateTeam(ctx context.Context, id uuid.UUID, teamID *uuid.UUID) error {
	if m.UpdateTeamFunc != nil {
		return m.UpdateTeamFunc(ctx, id, teamID)
	}
	return nil
}

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	CreateFunc                func(ctx context.Context, task *domain.Task) error
	FindByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindDetailFunc            func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListFunc                  func(ctx context.Context, filter repository.TaskFilter, pred policy.TaskPredicate) ([]*domain.Task, error)
	CountCommentsFunc         func(ctx context.Context, taskIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	UpdateFunc                func(ctx context.Context, task *domain.Task) error
	UpdateStatusFunc          func(ctx context.Context, id uuid.UUID, status domain.TaskStatus) error
	ReplaceAssigneesFunc      func(ctx context.Context, id uuid.UUID, userIDs []uuid.UUID) error
	ShiftPositionsFunc        func(ctx context.Context, projectID *uuid.UUID, from int, excludeID uuid.UUID) error
	DeleteFunc                func(ctx context.Context, id uuid.UUID) error
	FindOverdueUnnotifiedFunc func(ctx context.Context, now time.Time) ([]*domain.Task, error)
	MarkOverdueNotifiedFunc   func(ctx context.Context, id uuid.UUID, at time.Time) error
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindDetail(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.FindDetailFunc != nil {
		return m.FindDetailFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskRepository) List(ctx context.Context, filter repository.TaskFilter, pred policy.TaskPredicate) ([]*domain.Task, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, pred)
	}
	return nil, nil
}

func (m *MockTaskRepository) CountComments(ctx context.Context, taskIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if m.CountCommentsFunc != nil {
		return m.CountCommentsFunc(ctx, taskIDs)
	}
	return map[uuid.UUID]int64{}, nil
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockTaskRepository) ReplaceAssignees(ctx context.Context, id uuid.UUID, userIDs []uuid.UUID) error {
	if m.ReplaceAssigneesFunc != nil {
		return m.ReplaceAssigneesFunc(ctx, id, userIDs)
	}
	return nil
}

func (m *MockTaskRepository) ShiftPositions(ctx context.Context, projectID *uuid.UUID, from int, excludeID uuid.UUID) error {
	if m.ShiftPositionsFunc != nil {
		return m.ShiftPositionsFunc(ctx, projectID, from, excludeID)
	}
	return nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockTaskRepository) FindOverdueUnnotified(ctx context.Context, now time.Time) ([]*domain.Task, error) {
	if m.FindOverdueUnnotifiedFunc != nil {
		return m.FindOverdueUnnotifiedFunc(ctx, now)
	}
	return nil, nil
}

func (m *MockTaskRepository) MarkOverdueNotified(ctx context.Context, id uuid.UUID, at time.Time) error {
	if m.MarkOverdueNotifiedFunc != nil {
		return m.MarkOverdueNotifiedFunc(ctx, id, at)
	}
	return nil
}

// MockHistoryRepository is a mock implementation of HistoryRepository
type MockHistoryRepository struct {
	AppendFunc       func(ctx context.Context, entry *domain.TaskHistory) error
	FindByTaskIDFunc func(ctx context.Context, taskID uuid.UUID) ([]*domain.TaskHistory, error)
}

func (m *MockHistoryRepository) Append(ctx context.Context, entry *domain.TaskHistory) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry)
	}
	return nil
}

func (m *MockHistoryRepository) FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]*domain.TaskHistory, error) {
	if m.FindByTaskIDFunc != nil {
		return m.FindByTaskIDFunc(ctx, taskID)
	}
	return nil, nil
}

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	CreateBatchFunc  func(ctx context.Context, notifications []*domain.Notification) error
	FindByUserIDFunc func(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)
	MarkReadFunc     func(ctx context.Context, id, userID uuid.UUID) error
}

func (m *MockNotificationRepository) CreateBatch(ctx context.Context, notifications []*domain.Notification) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, notifications)
	}
	return nil
}

func (m *MockNotificationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, id, userID)
	}
	return nil
}

// MockTransactor runs the function without a transaction
type MockTransactor struct {
	Calls int
}

func (m *MockTransactor) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

// MockTokenIssuer is a mock implementation of TokenIssuer
type MockTokenIssuer struct {
	IssueFunc func(user *domain.User) (string, error)
}

func (m *MockTokenIssuer) Issue(user *domain.User) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(user)
	}
	return "token-" + user.ID.String(), nil
}

// MockTokenRevoker is a mock implementation of TokenRevoker
type MockTokenRevoker struct {
	RevokeFunc func(ctx context.Context, token string) error
}

func (m *MockTokenRevoker) Revoke(ctx context.Context, token string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, token)
	}
	return nil
}
