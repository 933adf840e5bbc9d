// Package policy decides which tasks and users a viewer may list.
package policy

import (
	"github.com/google/uuid"

	"task-tracker-api/internal/config"
	"task-tracker-api/internal/domain"
)

// TaskPredicate selects visible tasks. When Unrestricted is false a task is
// visible if CreatorID created it or any of its assignees is in AssigneeIDs.
type TaskPredicate struct {
	Unrestricted bool
	CreatorID    uuid.UUID
	AssigneeIDs  []uuid.UUID
}

// Matches evaluates the predicate against a loaded task
func (p TaskPredicate) Matches(task *domain.Task) bool {
	if p.Unrestricted {
		return true
	}
	if task.CreatorID == p.CreatorID {
		return true
	}
	for _, a := range task.Assignees {
		if containsID(p.AssigneeIDs, a.UserID) {
			return true
		}
	}
	return false
}

// UserPredicate selects visible users
type UserPredicate struct {
	Unrestricted bool
	UserIDs      []uuid.UUID
}

// Matches evaluates the predicate against a user
func (p UserPredicate) Matches(user *domain.User) bool {
	return p.Unrestricted || containsID(p.UserIDs, user.ID)
}

// VisibilityPolicy produces the predicates for one viewer
type VisibilityPolicy interface {
	Tasks() TaskPredicate
	Users() UserPredicate
}

// SupervisorPolicy applies to ADMIN viewers. The supervisor counts as an
// implicit member of their own groups.
type SupervisorPolicy struct {
	ViewerID  uuid.UUID
	MemberIDs []uuid.UUID
	UserScope string
}

// NewSupervisorPolicy builds the policy from the members of the groups the viewer owns
func NewSupervisorPolicy(viewerID uuid.UUID, memberIDs []uuid.UUID, userScope string) *SupervisorPolicy {
	ids := []uuid.UUID{viewerID}
	for _, id := range memberIDs {
		if !containsID(ids, id) {
			ids = append(ids, id)
		}
	}
	return &SupervisorPolicy{ViewerID: viewerID, MemberIDs: ids, UserScope: userScope}
}

func (p *SupervisorPolicy) Tasks() TaskPredicate {
	return TaskPredicate{CreatorID: p.ViewerID, AssigneeIDs: p.MemberIDs}
}

func (p *SupervisorPolicy) Users() UserPredicate {
	if p.UserScope == config.AdminUserScopeGroup {
		return UserPredicate{UserIDs: p.MemberIDs}
	}
	return UserPredicate{Unrestricted: true}
}

// EmployeePolicy applies to EMPLOYEE viewers, who read tasks and users without a filter
type EmployeePolicy struct{}

func (EmployeePolicy) Tasks() TaskPredicate { return TaskPredicate{Unrestricted: true} }

func (EmployeePolicy) Users() UserPredicate { return UserPredicate{Unrestricted: true} }

// For selects the policy for viewer. memberIDs are the members of the
// supervisor groups the viewer owns and are ignored for employees.
func For(viewer *domain.User, memberIDs []uuid.UUID, userScope string) VisibilityPolicy {
	if viewer.IsAdmin() {
		return NewSupervisorPolicy(viewer.ID, memberIDs, userScope)
	}
	return EmployeePolicy{}
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
