package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/policy"
	"task-tracker-api/internal/repository"
	"task-tracker-api/internal/response"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// notFoundOr maps a missing record to NOT_FOUND and anything else to an internal error
func notFoundOr(err error, notFoundMsg, internalMsg string) error {
	if isNotFound(err) {
		return response.NewAppError(response.ErrCodeNotFound, notFoundMsg, "")
	}
	return response.NewAppError(response.ErrCodeInternal, internalMsg, err.Error())
}

// loadActor fetches the authenticated user. A token for a deleted account is
// treated as unauthenticated.
func loadActor(ctx context.Context, users repository.UserRepository, userID uuid.UUID) (*domain.User, error) {
	user, err := users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, response.NewAppError(response.ErrCodeUnauthorized, "User no longer exists", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load user", err.Error())
	}
	return user, nil
}

// uniqueIDs drops duplicates and keeps the first-seen order
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// requireUsers checks that every id names an existing user
func requireUsers(ctx context.Context, users repository.UserRepository, ids []uuid.UUID, what string) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := users.FindByIDs(ctx, ids)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to load users", err.Error())
	}
	if len(found) != len(ids) {
		return response.NewAppError(response.ErrCodeValidation, "Unknown "+what, "")
	}
	return nil
}

// visibilityResolver picks the visibility policy of a viewer
type visibilityResolver struct {
	groupRepo repository.SupervisorGroupRepository
	userScope string
}

func (r visibilityResolver) resolve(ctx context.Context, viewer *domain.User) (policy.VisibilityPolicy, error) {
	var memberIDs []uuid.UUID
	if viewer.IsAdmin() {
		ids, err := r.groupRepo.MemberIDsBySupervisor(ctx, viewer.ID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load supervisor groups", err.Error())
		}
		memberIDs = ids
	}
	return policy.For(viewer, memberIDs, r.userScope), nil
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
