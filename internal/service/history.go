package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/repository"
)

// fieldChange is one entry of the structured diff stored with UPDATED history
type fieldChange struct {
	From interface{} `json:"from"`
	To   interface{} `json:"to"`
}

// historyRecorder appends audit entries. Entries are never edited or removed.
type historyRecorder struct {
	repo repository.HistoryRepository
}

func (h historyRecorder) record(ctx context.Context, taskID, userID uuid.UUID, action domain.HistoryAction, details string, changes map[string]fieldChange) error {
	entry := &domain.TaskHistory{
		TaskID:  taskID,
		UserID:  userID,
		Action:  action,
		Details: details,
	}
	if len(changes) > 0 {
		raw, err := json.Marshal(changes)
		if err != nil {
			return fmt.Errorf("failed to encode history changes: %w", err)
		}
		entry.Changes = datatypes.JSON(raw)
	}
	return h.repo.Append(ctx, entry)
}
