package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateSupervisorGroupRequest represents the request to create a supervisor group
// @Description The caller becomes the supervisor. Duplicate member ids are collapsed.
type CreateSupervisorGroupRequest struct {
	Name      string      `json:"name" binding:"required,max=255" example:"Night shift"`
	MemberIDs []uuid.UUID `json:"memberIds"`
}

// UpdateSupervisorGroupRequest represents the request to rename a group or replace its members
// @Description memberIds replaces the whole member list when present, an empty list clears it
type UpdateSupervisorGroupRequest struct {
	Name      *string      `json:"name" binding:"omitempty,min=1,max=255"`
	MemberIDs *[]uuid.UUID `json:"memberIds"`
}

// SupervisorGroupResponse represents a supervisor group
type SupervisorGroupResponse struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	SupervisorID uuid.UUID     `json:"supervisorId"`
	Supervisor   *UserSummary  `json:"supervisor,omitempty"`
	Members      []UserSummary `json:"members"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}
