package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserSummary is the short form of a user embedded in other responses
type UserSummary struct {
	ID    uuid.UUID `json:"id" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	Name  string    `json:"name" example:"Kim Minji"`
	Email string    `json:"email,omitempty" example:"minji@example.com"`
}

// UserResponse represents a user. The password hash is never included.
type UserResponse struct {
	ID        uuid.UUID    `json:"id" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	Name      string       `json:"name" example:"Kim Minji"`
	Email     string       `json:"email" example:"minji@example.com"`
	Role      string       `json:"role" example:"EMPLOYEE"`
	TeamID    *uuid.UUID   `json:"teamId"`
	Team      *TeamSummary `json:"team,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// UpdateRoleRequest represents the request to change a user's role
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ADMIN EMPLOYEE" example:"ADMIN"`
}
