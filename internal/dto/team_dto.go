package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTeamRequest represents the request to create a team
type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,max=255" example:"Platform"`
	Description string `json:"description" binding:"max=1000" example:"Backend and infrastructure"`
}

// AddTeamMemberRequest represents the request to put a user in a team
type AddTeamMemberRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
}

// TeamSummary is the short form of a team
type TeamSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TeamResponse represents a team with its members
type TeamResponse struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Members     []UserSummary `json:"members"`
	CreatedAt   time.Time     `json:"createdAt"`
}
