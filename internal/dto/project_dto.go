package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateProjectRequest represents the request to create a new project
type CreateProjectRequest struct {
	Name              string     `json:"name" binding:"required,max=255" example:"Q1 Launch"`
	Description       string     `json:"description" binding:"max=2000" example:"Tasks for the Q1 launch"`
	Color             *string    `json:"color" binding:"omitempty,max=20" example:"#3B82F6"`
	Icon              *string    `json:"icon" binding:"omitempty,max=50" example:"rocket"`
	TeamID            *uuid.UUID `json:"teamId"`
	SupervisorGroupID *uuid.UUID `json:"supervisorGroupId"`
}

// UpdateProjectRequest represents the request to update a project. All fields are optional.
type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Color       *string `json:"color" binding:"omitempty,max=20"`
	Icon        *string `json:"icon" binding:"omitempty,max=50"`
	IsArchived  *bool   `json:"isArchived"`
}

// ProjectResponse represents a project
type ProjectResponse struct {
	ID                uuid.UUID    `json:"id"`
	Name              string       `json:"name"`
	Description       string       `json:"description"`
	Color             *string      `json:"color"`
	Icon              *string      `json:"icon"`
	IsArchived        bool         `json:"isArchived"`
	CreatorID         uuid.UUID    `json:"creatorId"`
	Creator           *UserSummary `json:"creator,omitempty"`
	TeamID            *uuid.UUID   `json:"teamId"`
	SupervisorGroupID *uuid.UUID   `json:"supervisorGroupId"`
	TaskCount         int64        `json:"taskCount"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

// ProjectSummary is the short form of a project embedded in task details
type ProjectSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color *string   `json:"color"`
	Icon  *string   `json:"icon"`
}
