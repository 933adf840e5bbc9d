package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is the account role of a user
type Role string

const (
	RoleAdmin    Role = "ADMIN" // supervisor
	RoleEmployee Role = "EMPLOYEE"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// ParseRole converts a raw value to a Role
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("invalid role %q", s)
	}
	return r, nil
}

// User represents an account
type User struct {
	BaseModel
	Name     string     `gorm:"type:varchar(255);not null" json:"name"`
	Email    string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	Password string     `gorm:"type:varchar(255);not null" json:"-"`
	Role     Role       `gorm:"type:varchar(20);not null;default:'EMPLOYEE';index:idx_users_role" json:"role"`
	TeamID   *uuid.UUID `gorm:"type:uuid;index:idx_users_team_id" json:"teamId"`
	Team     *Team      `gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL" json:"team,omitempty"`
}

// IsAdmin reports whether the user is a supervisor
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
