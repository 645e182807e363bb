package model

import "time"

// Role enumerates the administrative roles known to the platform.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleModerator  Role = "moderator"
	RoleSuperAdmin Role = "superadmin"
)

// CanManageUsers reports whether the role may access user management.
// Moderators see quizzes and materials only.
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// UserProfile is the identity attached to the current session. It is a
// separate copy from any User entity held in the users store; the two are
// not kept in sync.
type UserProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// User represents a managed platform user.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EntityID implements store.Entity.
func (u User) EntityID() string { return u.ID }

// CreateUserRequest is the payload for creating a new user.
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
	Role  Role   `json:"role" validate:"required,oneof=admin moderator superadmin"`
}

// UpdateUserRequest is the payload for updating an existing user.
// Zero-valued fields are omitted from the request body.
type UpdateUserRequest struct {
	Name     string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Role     Role   `json:"role,omitempty" validate:"omitempty,oneof=admin moderator superadmin"`
	IsActive *bool  `json:"isActive,omitempty"`
}
