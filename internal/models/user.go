package models

import "time"

// Account represents a user account in the system. PasswordHash is never
// serialized and is nil for administrator-created accounts without a password.
type Account struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash *string   `json:"-"`
	Role         *string   `json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Role values. Accounts created through self-registration get RoleUser;
// admin routes require RoleAdmin.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UpdateParams carries a partial account update. Nil fields are left untouched;
// updated_at is refreshed regardless.
type UpdateParams struct {
	Username     *string
	Email        *string
	PasswordHash *string
	Role         *string
}
