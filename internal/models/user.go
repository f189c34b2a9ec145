package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Only admins may mutate the ledger.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account for the access gate. Regular visitors browse
// the ledger without an account; mutations require an admin user.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Username is the unique login name.
	Username string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// Role is either RoleAdmin or RoleUser.
	Role string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// NewUser creates a user with a fresh ID and creation timestamp.
func NewUser(username, passwordHash, role string) *User {
	return &User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().Unix(),
	}
}

// IsAdmin reports whether the user may perform mutating actions.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
