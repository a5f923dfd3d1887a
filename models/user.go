package models

import (
	"time"

	"github.com/google/uuid"
)

// Role names recognized by the authorization layer
const (
	RoleAdmin     = "Admin"
	RoleModerator = "Moderator"
	RoleReadOnly  = "ReadOnly"
)

// User represents a registered account
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsVerified   bool      `json:"is_verified" db:"is_verified"`
	Roles        []string  `json:"roles" db:"roles"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// NewUser creates a new unverified User with the default ReadOnly role.
// The password hash must be produced by the caller; plaintext never
// reaches this type.
func NewUser(username, email, passwordHash string) *User {
	now := time.Now()
	return &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		IsVerified:   false,
		Roles:        []string{RoleReadOnly},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// HasRole returns true if the user holds the given role
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
