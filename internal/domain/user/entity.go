// Package user defines the user domain entity
package user

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidUsername = errors.New("username must be between 3 and 50 characters")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrMissingPassword = errors.New("password hash is required")
)

// User represents an account that owns inventory, recipes and shopping items
type User struct {
	ID             uuid.UUID
	Username       string
	Email          string
	HashedPassword string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewUser creates an active user. The password must already be hashed.
func NewUser(username, email, hashedPassword string) (*User, error) {
	username = strings.TrimSpace(username)
	if l := len(username); l < 3 || l > 50 {
		return nil, ErrInvalidUsername
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	if hashedPassword == "" {
		return nil, ErrMissingPassword
	}

	now := time.Now().UTC()
	return &User{
		ID:             uuid.New(),
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Deactivate blocks further logins
func (u *User) Deactivate() {
	u.IsActive = false
	u.UpdatedAt = time.Now().UTC()
}
