// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Name is the user's display name.
	Name string `gorm:"size:255;not null"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users. Stored as-is, no case normalization.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the argon2id-hashed password for the user.
	// This should never store plaintext passwords and must never be logged
	// or returned to clients.
	Password string `gorm:"size:255;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// AuthenticatedUser is the request-scoped view of a user that is safe to
// expose to clients. It carries no credential material.
type AuthenticatedUser struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Authenticated projects the user onto its client-safe view.
func (u *User) Authenticated() *AuthenticatedUser {
	return &AuthenticatedUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
