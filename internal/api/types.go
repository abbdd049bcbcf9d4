// Package api defines the shared JSON response types for the HTTP surface.
package api

import "time"

// MessageResponse is a plain informational response body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the generic failure body. Error carries the underlying
// message and is only populated outside production builds.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ValidationErrorResponse maps each rejected field to its messages.
type ValidationErrorResponse struct {
	Errors map[string][]string `json:"errors"`
}

// RegisterResponse is the 201 body for a successful registration.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  uint   `json:"userId"`
}

// User is the public user view returned by login.
type User struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionUser is the public user view returned by the session query,
// which additionally exposes the creation time.
type SessionUser struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResponse is the 200 body for a successful login.
type LoginResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// MeResponse is the 200 body for the session query.
type MeResponse struct {
	User SessionUser `json:"user"`
}
