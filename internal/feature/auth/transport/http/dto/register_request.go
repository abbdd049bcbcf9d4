// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// RegisterReq represents the request body for the /api/register endpoint.
// It uses Gin's binding tags for validation (required name, email format,
// password length). Eight lowercase characters are a valid password; length
// is the only composition rule.
type RegisterReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}
