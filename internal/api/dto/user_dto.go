package dto

import "github.com/spec-kit/issue-tracker/internal/domain"

// RegisterRequest payload for new users.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the user view returned by auth endpoints.
type UserResponse struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// AuthResponse carries the user plus a bearer token.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// FromUser maps a user to its response form.
func FromUser(user *domain.User) UserResponse {
	return UserResponse{ID: user.ID, Email: user.Email, Role: user.Role}
}
