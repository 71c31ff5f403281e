package dto

import (
	"time"

	"github.com/SscSPs/finance_flow/internal/core/domain"
)

// RegisterRequest is the body of POST /api/v1/auth/register.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=72"`
}

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserResponse describes a registered user. It never carries the hash.
type UserResponse struct {
	Username  string     `json:"username"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// ToUserResponse converts a domain user.
func ToUserResponse(u *domain.User) UserResponse {
	resp := UserResponse{Username: u.Username}
	if !u.CreatedAt.IsZero() {
		createdAt := u.CreatedAt
		resp.CreatedAt = &createdAt
	}
	return resp
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
