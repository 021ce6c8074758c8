package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/identity"
	"github.com/tradegate/backend/internal/infrastructure/auth"
)

// RegisterRequest represents the request to register a new account
type RegisterRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=150"`
	Password string  `json:"password" binding:"required,min=8,max=128"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email,max=200"`
}

// LoginRequest represents the request to authenticate
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the request to refresh an access token
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// UpdateProfileRequest represents the request to update the caller's profile
type UpdateProfileRequest struct {
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email,max=200"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8,max=128"`
}

// UserResponse represents user profile data in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Phone       *string    `json:"phone,omitempty"`
	Email       *string    `json:"email,omitempty"`
	Role        string     `json:"role"`
	IsStaff     bool       `json:"is_staff"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AuthResponse represents the result of a successful register or login
type AuthResponse struct {
	User   UserResponse   `json:"user"`
	Tokens auth.TokenPair `json:"tokens"`
}

// ToUserResponse converts a user entity to a response DTO
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Phone:       user.Phone,
		Email:       user.Email,
		Role:        string(user.Role),
		IsStaff:     user.IsStaff,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
