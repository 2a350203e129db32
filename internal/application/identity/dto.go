package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/invoicehub/backend/internal/domain/identity"
	"github.com/invoicehub/backend/internal/infrastructure/auth"
)

// RegisterRequest represents a new account registration
type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8,max=72"`
	Name         string `json:"name" binding:"required,min=1,max=200"`
	BusinessName string `json:"business_name" binding:"max=200"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// UpdateProfileRequest represents a profile update
type UpdateProfileRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=200"`
	BusinessName string `json:"business_name" binding:"max=200"`
	Phone        string `json:"phone" binding:"max=20"`
	Address      string `json:"address" binding:"max=2000"`
	GSTIN        string `json:"gstin" binding:"max=20"`
}

// UserResponse represents a user account in API responses
type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	BusinessName string     `json:"business_name,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Address      string     `json:"address,omitempty"`
	GSTIN        string     `json:"gstin,omitempty"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// LoginResponse bundles the authenticated user with their tokens
type LoginResponse struct {
	User   *UserResponse   `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// ToUserResponse converts a domain user to a response DTO
func ToUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		BusinessName: u.BusinessName,
		Phone:        u.Phone,
		Address:      u.Address,
		GSTIN:        u.GSTIN,
		LastLoginAt:  u.LastLoginAt,
		CreatedAt:    u.CreatedAt,
	}
}
