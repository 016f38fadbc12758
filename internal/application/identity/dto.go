package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/verdantia/storefront/internal/domain/identity"
	"github.com/verdantia/storefront/internal/infrastructure/auth"
)

// LoginRequest carries admin login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResponse carries tokens and the authenticated user
type LoginResponse struct {
	User   *AdminUserResponse `json:"user"`
	Tokens *auth.TokenPair    `json:"tokens"`
}

// CreateAdminUserRequest is the request to create an admin user
type CreateAdminUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=10"`
	DisplayName string `json:"display_name" binding:"required,max=100"`
	Role        string `json:"role" binding:"required,oneof=admin editor"`
}

// UpdateAdminUserRequest is the request to update an admin user.
// Nil fields are left unchanged.
type UpdateAdminUserRequest struct {
	DisplayName *string `json:"display_name,omitempty" binding:"omitempty,max=100"`
	Role        *string `json:"role,omitempty" binding:"omitempty,oneof=admin editor"`
}

// ChangePasswordRequest is the request to change the caller's own password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=10"`
}

// ResetPasswordRequest is an admin-initiated password reset for another user
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=10"`
}

// AdminUserResponse is the admin user DTO
type AdminUserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToAdminUserResponse converts a domain admin user to a response DTO
func ToAdminUserResponse(u *identity.AdminUser) *AdminUserResponse {
	return &AdminUserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
