package identity

import (
	"strings"
	"time"

	"github.com/verdantia/storefront/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// AdminRole controls what an admin user may manage
type AdminRole string

const (
	AdminRoleAdmin  AdminRole = "admin"  // full access: users, settings, everything below
	AdminRoleEditor AdminRole = "editor" // catalog, promotions, coupons, orders
)

// IsValid checks if the role is a valid AdminRole
func (r AdminRole) IsValid() bool {
	return r == AdminRoleAdmin || r == AdminRoleEditor
}

// AdminUser represents a back-office user of the storefront
type AdminUser struct {
	shared.BaseAggregateRoot
	Email        string    `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(100);not null"`
	DisplayName  string    `gorm:"type:varchar(100);not null"`
	Role         AdminRole `gorm:"type:varchar(20);not null;default:'editor'"`
	IsActive     bool      `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (AdminUser) TableName() string {
	return "admin_users"
}

// NewAdminUser creates a new admin user with a hashed password
func NewAdminUser(email, password, displayName string, role AdminRole) (*AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if displayName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Display name cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown admin role")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	return &AdminUser{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      hash,
		DisplayName:       displayName,
		Role:              role,
		IsActive:          true,
	}, nil
}

// VerifyPassword checks a candidate password against the stored hash
func (u *AdminUser) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword changes the password after verifying the old one
func (u *AdminUser) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// SetPassword sets a new password without the old-password check (admin reset)
func (u *AdminUser) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetRole changes the user's role
func (u *AdminUser) SetRole(role AdminRole) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown admin role")
	}

	u.Role = role
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// RecordLogin stamps the last successful login time
func (u *AdminUser) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// Activate re-enables a deactivated user
func (u *AdminUser) Activate() error {
	if u.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}

	u.IsActive = true
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// Deactivate blocks the user from logging in
func (u *AdminUser) Deactivate() error {
	if !u.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "User is already inactive")
	}

	u.IsActive = false
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// hashPassword hashes a password with bcrypt
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", shared.NewDomainError("HASH_FAILED", "Failed to hash password")
	}
	return string(hash), nil
}

// validateEmail performs a minimal structural check; real validation is the
// binding layer's job
func validateEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") || len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email address")
	}
	return nil
}

// validatePassword enforces the minimum password policy
func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}
