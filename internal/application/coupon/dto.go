package coupon

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/verdantia/storefront/internal/domain/coupon"
)

// CreateCouponRequest represents a request to create a coupon
type CreateCouponRequest struct {
	Code        string          `json:"code" binding:"required,min=3,max=40"`
	Description string          `json:"description" binding:"max=200"`
	Type        string          `json:"type" binding:"required,oneof=percent fixed"`
	Value       decimal.Decimal `json:"value" binding:"required"`
	MinSubtotal decimal.Decimal `json:"min_subtotal"`
	UsageLimit  int             `json:"usage_limit" binding:"min=0"`
	StartsAt    *time.Time      `json:"starts_at"`
	ExpiresAt   *time.Time      `json:"expires_at"`
}

// CouponResponse represents a coupon in API responses
type CouponResponse struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Value       decimal.Decimal `json:"value"`
	MinSubtotal decimal.Decimal `json:"min_subtotal"`
	UsageLimit  int             `json:"usage_limit"`
	UsedCount   int             `json:"used_count"`
	StartsAt    *time.Time      `json:"starts_at,omitempty"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ValidateCouponRequest asks what a code is worth against a subtotal
type ValidateCouponRequest struct {
	Code     string          `json:"code" binding:"required,min=3,max=40"`
	Subtotal decimal.Decimal `json:"subtotal" binding:"required"`
}

// ValidateCouponResponse is the discount preview for a cart
type ValidateCouponResponse struct {
	Code     string          `json:"code"`
	Discount decimal.Decimal `json:"discount"`
}

// ToCouponResponse converts a domain Coupon to CouponResponse
func ToCouponResponse(c *coupon.Coupon) CouponResponse {
	return CouponResponse{
		ID:          c.ID,
		Code:        c.Code,
		Description: c.Description,
		Type:        string(c.Type),
		Value:       c.Value,
		MinSubtotal: c.MinSubtotal,
		UsageLimit:  c.UsageLimit,
		UsedCount:   c.UsedCount,
		StartsAt:    c.StartsAt,
		ExpiresAt:   c.ExpiresAt,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
