package coupon

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/verdantia/storefront/internal/domain/shared"
)

// DiscountType determines how a coupon's value is applied
type DiscountType string

const (
	DiscountTypePercent DiscountType = "percent"
	DiscountTypeFixed   DiscountType = "fixed"
)

// IsValid checks if the type is a valid DiscountType
func (d DiscountType) IsValid() bool {
	return d == DiscountTypePercent || d == DiscountTypeFixed
}

// Coupon represents a discount code redeemable at checkout
type Coupon struct {
	shared.BaseAggregateRoot
	Code        string          `gorm:"type:varchar(40);not null;uniqueIndex"`
	Description string          `gorm:"type:varchar(200)"`
	Type        DiscountType    `gorm:"type:varchar(20);not null"`
	Value       decimal.Decimal `gorm:"type:decimal(12,2);not null"` // percent (0-100] or fixed amount
	MinSubtotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	UsageLimit  int             `gorm:"not null;default:0"` // 0 = unlimited
	UsedCount   int             `gorm:"not null;default:0"`
	StartsAt    *time.Time
	ExpiresAt   *time.Time
	IsActive    bool `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Coupon) TableName() string {
	return "coupons"
}

// NewCoupon creates a new coupon
func NewCoupon(code string, discountType DiscountType, value decimal.Decimal) (*Coupon, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if !discountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Discount type must be percent or fixed")
	}
	if value.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_VALUE", "Discount value must be positive")
	}
	if discountType == DiscountTypePercent && value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_VALUE", "Percent discount cannot exceed 100")
	}

	return &Coupon{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Type:              discountType,
		Value:             value,
		MinSubtotal:       decimal.Zero,
		IsActive:          true,
	}, nil
}

// SetMinSubtotal sets the minimum cart subtotal required to redeem
func (c *Coupon) SetMinSubtotal(min decimal.Decimal) error {
	if min.IsNegative() {
		return shared.NewDomainError("INVALID_MIN_SUBTOTAL", "Minimum subtotal cannot be negative")
	}

	c.MinSubtotal = min
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetUsageLimit sets the redemption cap; zero means unlimited
func (c *Coupon) SetUsageLimit(limit int) error {
	if limit < 0 {
		return shared.NewDomainError("INVALID_USAGE_LIMIT", "Usage limit cannot be negative")
	}

	c.UsageLimit = limit
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetValidity sets the optional redemption window
func (c *Coupon) SetValidity(startsAt, expiresAt *time.Time) error {
	if startsAt != nil && expiresAt != nil && expiresAt.Before(*startsAt) {
		return shared.NewDomainError("INVALID_WINDOW", "Expiry cannot be before start")
	}

	c.StartsAt = startsAt
	c.ExpiresAt = expiresAt
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetDescription sets the customer-facing description
func (c *Coupon) SetDescription(description string) {
	c.Description = description
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate enables redemption
func (c *Coupon) Activate() error {
	if c.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Coupon is already active")
	}

	c.IsActive = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate disables redemption
func (c *Coupon) Deactivate() error {
	if !c.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Coupon is already inactive")
	}

	c.IsActive = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// DiscountFor validates the coupon against a cart subtotal at a point in time
// and returns the discount amount. The discount never exceeds the subtotal.
func (c *Coupon) DiscountFor(subtotal decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	if !c.IsActive {
		return decimal.Zero, shared.NewDomainError("COUPON_INACTIVE", "Coupon is not active")
	}
	if c.StartsAt != nil && now.Before(*c.StartsAt) {
		return decimal.Zero, shared.NewDomainError("COUPON_NOT_STARTED", "Coupon is not valid yet")
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return decimal.Zero, shared.NewDomainError("COUPON_EXPIRED", "Coupon has expired")
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return decimal.Zero, shared.NewDomainError("COUPON_EXHAUSTED", "Coupon usage limit reached")
	}
	if subtotal.LessThan(c.MinSubtotal) {
		return decimal.Zero, shared.NewDomainError("COUPON_MIN_SUBTOTAL", "Cart subtotal is below the coupon minimum")
	}

	var discount decimal.Decimal
	switch c.Type {
	case DiscountTypePercent:
		discount = subtotal.Mul(c.Value).Div(decimal.NewFromInt(100)).Round(2)
	case DiscountTypeFixed:
		discount = c.Value
	default:
		return decimal.Zero, shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Unknown discount type")
	}

	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	return discount, nil
}

// Redeem records one use of the coupon
func (c *Coupon) Redeem() error {
	if !c.IsActive {
		return shared.NewDomainError("COUPON_INACTIVE", "Coupon is not active")
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return shared.NewDomainError("COUPON_EXHAUSTED", "Coupon usage limit reached")
	}

	c.UsedCount++
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// validateCode validates the coupon code
func validateCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Coupon code cannot be empty")
	}
	if len(code) > 40 {
		return shared.NewDomainError("INVALID_CODE", "Coupon code cannot exceed 40 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_') {
			return shared.NewDomainError("INVALID_CODE", "Coupon code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
