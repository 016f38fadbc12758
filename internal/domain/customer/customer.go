package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/verdantia/storefront/internal/domain/shared"
)

// Customer represents a storefront shopper account
type Customer struct {
	shared.BaseAggregateRoot
	Email            string `gorm:"type:varchar(200);not null;uniqueIndex"`
	FirstName        string `gorm:"type:varchar(100)"`
	LastName         string `gorm:"type:varchar(100)"`
	MarketingConsent bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer account
func NewCustomer(email, firstName, lastName string) (*Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") || len(email) > 200 {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invalid email address")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		FirstName:         firstName,
		LastName:          lastName,
	}, nil
}

// Update updates the customer's profile
func (c *Customer) Update(firstName, lastName string) {
	c.FirstName = firstName
	c.LastName = lastName
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetMarketingConsent records the consent decision
func (c *Customer) SetMarketingConsent(consent bool) {
	c.MarketingConsent = consent
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// WishlistItem is one saved product for a customer.
// The pair (CustomerID, ProductID) is unique: saving twice is a no-op.
type WishlistItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_customer_product,priority:1"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_customer_product,priority:2"`
	CreatedAt  time.Time
}

// TableName returns the table name for GORM
func (WishlistItem) TableName() string {
	return "wishlist_items"
}

// NewWishlistItem creates a wishlist entry
func NewWishlistItem(customerID, productID uuid.UUID) (*WishlistItem, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	return &WishlistItem{
		ID:         uuid.New(),
		CustomerID: customerID,
		ProductID:  productID,
		CreatedAt:  time.Now(),
	}, nil
}
