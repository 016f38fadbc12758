package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/verdantia/storefront/internal/domain/catalog"
	"github.com/verdantia/storefront/internal/domain/customer"
)

// RegisterCustomerRequest is the request to create a customer account
type RegisterCustomerRequest struct {
	Email            string `json:"email" binding:"required,email"`
	FirstName        string `json:"first_name" binding:"max=100"`
	LastName         string `json:"last_name" binding:"max=100"`
	MarketingConsent bool   `json:"marketing_consent"`
}

// UpdateCustomerRequest is a partial profile update. Nil fields are left
// unchanged.
type UpdateCustomerRequest struct {
	FirstName        *string `json:"first_name,omitempty" binding:"omitempty,max=100"`
	LastName         *string `json:"last_name,omitempty" binding:"omitempty,max=100"`
	MarketingConsent *bool   `json:"marketing_consent,omitempty"`
}

// AddWishlistItemRequest saves a product to the customer's wishlist
type AddWishlistItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// CustomerResponse is the customer DTO
type CustomerResponse struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	MarketingConsent bool      `json:"marketing_consent"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// WishlistItemResponse is one saved product, hydrated with catalog data.
// Product is nil when the product has since been removed from the catalog.
type WishlistItemResponse struct {
	ProductID uuid.UUID               `json:"product_id"`
	SavedAt   time.Time               `json:"saved_at"`
	Product   *WishlistProductSummary `json:"product,omitempty"`
}

// WishlistProductSummary is the catalog data shown on a wishlist row
type WishlistProductSummary struct {
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url,omitempty"`
	InStock  bool            `json:"in_stock"`
	IsActive bool            `json:"is_active"`
}

// ToCustomerResponse converts a domain customer to a response DTO
func ToCustomerResponse(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:               c.ID,
		Email:            c.Email,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		MarketingConsent: c.MarketingConsent,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func toWishlistProductSummary(p *catalog.Product) *WishlistProductSummary {
	return &WishlistProductSummary{
		Name:     p.Name,
		Slug:     p.Slug,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		InStock:  p.StockQuantity > 0,
		IsActive: p.IsActive(),
	}
}
