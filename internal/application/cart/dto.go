package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/verdantia/storefront/internal/domain/cart"
)

// AddItemRequest represents a request to add a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// SetQuantityRequest represents a request to change a line's quantity
type SetQuantityRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// CartItemResponse represents one cart line in API responses
type CartItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartResponse represents a cart in API responses
type CartResponse struct {
	ID          uuid.UUID          `json:"id"`
	ClientToken string             `json:"client_token"`
	CustomerID  *uuid.UUID         `json:"customer_id,omitempty"`
	Items       []CartItemResponse `json:"items"`
	ItemCount   int                `json:"item_count"`
	Subtotal    decimal.Decimal    `json:"subtotal"`
	Status      string             `json:"status"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// ToCartResponse converts a domain Cart to CartResponse
func ToCartResponse(c *cart.Cart) CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	for idx := range c.Items {
		items[idx] = CartItemResponse{
			ProductID: c.Items[idx].ProductID,
			Name:      c.Items[idx].Name,
			UnitPrice: c.Items[idx].UnitPrice,
			ImageURL:  c.Items[idx].ImageURL,
			Quantity:  c.Items[idx].Quantity,
			Subtotal:  c.Items[idx].Subtotal(),
		}
	}
	return CartResponse{
		ID:          c.ID,
		ClientToken: c.ClientToken,
		CustomerID:  c.CustomerID,
		Items:       items,
		ItemCount:   c.ItemCount,
		Subtotal:    c.Subtotal,
		Status:      string(c.Status),
		UpdatedAt:   c.UpdatedAt,
	}
}
