package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/verdantia/storefront/internal/domain/shared"
)

// CartStatus represents the lifecycle state of a cart
type CartStatus string

const (
	CartStatusActive    CartStatus = "active"
	CartStatusConverted CartStatus = "converted" // turned into an order at checkout
	CartStatusAbandoned CartStatus = "abandoned"
)

// ProductSnapshot carries the product fields a cart line needs at add time.
// The cart stores a copy so later catalog edits do not rewrite open carts.
type ProductSnapshot struct {
	ProductID uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	ImageURL  string
}

// CartItem is one product-keyed line in a cart
type CartItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(200);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ImageURL  string          `gorm:"type:varchar(500)"`
	Quantity  int             `gorm:"not null"`
	Position  int             `gorm:"not null"` // preserves insertion order across reloads
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// Subtotal returns quantity times unit price for this line
func (i *CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the aggregate root for a shopper's cart.
//
// Items keep insertion order and hold at most one line per product id.
// ItemCount and Subtotal are derived sums; every mutating method recomputes
// them before returning, so observers never see a count that disagrees with
// the lines it summarizes.
type Cart struct {
	shared.BaseAggregateRoot
	ClientToken string          `gorm:"type:varchar(64);not null;uniqueIndex"` // anonymous client identity
	CustomerID  *uuid.UUID      `gorm:"type:uuid;index"`
	Items       []CartItem      `gorm:"foreignKey:CartID;references:ID"`
	ItemCount   int             `gorm:"not null;default:0"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status      CartStatus      `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates an empty active cart for a client token
func NewCart(clientToken string) (*Cart, error) {
	if clientToken == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_TOKEN", "Client token cannot be empty")
	}
	if len(clientToken) > 64 {
		return nil, shared.NewDomainError("INVALID_CLIENT_TOKEN", "Client token cannot exceed 64 characters")
	}

	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientToken:       clientToken,
		Items:             make([]CartItem, 0),
		ItemCount:         0,
		Subtotal:          decimal.Zero,
		Status:            CartStatusActive,
	}, nil
}

// AddItem adds quantity of a product to the cart.
// If a line for the product already exists its quantity is incremented,
// otherwise a new line is appended; there is never more than one line per
// product id.
func (c *Cart) AddItem(snapshot ProductSnapshot, quantity int) error {
	if c.Status != CartStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a non-active cart")
	}
	if snapshot.ProductID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	now := time.Now()
	for idx := range c.Items {
		if c.Items[idx].ProductID == snapshot.ProductID {
			c.Items[idx].Quantity += quantity
			c.Items[idx].UpdatedAt = now
			c.recalculate()
			c.UpdatedAt = now
			c.IncrementVersion()
			return nil
		}
	}

	c.Items = append(c.Items, CartItem{
		ID:        uuid.New(),
		CartID:    c.ID,
		ProductID: snapshot.ProductID,
		Name:      snapshot.Name,
		UnitPrice: snapshot.UnitPrice,
		ImageURL:  snapshot.ImageURL,
		Quantity:  quantity,
		Position:  len(c.Items),
		CreatedAt: now,
		UpdatedAt: now,
	})
	c.recalculate()
	c.UpdatedAt = now
	c.IncrementVersion()

	return nil
}

// RemoveItem deletes the line for a product.
// Removing a product that is not in the cart is a no-op, not an error.
func (c *Cart) RemoveItem(productID uuid.UUID) error {
	if c.Status != CartStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a non-active cart")
	}

	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			for pos := range c.Items {
				c.Items[pos].Position = pos
			}
			c.recalculate()
			c.UpdatedAt = time.Now()
			c.IncrementVersion()
			return nil
		}
	}

	return nil
}

// SetQuantity replaces the quantity of an existing line.
// A quantity of zero or less removes the line. Setting a quantity for a
// product that has no line is a no-op; callers add items through AddItem.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) error {
	if c.Status != CartStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a non-active cart")
	}

	if quantity <= 0 {
		return c.RemoveItem(productID)
	}

	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items[idx].Quantity = quantity
			c.Items[idx].UpdatedAt = time.Now()
			c.recalculate()
			c.UpdatedAt = time.Now()
			c.IncrementVersion()
			return nil
		}
	}

	return nil
}

// Clear removes all lines from the cart
func (c *Cart) Clear() error {
	if c.Status != CartStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a non-active cart")
	}

	c.Items = make([]CartItem, 0)
	c.recalculate()
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// FindItem returns the line for a product, or nil if absent
func (c *Cart) FindItem(productID uuid.UUID) *CartItem {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			return &c.Items[idx]
		}
	}
	return nil
}

// AssignCustomer links the cart to an authenticated customer
func (c *Cart) AssignCustomer(customerID uuid.UUID) error {
	if customerID == uuid.Nil {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	c.CustomerID = &customerID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// MarkConverted marks the cart as turned into an order
func (c *Cart) MarkConverted() error {
	if c.Status != CartStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only an active cart can be converted")
	}
	if len(c.Items) == 0 {
		return shared.NewDomainError("EMPTY_CART", "Cannot convert an empty cart")
	}

	c.Status = CartStatusConverted
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// MarkAbandoned marks the cart as abandoned
func (c *Cart) MarkAbandoned() error {
	if c.Status != CartStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only an active cart can be abandoned")
	}

	c.Status = CartStatusAbandoned
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsEmpty returns true if the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// recalculate rebuilds ItemCount and Subtotal from the lines
func (c *Cart) recalculate() {
	count := 0
	subtotal := decimal.Zero
	for idx := range c.Items {
		count += c.Items[idx].Quantity
		subtotal = subtotal.Add(c.Items[idx].Subtotal())
	}
	c.ItemCount = count
	c.Subtotal = subtotal
}
