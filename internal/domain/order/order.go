package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/verdantia/storefront/internal/domain/shared"
)

// OrderStatus represents the status of a storefront order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusPaid || target == OrderStatusCancelled
	case OrderStatusPaid:
		return target == OrderStatusShipped || target == OrderStatusCancelled
	case OrderStatusShipped:
		return target == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusCancelled:
		return false // terminal
	}
	return false
}

// ShippingAddress is the delivery destination captured at checkout
type ShippingAddress struct {
	FullName   string `gorm:"type:varchar(120);not null"`
	Line1      string `gorm:"type:varchar(200);not null"`
	Line2      string `gorm:"type:varchar(200)"`
	City       string `gorm:"type:varchar(100);not null"`
	PostalCode string `gorm:"type:varchar(20);not null"`
	Country    string `gorm:"type:varchar(2);not null"` // ISO 3166-1 alpha-2
}

// OrderItem is one purchased line, a snapshot of the cart line at checkout
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"type:varchar(200);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ImageURL  string          `gorm:"type:varchar(500)"`
	Quantity  int             `gorm:"not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"` // Quantity * UnitPrice
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Order represents a placed storefront order.
// Subtotal, DiscountAmount, ShippingFee, and Total are derived at
// construction time and only change through ApplyCoupon/SetShippingFee,
// which re-derive Total; Total is never written independently.
type Order struct {
	shared.BaseAggregateRoot
	Number         string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	CustomerID     *uuid.UUID      `gorm:"type:uuid;index"`
	Email          string          `gorm:"type:varchar(200);not null"`
	Address        ShippingAddress `gorm:"embedded;embeddedPrefix:ship_"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID;references:ID"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CouponCode     string          `gorm:"type:varchar(40)"`
	ShippingFee    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null;default:'PENDING'"`
	PaidAt         *time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
	CancelReason   string `gorm:"type:varchar(200)"`
	TrackingNumber string `gorm:"type:varchar(60)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// LineInput is the raw material for one order line
type LineInput struct {
	ProductID uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	ImageURL  string
	Quantity  int
}

// NewOrder creates a pending order from checkout lines
func NewOrder(number, email string, address ShippingAddress, lines []LineInput) (*Order, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(number) > 30 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 30 characters")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if address.FullName == "" || address.Line1 == "" || address.City == "" || address.PostalCode == "" || address.Country == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address is incomplete")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one line")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Email:             email,
		Address:           address,
		Items:             make([]OrderItem, 0, len(lines)),
		DiscountAmount:    decimal.Zero,
		ShippingFee:       decimal.Zero,
		Status:            OrderStatusPending,
	}

	now := time.Now()
	subtotal := decimal.Zero
	for _, line := range lines {
		if line.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
		}
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
		}
		if line.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
		}
		amount := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		o.Items = append(o.Items, OrderItem{
			ID:        uuid.New(),
			OrderID:   o.ID,
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			ImageURL:  line.ImageURL,
			Quantity:  line.Quantity,
			Amount:    amount,
			CreatedAt: now,
			UpdatedAt: now,
		})
		subtotal = subtotal.Add(amount)
	}

	o.Subtotal = subtotal
	o.Total = subtotal

	return o, nil
}

// AssignCustomer links the order to an authenticated customer
func (o *Order) AssignCustomer(customerID uuid.UUID) {
	if customerID == uuid.Nil {
		return
	}
	o.CustomerID = &customerID
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// ApplyCoupon records a coupon discount and re-derives the total
func (o *Order) ApplyCoupon(code string, discount decimal.Decimal) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot apply a coupon to a non-pending order")
	}
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discount.GreaterThan(o.Subtotal) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed subtotal")
	}

	o.CouponCode = code
	o.DiscountAmount = discount
	o.recalculateTotal()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// SetShippingFee records the shipping fee and re-derives the total
func (o *Order) SetShippingFee(fee decimal.Decimal) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot change shipping on a non-pending order")
	}
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_SHIPPING_FEE", "Shipping fee cannot be negative")
	}

	o.ShippingFee = fee
	o.recalculateTotal()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// MarkPaid transitions the order to PAID
func (o *Order) MarkPaid() error {
	if !o.Status.CanTransitionTo(OrderStatusPaid) {
		return shared.NewDomainError("INVALID_STATE", "Order cannot be marked paid from "+o.Status.String())
	}

	now := time.Now()
	o.Status = OrderStatusPaid
	o.PaidAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// MarkShipped transitions the order to SHIPPED with a tracking number
func (o *Order) MarkShipped(trackingNumber string) error {
	if !o.Status.CanTransitionTo(OrderStatusShipped) {
		return shared.NewDomainError("INVALID_STATE", "Order cannot be shipped from "+o.Status.String())
	}

	now := time.Now()
	o.Status = OrderStatusShipped
	o.TrackingNumber = trackingNumber
	o.ShippedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// MarkDelivered transitions the order to DELIVERED
func (o *Order) MarkDelivered() error {
	if !o.Status.CanTransitionTo(OrderStatusDelivered) {
		return shared.NewDomainError("INVALID_STATE", "Order cannot be delivered from "+o.Status.String())
	}

	now := time.Now()
	o.Status = OrderStatusDelivered
	o.DeliveredAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// Cancel cancels the order with a reason
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", "Order cannot be cancelled from "+o.Status.String())
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelReason = reason
	o.CancelledAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// ItemCount returns the total quantity across all lines
func (o *Order) ItemCount() int {
	count := 0
	for idx := range o.Items {
		count += o.Items[idx].Quantity
	}
	return count
}

// recalculateTotal re-derives Total from its parts
func (o *Order) recalculateTotal() {
	o.Total = o.Subtotal.Sub(o.DiscountAmount).Add(o.ShippingFee)
}
