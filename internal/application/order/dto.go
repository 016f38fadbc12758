package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/verdantia/storefront/internal/domain/order"
)

// ShippingAddressInput is the delivery destination supplied at checkout
type ShippingAddressInput struct {
	FullName   string `json:"full_name" binding:"required,min=1,max=120"`
	Line1      string `json:"line1" binding:"required,min=1,max=200"`
	Line2      string `json:"line2" binding:"max=200"`
	City       string `json:"city" binding:"required,min=1,max=100"`
	PostalCode string `json:"postal_code" binding:"required,min=1,max=20"`
	Country    string `json:"country" binding:"required,len=2"`
}

// CheckoutRequest converts a client's cart into an order
type CheckoutRequest struct {
	ClientToken string               `json:"client_token" binding:"required,max=64"`
	Email       string               `json:"email" binding:"required,email,max=200"`
	Address     ShippingAddressInput `json:"address" binding:"required"`
	CouponCode  string               `json:"coupon_code" binding:"max=40"`
	CustomerID  *uuid.UUID           `json:"customer_id"`
}

// OrderListFilter represents filter options for the admin order list
type OrderListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=PENDING PAID SHIPPED DELIVERED CANCELLED"`
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
}

// ShipOrderRequest marks an order shipped with its tracking number
type ShipOrderRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required,min=1,max=60"`
}

// CancelOrderRequest cancels an order with a reason
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=200"`
}

// OrderItemResponse represents one purchased line in API responses
type OrderItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID             uuid.UUID            `json:"id"`
	Number         string               `json:"number"`
	CustomerID     *uuid.UUID           `json:"customer_id,omitempty"`
	Email          string               `json:"email"`
	Address        ShippingAddressInput `json:"address"`
	Items          []OrderItemResponse  `json:"items"`
	ItemCount      int                  `json:"item_count"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	DiscountAmount decimal.Decimal      `json:"discount_amount"`
	CouponCode     string               `json:"coupon_code,omitempty"`
	ShippingFee    decimal.Decimal      `json:"shipping_fee"`
	Total          decimal.Decimal      `json:"total"`
	Status         string               `json:"status"`
	PaidAt         *time.Time           `json:"paid_at,omitempty"`
	ShippedAt      *time.Time           `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time           `json:"delivered_at,omitempty"`
	CancelledAt    *time.Time           `json:"cancelled_at,omitempty"`
	CancelReason   string               `json:"cancel_reason,omitempty"`
	TrackingNumber string               `json:"tracking_number,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for idx := range o.Items {
		items[idx] = OrderItemResponse{
			ProductID: o.Items[idx].ProductID,
			Name:      o.Items[idx].Name,
			UnitPrice: o.Items[idx].UnitPrice,
			ImageURL:  o.Items[idx].ImageURL,
			Quantity:  o.Items[idx].Quantity,
			Amount:    o.Items[idx].Amount,
		}
	}
	return OrderResponse{
		ID:         o.ID,
		Number:     o.Number,
		CustomerID: o.CustomerID,
		Email:      o.Email,
		Address: ShippingAddressInput{
			FullName:   o.Address.FullName,
			Line1:      o.Address.Line1,
			Line2:      o.Address.Line2,
			City:       o.Address.City,
			PostalCode: o.Address.PostalCode,
			Country:    o.Address.Country,
		},
		Items:          items,
		ItemCount:      o.ItemCount(),
		Subtotal:       o.Subtotal,
		DiscountAmount: o.DiscountAmount,
		CouponCode:     o.CouponCode,
		ShippingFee:    o.ShippingFee,
		Total:          o.Total,
		Status:         string(o.Status),
		PaidAt:         o.PaidAt,
		ShippedAt:      o.ShippedAt,
		DeliveredAt:    o.DeliveredAt,
		CancelledAt:    o.CancelledAt,
		CancelReason:   o.CancelReason,
		TrackingNumber: o.TrackingNumber,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
