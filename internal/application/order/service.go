package order

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/verdantia/storefront/internal/domain/cart"
	"github.com/verdantia/storefront/internal/domain/catalog"
	"github.com/verdantia/storefront/internal/domain/coupon"
	"github.com/verdantia/storefront/internal/domain/order"
	"github.com/verdantia/storefront/internal/domain/shared"
)

// ShippingPolicy sets the flat fee and the subtotal above which shipping
// is free
type ShippingPolicy struct {
	FlatFee       decimal.Decimal
	FreeThreshold decimal.Decimal
}

// DefaultShippingPolicy returns the storefront's standard shipping terms
func DefaultShippingPolicy() ShippingPolicy {
	return ShippingPolicy{
		FlatFee:       decimal.NewFromFloat(4.95),
		FreeThreshold: decimal.NewFromInt(75),
	}
}

// FeeFor returns the shipping fee for a discounted subtotal
func (p ShippingPolicy) FeeFor(amount decimal.Decimal) decimal.Decimal {
	if amount.GreaterThanOrEqual(p.FreeThreshold) {
		return decimal.Zero
	}
	return p.FlatFee
}

// CheckoutStores bundles the repositories a checkout writes to. A
// Transactor yields a transaction-scoped set so the order, stock,
// coupon, and cart writes commit or roll back as one unit.
type CheckoutStores struct {
	Orders   order.OrderRepository
	Carts    cart.CartRepository
	Products catalog.ProductRepository
	Coupons  coupon.CouponRepository
}

// Transactor runs fn inside a single database transaction
type Transactor interface {
	InTransaction(ctx context.Context, fn func(stores CheckoutStores) error) error
}

// OrderService handles checkout and order fulfillment
type OrderService struct {
	orderRepo   order.OrderRepository
	cartRepo    cart.CartRepository
	productRepo catalog.ProductRepository
	couponRepo  coupon.CouponRepository
	tx          Transactor
	shipping    ShippingPolicy
	now         func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo order.OrderRepository,
	cartRepo cart.CartRepository,
	productRepo catalog.ProductRepository,
	couponRepo coupon.CouponRepository,
	tx Transactor,
	shipping ShippingPolicy,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		tx:          tx,
		shipping:    shipping,
		now:         time.Now,
	}
}

// Checkout converts the client's cart into a pending order.
//
// The cart's lines become order lines at their snapshot prices. Stock is
// checked against the live catalog and decremented, an optional coupon is
// validated against the cart subtotal and redeemed, the shipping fee is
// derived from the discounted subtotal, and the cart is marked converted so
// it can never check out twice. All four writes happen in one database
// transaction, so a failed save leaves no partial order behind and a retry
// starts from the original stock and cart.
func (s *OrderService) Checkout(ctx context.Context, req CheckoutRequest) (*OrderResponse, error) {
	c, err := s.cartRepo.FindByClientToken(ctx, req.ClientToken)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot check out an empty cart")
	}

	products, err := s.reserveStock(ctx, c)
	if err != nil {
		return nil, err
	}

	lines := make([]order.LineInput, len(c.Items))
	for idx := range c.Items {
		lines[idx] = order.LineInput{
			ProductID: c.Items[idx].ProductID,
			Name:      c.Items[idx].Name,
			UnitPrice: c.Items[idx].UnitPrice,
			ImageURL:  c.Items[idx].ImageURL,
			Quantity:  c.Items[idx].Quantity,
		}
	}

	o, err := order.NewOrder(s.nextNumber(), req.Email, order.ShippingAddress{
		FullName:   req.Address.FullName,
		Line1:      req.Address.Line1,
		Line2:      req.Address.Line2,
		City:       req.Address.City,
		PostalCode: req.Address.PostalCode,
		Country:    strings.ToUpper(req.Address.Country),
	}, lines)
	if err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		o.AssignCustomer(*req.CustomerID)
	}

	var redeemed *coupon.Coupon
	if req.CouponCode != "" {
		redeemed, err = s.applyCoupon(ctx, o, req.CouponCode)
		if err != nil {
			return nil, err
		}
	}

	discounted := o.Subtotal.Sub(o.DiscountAmount)
	if err := o.SetShippingFee(s.shipping.FeeFor(discounted)); err != nil {
		return nil, err
	}

	if err := c.MarkConverted(); err != nil {
		return nil, err
	}

	err = s.tx.InTransaction(ctx, func(stores CheckoutStores) error {
		if err := stores.Orders.Save(ctx, o); err != nil {
			return err
		}
		for _, product := range products {
			if err := stores.Products.Save(ctx, product); err != nil {
				return err
			}
		}
		if redeemed != nil {
			if err := stores.Coupons.Save(ctx, redeemed); err != nil {
				return err
			}
		}
		return stores.Carts.Save(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// GetByNumber retrieves an order by its order number
func (s *OrderService) GetByNumber(ctx context.Context, number string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// List retrieves orders with pagination, optionally filtered by status
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}

	var (
		orders []order.Order
		err    error
	)
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
		orders, err = s.orderRepo.FindByStatus(ctx, order.OrderStatus(filter.Status), f)
	} else {
		orders, err = s.orderRepo.FindAll(ctx, f)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.orderRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]OrderResponse, len(orders))
	for idx := range orders {
		items[idx] = ToOrderResponse(&orders[idx])
	}

	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}

// ListByCustomer retrieves a customer's orders
func (s *OrderService) ListByCustomer(ctx context.Context, customerID uuid.UUID, page, pageSize int) (*shared.Paginated[OrderResponse], error) {
	f := shared.DefaultFilter()
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 {
		f.PageSize = pageSize
	}

	orders, err := s.orderRepo.FindByCustomer(ctx, customerID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]OrderResponse, len(orders))
	for idx := range orders {
		items[idx] = ToOrderResponse(&orders[idx])
	}

	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}

// MarkPaid transitions an order to PAID
func (s *OrderService) MarkPaid(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, func(o *order.Order) error {
		return o.MarkPaid()
	})
}

// Ship transitions an order to SHIPPED with its tracking number
func (s *OrderService) Ship(ctx context.Context, id uuid.UUID, req ShipOrderRequest) (*OrderResponse, error) {
	return s.transition(ctx, id, func(o *order.Order) error {
		return o.MarkShipped(req.TrackingNumber)
	})
}

// MarkDelivered transitions an order to DELIVERED
func (s *OrderService) MarkDelivered(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, func(o *order.Order) error {
		return o.MarkDelivered()
	})
}

// Cancel cancels a pending or paid order and restores the reserved stock.
// The stock restores and the status change share one transaction.
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := o.Cancel(req.Reason); err != nil {
		return nil, err
	}

	err = s.tx.InTransaction(ctx, func(stores CheckoutStores) error {
		for idx := range o.Items {
			product, err := stores.Products.FindByID(ctx, o.Items[idx].ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					continue // product removed since purchase, nothing to restore
				}
				return err
			}
			if err := product.SetStock(product.StockQuantity + o.Items[idx].Quantity); err != nil {
				return err
			}
			if err := stores.Products.Save(ctx, product); err != nil {
				return err
			}
		}
		return stores.Orders.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// reserveStock verifies and decrements stock for every cart line
func (s *OrderService) reserveStock(ctx context.Context, c *cart.Cart) ([]*catalog.Product, error) {
	products := make([]*catalog.Product, 0, len(c.Items))
	for idx := range c.Items {
		item := &c.Items[idx]
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PRODUCT", fmt.Sprintf("Product %q is no longer available", item.Name))
			}
			return nil, err
		}
		if !product.IsActive() || product.StockQuantity < item.Quantity {
			return nil, shared.ErrOutOfStock
		}
		if err := product.SetStock(product.StockQuantity - item.Quantity); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

// applyCoupon validates the code against the order subtotal, applies the
// discount, and consumes a redemption
func (s *OrderService) applyCoupon(ctx context.Context, o *order.Order, code string) (*coupon.Coupon, error) {
	cp, err := s.couponRepo.FindByCode(ctx, strings.ToUpper(code))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrCouponNotApplicable
		}
		return nil, err
	}

	discount, err := cp.DiscountFor(o.Subtotal, s.now())
	if err != nil {
		return nil, err
	}
	if err := o.ApplyCoupon(cp.Code, discount); err != nil {
		return nil, err
	}
	if err := cp.Redeem(); err != nil {
		return nil, err
	}
	return cp, nil
}

// transition loads, mutates, and saves an order
func (s *OrderService) transition(ctx context.Context, id uuid.UUID, fn func(*order.Order) error) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(o); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// nextNumber generates an order number like VR-20250114-3F2A9C
func (s *OrderService) nextNumber() string {
	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		// fall back to the timestamp's own entropy
		return fmt.Sprintf("VR-%s", s.now().Format("20060102150405.000000"))
	}
	return fmt.Sprintf("VR-%s-%s", s.now().Format("20060102"), strings.ToUpper(hex.EncodeToString(suffix)))
}
