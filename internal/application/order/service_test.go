package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/verdantia/storefront/internal/domain/cart"
	"github.com/verdantia/storefront/internal/domain/catalog"
	"github.com/verdantia/storefront/internal/domain/coupon"
	"github.com/verdantia/storefront/internal/domain/order"
	"github.com/verdantia/storefront/internal/domain/shared"
)

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, status order.OrderStatus, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context, status order.OrderStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockCartRepository is a mock implementation of CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) FindByClientToken(ctx context.Context, clientToken string) (*cart.Cart, error) {
	args := m.Called(ctx, clientToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCartRepository) FindStale(ctx context.Context, cutoff time.Time, limit int) ([]cart.Cart, error) {
	args := m.Called(ctx, cutoff, limit)
	return args.Get(0).([]cart.Cart), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindFeatured(ctx context.Context, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByBrand(ctx context.Context, brandID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, brandID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

// MockCouponRepository is a mock implementation of CouponRepository
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

func (m *MockCouponRepository) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

func (m *MockCouponRepository) FindAll(ctx context.Context, filter shared.Filter) ([]coupon.Coupon, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]coupon.Coupon), args.Error(1)
}

func (m *MockCouponRepository) Save(ctx context.Context, c *coupon.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCouponRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCouponRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// stubTransactor hands the test mocks to fn and records the outcome, so
// tests can assert every write ran inside one transaction and whether
// that transaction committed.
type stubTransactor struct {
	stores CheckoutStores
	runs   int
	fnErr  error
}

func (s *stubTransactor) InTransaction(ctx context.Context, fn func(stores CheckoutStores) error) error {
	s.runs++
	s.fnErr = fn(s.stores)
	return s.fnErr
}

type serviceMocks struct {
	orderRepo   *MockOrderRepository
	cartRepo    *MockCartRepository
	productRepo *MockProductRepository
	couponRepo  *MockCouponRepository
	tx          *stubTransactor
}

func newOrderService() (*OrderService, serviceMocks) {
	mocks := serviceMocks{
		orderRepo:   new(MockOrderRepository),
		cartRepo:    new(MockCartRepository),
		productRepo: new(MockProductRepository),
		couponRepo:  new(MockCouponRepository),
	}
	mocks.tx = &stubTransactor{stores: CheckoutStores{
		Orders:   mocks.orderRepo,
		Carts:    mocks.cartRepo,
		Products: mocks.productRepo,
		Coupons:  mocks.couponRepo,
	}}
	service := NewOrderService(mocks.orderRepo, mocks.cartRepo, mocks.productRepo, mocks.couponRepo, mocks.tx, DefaultShippingPolicy())
	return service, mocks
}

func testAddress() ShippingAddressInput {
	return ShippingAddressInput{
		FullName:   "Robin Vance",
		Line1:      "12 Alder Lane",
		City:       "Portland",
		PostalCode: "97201",
		Country:    "us",
	}
}

func checkoutCart(t *testing.T, products ...*catalog.Product) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart("client-abc")
	assert.NoError(t, err)
	for _, p := range products {
		assert.NoError(t, c.AddItem(cart.ProductSnapshot{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			ImageURL:  p.ImageURL,
		}, 2))
	}
	return c
}

func stockedProduct(t *testing.T, sku, slug string, price float64, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(sku, "Product "+sku, slug, decimal.NewFromFloat(price))
	assert.NoError(t, err)
	assert.NoError(t, p.SetStock(stock))
	return p
}

func TestOrderService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("creates order from cart", func(t *testing.T) {
		service, mocks := newOrderService()

		product := stockedProduct(t, "ECO-001", "organic-tote", 24.50, 10)
		c := checkoutCart(t, product)

		mocks.cartRepo.On("FindByClientToken", ctx, "client-abc").Return(c, nil)
		mocks.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		mocks.productRepo.On("Save", ctx, product).Return(nil)
		mocks.orderRepo.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
		mocks.cartRepo.On("Save", ctx, c).Return(nil)

		resp, err := service.Checkout(ctx, CheckoutRequest{
			ClientToken: "client-abc",
			Email:       "robin@example.com",
			Address:     testAddress(),
		})

		assert.NoError(t, err)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, 2, resp.ItemCount)
		assert.True(t, resp.Subtotal.Equal(decimal.NewFromFloat(49.00)))
		// below the free-shipping threshold
		assert.True(t, resp.ShippingFee.Equal(decimal.NewFromFloat(4.95)))
		assert.True(t, resp.Total.Equal(decimal.NewFromFloat(53.95)))
		assert.Equal(t, "US", resp.Address.Country)

		// stock was reserved and the cart converted
		assert.Equal(t, 8, product.StockQuantity)
		assert.Equal(t, cart.CartStatusConverted, c.Status)

		// all writes went through a single transaction
		assert.Equal(t, 1, mocks.tx.runs)
		assert.NoError(t, mocks.tx.fnErr)
	})

	t.Run("applies coupon and free shipping", func(t *testing.T) {
		service, mocks := newOrderService()

		product := stockedProduct(t, "ECO-002", "linen-shirt", 60.00, 10)
		c := checkoutCart(t, product) // subtotal 120.00

		cp, err := coupon.NewCoupon("EARTH20", coupon.DiscountTypePercent, decimal.NewFromInt(20))
		assert.NoError(t, err)

		mocks.cartRepo.On("FindByClientToken", ctx, "client-abc").Return(c, nil)
		mocks.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		mocks.productRepo.On("Save", ctx, product).Return(nil)
		mocks.couponRepo.On("FindByCode", ctx, "EARTH20").Return(cp, nil)
		mocks.couponRepo.On("Save", ctx, cp).Return(nil)
		mocks.orderRepo.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
		mocks.cartRepo.On("Save", ctx, c).Return(nil)

		resp, err := service.Checkout(ctx, CheckoutRequest{
			ClientToken: "client-abc",
			Email:       "robin@example.com",
			Address:     testAddress(),
			CouponCode:  "earth20",
		})

		assert.NoError(t, err)
		assert.True(t, resp.DiscountAmount.Equal(decimal.NewFromInt(24)))
		assert.True(t, resp.ShippingFee.IsZero())
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(96)))
		assert.Equal(t, 1, cp.UsedCount)
	})

	t.Run("rejects empty cart", func(t *testing.T) {
		service, mocks := newOrderService()

		c, err := cart.NewCart("client-abc")
		assert.NoError(t, err)
		mocks.cartRepo.On("FindByClientToken", ctx, "client-abc").Return(c, nil)

		_, err = service.Checkout(ctx, CheckoutRequest{
			ClientToken: "client-abc",
			Email:       "robin@example.com",
			Address:     testAddress(),
		})

		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMPTY_CART", domainErr.Code)
	})

	t.Run("rejects insufficient stock", func(t *testing.T) {
		service, mocks := newOrderService()

		product := stockedProduct(t, "ECO-001", "organic-tote", 24.50, 1)
		c := checkoutCart(t, product) // wants 2

		mocks.cartRepo.On("FindByClientToken", ctx, "client-abc").Return(c, nil)
		mocks.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := service.Checkout(ctx, CheckoutRequest{
			ClientToken: "client-abc",
			Email:       "robin@example.com",
			Address:     testAddress(),
		})

		assert.ErrorIs(t, err, shared.ErrOutOfStock)
		assert.Equal(t, cart.CartStatusActive, c.Status)
		mocks.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown coupon without converting cart", func(t *testing.T) {
		service, mocks := newOrderService()

		product := stockedProduct(t, "ECO-001", "organic-tote", 24.50, 10)
		c := checkoutCart(t, product)

		mocks.cartRepo.On("FindByClientToken", ctx, "client-abc").Return(c, nil)
		mocks.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		mocks.couponRepo.On("FindByCode", ctx, "NOPE42").Return(nil, shared.ErrNotFound)

		_, err := service.Checkout(ctx, CheckoutRequest{
			ClientToken: "client-abc",
			Email:       "robin@example.com",
			Address:     testAddress(),
			CouponCode:  "nope42",
		})

		assert.ErrorIs(t, err, shared.ErrCouponNotApplicable)
		assert.Equal(t, cart.CartStatusActive, c.Status)
	})

	t.Run("fails the whole transaction when a late write fails", func(t *testing.T) {
		service, mocks := newOrderService()

		product := stockedProduct(t, "ECO-001", "organic-tote", 24.50, 10)
		c := checkoutCart(t, product)

		saveErr := errors.New("connection reset by peer")
		mocks.cartRepo.On("FindByClientToken", ctx, "client-abc").Return(c, nil)
		mocks.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		mocks.productRepo.On("Save", ctx, product).Return(nil)
		mocks.orderRepo.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
		mocks.cartRepo.On("Save", ctx, c).Return(saveErr)

		_, err := service.Checkout(ctx, CheckoutRequest{
			ClientToken: "client-abc",
			Email:       "robin@example.com",
			Address:     testAddress(),
		})

		assert.ErrorIs(t, err, saveErr)

		// the order and stock writes ran inside the same transaction as the
		// failed cart write, and that transaction returned the error, so
		// none of them commit and a retry starts clean
		assert.Equal(t, 1, mocks.tx.runs)
		assert.ErrorIs(t, mocks.tx.fnErr, saveErr)
		mocks.orderRepo.AssertNumberOfCalls(t, "Save", 1)
		mocks.productRepo.AssertNumberOfCalls(t, "Save", 1)
	})
}

func TestOrderService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	service, mocks := newOrderService()

	o, err := order.NewOrder("VR-20250114-3F2A9C", "robin@example.com", order.ShippingAddress{
		FullName:   "Robin Vance",
		Line1:      "12 Alder Lane",
		City:       "Portland",
		PostalCode: "97201",
		Country:    "US",
	}, []order.LineInput{{
		ProductID: uuid.New(),
		Name:      "Organic Tote",
		UnitPrice: decimal.NewFromFloat(24.50),
		Quantity:  1,
	}})
	assert.NoError(t, err)

	mocks.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
	mocks.orderRepo.On("Save", ctx, o).Return(nil)

	resp, err := service.MarkPaid(ctx, o.ID)
	assert.NoError(t, err)
	assert.Equal(t, "PAID", resp.Status)

	resp, err = service.Ship(ctx, o.ID, ShipOrderRequest{TrackingNumber: "TRK-0042"})
	assert.NoError(t, err)
	assert.Equal(t, "SHIPPED", resp.Status)
	assert.Equal(t, "TRK-0042", resp.TrackingNumber)

	resp, err = service.MarkDelivered(ctx, o.ID)
	assert.NoError(t, err)
	assert.Equal(t, "DELIVERED", resp.Status)

	// delivered is terminal
	_, err = service.Cancel(ctx, o.ID, CancelOrderRequest{Reason: "changed mind"})
	assert.Error(t, err)
}

func TestOrderService_CancelRestoresStock(t *testing.T) {
	ctx := context.Background()

	service, mocks := newOrderService()

	product := stockedProduct(t, "ECO-001", "organic-tote", 24.50, 8)

	o, err := order.NewOrder("VR-20250114-3F2A9C", "robin@example.com", order.ShippingAddress{
		FullName:   "Robin Vance",
		Line1:      "12 Alder Lane",
		City:       "Portland",
		PostalCode: "97201",
		Country:    "US",
	}, []order.LineInput{{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  2,
	}})
	assert.NoError(t, err)

	mocks.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
	mocks.orderRepo.On("Save", ctx, o).Return(nil)
	mocks.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	mocks.productRepo.On("Save", ctx, product).Return(nil)

	resp, err := service.Cancel(ctx, o.ID, CancelOrderRequest{Reason: "requested by customer"})

	assert.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
	assert.Equal(t, "requested by customer", resp.CancelReason)
	assert.Equal(t, 10, product.StockQuantity)
}

func TestShippingPolicy_FeeFor(t *testing.T) {
	policy := DefaultShippingPolicy()

	assert.True(t, policy.FeeFor(decimal.NewFromInt(20)).Equal(decimal.NewFromFloat(4.95)))
	assert.True(t, policy.FeeFor(decimal.NewFromInt(75)).IsZero())
	assert.True(t, policy.FeeFor(decimal.NewFromInt(200)).IsZero())
}
