package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/verdantia/storefront/internal/domain/cart"
	"github.com/verdantia/storefront/internal/domain/catalog"
	"github.com/verdantia/storefront/internal/domain/shared"
)

// CartService handles cart-related business operations
type CartService struct {
	cartRepo    cart.CartRepository
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.CartRepository, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetOrCreate returns the active cart for a client token, creating an empty
// one if none exists yet
func (s *CartService) GetOrCreate(ctx context.Context, clientToken string) (*CartResponse, error) {
	c, err := s.findOrCreate(ctx, clientToken)
	if err != nil {
		return nil, err
	}
	response := ToCartResponse(c)
	return &response, nil
}

// AddItem adds a product to the client's cart, merging into an existing
// line when the product is already present
func (s *CartService) AddItem(ctx context.Context, clientToken string, req AddItemRequest) (*CartResponse, error) {
	c, err := s.findOrCreate(ctx, clientToken)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found")
		}
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is not available")
	}

	requested := req.Quantity
	if line := c.FindItem(product.ID); line != nil {
		requested += line.Quantity
	}
	if requested > product.StockQuantity {
		return nil, shared.ErrOutOfStock
	}

	snapshot := cart.ProductSnapshot{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		ImageURL:  product.ImageURL,
	}
	if err := c.AddItem(snapshot, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// RemoveItem deletes the line for a product from the client's cart.
// Removing a product that is not in the cart leaves the cart unchanged.
func (s *CartService) RemoveItem(ctx context.Context, clientToken string, productID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartRepo.FindByClientToken(ctx, clientToken)
	if err != nil {
		return nil, err
	}

	if err := c.RemoveItem(productID); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// SetQuantity replaces a line's quantity; a quantity of zero removes the line
func (s *CartService) SetQuantity(ctx context.Context, clientToken string, productID uuid.UUID, req SetQuantityRequest) (*CartResponse, error) {
	c, err := s.cartRepo.FindByClientToken(ctx, clientToken)
	if err != nil {
		return nil, err
	}

	if req.Quantity > 0 {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found")
			}
			return nil, err
		}
		if req.Quantity > product.StockQuantity {
			return nil, shared.ErrOutOfStock
		}
	}

	if err := c.SetQuantity(productID, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// Clear removes every line from the client's cart
func (s *CartService) Clear(ctx context.Context, clientToken string) (*CartResponse, error) {
	c, err := s.cartRepo.FindByClientToken(ctx, clientToken)
	if err != nil {
		return nil, err
	}

	if err := c.Clear(); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// AssignCustomer links the client's cart to an authenticated customer
func (s *CartService) AssignCustomer(ctx context.Context, clientToken string, customerID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartRepo.FindByClientToken(ctx, clientToken)
	if err != nil {
		return nil, err
	}

	if err := c.AssignCustomer(customerID); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// SweepStale marks active carts untouched since the cutoff as abandoned and
// returns how many were swept
func (s *CartService) SweepStale(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	stale, err := s.cartRepo.FindStale(ctx, cutoff, limit)
	if err != nil {
		return 0, err
	}

	swept := 0
	for idx := range stale {
		c := &stale[idx]
		if err := c.MarkAbandoned(); err != nil {
			continue
		}
		if err := s.cartRepo.Save(ctx, c); err != nil {
			return swept, err
		}
		swept++
	}

	return swept, nil
}

// findOrCreate loads the active cart for a client token or creates one
func (s *CartService) findOrCreate(ctx context.Context, clientToken string) (*cart.Cart, error) {
	c, err := s.cartRepo.FindByClientToken(ctx, clientToken)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	c, err = cart.NewCart(clientToken)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
