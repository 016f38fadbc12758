package cart

import (
	"sync"

	"github.com/google/uuid"
	"github.com/verdantia/storefront/internal/domain/cart"
)

// Store is an explicit, constructor-injected cart state container.
//
// It wraps a single cart plus the cart-panel visibility flag and serializes
// all access behind a mutex, so every observer reads a cart whose item count
// equals the sum of its line quantities. Construct one per scope (request
// session, test); nothing in this package holds package-level state.
type Store struct {
	mu   sync.Mutex
	cart *cart.Cart
	open bool
}

// NewStore creates a store around an existing cart
func NewStore(c *cart.Cart) *Store {
	return &Store{cart: c}
}

// AddItem adds quantity of a product, merging into an existing line
func (s *Store) AddItem(snapshot cart.ProductSnapshot, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.AddItem(snapshot, quantity)
}

// RemoveItem deletes the line for a product; absent lines are a no-op
func (s *Store) RemoveItem(productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.RemoveItem(productID)
}

// SetQuantity replaces a line's quantity; zero or less removes the line
func (s *Store) SetQuantity(productID uuid.UUID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.SetQuantity(productID, quantity)
}

// Items returns a copy of the lines in insertion order
func (s *Store) Items() []cart.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]cart.CartItem, len(s.cart.Items))
	copy(items, s.cart.Items)
	return items
}

// ItemCount returns the derived total quantity
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount
}

// Cart returns the underlying cart for persistence
func (s *Store) Cart() *cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// IsOpen reports whether the cart panel is visible
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// ToggleOpen flips the cart-panel visibility flag
func (s *Store) ToggleOpen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
}

// OpenCart makes the cart panel visible
func (s *Store) OpenCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
}

// CloseCart hides the cart panel
func (s *Store) CloseCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
}
