package customer

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/verdantia/storefront/internal/domain/catalog"
	"github.com/verdantia/storefront/internal/domain/customer"
	"github.com/verdantia/storefront/internal/domain/shared"
)

// CustomerService handles customer accounts and wishlists
type CustomerService struct {
	customerRepo customer.CustomerRepository
	wishlistRepo customer.WishlistRepository
	productRepo  catalog.ProductRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerRepo customer.CustomerRepository,
	wishlistRepo customer.WishlistRepository,
	productRepo catalog.ProductRepository,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// Register creates a new customer account
func (s *CustomerService) Register(ctx context.Context, req RegisterCustomerRequest) (*CustomerResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.customerRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	c, err := customer.NewCustomer(email, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	if req.MarketingConsent {
		c.SetMarketingConsent(true)
	}

	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	return ToCustomerResponse(c), nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(c), nil
}

// GetByEmail retrieves a customer by email
func (s *CustomerService) GetByEmail(ctx context.Context, email string) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(c), nil
}

// List retrieves customers with pagination (admin view)
func (s *CustomerService) List(ctx context.Context, page, pageSize int) (*shared.Paginated[CustomerResponse], error) {
	f := shared.DefaultFilter()
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 {
		f.PageSize = pageSize
	}

	customers, err := s.customerRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]CustomerResponse, len(customers))
	for i := range customers {
		items[i] = *ToCustomerResponse(&customers[i])
	}

	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}

// Update applies a partial update to a customer's profile
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	firstName := c.FirstName
	lastName := c.LastName
	if req.FirstName != nil {
		firstName = *req.FirstName
	}
	if req.LastName != nil {
		lastName = *req.LastName
	}
	c.Update(firstName, lastName)

	if req.MarketingConsent != nil {
		c.SetMarketingConsent(*req.MarketingConsent)
	}

	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	return ToCustomerResponse(c), nil
}

// AddWishlistItem saves a product to the customer's wishlist. Saving a
// product that is already on the list is a no-op.
func (s *CustomerService) AddWishlistItem(ctx context.Context, customerID uuid.UUID, req AddWishlistItemRequest) error {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return err
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_PRODUCT", "Product does not exist")
		}
		return err
	}
	if !product.IsActive() {
		return shared.NewDomainError("INVALID_PRODUCT", "Product is not available")
	}

	exists, err := s.wishlistRepo.Exists(ctx, customerID, req.ProductID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	item, err := customer.NewWishlistItem(customerID, req.ProductID)
	if err != nil {
		return err
	}

	return s.wishlistRepo.Save(ctx, item)
}

// RemoveWishlistItem removes a product from the customer's wishlist
func (s *CustomerService) RemoveWishlistItem(ctx context.Context, customerID, productID uuid.UUID) error {
	return s.wishlistRepo.Delete(ctx, customerID, productID)
}

// ListWishlist returns the customer's saved products, newest first,
// hydrated with current catalog data. Products removed from the catalog
// appear without a summary.
func (s *CustomerService) ListWishlist(ctx context.Context, customerID uuid.UUID) ([]WishlistItemResponse, error) {
	items, err := s.wishlistRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []WishlistItemResponse{}, nil
	}

	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	responses := make([]WishlistItemResponse, len(items))
	for i, item := range items {
		responses[i] = WishlistItemResponse{
			ProductID: item.ProductID,
			SavedAt:   item.CreatedAt,
		}
		if p, ok := byID[item.ProductID]; ok {
			responses[i].Product = toWishlistProductSummary(p)
		}
	}

	return responses, nil
}
