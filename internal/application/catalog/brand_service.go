package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/verdantia/storefront/internal/domain/catalog"
	"github.com/verdantia/storefront/internal/domain/shared"
)

// BrandService handles brand-related business operations
type BrandService struct {
	brandRepo   catalog.BrandRepository
	productRepo catalog.ProductRepository
}

// NewBrandService creates a new BrandService
func NewBrandService(brandRepo catalog.BrandRepository, productRepo catalog.ProductRepository) *BrandService {
	return &BrandService{
		brandRepo:   brandRepo,
		productRepo: productRepo,
	}
}

// Create creates a new brand
func (s *BrandService) Create(ctx context.Context, req CreateBrandRequest) (*BrandResponse, error) {
	exists, err := s.brandRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Brand with this slug already exists")
	}

	brand, err := catalog.NewBrand(req.Name, req.Slug)
	if err != nil {
		return nil, err
	}

	if req.Description != "" || req.LogoURL != "" || req.Sustainability != "" {
		if err := brand.Update(req.Name, req.Description, req.LogoURL, req.Sustainability); err != nil {
			return nil, err
		}
	}

	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}

	response := ToBrandResponse(brand)
	return &response, nil
}

// GetByID retrieves a brand by ID
func (s *BrandService) GetByID(ctx context.Context, id uuid.UUID) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToBrandResponse(brand)
	return &response, nil
}

// GetBySlug retrieves a brand by its slug, for brand story pages
func (s *BrandService) GetBySlug(ctx context.Context, slug string) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	response := ToBrandResponse(brand)
	return &response, nil
}

// ListActive retrieves active brands
func (s *BrandService) ListActive(ctx context.Context) ([]BrandResponse, error) {
	brands, err := s.brandRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]BrandResponse, len(brands))
	for idx := range brands {
		items[idx] = ToBrandResponse(&brands[idx])
	}
	return items, nil
}

// List retrieves all brands with pagination
func (s *BrandService) List(ctx context.Context, page, pageSize int) (*shared.Paginated[BrandResponse], error) {
	f := shared.DefaultFilter()
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 {
		f.PageSize = pageSize
	}

	brands, err := s.brandRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.brandRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]BrandResponse, len(brands))
	for idx := range brands {
		items[idx] = ToBrandResponse(&brands[idx])
	}

	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}

// Update updates a brand
func (s *BrandService) Update(ctx context.Context, id uuid.UUID, req UpdateBrandRequest) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := brand.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := brand.Description
	if req.Description != nil {
		description = *req.Description
	}
	logoURL := brand.LogoURL
	if req.LogoURL != nil {
		logoURL = *req.LogoURL
	}
	sustainability := brand.Sustainability
	if req.Sustainability != nil {
		sustainability = *req.Sustainability
	}
	if err := brand.Update(name, description, logoURL, sustainability); err != nil {
		return nil, err
	}

	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}

	response := ToBrandResponse(brand)
	return &response, nil
}

// SetActive activates or deactivates a brand
func (s *BrandService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if active {
		err = brand.Activate()
	} else {
		err = brand.Deactivate()
	}
	if err != nil {
		return nil, err
	}

	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}

	response := ToBrandResponse(brand)
	return &response, nil
}

// Delete deletes a brand that no products reference
func (s *BrandService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.brandRepo.FindByID(ctx, id); err != nil {
		return err
	}

	f := shared.DefaultFilter()
	f.PageSize = 1
	products, err := s.productRepo.FindByBrand(ctx, id, f)
	if err != nil {
		return err
	}
	if len(products) > 0 {
		return shared.NewDomainError("BRAND_IN_USE", "Brand still has products assigned")
	}

	return s.brandRepo.Delete(ctx, id)
}
