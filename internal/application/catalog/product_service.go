package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/verdantia/storefront/internal/domain/catalog"
	"github.com/verdantia/storefront/internal/domain/shared"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	brandRepo    catalog.BrandRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	brandRepo catalog.BrandRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	exists, err = s.productRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this slug already exists")
	}

	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	if err := s.checkBrand(ctx, req.BrandID); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.SKU, req.Name, req.Slug, req.Price)
	if err != nil {
		return nil, err
	}

	if req.Description != "" || req.ImageURL != "" {
		if err := product.Update(req.Name, req.Description, req.ImageURL); err != nil {
			return nil, err
		}
	}
	if req.CompareAtPrice != nil {
		if err := product.SetPrice(req.Price, *req.CompareAtPrice); err != nil {
			return nil, err
		}
	}
	product.SetCategory(req.CategoryID)
	product.SetBrand(req.BrandID)

	if req.GalleryURLs != "" {
		if err := product.SetGallery(req.GalleryURLs); err != nil {
			return nil, err
		}
	}
	if req.EcoAttributes != "" {
		if err := product.SetEcoAttributes(req.EcoAttributes); err != nil {
			return nil, err
		}
	}
	if req.StockQuantity != nil {
		if err := product.SetStock(*req.StockQuantity); err != nil {
			return nil, err
		}
	}
	if req.IsFeatured != nil {
		product.SetFeatured(*req.IsFeatured)
	}
	if req.SortOrder != nil {
		product.SetSortOrder(*req.SortOrder)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetBySlug retrieves a product by its slug, for storefront detail pages
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with pagination and filtering
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	f.Search = filter.Search
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.Featured != nil {
		f.Filters["is_featured"] = *filter.Featured
	}

	var (
		products []catalog.Product
		err      error
	)
	switch {
	case filter.CategoryID != nil:
		products, err = s.productRepo.FindByCategory(ctx, *filter.CategoryID, f)
	case filter.BrandID != nil:
		products, err = s.productRepo.FindByBrand(ctx, *filter.BrandID, f)
	default:
		products, err = s.productRepo.FindAll(ctx, f)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, len(products))
	for idx := range products {
		items[idx] = ToProductResponse(&products[idx])
	}

	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}

// ListFeatured retrieves featured active products for the home page
func (s *ProductService) ListFeatured(ctx context.Context, limit int) ([]ProductResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 12
	}
	products, err := s.productRepo.FindFeatured(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, len(products))
	for idx := range products {
		items[idx] = ToProductResponse(&products[idx])
	}
	return items, nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	if err := s.checkBrand(ctx, req.BrandID); err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	imageURL := product.ImageURL
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}
	if err := product.Update(name, description, imageURL); err != nil {
		return nil, err
	}

	if req.Price != nil || req.CompareAtPrice != nil {
		price := product.Price
		if req.Price != nil {
			price = *req.Price
		}
		compareAt := product.CompareAtPrice
		if req.CompareAtPrice != nil {
			compareAt = *req.CompareAtPrice
		}
		if err := product.SetPrice(price, compareAt); err != nil {
			return nil, err
		}
	}

	if req.CategoryID != nil {
		product.SetCategory(req.CategoryID)
	}
	if req.BrandID != nil {
		product.SetBrand(req.BrandID)
	}
	if req.GalleryURLs != nil {
		if err := product.SetGallery(*req.GalleryURLs); err != nil {
			return nil, err
		}
	}
	if req.EcoAttributes != nil {
		if err := product.SetEcoAttributes(*req.EcoAttributes); err != nil {
			return nil, err
		}
	}
	if req.StockQuantity != nil {
		if err := product.SetStock(*req.StockQuantity); err != nil {
			return nil, err
		}
	}
	if req.IsFeatured != nil {
		product.SetFeatured(*req.IsFeatured)
	}
	if req.SortOrder != nil {
		product.SetSortOrder(*req.SortOrder)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// SetStatus moves a product between active, inactive, and discontinued
func (s *ProductService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch catalog.ProductStatus(status) {
	case catalog.ProductStatusActive:
		err = product.Activate()
	case catalog.ProductStatusInactive:
		err = product.Deactivate()
	case catalog.ProductStatusDiscontinued:
		err = product.Discontinue()
	default:
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown product status")
	}
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// AdjustStock applies a delta to the stock quantity. A delta that would
// drive the quantity negative is rejected.
func (s *ProductService) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.SetStock(product.StockQuantity + delta); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *ProductService) checkCategory(ctx context.Context, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categoryRepo.FindByID(ctx, *categoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		return err
	}
	return nil
}

func (s *ProductService) checkBrand(ctx context.Context, brandID *uuid.UUID) error {
	if brandID == nil {
		return nil
	}
	if _, err := s.brandRepo.FindByID(ctx, *brandID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_BRAND", "Brand not found")
		}
		return err
	}
	return nil
}
