package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/verdantia/storefront/internal/domain/catalog"
	"github.com/verdantia/storefront/internal/domain/shared"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, productRepo catalog.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this slug already exists")
	}

	category, err := catalog.NewCategory(req.Name, req.Slug)
	if err != nil {
		return nil, err
	}

	if req.Description != "" || req.ImageURL != "" {
		if err := category.Update(req.Name, req.Description, req.ImageURL); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// GetBySlug retrieves a category by its slug
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// ListActive retrieves active categories in sort order, for navigation
func (s *CategoryService) ListActive(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]CategoryResponse, len(categories))
	for idx := range categories {
		items[idx] = ToCategoryResponse(&categories[idx])
	}
	return items, nil
}

// List retrieves all categories with pagination
func (s *CategoryService) List(ctx context.Context, page, pageSize int) (*shared.Paginated[CategoryResponse], error) {
	f := shared.DefaultFilter()
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 {
		f.PageSize = pageSize
	}

	categories, err := s.categoryRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.categoryRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]CategoryResponse, len(categories))
	for idx := range categories {
		items[idx] = ToCategoryResponse(&categories[idx])
	}

	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}

// Update updates a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := category.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := category.Description
	if req.Description != nil {
		description = *req.Description
	}
	imageURL := category.ImageURL
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}
	if err := category.Update(name, description, imageURL); err != nil {
		return nil, err
	}

	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// SetActive activates or deactivates a category
func (s *CategoryService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if active {
		err = category.Activate()
	} else {
		err = category.Deactivate()
	}
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// Delete deletes a category that has no products left in it
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	f := shared.DefaultFilter()
	f.PageSize = 1
	products, err := s.productRepo.FindByCategory(ctx, id, f)
	if err != nil {
		return err
	}
	if len(products) > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category still has products assigned")
	}

	return s.categoryRepo.Delete(ctx, id)
}
