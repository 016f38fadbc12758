package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/verdantia/storefront/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	SKU            string           `json:"sku" binding:"required,min=1,max=50"`
	Name           string           `json:"name" binding:"required,min=1,max=200"`
	Slug           string           `json:"slug" binding:"required,slug,max=220"`
	Description    string           `json:"description" binding:"max=10000"`
	BrandID        *uuid.UUID       `json:"brand_id"`
	CategoryID     *uuid.UUID       `json:"category_id"`
	Price          decimal.Decimal  `json:"price" binding:"required"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price"`
	ImageURL       string           `json:"image_url" binding:"omitempty,url,max=500"`
	GalleryURLs    string           `json:"gallery_urls"`
	EcoAttributes  string           `json:"eco_attributes"`
	StockQuantity  *int             `json:"stock_quantity" binding:"omitempty,min=0"`
	IsFeatured     *bool            `json:"is_featured"`
	SortOrder      *int             `json:"sort_order"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description    *string          `json:"description" binding:"omitempty,max=10000"`
	BrandID        *uuid.UUID       `json:"brand_id"`
	CategoryID     *uuid.UUID       `json:"category_id"`
	Price          *decimal.Decimal `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price"`
	ImageURL       *string          `json:"image_url" binding:"omitempty,url,max=500"`
	GalleryURLs    *string          `json:"gallery_urls"`
	EcoAttributes  *string          `json:"eco_attributes"`
	StockQuantity  *int             `json:"stock_quantity" binding:"omitempty,min=0"`
	IsFeatured     *bool            `json:"is_featured"`
	SortOrder      *int             `json:"sort_order"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,oneof=active inactive discontinued"`
	CategoryID *uuid.UUID `form:"category_id"`
	BrandID    *uuid.UUID `form:"brand_id"`
	Featured   *bool      `form:"featured"`
	Page       int        `form:"page" binding:"min=1"`
	PageSize   int        `form:"page_size" binding:"min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             uuid.UUID       `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	Description    string          `json:"description"`
	BrandID        *uuid.UUID      `json:"brand_id"`
	CategoryID     *uuid.UUID      `json:"category_id"`
	Price          decimal.Decimal `json:"price"`
	CompareAtPrice decimal.Decimal `json:"compare_at_price"`
	OnSale         bool            `json:"on_sale"`
	ImageURL       string          `json:"image_url"`
	GalleryURLs    string          `json:"gallery_urls"`
	EcoAttributes  string          `json:"eco_attributes"`
	StockQuantity  int             `json:"stock_quantity"`
	InStock        bool            `json:"in_stock"`
	Status         string          `json:"status"`
	IsFeatured     bool            `json:"is_featured"`
	SortOrder      int             `json:"sort_order"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Slug        string `json:"slug" binding:"required,slug,max=120"`
	Description string `json:"description" binding:"max=2000"`
	ImageURL    string `json:"image_url" binding:"omitempty,url,max=500"`
	SortOrder   *int   `json:"sort_order"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url,max=500"`
	SortOrder   *int    `json:"sort_order"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	SortOrder   int       `json:"sort_order"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateBrandRequest represents a request to create a brand
type CreateBrandRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=100"`
	Slug           string `json:"slug" binding:"required,slug,max=120"`
	LogoURL        string `json:"logo_url" binding:"omitempty,url,max=500"`
	Description    string `json:"description" binding:"max=10000"`
	Sustainability string `json:"sustainability" binding:"max=10000"`
}

// UpdateBrandRequest represents a request to update a brand
type UpdateBrandRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=1,max=100"`
	LogoURL        *string `json:"logo_url" binding:"omitempty,url,max=500"`
	Description    *string `json:"description" binding:"omitempty,max=10000"`
	Sustainability *string `json:"sustainability" binding:"omitempty,max=10000"`
}

// BrandResponse represents a brand in API responses
type BrandResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	LogoURL        string    `json:"logo_url"`
	Description    string    `json:"description"`
	Sustainability string    `json:"sustainability"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		BrandID:        p.BrandID,
		CategoryID:     p.CategoryID,
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		OnSale:         p.OnSale(),
		ImageURL:       p.ImageURL,
		GalleryURLs:    p.GalleryURLs,
		EcoAttributes:  p.EcoAttributes,
		StockQuantity:  p.StockQuantity,
		InStock:        p.InStock(),
		Status:         string(p.Status),
		IsFeatured:     p.IsFeatured,
		SortOrder:      p.SortOrder,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Version:        p.Version,
	}
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		SortOrder:   c.SortOrder,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToBrandResponse converts a domain Brand to BrandResponse
func ToBrandResponse(b *catalog.Brand) BrandResponse {
	return BrandResponse{
		ID:             b.ID,
		Name:           b.Name,
		Slug:           b.Slug,
		LogoURL:        b.LogoURL,
		Description:    b.Description,
		Sustainability: b.Sustainability,
		IsActive:       b.IsActive,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
