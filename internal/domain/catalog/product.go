package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/verdantia/storefront/internal/domain/shared"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// IsValid checks if the status is a valid ProductStatus
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDiscontinued:
		return true
	}
	return false
}

// Product represents a sellable item in the catalog
// It is the aggregate root for product-related operations
type Product struct {
	shared.BaseAggregateRoot
	SKU            string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name           string          `gorm:"type:varchar(200);not null"`
	Slug           string          `gorm:"type:varchar(220);not null;uniqueIndex"`
	Description    string          `gorm:"type:text"`
	BrandID        *uuid.UUID      `gorm:"type:uuid;index"`
	CategoryID     *uuid.UUID      `gorm:"type:uuid;index"`
	Price          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CompareAtPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"` // original price when on sale
	ImageURL       string          `gorm:"type:varchar(500)"`
	GalleryURLs    string          `gorm:"type:jsonb"` // JSON array of additional image URLs
	EcoAttributes  string          `gorm:"type:jsonb"` // JSON object: materials, certifications, footprint
	StockQuantity  int             `gorm:"not null;default:0"`
	Status         ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
	IsFeatured     bool            `gorm:"not null;default:false"`
	SortOrder      int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(sku, name, slug string, price decimal.Decimal) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateName(name, 200); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Name:              name,
		Slug:              strings.ToLower(slug),
		Price:             price,
		CompareAtPrice:    decimal.Zero,
		GalleryURLs:       "[]",
		EcoAttributes:     "{}",
		Status:            ProductStatusActive,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description, imageURL string) error {
	if err := validateName(name, 200); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.ImageURL = imageURL
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPrice sets the selling price, optionally with a compare-at price
// A zero compareAt clears any sale marker
func (p *Product) SetPrice(price, compareAt decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if compareAt.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Compare-at price cannot be negative")
	}
	if !compareAt.IsZero() && compareAt.LessThan(price) {
		return shared.NewDomainError("INVALID_PRICE", "Compare-at price must be at least the selling price")
	}

	p.Price = price
	p.CompareAtPrice = compareAt
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetBrand assigns the product to a brand
func (p *Product) SetBrand(brandID *uuid.UUID) {
	p.BrandID = brandID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetCategory assigns the product to a category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetStock sets the available stock quantity
func (p *Product) SetStock(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}

	p.StockQuantity = quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetGallery sets the additional image URLs as a JSON array
func (p *Product) SetGallery(gallery string) error {
	if gallery == "" {
		gallery = "[]"
	}
	trimmed := strings.TrimSpace(gallery)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return shared.NewDomainError("INVALID_GALLERY", "Gallery must be a valid JSON array")
	}

	p.GalleryURLs = trimmed
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetEcoAttributes sets the sustainability attributes as a JSON object
func (p *Product) SetEcoAttributes(attributes string) error {
	if attributes == "" {
		attributes = "{}"
	}
	trimmed := strings.TrimSpace(attributes)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return shared.NewDomainError("INVALID_ATTRIBUTES", "Attributes must be a valid JSON object")
	}

	p.EcoAttributes = trimmed
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetFeatured marks or unmarks the product for the featured rail
func (p *Product) SetFeatured(featured bool) {
	p.IsFeatured = featured
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetSortOrder sets the display order of the product
func (p *Product) SetSortOrder(order int) {
	p.SortOrder = order
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Activate makes the product purchasable
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("CANNOT_ACTIVATE", "Cannot activate a discontinued product")
	}

	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Deactivate hides the product from the storefront
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("CANNOT_DEACTIVATE", "Cannot deactivate a discontinued product")
	}

	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Discontinue marks the product as discontinued
// A discontinued product cannot be reactivated
func (p *Product) Discontinue() error {
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("ALREADY_DISCONTINUED", "Product is already discontinued")
	}

	p.Status = ProductStatusDiscontinued
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// InStock returns true if any stock is available
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

// OnSale returns true if a compare-at price above the selling price is set
func (p *Product) OnSale() bool {
	return !p.CompareAtPrice.IsZero() && p.CompareAtPrice.GreaterThan(p.Price)
}

// validateSKU validates the product SKU
func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
