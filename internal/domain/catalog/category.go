package catalog

import (
	"strings"
	"time"

	"github.com/verdantia/storefront/internal/domain/shared"
)

// Category represents a product category in the storefront
type Category struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(100);not null"`
	Slug        string `gorm:"type:varchar(120);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	ImageURL    string `gorm:"type:varchar(500)"`
	SortOrder   int    `gorm:"not null;default:0"`
	IsActive    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name, slug string) (*Category, error) {
	if err := validateName(name, 100); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              strings.ToLower(slug),
		IsActive:          true,
	}, nil
}

// Update updates the category's basic information
func (c *Category) Update(name, description, imageURL string) error {
	if err := validateName(name, 100); err != nil {
		return err
	}

	c.Name = name
	c.Description = description
	c.ImageURL = imageURL
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// UpdateSlug changes the category slug
// Note: published storefront links reference the slug, so use with caution
func (c *Category) UpdateSlug(slug string) error {
	if err := validateSlug(slug); err != nil {
		return err
	}

	c.Slug = strings.ToLower(slug)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetSortOrder sets the display order of the category
func (c *Category) SetSortOrder(order int) {
	c.SortOrder = order
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate makes the category visible on the storefront
func (c *Category) Activate() error {
	if c.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Category is already active")
	}

	c.IsActive = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate hides the category from the storefront
func (c *Category) Deactivate() error {
	if !c.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Category is already inactive")
	}

	c.IsActive = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// validateName validates a display name against a maximum length
func validateName(name string, maxLen int) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > maxLen {
		return shared.NewDomainError("INVALID_NAME", "Name is too long")
	}
	return nil
}

// validateSlug validates a URL slug
func validateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot be empty")
	}
	if len(slug) > 120 {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot exceed 120 characters")
	}
	for _, r := range slug {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-') {
			return shared.NewDomainError("INVALID_SLUG", "Slug can only contain letters, numbers, and hyphens")
		}
	}
	return nil
}
