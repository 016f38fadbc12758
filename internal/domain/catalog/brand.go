package catalog

import (
	"strings"
	"time"

	"github.com/verdantia/storefront/internal/domain/shared"
)

// Brand represents a fashion brand carried by the storefront
type Brand struct {
	shared.BaseAggregateRoot
	Name           string `gorm:"type:varchar(100);not null"`
	Slug           string `gorm:"type:varchar(120);not null;uniqueIndex"`
	LogoURL        string `gorm:"type:varchar(500)"`
	Description    string `gorm:"type:text"`
	Sustainability string `gorm:"type:text"` // sourcing / material story shown on brand pages
	IsActive       bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Brand) TableName() string {
	return "brands"
}

// NewBrand creates a new brand
func NewBrand(name, slug string) (*Brand, error) {
	if err := validateName(name, 100); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	return &Brand{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              strings.ToLower(slug),
		IsActive:          true,
	}, nil
}

// Update updates the brand's display information
func (b *Brand) Update(name, description, logoURL, sustainability string) error {
	if err := validateName(name, 100); err != nil {
		return err
	}

	b.Name = name
	b.Description = description
	b.LogoURL = logoURL
	b.Sustainability = sustainability
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// UpdateSlug changes the brand slug
func (b *Brand) UpdateSlug(slug string) error {
	if err := validateSlug(slug); err != nil {
		return err
	}

	b.Slug = strings.ToLower(slug)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// Activate makes the brand visible on the storefront
func (b *Brand) Activate() error {
	if b.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Brand is already active")
	}

	b.IsActive = true
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// Deactivate hides the brand from the storefront
func (b *Brand) Deactivate() error {
	if !b.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Brand is already inactive")
	}

	b.IsActive = false
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}
