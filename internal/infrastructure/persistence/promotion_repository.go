package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/verdantia/storefront/internal/domain/promotion"
	"github.com/verdantia/storefront/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPromotionRepository implements PromotionRepository using GORM
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewGormPromotionRepository creates a new GormPromotionRepository
func NewGormPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// FindByID finds a promotion by its ID
func (r *GormPromotionRepository) FindByID(ctx context.Context, id uuid.UUID) (*promotion.Promotion, error) {
	var promo promotion.Promotion
	if err := r.db.WithContext(ctx).First(&promo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &promo, nil
}

// FindAll finds all promotions matching the filter
func (r *GormPromotionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]promotion.Promotion, error) {
	var promos []promotion.Promotion
	query := r.applyFilter(r.db.WithContext(ctx).Model(&promotion.Promotion{}), filter)

	if err := query.Find(&promos).Error; err != nil {
		return nil, err
	}
	return promos, nil
}

// FindByKind finds all promotions of one kind
func (r *GormPromotionRepository) FindByKind(ctx context.Context, kind promotion.Kind, filter shared.Filter) ([]promotion.Promotion, error) {
	var promos []promotion.Promotion
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&promotion.Promotion{}).
			Where("kind = ?", kind),
		filter,
	)

	if err := query.Find(&promos).Error; err != nil {
		return nil, err
	}
	return promos, nil
}

// FindActive finds all active promotions in creation order.
// Window, targeting, and throttling checks are the selector's concern.
func (r *GormPromotionRepository) FindActive(ctx context.Context) ([]promotion.Promotion, error) {
	var promos []promotion.Promotion
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&promos).Error; err != nil {
		return nil, err
	}
	return promos, nil
}

// Save creates or updates a promotion
func (r *GormPromotionRepository) Save(ctx context.Context, promo *promotion.Promotion) error {
	return r.db.WithContext(ctx).Save(promo).Error
}

// Delete deletes a promotion
func (r *GormPromotionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&promotion.Promotion{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts promotions matching the filter
func (r *GormPromotionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&promotion.Promotion{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormPromotionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPromotionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR body ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "kind":
			query = query.Where("kind = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "trigger":
			query = query.Where("trigger = ?", value)
		case "frequency":
			query = query.Where("frequency = ?", value)
		}
	}

	return query
}

// Ensure GormPromotionRepository implements PromotionRepository
var _ promotion.PromotionRepository = (*GormPromotionRepository)(nil)
