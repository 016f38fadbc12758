package coupon

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/verdantia/storefront/internal/domain/coupon"
	"github.com/verdantia/storefront/internal/domain/shared"
)

// CouponService handles coupon management and validation
type CouponService struct {
	repo coupon.CouponRepository
	now  func() time.Time
}

// NewCouponService creates a new CouponService
func NewCouponService(repo coupon.CouponRepository) *CouponService {
	return &CouponService{
		repo: repo,
		now:  time.Now,
	}
}

// Create creates a new coupon
func (s *CouponService) Create(ctx context.Context, req CreateCouponRequest) (*CouponResponse, error) {
	exists, err := s.repo.ExistsByCode(ctx, strings.ToUpper(req.Code))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Coupon with this code already exists")
	}

	c, err := coupon.NewCoupon(req.Code, coupon.DiscountType(req.Type), req.Value)
	if err != nil {
		return nil, err
	}

	if !req.MinSubtotal.IsZero() {
		if err := c.SetMinSubtotal(req.MinSubtotal); err != nil {
			return nil, err
		}
	}
	if req.UsageLimit > 0 {
		if err := c.SetUsageLimit(req.UsageLimit); err != nil {
			return nil, err
		}
	}
	if req.StartsAt != nil || req.ExpiresAt != nil {
		if err := c.SetValidity(req.StartsAt, req.ExpiresAt); err != nil {
			return nil, err
		}
	}
	if req.Description != "" {
		c.SetDescription(req.Description)
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCouponResponse(c)
	return &response, nil
}

// GetByID retrieves a coupon by ID
func (s *CouponService) GetByID(ctx context.Context, id uuid.UUID) (*CouponResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCouponResponse(c)
	return &response, nil
}

// List retrieves coupons with pagination
func (s *CouponService) List(ctx context.Context, page, pageSize int) (*shared.Paginated[CouponResponse], error) {
	f := shared.DefaultFilter()
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 {
		f.PageSize = pageSize
	}

	coupons, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]CouponResponse, len(coupons))
	for idx := range coupons {
		items[idx] = ToCouponResponse(&coupons[idx])
	}

	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}

// Validate previews the discount a code yields against a subtotal without
// consuming a redemption
func (s *CouponService) Validate(ctx context.Context, req ValidateCouponRequest) (*ValidateCouponResponse, error) {
	c, err := s.repo.FindByCode(ctx, strings.ToUpper(req.Code))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrCouponNotApplicable
		}
		return nil, err
	}

	discount, err := c.DiscountFor(req.Subtotal, s.now())
	if err != nil {
		return nil, err
	}

	return &ValidateCouponResponse{
		Code:     c.Code,
		Discount: discount,
	}, nil
}

// SetActive activates or deactivates a coupon
func (s *CouponService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*CouponResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if active {
		err = c.Activate()
	} else {
		err = c.Deactivate()
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCouponResponse(c)
	return &response, nil
}

// Delete deletes a coupon
func (s *CouponService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
