package promotion

import (
	"context"

	"github.com/google/uuid"
	"github.com/verdantia/storefront/internal/domain/promotion"
	"github.com/verdantia/storefront/internal/domain/shared"
)

// PromotionService handles admin management of popups and banners
type PromotionService struct {
	repo promotion.PromotionRepository
}

// NewPromotionService creates a new PromotionService
func NewPromotionService(repo promotion.PromotionRepository) *PromotionService {
	return &PromotionService{repo: repo}
}

// Create creates a new, initially inactive promotion
func (s *PromotionService) Create(ctx context.Context, req CreatePromotionRequest) (*PromotionResponse, error) {
	p, err := promotion.NewPromotion(promotion.Kind(req.Kind), req.Title)
	if err != nil {
		return nil, err
	}

	if err := p.Update(req.Title, req.Body, req.ImageURL, req.LinkURL); err != nil {
		return nil, err
	}
	if err := p.SetWindow(req.StartsAt, req.EndsAt); err != nil {
		return nil, err
	}
	if len(req.TargetPages) > 0 {
		if err := p.SetTargetPages(req.TargetPages); err != nil {
			return nil, err
		}
	}
	if req.Trigger != "" {
		if err := p.SetTrigger(promotion.Trigger(req.Trigger), req.DelaySeconds); err != nil {
			return nil, err
		}
	}
	if req.Frequency != "" {
		if err := p.SetFrequency(promotion.Frequency(req.Frequency)); err != nil {
			return nil, err
		}
	}
	p.SetPriority(req.Priority)

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPromotionResponse(p)
	return &response, nil
}

// GetByID retrieves a promotion by ID
func (s *PromotionService) GetByID(ctx context.Context, id uuid.UUID) (*PromotionResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPromotionResponse(p)
	return &response, nil
}

// List retrieves promotions with pagination, optionally filtered by kind
func (s *PromotionService) List(ctx context.Context, filter PromotionListFilter) (*shared.Paginated[PromotionResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}

	var (
		promos []promotion.Promotion
		err    error
	)
	if filter.Kind != "" {
		f.Filters["kind"] = filter.Kind
		promos, err = s.repo.FindByKind(ctx, promotion.Kind(filter.Kind), f)
	} else {
		promos, err = s.repo.FindAll(ctx, f)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]PromotionResponse, len(promos))
	for idx := range promos {
		items[idx] = ToPromotionResponse(&promos[idx])
	}

	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}

// Update updates a promotion's content, window, targeting, and scheduling
func (s *PromotionService) Update(ctx context.Context, id uuid.UUID, req UpdatePromotionRequest) (*PromotionResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := p.Title
	if req.Title != nil {
		title = *req.Title
	}
	body := p.Body
	if req.Body != nil {
		body = *req.Body
	}
	imageURL := p.ImageURL
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}
	linkURL := p.LinkURL
	if req.LinkURL != nil {
		linkURL = *req.LinkURL
	}
	if err := p.Update(title, body, imageURL, linkURL); err != nil {
		return nil, err
	}

	if req.StartsAt != nil || req.EndsAt != nil {
		startsAt := p.StartsAt
		if req.StartsAt != nil {
			startsAt = req.StartsAt
		}
		endsAt := p.EndsAt
		if req.EndsAt != nil {
			endsAt = req.EndsAt
		}
		if err := p.SetWindow(startsAt, endsAt); err != nil {
			return nil, err
		}
	}

	if req.TargetPages != nil {
		if err := p.SetTargetPages(req.TargetPages); err != nil {
			return nil, err
		}
	}

	if req.Trigger != nil {
		delay := p.DelaySeconds
		if req.DelaySeconds != nil {
			delay = *req.DelaySeconds
		}
		if err := p.SetTrigger(promotion.Trigger(*req.Trigger), delay); err != nil {
			return nil, err
		}
	}

	if req.Frequency != nil {
		if err := p.SetFrequency(promotion.Frequency(*req.Frequency)); err != nil {
			return nil, err
		}
	}

	if req.Priority != nil {
		p.SetPriority(*req.Priority)
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPromotionResponse(p)
	return &response, nil
}

// Activate makes a promotion eligible for selection
func (s *PromotionService) Activate(ctx context.Context, id uuid.UUID) (*PromotionResponse, error) {
	return s.toggle(ctx, id, true)
}

// Deactivate withdraws a promotion from selection
func (s *PromotionService) Deactivate(ctx context.Context, id uuid.UUID) (*PromotionResponse, error) {
	return s.toggle(ctx, id, false)
}

// Delete deletes a promotion
func (s *PromotionService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *PromotionService) toggle(ctx context.Context, id uuid.UUID, active bool) (*PromotionResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if active {
		err = p.Activate()
	} else {
		err = p.Deactivate()
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPromotionResponse(p)
	return &response, nil
}
