package promotion

import (
	"context"
	"time"

	"github.com/verdantia/storefront/internal/domain/promotion"
)

// Evaluator decides which promotion, if any, a page view should display.
//
// Selection itself is pure; the evaluator supplies it with the active
// candidates from the repository, the client's persisted impression history,
// and the session's already-shown set, then translates the winner into a
// display directive the storefront can act on.
type Evaluator struct {
	repo        promotion.PromotionRepository
	impressions promotion.ImpressionStore
	sessions    promotion.SessionStore
	now         func() time.Time
}

// NewEvaluator creates a new Evaluator
func NewEvaluator(
	repo promotion.PromotionRepository,
	impressions promotion.ImpressionStore,
	sessions promotion.SessionStore,
) *Evaluator {
	return &Evaluator{
		repo:        repo,
		impressions: impressions,
		sessions:    sessions,
		now:         time.Now,
	}
}

// Evaluate picks at most one promotion for the page view described by req.
// A response with a nil Promotion means nothing qualified.
func (e *Evaluator) Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluationResponse, error) {
	candidates, err := e.repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return &EvaluationResponse{}, nil
	}

	lastShown, err := e.impressions.LastShown(ctx, req.ClientToken)
	if err != nil {
		return nil, err
	}
	sessionShown, err := e.sessions.Shown(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	selected := promotion.Select(candidates, e.now(), req.PagePath, lastShown, sessionShown)
	if selected == nil {
		return &EvaluationResponse{}, nil
	}

	response := ToPromotionResponse(selected)
	return &EvaluationResponse{
		Promotion: &response,
		Directive: &DisplayDirective{
			Trigger:      string(selected.Trigger),
			DelaySeconds: selected.DelaySeconds,
		},
	}, nil
}

// RecordDisplay stores that a promotion was actually shown: it stamps the
// client's impression history for frequency throttling and marks the session
// so the same promotion is not offered again before the session ends.
func (e *Evaluator) RecordDisplay(ctx context.Context, req RecordDisplayRequest) error {
	if _, err := e.repo.FindByID(ctx, req.PromotionID); err != nil {
		return err
	}

	if err := e.impressions.Record(ctx, req.ClientToken, req.PromotionID, e.now()); err != nil {
		return err
	}
	return e.sessions.MarkShown(ctx, req.SessionID, req.PromotionID)
}
