package promotion

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/verdantia/storefront/internal/domain/promotion"
	"github.com/verdantia/storefront/internal/domain/shared"
)

// MockPromotionRepository is a mock implementation of PromotionRepository
type MockPromotionRepository struct {
	mock.Mock
}

func (m *MockPromotionRepository) FindByID(ctx context.Context, id uuid.UUID) (*promotion.Promotion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promotion.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]promotion.Promotion, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]promotion.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) FindByKind(ctx context.Context, kind promotion.Kind, filter shared.Filter) ([]promotion.Promotion, error) {
	args := m.Called(ctx, kind, filter)
	return args.Get(0).([]promotion.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) FindActive(ctx context.Context) ([]promotion.Promotion, error) {
	args := m.Called(ctx)
	return args.Get(0).([]promotion.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) Save(ctx context.Context, p *promotion.Promotion) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPromotionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPromotionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockImpressionStore is a mock implementation of ImpressionStore
type MockImpressionStore struct {
	mock.Mock
}

func (m *MockImpressionStore) LastShown(ctx context.Context, clientToken string) (map[uuid.UUID]time.Time, error) {
	args := m.Called(ctx, clientToken)
	return args.Get(0).(map[uuid.UUID]time.Time), args.Error(1)
}

func (m *MockImpressionStore) Record(ctx context.Context, clientToken string, promotionID uuid.UUID, shownAt time.Time) error {
	args := m.Called(ctx, clientToken, promotionID, shownAt)
	return args.Error(0)
}

func (m *MockImpressionStore) Clear(ctx context.Context, clientToken string) error {
	args := m.Called(ctx, clientToken)
	return args.Error(0)
}

// MockSessionStore is a mock implementation of SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Shown(ctx context.Context, sessionID string) (map[uuid.UUID]struct{}, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(map[uuid.UUID]struct{}), args.Error(1)
}

func (m *MockSessionStore) MarkShown(ctx context.Context, sessionID string, promotionID uuid.UUID) error {
	args := m.Called(ctx, sessionID, promotionID)
	return args.Error(0)
}

func (m *MockSessionStore) Reset(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func createTestPromotion(t *testing.T, title string, priority int) *promotion.Promotion {
	t.Helper()
	p, err := promotion.NewPromotion(promotion.KindPopup, title)
	assert.NoError(t, err)
	p.SetPriority(priority)
	assert.NoError(t, p.Activate())
	return p
}

func evaluateReq() EvaluateRequest {
	return EvaluateRequest{
		PagePath:    "/products",
		ClientToken: "client-abc",
		SessionID:   "session-xyz",
	}
}

func TestEvaluator_Evaluate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns highest priority candidate with directive", func(t *testing.T) {
		repo := new(MockPromotionRepository)
		impressions := new(MockImpressionStore)
		sessions := new(MockSessionStore)
		evaluator := NewEvaluator(repo, impressions, sessions)

		low := createTestPromotion(t, "Spring Sale", 1)
		high := createTestPromotion(t, "Earth Week", 9)
		assert.NoError(t, high.SetTrigger(promotion.TriggerDelay, 5))

		repo.On("FindActive", ctx).Return([]promotion.Promotion{*low, *high}, nil)
		impressions.On("LastShown", ctx, "client-abc").Return(map[uuid.UUID]time.Time{}, nil)
		sessions.On("Shown", ctx, "session-xyz").Return(map[uuid.UUID]struct{}{}, nil)

		resp, err := evaluator.Evaluate(ctx, evaluateReq())

		assert.NoError(t, err)
		assert.NotNil(t, resp.Promotion)
		assert.Equal(t, "Earth Week", resp.Promotion.Title)
		assert.Equal(t, "delay", resp.Directive.Trigger)
		assert.Equal(t, 5, resp.Directive.DelaySeconds)
	})

	t.Run("nothing qualifies", func(t *testing.T) {
		repo := new(MockPromotionRepository)
		impressions := new(MockImpressionStore)
		sessions := new(MockSessionStore)
		evaluator := NewEvaluator(repo, impressions, sessions)

		seen := createTestPromotion(t, "Spring Sale", 1)
		repo.On("FindActive", ctx).Return([]promotion.Promotion{*seen}, nil)
		impressions.On("LastShown", ctx, "client-abc").Return(map[uuid.UUID]time.Time{}, nil)
		sessions.On("Shown", ctx, "session-xyz").Return(map[uuid.UUID]struct{}{seen.ID: {}}, nil)

		resp, err := evaluator.Evaluate(ctx, evaluateReq())

		assert.NoError(t, err)
		assert.Nil(t, resp.Promotion)
		assert.Nil(t, resp.Directive)
	})

	t.Run("no active promotions skips store lookups", func(t *testing.T) {
		repo := new(MockPromotionRepository)
		impressions := new(MockImpressionStore)
		sessions := new(MockSessionStore)
		evaluator := NewEvaluator(repo, impressions, sessions)

		repo.On("FindActive", ctx).Return([]promotion.Promotion{}, nil)

		resp, err := evaluator.Evaluate(ctx, evaluateReq())

		assert.NoError(t, err)
		assert.Nil(t, resp.Promotion)
		impressions.AssertNotCalled(t, "LastShown", mock.Anything, mock.Anything)
		sessions.AssertNotCalled(t, "Shown", mock.Anything, mock.Anything)
	})

	t.Run("frequency throttle reads impression history", func(t *testing.T) {
		repo := new(MockPromotionRepository)
		impressions := new(MockImpressionStore)
		sessions := new(MockSessionStore)
		evaluator := NewEvaluator(repo, impressions, sessions)

		daily := createTestPromotion(t, "Daily Deal", 5)
		assert.NoError(t, daily.SetFrequency(promotion.FrequencyDaily))

		repo.On("FindActive", ctx).Return([]promotion.Promotion{*daily}, nil)
		impressions.On("LastShown", ctx, "client-abc").Return(map[uuid.UUID]time.Time{
			daily.ID: time.Now().Add(-2 * time.Hour),
		}, nil)
		sessions.On("Shown", ctx, "session-xyz").Return(map[uuid.UUID]struct{}{}, nil)

		resp, err := evaluator.Evaluate(ctx, evaluateReq())

		assert.NoError(t, err)
		assert.Nil(t, resp.Promotion)
	})
}

func TestEvaluator_RecordDisplay(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps impression and session", func(t *testing.T) {
		repo := new(MockPromotionRepository)
		impressions := new(MockImpressionStore)
		sessions := new(MockSessionStore)
		evaluator := NewEvaluator(repo, impressions, sessions)

		p := createTestPromotion(t, "Earth Week", 5)
		repo.On("FindByID", ctx, p.ID).Return(p, nil)
		impressions.On("Record", ctx, "client-abc", p.ID, mock.AnythingOfType("time.Time")).Return(nil)
		sessions.On("MarkShown", ctx, "session-xyz", p.ID).Return(nil)

		err := evaluator.RecordDisplay(ctx, RecordDisplayRequest{
			PromotionID: p.ID,
			ClientToken: "client-abc",
			SessionID:   "session-xyz",
		})

		assert.NoError(t, err)
		impressions.AssertExpectations(t)
		sessions.AssertExpectations(t)
	})

	t.Run("unknown promotion is rejected", func(t *testing.T) {
		repo := new(MockPromotionRepository)
		impressions := new(MockImpressionStore)
		sessions := new(MockSessionStore)
		evaluator := NewEvaluator(repo, impressions, sessions)

		missing := uuid.New()
		repo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

		err := evaluator.RecordDisplay(ctx, RecordDisplayRequest{
			PromotionID: missing,
			ClientToken: "client-abc",
			SessionID:   "session-xyz",
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		impressions.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
