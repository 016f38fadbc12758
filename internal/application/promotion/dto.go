package promotion

import (
	"time"

	"github.com/google/uuid"
	"github.com/verdantia/storefront/internal/domain/promotion"
)

// CreatePromotionRequest represents a request to create a promotion
type CreatePromotionRequest struct {
	Kind         string     `json:"kind" binding:"required,oneof=popup banner"`
	Title        string     `json:"title" binding:"required,min=1,max=200"`
	Body         string     `json:"body" binding:"max=5000"`
	ImageURL     string     `json:"image_url" binding:"omitempty,url,max=500"`
	LinkURL      string     `json:"link_url" binding:"omitempty,url,max=500"`
	StartsAt     *time.Time `json:"starts_at"`
	EndsAt       *time.Time `json:"ends_at"`
	TargetPages  []string   `json:"target_pages"`
	Trigger      string     `json:"trigger" binding:"omitempty,oneof=immediate delay exit_intent"`
	DelaySeconds int        `json:"delay_seconds" binding:"min=0,max=600"`
	Frequency    string     `json:"frequency" binding:"omitempty,oneof=once daily weekly always"`
	Priority     int        `json:"priority"`
}

// UpdatePromotionRequest represents a request to update a promotion
type UpdatePromotionRequest struct {
	Title        *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Body         *string    `json:"body" binding:"omitempty,max=5000"`
	ImageURL     *string    `json:"image_url" binding:"omitempty,url,max=500"`
	LinkURL      *string    `json:"link_url" binding:"omitempty,url,max=500"`
	StartsAt     *time.Time `json:"starts_at"`
	EndsAt       *time.Time `json:"ends_at"`
	TargetPages  []string   `json:"target_pages"`
	Trigger      *string    `json:"trigger" binding:"omitempty,oneof=immediate delay exit_intent"`
	DelaySeconds *int       `json:"delay_seconds" binding:"omitempty,min=0,max=600"`
	Frequency    *string    `json:"frequency" binding:"omitempty,oneof=once daily weekly always"`
	Priority     *int       `json:"priority"`
}

// PromotionListFilter represents filter options for the admin promotion list
type PromotionListFilter struct {
	Kind     string `form:"kind" binding:"omitempty,oneof=popup banner"`
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
}

// PromotionResponse represents a promotion in API responses
type PromotionResponse struct {
	ID           uuid.UUID  `json:"id"`
	Kind         string     `json:"kind"`
	Title        string     `json:"title"`
	Body         string     `json:"body"`
	ImageURL     string     `json:"image_url"`
	LinkURL      string     `json:"link_url"`
	IsActive     bool       `json:"is_active"`
	StartsAt     *time.Time `json:"starts_at,omitempty"`
	EndsAt       *time.Time `json:"ends_at,omitempty"`
	TargetPages  []string   `json:"target_pages"`
	Trigger      string     `json:"trigger"`
	DelaySeconds int        `json:"delay_seconds"`
	Frequency    string     `json:"frequency"`
	Priority     int        `json:"priority"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Version      int        `json:"version"`
}

// EvaluateRequest carries the page-view context a display decision needs
type EvaluateRequest struct {
	PagePath    string `json:"page_path" binding:"required,max=500"`
	ClientToken string `json:"client_token" binding:"required,max=64"`
	SessionID   string `json:"session_id" binding:"required,max=64"`
}

// DisplayDirective tells the storefront how to present the selection
type DisplayDirective struct {
	Trigger      string `json:"trigger"`
	DelaySeconds int    `json:"delay_seconds"`
}

// EvaluationResponse is the display decision for one page view.
// Promotion is nil when nothing qualified.
type EvaluationResponse struct {
	Promotion *PromotionResponse `json:"promotion"`
	Directive *DisplayDirective  `json:"directive,omitempty"`
}

// RecordDisplayRequest reports that a selected promotion was actually shown
type RecordDisplayRequest struct {
	PromotionID uuid.UUID `json:"promotion_id" binding:"required"`
	ClientToken string    `json:"client_token" binding:"required,max=64"`
	SessionID   string    `json:"session_id" binding:"required,max=64"`
}

// ToPromotionResponse converts a domain Promotion to PromotionResponse
func ToPromotionResponse(p *promotion.Promotion) PromotionResponse {
	return PromotionResponse{
		ID:           p.ID,
		Kind:         string(p.Kind),
		Title:        p.Title,
		Body:         p.Body,
		ImageURL:     p.ImageURL,
		LinkURL:      p.LinkURL,
		IsActive:     p.IsActive,
		StartsAt:     p.StartsAt,
		EndsAt:       p.EndsAt,
		TargetPages:  p.PageTargets(),
		Trigger:      string(p.Trigger),
		DelaySeconds: p.DelaySeconds,
		Frequency:    string(p.Frequency),
		Priority:     p.Priority,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Version:      p.Version,
	}
}
