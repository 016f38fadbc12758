package promotion

import (
	"encoding/json"
	"time"

	"github.com/verdantia/storefront/internal/domain/shared"
)

// Kind distinguishes the two promotional surfaces
type Kind string

const (
	KindPopup  Kind = "popup"
	KindBanner Kind = "banner"
)

// IsValid checks if the kind is a valid Kind
func (k Kind) IsValid() bool {
	return k == KindPopup || k == KindBanner
}

// Trigger controls when a selected promotion is displayed
type Trigger string

const (
	TriggerImmediate  Trigger = "immediate"
	TriggerDelay      Trigger = "delay"
	TriggerExitIntent Trigger = "exit_intent"
)

// IsValid checks if the trigger is a valid Trigger
func (t Trigger) IsValid() bool {
	switch t {
	case TriggerImmediate, TriggerDelay, TriggerExitIntent:
		return true
	}
	return false
}

// Frequency is the minimum-interval rule between repeat displays to one client
type Frequency string

const (
	FrequencyOnce   Frequency = "once"
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyAlways Frequency = "always"
)

// IsValid checks if the frequency is a valid Frequency
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyOnce, FrequencyDaily, FrequencyWeekly, FrequencyAlways:
		return true
	}
	return false
}

// TargetAllPages is the wildcard marker matching every page path
const TargetAllPages = "*"

// Promotion is a popup or banner evaluated for display on storefront pages
type Promotion struct {
	shared.BaseAggregateRoot
	Kind         Kind       `gorm:"type:varchar(20);not null;index"`
	Title        string     `gorm:"type:varchar(200);not null"`
	Body         string     `gorm:"type:text"`
	ImageURL     string     `gorm:"type:varchar(500)"`
	LinkURL      string     `gorm:"type:varchar(500)"`
	IsActive     bool       `gorm:"not null;default:false"`
	StartsAt     *time.Time `gorm:"index"`
	EndsAt       *time.Time `gorm:"index"`
	TargetPages  string     `gorm:"type:jsonb;not null;default:'[]'"` // JSON array of paths, "*" matches all
	Trigger      Trigger    `gorm:"type:varchar(20);not null;default:'immediate'"`
	DelaySeconds int        `gorm:"not null;default:0"`
	Frequency    Frequency  `gorm:"type:varchar(20);not null;default:'always'"`
	Priority     int        `gorm:"not null;default:0"` // higher wins
}

// TableName returns the table name for GORM
func (Promotion) TableName() string {
	return "promotions"
}

// NewPromotion creates a new, initially inactive promotion
func NewPromotion(kind Kind, title string) (*Promotion, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Kind must be popup or banner")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}

	return &Promotion{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		Title:             title,
		TargetPages:       "[]",
		Trigger:           TriggerImmediate,
		Frequency:         FrequencyAlways,
	}, nil
}

// Update updates the display content
func (p *Promotion) Update(title, body, imageURL, linkURL string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}

	p.Title = title
	p.Body = body
	p.ImageURL = imageURL
	p.LinkURL = linkURL
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetWindow sets the optional activation window.
// Nil bounds leave that side open.
func (p *Promotion) SetWindow(startsAt, endsAt *time.Time) error {
	if startsAt != nil && endsAt != nil && endsAt.Before(*startsAt) {
		return shared.NewDomainError("INVALID_WINDOW", "End time cannot be before start time")
	}

	p.StartsAt = startsAt
	p.EndsAt = endsAt
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetTargetPages sets the page paths the promotion may appear on.
// An empty list or the "*" marker matches every page.
func (p *Promotion) SetTargetPages(pages []string) error {
	if pages == nil {
		pages = []string{}
	}
	encoded, err := json.Marshal(pages)
	if err != nil {
		return shared.NewDomainError("INVALID_TARGET_PAGES", "Target pages could not be encoded")
	}

	p.TargetPages = string(encoded)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// PageTargets decodes the target-page list.
// A malformed stored value decodes to the empty list, which matches all pages.
func (p *Promotion) PageTargets() []string {
	var pages []string
	if err := json.Unmarshal([]byte(p.TargetPages), &pages); err != nil {
		return []string{}
	}
	return pages
}

// SetTrigger sets the display trigger and its delay
func (p *Promotion) SetTrigger(trigger Trigger, delaySeconds int) error {
	if !trigger.IsValid() {
		return shared.NewDomainError("INVALID_TRIGGER", "Unknown trigger kind")
	}
	if trigger == TriggerDelay && delaySeconds <= 0 {
		return shared.NewDomainError("INVALID_DELAY", "Delay trigger requires a positive delay")
	}
	if trigger != TriggerDelay {
		delaySeconds = 0
	}

	p.Trigger = trigger
	p.DelaySeconds = delaySeconds
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetFrequency sets the display-frequency policy
func (p *Promotion) SetFrequency(frequency Frequency) error {
	if !frequency.IsValid() {
		return shared.NewDomainError("INVALID_FREQUENCY", "Unknown frequency policy")
	}

	p.Frequency = frequency
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPriority sets the selection priority; higher wins
func (p *Promotion) SetPriority(priority int) {
	p.Priority = priority
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Activate enables the promotion for evaluation
func (p *Promotion) Activate() error {
	if p.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Promotion is already active")
	}

	p.IsActive = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Deactivate disables the promotion
func (p *Promotion) Deactivate() error {
	if !p.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Promotion is already inactive")
	}

	p.IsActive = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// WithinWindow reports whether now falls inside the activation window
func (p *Promotion) WithinWindow(now time.Time) bool {
	if p.StartsAt != nil && now.Before(*p.StartsAt) {
		return false
	}
	if p.EndsAt != nil && now.After(*p.EndsAt) {
		return false
	}
	return true
}

// TargetsPage reports whether the promotion may appear on the given path.
// An empty target list and the wildcard marker both match every page.
func (p *Promotion) TargetsPage(path string) bool {
	pages := p.PageTargets()
	if len(pages) == 0 {
		return true
	}
	for _, page := range pages {
		if page == TargetAllPages || page == path {
			return true
		}
	}
	return false
}

// AllowedAfter reports whether the frequency policy permits a display at now,
// given the last time this promotion was shown to the client. A nil lastShown
// means the client has never seen it.
func (p *Promotion) AllowedAfter(lastShown *time.Time, now time.Time) bool {
	if lastShown == nil {
		return true
	}
	switch p.Frequency {
	case FrequencyAlways:
		return true
	case FrequencyOnce:
		return false
	case FrequencyDaily:
		return now.Sub(*lastShown) >= 24*time.Hour
	case FrequencyWeekly:
		return now.Sub(*lastShown) >= 7*24*time.Hour
	}
	return false
}
