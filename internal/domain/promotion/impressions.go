package promotion

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ImpressionStore persists when each promotion was last shown to a client.
// Entries survive sessions; the frequency throttle reads from here.
type ImpressionStore interface {
	// LastShown returns the last display time per promotion for a client
	LastShown(ctx context.Context, clientToken string) (map[uuid.UUID]time.Time, error)

	// Record stores a display of a promotion to a client at the given time
	Record(ctx context.Context, clientToken string, promotionID uuid.UUID, shownAt time.Time) error

	// Clear drops all impression history for a client
	Clear(ctx context.Context, clientToken string) error
}

// SessionStore tracks which promotions a client has already seen within the
// current browsing session. Entries expire with the session, never sooner.
type SessionStore interface {
	// Shown returns the set of promotion ids displayed this session
	Shown(ctx context.Context, sessionID string) (map[uuid.UUID]struct{}, error)

	// MarkShown adds a promotion to the session's shown set
	MarkShown(ctx context.Context, sessionID string, promotionID uuid.UUID) error

	// Reset drops the session's shown set
	Reset(ctx context.Context, sessionID string) error
}
