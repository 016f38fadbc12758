package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/verdantia/storefront/internal/domain/promotion"
)

// sessionEntry holds one session's shown set with expiration
type sessionEntry struct {
	shown     map[uuid.UUID]struct{}
	expiresAt time.Time
}

// InMemorySessionStore implements SessionStore using an in-memory map
// This is suitable for single-instance deployments and testing
type InMemorySessionStore struct {
	mu        sync.RWMutex
	sessions  map[string]*sessionEntry
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemorySessionStore creates a new in-memory session store
// It starts a background goroutine to clean up expired sessions. The ttl
// is the session lifetime, refreshed on every write.
func NewInMemorySessionStore(ttl time.Duration) *InMemorySessionStore {
	store := &InMemorySessionStore{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	// Start cleanup goroutine
	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// Shown returns the set of promotion ids displayed this session
// The returned map is a copy; callers may mutate it freely.
func (s *InMemorySessionStore) Shown(ctx context.Context, sessionID string) (map[uuid.UUID]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.sessions[sessionID]
	if !exists || time.Now().After(e.expiresAt) {
		return map[uuid.UUID]struct{}{}, nil
	}

	shown := make(map[uuid.UUID]struct{}, len(e.shown))
	for id := range e.shown {
		shown[id] = struct{}{}
	}
	return shown, nil
}

// MarkShown adds a promotion to the session's shown set
// The session lifetime is refreshed on every write.
func (s *InMemorySessionStore) MarkShown(ctx context.Context, sessionID string, promotionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.sessions[sessionID]
	if !exists || time.Now().After(e.expiresAt) {
		e = &sessionEntry{shown: make(map[uuid.UUID]struct{})}
		s.sessions[sessionID] = e
	}

	e.shown[promotionID] = struct{}{}
	e.expiresAt = time.Now().Add(s.ttl)

	return nil
}

// Reset drops the session's shown set
func (s *InMemorySessionStore) Reset(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// Close stops the cleanup goroutine and releases resources
// Safe to call multiple times
func (s *InMemorySessionStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired sessions
func (s *InMemorySessionStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup removes expired sessions from the store
func (s *InMemorySessionStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for sessionID, e := range s.sessions {
		if now.After(e.expiresAt) {
			delete(s.sessions, sessionID)
		}
	}
}

// Size returns the number of tracked sessions (for testing/monitoring)
func (s *InMemorySessionStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Ensure InMemorySessionStore implements SessionStore
var _ promotion.SessionStore = (*InMemorySessionStore)(nil)
