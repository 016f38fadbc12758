package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/verdantia/storefront/internal/domain/promotion"
)

// impressionEntry holds one client's impression history with expiration
type impressionEntry struct {
	shown     map[uuid.UUID]time.Time
	expiresAt time.Time
}

// InMemoryImpressionStore implements ImpressionStore using an in-memory map
// This is suitable for single-instance deployments and testing
// WARNING: In-memory stores do not share state across process instances,
// which lets a client exceed frequency caps in distributed deployments
type InMemoryImpressionStore struct {
	mu        sync.RWMutex
	clients   map[string]*impressionEntry
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryImpressionStore creates a new in-memory impression store
// It starts a background goroutine to clean up expired entries. The ttl
// bounds how long a client's history is retained after its last display.
func NewInMemoryImpressionStore(ttl time.Duration) *InMemoryImpressionStore {
	store := &InMemoryImpressionStore{
		clients:  make(map[string]*impressionEntry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	// Start cleanup goroutine
	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// LastShown returns the last display time per promotion for a client
// The returned map is a copy; callers may mutate it freely.
func (s *InMemoryImpressionStore) LastShown(ctx context.Context, clientToken string) (map[uuid.UUID]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.clients[clientToken]
	if !exists || time.Now().After(e.expiresAt) {
		return map[uuid.UUID]time.Time{}, nil
	}

	shown := make(map[uuid.UUID]time.Time, len(e.shown))
	for id, at := range e.shown {
		shown[id] = at
	}
	return shown, nil
}

// Record stores a display of a promotion to a client at the given time
// The client's retention window is refreshed on every write.
func (s *InMemoryImpressionStore) Record(ctx context.Context, clientToken string, promotionID uuid.UUID, shownAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.clients[clientToken]
	if !exists || time.Now().After(e.expiresAt) {
		e = &impressionEntry{shown: make(map[uuid.UUID]time.Time)}
		s.clients[clientToken] = e
	}

	e.shown[promotionID] = shownAt
	e.expiresAt = time.Now().Add(s.ttl)

	return nil
}

// Clear drops all impression history for a client
func (s *InMemoryImpressionStore) Clear(ctx context.Context, clientToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.clients, clientToken)
	return nil
}

// Close stops the cleanup goroutine and releases resources
// Safe to call multiple times
func (s *InMemoryImpressionStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired clients
func (s *InMemoryImpressionStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
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

// cleanup removes expired clients from the store
func (s *InMemoryImpressionStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for clientToken, e := range s.clients {
		if now.After(e.expiresAt) {
			delete(s.clients, clientToken)
		}
	}
}

// Size returns the number of tracked clients (for testing/monitoring)
func (s *InMemoryImpressionStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Ensure InMemoryImpressionStore implements ImpressionStore
var _ promotion.ImpressionStore = (*InMemoryImpressionStore)(nil)
