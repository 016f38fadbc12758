package cart

import (
	"sync"
	"time"

	"github.com/verdantia/storefront/internal/domain/shared"
)

// DrawerState is one of the four navigation-drawer animation states
type DrawerState string

const (
	DrawerClosed  DrawerState = "closed"
	DrawerOpening DrawerState = "opening"
	DrawerOpen    DrawerState = "open"
	DrawerClosing DrawerState = "closing"
)

// Drawer is a state machine for the navigation drawer's open/close animation.
//
// Opening and closing pass through a transitional state for the configured
// animation interval before settling, and each settled state invokes the
// registered callback. Open/Close during the opposite transition are
// rejected rather than queued; the caller retries after the transition
// settles. Stop cancels a pending transition so a torn-down view never
// receives a late callback.
type Drawer struct {
	mu        sync.Mutex
	state     DrawerState
	interval  time.Duration
	timer     *time.Timer
	onSettled func(DrawerState)
	afterFunc func(time.Duration, func()) *time.Timer
}

// DrawerOption configures a Drawer
type DrawerOption func(*Drawer)

// WithAnimationInterval sets the transition duration
func WithAnimationInterval(d time.Duration) DrawerOption {
	return func(dr *Drawer) {
		dr.interval = d
	}
}

// WithSettledCallback registers a callback invoked when a transition settles
// into open or closed
func WithSettledCallback(fn func(DrawerState)) DrawerOption {
	return func(dr *Drawer) {
		dr.onSettled = fn
	}
}

// NewDrawer creates a closed drawer
func NewDrawer(opts ...DrawerOption) *Drawer {
	d := &Drawer{
		state:     DrawerClosed,
		interval:  300 * time.Millisecond,
		afterFunc: time.AfterFunc,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// State returns the current state
func (d *Drawer) State() DrawerState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Open starts the closed -> opening -> open transition
func (d *Drawer) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.state {
	case DrawerOpen, DrawerOpening:
		return nil
	case DrawerClosing:
		return shared.NewDomainError("DRAWER_BUSY", "Drawer is closing")
	}

	d.state = DrawerOpening
	d.timer = d.afterFunc(d.interval, func() {
		d.settle(DrawerOpening, DrawerOpen)
	})
	return nil
}

// Close starts the open -> closing -> closed transition
func (d *Drawer) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.state {
	case DrawerClosed, DrawerClosing:
		return nil
	case DrawerOpening:
		return shared.NewDomainError("DRAWER_BUSY", "Drawer is opening")
	}

	d.state = DrawerClosing
	d.timer = d.afterFunc(d.interval, func() {
		d.settle(DrawerClosing, DrawerClosed)
	})
	return nil
}

// Toggle opens a closed drawer and closes an open one
func (d *Drawer) Toggle() error {
	switch d.State() {
	case DrawerClosed:
		return d.Open()
	case DrawerOpen:
		return d.Close()
	default:
		return shared.NewDomainError("DRAWER_BUSY", "Drawer is mid-transition")
	}
}

// Stop cancels any pending transition, snapping to the settled state the
// transition was leaving. Safe to call on teardown regardless of state.
func (d *Drawer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	switch d.state {
	case DrawerOpening:
		d.state = DrawerClosed
	case DrawerClosing:
		d.state = DrawerOpen
	}
}

// settle completes a transition if it is still in flight
func (d *Drawer) settle(from, to DrawerState) {
	d.mu.Lock()
	if d.state != from {
		d.mu.Unlock()
		return
	}
	d.state = to
	d.timer = nil
	cb := d.onSettled
	d.mu.Unlock()

	if cb != nil {
		cb(to)
	}
}
