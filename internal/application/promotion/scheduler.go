package promotion

import (
	"sync"
	"time"

	"github.com/verdantia/storefront/internal/domain/promotion"
)

// Cycle runs the display schedule for one selected promotion on one page
// view. Immediate triggers fire the display callback right away, delay
// triggers fire it after the configured interval, and exit-intent triggers
// arm a one-shot released by ExitIntent. Teardown cancels whatever is
// pending, so navigating away before a delayed display never shows it and
// never fires a late callback. Each cycle displays at most once.
type Cycle struct {
	mu        sync.Mutex
	trigger   promotion.Trigger
	delay     time.Duration
	display   func()
	timer     *time.Timer
	fired     bool
	done      bool
	afterFunc func(time.Duration, func()) *time.Timer
}

// NewCycle creates a display cycle for a selection directive
func NewCycle(trigger promotion.Trigger, delaySeconds int, display func()) *Cycle {
	return &Cycle{
		trigger:   trigger,
		delay:     time.Duration(delaySeconds) * time.Second,
		display:   display,
		afterFunc: time.AfterFunc,
	}
}

// Start begins the cycle according to its trigger
func (c *Cycle) Start() {
	c.mu.Lock()
	if c.done || c.fired {
		c.mu.Unlock()
		return
	}

	switch c.trigger {
	case promotion.TriggerImmediate:
		c.fired = true
		c.mu.Unlock()
		c.display()
		return
	case promotion.TriggerDelay:
		c.timer = c.afterFunc(c.delay, c.fire)
	case promotion.TriggerExitIntent:
		// armed; ExitIntent releases it
	}
	c.mu.Unlock()
}

// ExitIntent releases an armed exit-intent cycle. Other triggers ignore it.
func (c *Cycle) ExitIntent() {
	c.mu.Lock()
	if c.trigger != promotion.TriggerExitIntent {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.fire()
}

// Fired reports whether the display callback has run
func (c *Cycle) Fired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fired
}

// Teardown cancels any pending display. Called on page navigation.
func (c *Cycle) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.done = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// fire runs the display callback once, unless the cycle was torn down
func (c *Cycle) fire() {
	c.mu.Lock()
	if c.done || c.fired {
		c.mu.Unlock()
		return
	}
	c.fired = true
	c.timer = nil
	display := c.display
	c.mu.Unlock()

	if display != nil {
		display()
	}
}
