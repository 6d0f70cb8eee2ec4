package scheduler

import (
	"sync"
	"sync/atomic"
)

// Control is the shared run-state passed explicitly to everything that
// needs to cooperate on pausing, stopping, or publishing. It replaces
// scattered globals with one small object the daemon owns.
type Control struct {
	paused  atomic.Bool
	stopped atomic.Bool

	// publishMu serializes uploads; the pipeline takes it with TryLock
	// so a busy publisher backs an item off instead of queueing behind
	// the lock.
	publishMu sync.Mutex
}

// NewControl returns a running, unpaused control.
func NewControl() *Control {
	return &Control{}
}

// Pause suspends item processing after the current item completes.
func (c *Control) Pause() { c.paused.Store(true) }

// Resume lifts a pause.
func (c *Control) Resume() { c.paused.Store(false) }

// Paused reports whether processing is suspended.
func (c *Control) Paused() bool { return c.paused.Load() }

// Stop requests a graceful shutdown; it is sticky.
func (c *Control) Stop() { c.stopped.Store(true) }

// Stopped reports whether shutdown was requested.
func (c *Control) Stopped() bool { return c.stopped.Load() }

// TryLock attempts to take the publish lock without blocking.
func (c *Control) TryLock() bool { return c.publishMu.TryLock() }

// Unlock releases the publish lock.
func (c *Control) Unlock() { c.publishMu.Unlock() }
