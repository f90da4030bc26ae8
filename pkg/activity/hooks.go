package activity

import (
	"context"
	"errors"
	"sync"
)

// Hook receives normalized events.
type Hook interface {
	Notify(ctx context.Context, evt Event) error
}

// HookFunc adapts a function to Hook.
type HookFunc func(ctx context.Context, evt Event) error

// Notify implements Hook.
func (fn HookFunc) Notify(ctx context.Context, evt Event) error {
	return fn(ctx, evt)
}

// Hooks fans an event out to every hook. Invalid events are dropped.
type Hooks []Hook

// Notify normalizes evt and calls each hook, joining their errors.
func (h Hooks) Notify(ctx context.Context, evt Event) error {
	evt = NormalizeEvent(evt)
	if !evt.Valid() {
		return nil
	}
	var errs []error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CaptureHook stores every event it receives.
type CaptureHook struct {
	mu     sync.Mutex
	Events []Event
}

// Notify implements Hook.
func (c *CaptureHook) Notify(_ context.Context, evt Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Events = append(c.Events, evt)
	return nil
}

// Feed keeps the most recent events for display, newest first.
type Feed struct {
	mu       sync.RWMutex
	capacity int
	events   []Event
}

// NewFeed keeps at most capacity events; non-positive values default to 50.
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = 50
	}
	return &Feed{capacity: capacity}
}

// Notify implements Hook.
func (f *Feed) Notify(_ context.Context, evt Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append([]Event{evt}, f.events...)
	if len(f.events) > f.capacity {
		f.events = f.events[:f.capacity]
	}
	return nil
}

// Recent returns up to limit events, newest first. A non-positive limit
// returns everything.
func (f *Feed) Recent(limit int) []Event {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if limit <= 0 || limit > len(f.events) {
		limit = len(f.events)
	}
	return append([]Event{}, f.events[:limit]...)
}
