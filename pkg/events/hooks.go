// Package events fans out binding lifecycle notifications (bind, refresh,
// unbind) to registered hooks. Hooks observe traversals; they cannot alter
// them, and hook failures never propagate into the engine.
package events

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Event describes a binding occurrence that can be fanned out to hooks.
// Node identity is stringly-typed to avoid coupling consumers to UUID types.
type Event struct {
	Verb       string
	NodeID     string
	Node       string
	KeyPath    string
	Status     string
	Metadata   map[string]any
	OccurredAt time.Time
}

// Hook receives normalized binding events.
type Hook interface {
	Notify(ctx context.Context, event Event) error
}

// HookFunc allows plain functions to satisfy Hook.
type HookFunc func(ctx context.Context, event Event) error

// Notify dispatches to the underlying function.
func (fn HookFunc) Notify(ctx context.Context, event Event) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

// Hooks fans out events to zero or more hooks.
type Hooks []Hook

// Enabled reports whether there are any hooks to notify.
func (h Hooks) Enabled() bool {
	return len(h) > 0
}

// Notify forwards the event to all hooks, returning a joined error if any
// fail. It normalizes the event and short-circuits when the verb is missing.
func (h Hooks) Notify(ctx context.Context, event Event) error {
	if len(h) == 0 {
		return nil
	}

	normalized := NormalizeEvent(event)
	if normalized.Verb == "" {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var errs []error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, normalized); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// NormalizeEvent trims string fields and defaults the timestamp.
func NormalizeEvent(event Event) Event {
	event.Verb = strings.TrimSpace(event.Verb)
	event.NodeID = strings.TrimSpace(event.NodeID)
	event.Node = strings.TrimSpace(event.Node)
	event.KeyPath = strings.TrimSpace(event.KeyPath)
	event.Status = strings.TrimSpace(event.Status)
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	return event
}
