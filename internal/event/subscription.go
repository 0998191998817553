package event

import (
	"context"
	"sync/atomic"
)

// Handler processes a delivered event.
type Handler func(ctx context.Context, evt Event) error

// Subscription is a registered handler for a topic pattern.
type Subscription struct {
	id      string
	pattern Topic
	handler Handler
	config  subscriptionConfig
	seq     uint64
	active  atomic.Bool
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string { return s.id }

// Topic returns the subscribed pattern.
func (s *Subscription) Topic() Topic { return s.pattern }

// Priority returns the handler priority.
func (s *Subscription) Priority() Priority { return s.config.priority }

// IsActive reports whether the subscription still receives events.
func (s *Subscription) IsActive() bool { return s.active.Load() }

// Cancel stops delivery to this subscription. The bus drops it lazily.
func (s *Subscription) Cancel() { s.active.Store(false) }

func (s *Subscription) wants(evt Event) bool {
	if !s.active.Load() || !evt.Topic.Matches(s.pattern) {
		return false
	}
	return s.config.filter == nil || s.config.filter(evt)
}
