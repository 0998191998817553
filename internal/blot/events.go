package blot

import (
	"context"

	"github.com/dshills/blotsync/internal/event"
	"github.com/dshills/blotsync/internal/surface"
)

// Topics published by a Scroll.
const (
	TopicUpdate   event.Topic = "scroll.update"
	TopicOptimize event.Topic = "scroll.optimize"
	TopicDetach   event.Topic = "scroll.detach"
)

const eventSource = "blot.scroll"

// UpdateEvent is the payload of TopicUpdate.
type UpdateEvent struct {
	// Records is the batch the update started with.
	Records []surface.Record

	// Dispatched counts records handed to a blot.
	Dispatched int

	// Dropped counts records whose target had no blot.
	Dropped int
}

// OptimizeEvent is the payload of TopicOptimize.
type OptimizeEvent struct {
	// Records is the whole batch, including records the pass itself caused.
	Records []surface.Record

	// Iterations is the number of mark-and-sweep passes that ran.
	Iterations int
}

// DetachEvent is the payload of TopicDetach.
type DetachEvent struct {
	Node surface.NodeID
}

func (s *Scroll) publish(ctx context.Context, topic event.Topic, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event.NewEvent(topic, payload, eventSource)); err != nil {
		s.logger.Warn("publish %s: %v", topic, err)
	}
}
