package blot

import (
	"context"

	"github.com/dshills/blotsync/internal/event"
	"github.com/dshills/blotsync/internal/logging"
	"github.com/dshills/blotsync/internal/surface"
)

// DefaultMaxOptimizeIterations bounds one normalization pass.
const DefaultMaxOptimizeIterations = 100

// Publisher receives scroll lifecycle events. *event.Bus implements it.
type Publisher interface {
	Publish(ctx context.Context, evt event.Event) error
}

// Option configures a Scroll.
type Option func(*Scroll)

// WithMaxOptimizeIterations sets the normalization bound. Values below 1
// are ignored.
func WithMaxOptimizeIterations(n int) Option {
	return func(s *Scroll) {
		if n > 0 {
			s.maxIterations = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Scroll) {
		if l != nil {
			s.logger = l.WithComponent("scroll")
		}
	}
}

// WithPublisher publishes scroll.update, scroll.optimize and scroll.detach
// events to p.
func WithPublisher(p Publisher) Option {
	return func(s *Scroll) {
		s.publisher = p
	}
}

// WithObserveOptions overrides the options the scroll subscribes with.
func WithObserveOptions(opts surface.ObserveOptions) Option {
	return func(s *Scroll) {
		s.observe = opts
	}
}
