package event

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Stats reports bus activity counters.
type Stats struct {
	Published     uint64
	Delivered     uint64
	HandlerErrors uint64
	HandlerPanics uint64
	Subscriptions int
}

// Bus delivers events synchronously to matching subscriptions.
type Bus struct {
	mu     sync.RWMutex
	subs   []*Subscription
	seq    uint64
	config busConfig

	published     atomic.Uint64
	delivered     atomic.Uint64
	handlerErrors atomic.Uint64
	handlerPanics atomic.Uint64
}

// NewBus creates a bus with the given options.
func NewBus(opts ...BusOption) *Bus {
	config := defaultBusConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &Bus{config: config}
}

// Subscribe registers handler for every topic matching pattern.
func (b *Bus) Subscribe(pattern Topic, handler Handler, opts ...SubscriptionOption) (*Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, ErrInvalidTopic
	}

	config := subscriptionConfig{priority: PriorityNormal}
	for _, opt := range opts {
		opt(&config)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	sub := &Subscription{
		id:      uuid.NewString(),
		pattern: pattern,
		handler: handler,
		config:  config,
		seq:     b.seq,
	}
	sub.active.Store(true)
	b.subs = append(b.subs, sub)
	return sub, nil
}

// Unsubscribe cancels and removes sub.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s == sub {
			sub.Cancel()
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Publish delivers evt to every matching subscription before returning.
// Handler failures are collected and returned together; they never stop
// delivery to the remaining handlers.
func (b *Bus) Publish(ctx context.Context, evt Event) error {
	if !evt.Topic.IsValid() || evt.Topic.IsWildcard() {
		return ErrInvalidEvent
	}

	subs := b.match(evt)
	b.published.Add(1)

	var errs []error
	for _, sub := range subs {
		if err := b.dispatch(ctx, evt, sub); err != nil {
			errs = append(errs, err)
			continue
		}
		b.delivered.Add(1)
		if sub.config.once {
			_ = b.Unsubscribe(sub)
		}
	}
	return errors.Join(errs...)
}

// match returns the active subscriptions for evt in execution order.
func (b *Bus) match(evt Event) []*Subscription {
	b.mu.RLock()
	var subs []*Subscription
	for _, s := range b.subs {
		if s.wants(evt) {
			subs = append(subs, s)
		}
	}
	b.mu.RUnlock()

	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].config.priority != subs[j].config.priority {
			return subs[i].config.priority < subs[j].config.priority
		}
		return subs[i].seq < subs[j].seq
	})
	return subs
}

func (b *Bus) dispatch(ctx context.Context, evt Event, sub *Subscription) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			if b.config.panicHandler != nil {
				b.config.panicHandler(evt, sub, r)
			}
			err = &PanicError{SubscriptionID: sub.id, Topic: evt.Topic, Value: r}
		}
	}()

	if herr := sub.handler(ctx, evt); herr != nil {
		b.handlerErrors.Add(1)
		return &HandlerError{SubscriptionID: sub.id, Topic: evt.Topic, Err: herr}
	}
	return nil
}

// Stats returns a snapshot of the bus counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	n := len(b.subs)
	b.mu.RUnlock()

	return Stats{
		Published:     b.published.Load(),
		Delivered:     b.delivered.Load(),
		HandlerErrors: b.handlerErrors.Load(),
		HandlerPanics: b.handlerPanics.Load(),
		Subscriptions: n,
	}
}
