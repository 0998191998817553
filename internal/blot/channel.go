package blot

import "github.com/dshills/blotsync/internal/surface"

// Channel is the port through which a Scroll learns about surface changes.
type Channel interface {
	// Subscribe starts observing root with opts. fn receives batches the
	// channel delivers on its own schedule.
	Subscribe(root *surface.Node, opts surface.ObserveOptions, fn surface.Callback) (Subscription, error)
}

// Subscription is an active observation started by Channel.Subscribe.
type Subscription interface {
	// TakeRecords returns and clears the records not yet delivered.
	TakeRecords() []surface.Record

	// Unsubscribe stops observation and discards pending records.
	Unsubscribe()
}

// DefaultObserveOptions returns the options a Scroll subscribes with unless
// configured otherwise.
func DefaultObserveOptions() surface.ObserveOptions {
	return surface.ObserveOptions{
		Attributes:            true,
		CharacterData:         true,
		CharacterDataOldValue: true,
		ChildList:             true,
		Subtree:               true,
	}
}

// ObserverChannel adapts a surface document's observers to Channel.
func ObserverChannel(doc *surface.Document) Channel {
	return observerChannel{doc: doc}
}

type observerChannel struct {
	doc *surface.Document
}

func (c observerChannel) Subscribe(root *surface.Node, opts surface.ObserveOptions, fn surface.Callback) (Subscription, error) {
	obs := c.doc.NewObserver(fn)
	if err := obs.Observe(root, opts); err != nil {
		return nil, err
	}
	return observerSubscription{obs: obs}, nil
}

type observerSubscription struct {
	obs *surface.Observer
}

func (s observerSubscription) TakeRecords() []surface.Record { return s.obs.TakeRecords() }

func (s observerSubscription) Unsubscribe() { s.obs.Disconnect() }
