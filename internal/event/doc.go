// Package event provides the synchronous topic bus blotsync components use to
// announce synchronization activity.
//
// Topics are dot-separated. Subscriptions may use wildcard patterns:
//
//	scroll.*     - matches scroll.update, scroll.optimize (single segment)
//	scroll.**    - matches scroll.update and anything below it
//	**           - matches everything
//
// Delivery is synchronous: Publish runs every matching handler on the
// caller's goroutine, in priority order and then subscription order, before
// it returns. A handler that returns an error or panics does not stop the
// remaining handlers; the failures are joined into Publish's error.
//
// # Usage
//
//	bus := event.NewBus()
//	sub, err := bus.Subscribe("scroll.**", func(ctx context.Context, evt event.Event) error {
//	    log.Printf("%s from %s", evt.Topic, evt.Source)
//	    return nil
//	})
//	...
//	bus.Publish(ctx, event.NewEvent("scroll.update", payload, "scroll"))
//
// The Bus is safe for concurrent use; handlers must manage their own state.
package event
