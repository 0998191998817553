package event

// Priority determines handler execution order. Lower values run first.
type Priority int

const (
	// PriorityCritical is for handlers other handlers depend on.
	PriorityCritical Priority = 0

	// PriorityHigh runs before ordinary handlers.
	PriorityHigh Priority = 100

	// PriorityNormal is the default priority.
	PriorityNormal Priority = 200

	// PriorityLow is for metrics and logging handlers that run last.
	PriorityLow Priority = 300
)

// PanicHandler is called after a handler panic has been recovered.
type PanicHandler func(evt Event, sub *Subscription, recovered any)

// BusOption configures a Bus.
type BusOption func(*busConfig)

type busConfig struct {
	panicHandler PanicHandler
}

func defaultBusConfig() busConfig {
	return busConfig{}
}

// WithPanicHandler sets a hook invoked for every recovered handler panic.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(c *busConfig) {
		c.panicHandler = h
	}
}

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*subscriptionConfig)

type subscriptionConfig struct {
	priority Priority
	once     bool
	filter   func(Event) bool
}

// WithPriority sets the handler priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(c *subscriptionConfig) {
		c.priority = p
	}
}

// WithOnce cancels the subscription after its first successful delivery.
func WithOnce() SubscriptionOption {
	return func(c *subscriptionConfig) {
		c.once = true
	}
}

// WithFilter delivers only events for which fn returns true.
func WithFilter(fn func(Event) bool) SubscriptionOption {
	return func(c *subscriptionConfig) {
		c.filter = fn
	}
}
