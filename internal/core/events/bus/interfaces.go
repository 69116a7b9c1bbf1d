package bus

import "time"

// Event is a single occurrence published on the bus.
type Event interface {
	Type() string
	Timestamp() time.Time
	Data() any
}

// EventHandler consumes a delivered event. A handler error does not stop
// delivery to other subscribers; the first error is reported to the caller.
type EventHandler func(Event) error

// EventBus is a synchronous publish/subscribe dispatcher. Delivery happens
// on the publisher's goroutine, so handlers observe simulation state as of
// the publish point within the tick.
type EventBus interface {
	Publish(event Event) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	SubscriberCount(eventType string) int
}

// Subscription is a handle to an active event registration.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	Cancel() error
}
