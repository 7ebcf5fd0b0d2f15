package ports

import (
	"github.com/tejashwikalptaru/tunelist/internal/domain"
)

// EventBus carries change notifications from lists and player adapters to
// whoever renders or logs them. Publishers never know their subscribers.
//
// Thread-safety: Implementations must be thread-safe; the MPD poller publishes
// from its own goroutine.
//
// Example usage:
//
//	// In the list engine: Publish an event
//	bus.Publish(domain.NewListChangedEvent(id, "add", size))
//
//	// In a renderer: Subscribe to events
//	subID := bus.Subscribe(domain.EventListChanged, func(event domain.Event) {
//	    e := event.(domain.ListChangedEvent)
//	    view.Redraw(e.ListID)
//	})
//
//	// Later: Unsubscribe
//	bus.Unsubscribe(subID)
type EventBus interface {
	// Publish delivers an event to every subscriber of its type, then to
	// wildcard subscribers. It must not block for long periods.
	Publish(event domain.Event)

	// Subscribe registers a handler for one event type.
	// Each call gets its own SubscriptionID, even for the same handler.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a subscription. Unknown ids are a no-op.
	Unsubscribe(id domain.SubscriptionID)

	// SubscribeAll registers a handler that receives every event.
	SubscribeAll(handler domain.EventHandler) domain.SubscriptionID

	// HasSubscribers reports whether publishing eventType would reach anyone.
	// Publishers use it to skip building expensive events.
	HasSubscribers(eventType domain.EventType) bool

	// Close drops all subscriptions. Later publishes are ignored.
	Close() error
}

// EventFilter decides whether an event reaches a filtered subscriber.
type EventFilter func(event domain.Event) bool

// FilteringEventBus extends EventBus with filtered subscriptions.
type FilteringEventBus interface {
	EventBus

	// SubscribeFiltered registers a handler that only sees events passing filter.
	//
	// Example: Only handle changes of one list
	//	bus.SubscribeFiltered(domain.EventListChanged, func(e domain.Event) bool {
	//	    return e.(domain.ListChangedEvent).ListID == queue.ID()
	//	}, redrawQueue)
	SubscribeFiltered(eventType domain.EventType, filter EventFilter, handler domain.EventHandler) domain.SubscriptionID
}
