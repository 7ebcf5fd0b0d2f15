// Package domain defines events for the event-driven architecture.
// Events let renderers and loggers follow list changes without the list
// engine knowing about them.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// List events
	EventListChanged  EventType = "list.changed"
	EventListSorted   EventType = "list.sorted"
	EventListCleared  EventType = "list.cleared"
	EventFilterAdded  EventType = "filter.added"
	EventFilterRemove EventType = "filter.removed"

	// Selection events
	EventSelectionChanged EventType = "selection.changed"

	// Player status events
	EventPlayerChanged EventType = "player.changed"

	// Library scanning events
	EventScanStarted   EventType = "scan.started"
	EventScanCompleted EventType = "scan.completed"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events should embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// ListChangedEvent is published after a mutation changed a list's contents or order.
type ListChangedEvent struct {
	baseEvent
	ListID string
	Op     string // add, remove, swap, move, truncate, set
	Size   int    // size of the filtered view after the change
}

// Type returns the event type.
func (e ListChangedEvent) Type() EventType {
	return EventListChanged
}

// NewListChangedEvent creates a new ListChangedEvent.
func NewListChangedEvent(listID, op string, size int) ListChangedEvent {
	return ListChangedEvent{
		baseEvent: newBaseEvent(),
		ListID:    listID,
		Op:        op,
		Size:      size,
	}
}

// ListSortedEvent is published after a successful sort.
type ListSortedEvent struct {
	baseEvent
	ListID string
	Keys   []Field
}

// Type returns the event type.
func (e ListSortedEvent) Type() EventType {
	return EventListSorted
}

// NewListSortedEvent creates a new ListSortedEvent.
func NewListSortedEvent(listID string, keys []Field) ListSortedEvent {
	return ListSortedEvent{
		baseEvent: newBaseEvent(),
		ListID:    listID,
		Keys:      keys,
	}
}

// ListClearedEvent is published when every record of a list was destroyed.
type ListClearedEvent struct {
	baseEvent
	ListID string
}

// Type returns the event type.
func (e ListClearedEvent) Type() EventType {
	return EventListCleared
}

// NewListClearedEvent creates a new ListClearedEvent.
func NewListClearedEvent(listID string) ListClearedEvent {
	return ListClearedEvent{
		baseEvent: newBaseEvent(),
		ListID:    listID,
	}
}

// FilterAddedEvent is published when a filter is added to a list.
type FilterAddedEvent struct {
	baseEvent
	ListID  string
	Pattern string
	Fields  FieldMask
	Visible int // size of the filtered view after rescanning
}

// Type returns the event type.
func (e FilterAddedEvent) Type() EventType {
	return EventFilterAdded
}

// NewFilterAddedEvent creates a new FilterAddedEvent.
func NewFilterAddedEvent(listID, pattern string, fields FieldMask, visible int) FilterAddedEvent {
	return FilterAddedEvent{
		baseEvent: newBaseEvent(),
		ListID:    listID,
		Pattern:   pattern,
		Fields:    fields,
		Visible:   visible,
	}
}

// FilterRemovedEvent is published when one or all filters were removed.
type FilterRemovedEvent struct {
	baseEvent
	ListID  string
	Pattern string // empty when every filter was cleared
	Visible int
}

// Type returns the event type.
func (e FilterRemovedEvent) Type() EventType {
	return EventFilterRemove
}

// NewFilterRemovedEvent creates a new FilterRemovedEvent.
func NewFilterRemovedEvent(listID, pattern string, visible int) FilterRemovedEvent {
	return FilterRemovedEvent{
		baseEvent: newBaseEvent(),
		ListID:    listID,
		Pattern:   pattern,
		Visible:   visible,
	}
}

// SelectionChangedEvent is published when a bulk selection operation finished.
// Single toggles do not publish; callers read the aggregate instead.
type SelectionChangedEvent struct {
	baseEvent
	ListID  string
	Count   int
	Seconds int
}

// Type returns the event type.
func (e SelectionChangedEvent) Type() EventType {
	return EventSelectionChanged
}

// NewSelectionChangedEvent creates a new SelectionChangedEvent.
func NewSelectionChangedEvent(listID string, count, seconds int) SelectionChangedEvent {
	return SelectionChangedEvent{
		baseEvent: newBaseEvent(),
		ListID:    listID,
		Count:     count,
		Seconds:   seconds,
	}
}

// PlayerChangedEvent is published when the playing track or repeat mode changed.
type PlayerChangedEvent struct {
	baseEvent
	Track  *Track // nil when nothing is playing
	Repeat bool
}

// Type returns the event type.
func (e PlayerChangedEvent) Type() EventType {
	return EventPlayerChanged
}

// NewPlayerChangedEvent creates a new PlayerChangedEvent.
func NewPlayerChangedEvent(track *Track, repeat bool) PlayerChangedEvent {
	return PlayerChangedEvent{
		baseEvent: newBaseEvent(),
		Track:     track,
		Repeat:    repeat,
	}
}

// ScanStartedEvent is published when a library scan starts.
type ScanStartedEvent struct {
	baseEvent
	Path string
}

// Type returns the event type.
func (e ScanStartedEvent) Type() EventType {
	return EventScanStarted
}

// NewScanStartedEvent creates a new ScanStartedEvent.
func NewScanStartedEvent(path string) ScanStartedEvent {
	return ScanStartedEvent{
		baseEvent: newBaseEvent(),
		Path:      path,
	}
}

// ScanCompletedEvent is published when a library scan completes.
type ScanCompletedEvent struct {
	baseEvent
	Path        string
	FilesSeen   int
	TracksFound int
}

// Type returns the event type.
func (e ScanCompletedEvent) Type() EventType {
	return EventScanCompleted
}

// NewScanCompletedEvent creates a new ScanCompletedEvent.
func NewScanCompletedEvent(path string, filesSeen, tracksFound int) ScanCompletedEvent {
	return ScanCompletedEvent{
		baseEvent:   newBaseEvent(),
		Path:        path,
		FilesSeen:   filesSeen,
		TracksFound: tracksFound,
	}
}
