package eventbus

import (
	"boatyard/internal/domain"
	"log"
	"runtime/debug"
	"sync"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventBoatSelected    = domain.EventBoatSelected
	EventSearchRequested = domain.EventSearchRequested
	EventLoading         = domain.EventLoading
	EventDoneLoading     = domain.EventDoneLoading
	EventToast           = domain.EventToast
	EventNavigate        = domain.EventNavigate
	EventBoatsLoaded     = domain.EventBoatsLoaded
	EventReviewsLoaded   = domain.EventReviewsLoaded
	EventBoatCreated     = domain.EventBoatCreated
	EventAppReady        = domain.EventAppReady
)

// BoatMessageChannel is the fixed channel boat selections are broadcast on.
// Its payload is always a BoatSelectedEvent.
const BoatMessageChannel = domain.EventBoatSelected

// Re-export domain event types
type BoatSelectedEvent = domain.BoatSelectedEvent
type SearchRequestedEvent = domain.SearchRequestedEvent
type LoadingEvent = domain.LoadingEvent
type DoneLoadingEvent = domain.DoneLoadingEvent
type ToastEvent = domain.ToastEvent
type NavigateEvent = domain.NavigateEvent
type BoatsLoadedEvent = domain.BoatsLoadedEvent
type ReviewsLoadedEvent = domain.ReviewsLoadedEvent
type BoatCreatedEvent = domain.BoatCreatedEvent
type AppReadyEvent = domain.AppReadyEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus.
// Publish calls every handler subscribed at the time of the call, in
// subscription order, before returning. Nothing is queued or replayed.
type bus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[EventType][]subscription
}

// New creates a new event bus
func New() EventBus {
	return &bus{
		handlers: make(map[EventType][]subscription),
	}
}

// Publish publishes an event to all current subscribers
func (b *bus) Publish(event DomainEvent) {
	// Skip logging for high-frequency events
	switch event.Type() {
	case EventLoading, EventDoneLoading:
	default:
		log.Printf("EventBus: Publishing event %s", event.Type())
	}

	// Make a copy to avoid holding the lock during handler execution;
	// handlers are free to publish or subscribe themselves.
	b.mu.RLock()
	subs := b.handlers[event.Type()]
	handlersCopy := make([]EventHandler, len(subs))
	for i, s := range subs {
		handlersCopy[i] = s.handler
	}
	b.mu.RUnlock()

	for _, handler := range handlersCopy {
		b.call(handler, event)
	}
}

// call runs one handler, isolating the publisher from its panics
func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	h(event)
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			subs := b.handlers[eventType]
			for i, s := range subs {
				if s.id == id {
					// Copy so in-flight publishes keep their snapshot intact
					next := make([]subscription, 0, len(subs)-1)
					next = append(next, subs[:i]...)
					next = append(next, subs[i+1:]...)
					b.handlers[eventType] = next
					break
				}
			}
		})
	}
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (NullBus) Publish(event DomainEvent) {}
func (NullBus) Subscribe(eventType EventType, handler EventHandler) func() {
	return func() {}
}

// Recorder is an EventBus that remembers every published event in order.
// It forwards to an inner bus when one is set.
type Recorder struct {
	mu     sync.Mutex
	inner  EventBus
	events []DomainEvent
}

// NewRecorder wraps inner, which may be nil
func NewRecorder(inner EventBus) *Recorder {
	return &Recorder{inner: inner}
}

func (r *Recorder) Publish(event DomainEvent) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
	if r.inner != nil {
		r.inner.Publish(event)
	}
}

func (r *Recorder) Subscribe(eventType EventType, handler EventHandler) func() {
	if r.inner == nil {
		return func() {}
	}
	return r.inner.Subscribe(eventType, handler)
}

// Events returns a copy of everything published so far
func (r *Recorder) Events() []DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

// OfType returns the published events of one type
func (r *Recorder) OfType(t EventType) []DomainEvent {
	var out []DomainEvent
	for _, e := range r.Events() {
		if e.Type() == t {
			out = append(out, e)
		}
	}
	return out
}

// Types returns the types of everything published so far, in order
func (r *Recorder) Types() []EventType {
	events := r.Events()
	out := make([]EventType, len(events))
	for i, e := range events {
		out[i] = e.Type()
	}
	return out
}

// Reset forgets recorded events
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
