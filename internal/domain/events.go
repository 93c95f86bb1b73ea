package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventBoatSelected    EventType = "BoatSelected"
	EventSearchRequested EventType = "SearchRequested"
	EventLoading         EventType = "Loading"
	EventDoneLoading     EventType = "DoneLoading"
	EventToast           EventType = "Toast"
	EventNavigate        EventType = "Navigate"
	EventBoatsLoaded     EventType = "BoatsLoaded"
	EventReviewsLoaded   EventType = "ReviewsLoaded"
	EventBoatCreated     EventType = "BoatCreated"
	EventAppReady        EventType = "AppReady"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// BoatSelectedEvent is the payload of the boat message channel
type BoatSelectedEvent struct {
	RecordID string
}

func (e BoatSelectedEvent) Type() EventType { return EventBoatSelected }

// SearchRequestedEvent asks the results component to search with a new filter
type SearchRequestedEvent struct {
	Filter Filter
}

func (e SearchRequestedEvent) Type() EventType { return EventSearchRequested }

// LoadingEvent is announced before a component starts remote work
type LoadingEvent struct {
	Source string
}

func (e LoadingEvent) Type() EventType { return EventLoading }

// DoneLoadingEvent is announced once the remote work of a component has landed
type DoneLoadingEvent struct {
	Source string
}

func (e DoneLoadingEvent) Type() EventType { return EventDoneLoading }

// ToastEvent carries a notification to whoever displays them
type ToastEvent struct {
	Toast Toast
}

func (e ToastEvent) Type() EventType { return EventToast }

// NavigateEvent asks the shell to show the referenced page
type NavigateEvent struct {
	Ref PageReference
}

func (e NavigateEvent) Type() EventType { return EventNavigate }

// BoatsLoadedEvent is emitted when the results component accepted a query response
type BoatsLoadedEvent struct {
	Filter Filter
	Count  int
	Err    error
}

func (e BoatsLoadedEvent) Type() EventType { return EventBoatsLoaded }

// ReviewsLoadedEvent is emitted when the reviews component accepted a fetch response
type ReviewsLoadedEvent struct {
	BoatID string
	Count  int
	Err    error
}

func (e ReviewsLoadedEvent) Type() EventType { return EventReviewsLoaded }

// BoatCreatedEvent is emitted after the new-boat page stored a record
type BoatCreatedEvent struct {
	Boat Boat
}

func (e BoatCreatedEvent) Type() EventType { return EventBoatCreated }

// AppReadyEvent is emitted when the app is fully initialized and ready
type AppReadyEvent struct {
	Storage string
}

func (e AppReadyEvent) Type() EventType { return EventAppReady }
