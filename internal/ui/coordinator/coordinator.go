// Package coordinator builds the boat components and wires every interaction
// between them through event bus subscriptions.
package coordinator

import (
	"time"

	"boatyard/internal/dataservice"
	"boatyard/internal/domain"
	"boatyard/internal/eventbus"
	"boatyard/internal/loop"
	"boatyard/internal/navigation"
	"boatyard/internal/ui/services/find"
	"boatyard/internal/ui/services/grid"
	"boatyard/internal/ui/services/newboat"
	"boatyard/internal/ui/services/results"
	"boatyard/internal/ui/services/reviews"
	"boatyard/internal/ui/services/searchform"
	"boatyard/internal/ui/services/sorting"
	"boatyard/internal/ui/services/toast"
)

// Options configures the components
type Options struct {
	EmptyIDPolicy reviews.EmptyIDPolicy
	ToastTTL      time.Duration
}

// Coordinator manages all UI services and their interactions
type Coordinator struct {
	// Services
	Form       *searchform.Service
	Results    *results.Service
	Reviews    *reviews.Service
	NewBoat    *newboat.Service
	Toasts     *toast.Service
	Find       *find.Service
	Sorting    *sorting.Service
	Navigation *navigation.Service

	// Dependencies
	bus    eventbus.EventBus
	unsubs []func()
}

// NewCoordinator creates a new coordinator with all services
func NewCoordinator(bus eventbus.EventBus, runner loop.Runner, data dataservice.Service, opts Options) *Coordinator {
	nav := navigation.NewService(bus)
	sorter := sorting.NewService()
	g := grid.New(sorter)

	c := &Coordinator{
		Form:       searchform.NewService(bus, runner, data, nav),
		Results:    results.NewService(bus, runner, data, g),
		Reviews:    reviews.NewService(bus, runner, data, nav, opts.EmptyIDPolicy),
		NewBoat:    newboat.NewService(bus, runner, data),
		Toasts:     toast.NewService(opts.ToastTTL),
		Sorting:    sorter,
		Navigation: nav,
		bus:        bus,
	}

	// Find needs the row names and moves the grid cursor
	c.Find = find.NewService(
		func() []string {
			rows := g.Rows()
			names := make([]string, len(rows))
			for i, b := range rows {
				names[i] = b.Name
			}
			return names
		},
		func(index int) { g.Cursor().MoveToIndex(index) },
	)

	c.subscribeToEvents()
	return c
}

// subscribeToEvents sets up event handlers
func (c *Coordinator) subscribeToEvents() {
	sub := func(t eventbus.EventType, h eventbus.EventHandler) {
		c.unsubs = append(c.unsubs, c.bus.Subscribe(t, h))
	}

	// The form asks, the results search
	sub(eventbus.EventSearchRequested, func(e eventbus.DomainEvent) {
		c.Results.SetFilter(e.(domain.SearchRequestedEvent).Filter)
	})

	// A selected boat drives the reviews panel
	sub(eventbus.BoatMessageChannel, func(e eventbus.DomainEvent) {
		c.Reviews.SetRecordID(e.(domain.BoatSelectedEvent).RecordID)
	})

	sub(eventbus.EventLoading, c.Form.HandleLoading)
	sub(eventbus.EventDoneLoading, c.Form.HandleLoading)
	sub(eventbus.EventToast, c.Toasts.Handle)

	sub(eventbus.EventBoatsLoaded, func(eventbus.DomainEvent) {
		c.Find.Refresh()
	})

	sub(eventbus.EventBoatCreated, func(eventbus.DomainEvent) {
		c.Results.Refresh(nil)
	})
}

// Start loads the boat types and runs the initial search for every boat
func (c *Coordinator) Start() {
	c.Form.LoadTypes()
	c.Results.SetFilter(domain.FilterAll)
}

// OpenBoat assigns the boat shown on a record page to the reviews component
func (c *Coordinator) OpenBoat(boatID string) {
	c.Reviews.SetRecordID(boatID)
}

// Grid returns the results grid
func (c *Coordinator) Grid() *grid.Grid {
	return c.Results.Grid()
}

// SelectCurrent broadcasts the boat under the grid cursor
func (c *Coordinator) SelectCurrent() {
	if id := c.Grid().SelectedID(); id != "" {
		c.Results.UpdateSelectedTile(id)
	}
}

// CurrentBoat returns the boat under the grid cursor
func (c *Coordinator) CurrentBoat() (domain.Boat, bool) {
	g := c.Grid()
	i := g.Cursor().Cursor()
	rows := g.Rows()
	if i < 0 || i >= len(rows) {
		return domain.Boat{}, false
	}
	return rows[i], true
}

// Boat looks a boat up among the current results
func (c *Coordinator) Boat(id string) (domain.Boat, bool) {
	for _, b := range c.Results.Records() {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Boat{}, false
}

// Resort reorders the grid after the sort mode changed
func (c *Coordinator) Resort() {
	c.Grid().Resort()
	c.Find.Refresh()
}

// SetViewportHeight updates viewport height across services
func (c *Coordinator) SetViewportHeight(height int) {
	c.Grid().Cursor().SetViewportHeight(height)
}

// Close removes every subscription
func (c *Coordinator) Close() {
	for _, unsub := range c.unsubs {
		unsub()
	}
	c.unsubs = nil
}
