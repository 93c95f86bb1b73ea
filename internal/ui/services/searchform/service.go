// Package searchform captures the boat type filter and asks for searches over the bus.
package searchform

import (
	"context"
	"log"

	"boatyard/internal/dataservice"
	"boatyard/internal/domain"
	"boatyard/internal/eventbus"
	"boatyard/internal/loop"
	"boatyard/internal/navigation"
	"boatyard/internal/ui/services/results"
)

// AllTypesLabel is the picker entry that searches every boat
const AllTypesLabel = "All Types"

// Option is one entry of the boat type picker
type Option struct {
	Label  string
	Filter domain.Filter
}

// Service is the search form component
type Service struct {
	bus    eventbus.EventBus
	runner loop.Runner
	data   dataservice.Service
	nav    navigation.Navigator

	options []Option
	choice  int
	loading bool
	typeErr error
}

// NewService creates a search form offering only "All Types" until LoadTypes lands
func NewService(bus eventbus.EventBus, runner loop.Runner, data dataservice.Service, nav navigation.Navigator) *Service {
	return &Service{
		bus:     bus,
		runner:  runner,
		data:    data,
		nav:     nav,
		options: []Option{{Label: AllTypesLabel, Filter: domain.FilterAll}},
	}
}

// HandleLoading mirrors the busy state of the results component
func (s *Service) HandleLoading(e eventbus.DomainEvent) {
	switch ev := e.(type) {
	case domain.LoadingEvent:
		if ev.Source == results.Source {
			s.loading = true
		}
	case domain.DoneLoadingEvent:
		if ev.Source == results.Source {
			s.loading = false
		}
	}
}

// IsLoading reports whether the results are busy
func (s *Service) IsLoading() bool {
	return s.loading
}

// LoadTypes fetches the boat types offered by the picker
func (s *Service) LoadTypes() {
	s.runner.Go("FetchBoatTypes", func(ctx context.Context) loop.Continuation {
		types, err := s.data.FetchBoatTypes(ctx)
		return func() { s.applyTypes(types, err) }
	})
}

func (s *Service) applyTypes(types []domain.BoatType, err error) {
	if err != nil {
		log.Printf("SearchForm: failed to load boat types: %v", err)
		s.typeErr = err
		return
	}
	s.typeErr = nil

	current := s.Filter()
	s.options = s.options[:1]
	s.choice = 0
	for _, t := range types {
		s.options = append(s.options, Option{Label: t.Name, Filter: domain.Filter(t.ID)})
		if domain.Filter(t.ID) == current {
			s.choice = len(s.options) - 1
		}
	}
}

// TypesErr returns the error of the last boat type fetch
func (s *Service) TypesErr() error {
	return s.typeErr
}

// Options returns the picker entries
func (s *Service) Options() []Option {
	return s.options
}

// Choice returns the selected picker entry
func (s *Service) Choice() Option {
	return s.options[s.choice]
}

// Filter returns the filter of the selected entry
func (s *Service) Filter() domain.Filter {
	return s.options[s.choice].Filter
}

// Next selects the following boat type, wrapping around
func (s *Service) Next() {
	s.choice = (s.choice + 1) % len(s.options)
}

// Prev selects the previous boat type, wrapping around
func (s *Service) Prev() {
	s.choice = (s.choice - 1 + len(s.options)) % len(s.options)
}

// Submit asks for a search with the selected filter
func (s *Service) Submit() {
	s.bus.Publish(domain.SearchRequestedEvent{Filter: s.Filter()})
}

// CreateNew opens the new boat page
func (s *Service) CreateNew() {
	s.nav.Navigate(navigation.NewRecordPage(domain.ObjectBoat))
}
