// Package newboat backs the new boat page: it parses the typed fields and
// stores the boat through the data service.
package newboat

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"boatyard/internal/dataservice"
	"boatyard/internal/domain"
	"boatyard/internal/eventbus"
	"boatyard/internal/loop"
	"boatyard/internal/ui/services/toast"
)

// Input is what the user typed on the new boat page
type Input struct {
	Name        string
	TypeID      string
	Length      string
	Price       string
	Description string
	Contact     string
}

// Parse checks the input and builds the boat to create
func (in Input) Parse() (domain.Boat, error) {
	b := domain.Boat{
		Name:        strings.TrimSpace(in.Name),
		BoatTypeID:  strings.TrimSpace(in.TypeID),
		Description: strings.TrimSpace(in.Description),
		Contact:     strings.TrimSpace(in.Contact),
	}
	if b.Name == "" {
		return b, fmt.Errorf("name is required")
	}
	length, err := strconv.ParseFloat(strings.TrimSpace(in.Length), 64)
	if err != nil || !finite(length) || length <= 0 {
		return b, fmt.Errorf("length must be a positive number")
	}
	b.Length = length

	if p := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(in.Price), "$")); p != "" {
		price, err := strconv.ParseFloat(strings.ReplaceAll(p, ",", ""), 64)
		if err != nil || !finite(price) || price < 0 {
			return b, fmt.Errorf("price must be a non-negative number")
		}
		b.Price = price
	}
	return b, nil
}

func finite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// Service creates boats
type Service struct {
	bus    eventbus.EventBus
	runner loop.Runner
	data   dataservice.Service

	saving bool
	err    error
}

// NewService creates the new boat service
func NewService(bus eventbus.EventBus, runner loop.Runner, data dataservice.Service) *Service {
	return &Service{bus: bus, runner: runner, data: data}
}

// Saving reports whether a create call is outstanding
func (s *Service) Saving() bool {
	return s.saving
}

// Err returns the last parse or create error
func (s *Service) Err() error {
	return s.err
}

// Submit parses in and stores the boat. done runs on the loop after a
// successful create; failures are kept in Err and shown as toasts.
func (s *Service) Submit(in Input, done func(domain.Boat)) {
	if s.saving {
		return
	}
	boat, err := in.Parse()
	if err != nil {
		s.err = err
		return
	}
	s.err = nil
	s.saving = true

	s.runner.Go("CreateBoat", func(ctx context.Context) loop.Continuation {
		created, err := s.data.CreateBoat(ctx, boat)
		return func() {
			s.saving = false
			if err != nil {
				log.Printf("NewBoat: create failed: %v", err)
				s.err = err
				toast.Show(s.bus, toast.Error(dataservice.MessageOf(err)))
				return
			}
			s.bus.Publish(domain.BoatCreatedEvent{Boat: created})
			toast.Show(s.bus, domain.Toast{
				Title:   toast.SuccessTitle,
				Message: fmt.Sprintf("%s was added", created.Name),
				Variant: domain.ToastSuccess,
			})
			if done != nil {
				done(created)
			}
		}
	})
}
