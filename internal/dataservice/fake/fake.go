// Package fake provides a scripted dataservice.Service that records its calls.
package fake

import (
	"context"
	"fmt"
	"sync"

	"boatyard/internal/domain"
)

// Operation names used in recorded calls
const (
	OpFetchBoats     = "FetchBoats"
	OpFetchReviews   = "FetchReviews"
	OpUpdateBoats    = "UpdateBoats"
	OpFetchBoatTypes = "FetchBoatTypes"
	OpCreateBoat     = "CreateBoat"
)

// Call is one recorded invocation
type Call struct {
	Op  string
	Arg any
}

// Service answers from its fields. Set an *Err field to make that operation fail.
type Service struct {
	mu sync.Mutex

	Boats   map[domain.Filter][]domain.Boat
	Reviews map[string][]domain.Review
	Types   []domain.BoatType

	BoatsErr   error
	ReviewsErr error
	UpdateErr  error
	TypesErr   error
	CreateErr  error

	calls  []Call
	nextID int
}

// New creates an empty fake
func New() *Service {
	return &Service{
		Boats:   make(map[domain.Filter][]domain.Boat),
		Reviews: make(map[string][]domain.Review),
	}
}

func (s *Service) record(op string, arg any) {
	s.calls = append(s.calls, Call{Op: op, Arg: arg})
}

func (s *Service) FetchBoats(ctx context.Context, filter domain.Filter) ([]domain.Boat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(OpFetchBoats, filter)
	if s.BoatsErr != nil {
		return nil, s.BoatsErr
	}
	return append([]domain.Boat(nil), s.Boats[filter]...), nil
}

func (s *Service) FetchReviews(ctx context.Context, boatID string) ([]domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(OpFetchReviews, boatID)
	if s.ReviewsErr != nil {
		return nil, s.ReviewsErr
	}
	return append([]domain.Review(nil), s.Reviews[boatID]...), nil
}

func (s *Service) UpdateBoats(ctx context.Context, batch domain.UpdateBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(OpUpdateBoats, batch)
	return s.UpdateErr
}

func (s *Service) FetchBoatTypes(ctx context.Context) ([]domain.BoatType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(OpFetchBoatTypes, nil)
	if s.TypesErr != nil {
		return nil, s.TypesErr
	}
	return append([]domain.BoatType(nil), s.Types...), nil
}

func (s *Service) CreateBoat(ctx context.Context, boat domain.Boat) (domain.Boat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(OpCreateBoat, boat)
	if s.CreateErr != nil {
		return domain.Boat{}, s.CreateErr
	}
	s.nextID++
	boat.ID = fmt.Sprintf("new-%d", s.nextID)
	s.Boats[domain.FilterAll] = append(s.Boats[domain.FilterAll], boat)
	return boat, nil
}

// Calls returns every recorded call in order
func (s *Service) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsTo returns the recorded calls of one operation
func (s *Service) CallsTo(op string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// ResetCalls forgets recorded calls
func (s *Service) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}
