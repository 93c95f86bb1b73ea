// Package reviews shows the reviews of one boat, fetched whenever the boat id is assigned.
package reviews

import (
	"context"
	"log"

	"boatyard/internal/dataservice"
	"boatyard/internal/domain"
	"boatyard/internal/eventbus"
	"boatyard/internal/loop"
	"boatyard/internal/navigation"
)

// Service is the reviews component. All methods and continuations run on the owner's loop.
type Service struct {
	bus    eventbus.EventBus
	runner loop.Runner
	data   dataservice.Service
	nav    navigation.Navigator
	policy EmptyIDPolicy

	boatID  string
	reviews []domain.Review
	err     error
	phase   Phase
	seq     uint64
}

// NewService creates a reviews component with no boat assigned
func NewService(bus eventbus.EventBus, runner loop.Runner, data dataservice.Service, nav navigation.Navigator, policy EmptyIDPolicy) *Service {
	return &Service{
		bus:    bus,
		runner: runner,
		data:   data,
		nav:    nav,
		policy: policy,
	}
}

// RecordID returns the boat the reviews belong to
func (s *Service) RecordID() string {
	return s.boatID
}

// SetRecordID assigns the boat and fetches its reviews, even when the id is unchanged.
// An empty id is handled by the empty id policy.
func (s *Service) SetRecordID(id string) {
	if id == "" {
		if s.policy == ClearOnEmpty {
			s.seq++ // outstanding fetches no longer apply
			s.boatID = ""
			s.reviews = nil
			s.err = nil
			s.phase = PhaseIdle
		}
		return
	}
	s.boatID = id
	s.fetch()
}

// Refresh fetches the reviews of the held boat again
func (s *Service) Refresh() {
	s.fetch()
}

func (s *Service) fetch() {
	if s.boatID == "" {
		return
	}
	s.seq++
	seq, boatID := s.seq, s.boatID
	s.phase = PhaseLoading

	s.runner.Go("FetchReviews", func(ctx context.Context) loop.Continuation {
		reviews, err := s.data.FetchReviews(ctx, boatID)
		return func() { s.apply(seq, boatID, reviews, err) }
	})
}

func (s *Service) apply(seq uint64, boatID string, reviews []domain.Review, err error) {
	if seq != s.seq {
		log.Printf("Reviews: discarding stale response for boat %s", boatID)
		return
	}
	if err != nil {
		log.Printf("Reviews: fetch for boat %s failed: %v", boatID, err)
		s.reviews = nil
		s.err = err
		s.phase = PhaseError
	} else {
		s.reviews = reviews
		s.err = nil
		s.phase = PhaseLoaded
	}
	s.bus.Publish(domain.ReviewsLoadedEvent{BoatID: boatID, Count: len(s.reviews), Err: err})
}

// Reviews returns the reviews of the last accepted fetch
func (s *Service) Reviews() []domain.Review {
	return s.reviews
}

// Err returns the error of the last accepted fetch
func (s *Service) Err() error {
	return s.err
}

// Phase returns the current phase
func (s *Service) Phase() Phase {
	return s.phase
}

// IsLoading reports whether a fetch is outstanding
func (s *Service) IsLoading() bool {
	return s.phase == PhaseLoading
}

// ReviewsToShow reports whether there is at least one review to list
func (s *Service) ReviewsToShow() bool {
	return len(s.reviews) > 0
}

// NavigateToRecord opens the detail page of a review
func (s *Service) NavigateToRecord(reviewID string) {
	s.nav.Navigate(navigation.RecordPage(domain.ObjectBoatReview, reviewID))
}
