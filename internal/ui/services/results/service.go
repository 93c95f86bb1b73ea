// Package results owns the boat search results: it queries the data service
// for the current filter, feeds the editable grid, saves draft edits and
// broadcasts row selections on the boat message channel.
package results

import (
	"context"
	"log"

	"boatyard/internal/dataservice"
	"boatyard/internal/domain"
	"boatyard/internal/eventbus"
	"boatyard/internal/loop"
	"boatyard/internal/ui/services/grid"
	"boatyard/internal/ui/services/toast"
)

// Service is the results component. All methods and continuations run on the owner's loop.
type Service struct {
	bus    eventbus.EventBus
	runner loop.Runner
	data   dataservice.Service
	grid   *grid.Grid

	phase   Phase
	records []domain.Boat
	err     error
	filter  domain.Filter
	seq     uint64 // last issued query
	landed  uint64 // last query whose response was applied
	waiting []waiter

	saves     int   // update calls in flight
	afterSave Phase // phase to return to when a save fails
	selected  string
}

// waiter is a Refresh callback held until the records are at least as new as seq
type waiter struct {
	seq uint64
	fn  func()
}

// NewService creates an idle results component
func NewService(bus eventbus.EventBus, runner loop.Runner, data dataservice.Service, g *grid.Grid) *Service {
	if g == nil {
		g = grid.New(nil)
	}
	return &Service{
		bus:    bus,
		runner: runner,
		data:   data,
		grid:   g,
		phase:  PhaseIdle,
	}
}

// Phase returns the current phase
func (s *Service) Phase() Phase {
	return s.phase
}

// IsLoading reports whether a query or save is outstanding
func (s *Service) IsLoading() bool {
	return s.phase.Busy()
}

// Records returns the records of the last accepted query
func (s *Service) Records() []domain.Boat {
	return s.records
}

// Err returns the error of the last accepted query
func (s *Service) Err() error {
	return s.err
}

// Filter returns the current filter
func (s *Service) Filter() domain.Filter {
	return s.filter
}

// Selected returns the id of the most recently selected row
func (s *Service) Selected() string {
	return s.selected
}

// Grid returns the editable grid fed by this component
func (s *Service) Grid() *grid.Grid {
	return s.grid
}

// SetFilter assigns the filter and queries it. The same filter queries again.
func (s *Service) SetFilter(filter domain.Filter) {
	s.filter = filter
	s.query(nil)
}

// Refresh queries the current filter again. then runs once the records reflect
// this query or a newer one.
func (s *Service) Refresh(then func()) {
	s.query(then)
}

// query issues a fetch for the current filter under a new sequence token
func (s *Service) query(then func()) {
	s.seq++
	seq, filter := s.seq, s.filter

	if s.phase != PhaseSaving {
		s.setPhase(PhaseLoading)
	}

	if then != nil {
		s.waiting = append(s.waiting, waiter{seq: seq, fn: then})
	}

	s.runner.Go("FetchBoats", func(ctx context.Context) loop.Continuation {
		boats, err := s.data.FetchBoats(ctx, filter)
		return func() {
			s.applyQuery(seq, filter, boats, err)
			s.release()
		}
	})
}

// release runs the waiters whose query has been overtaken by the landed one
func (s *Service) release() {
	var ready []func()
	keep := s.waiting[:0]
	for _, w := range s.waiting {
		if w.seq <= s.landed {
			ready = append(ready, w.fn)
		} else {
			keep = append(keep, w)
		}
	}
	s.waiting = keep
	for _, fn := range ready {
		fn()
	}
}

// queryPending reports whether the newest query has not landed yet
func (s *Service) queryPending() bool {
	return s.landed != s.seq
}

func (s *Service) applyQuery(seq uint64, filter domain.Filter, boats []domain.Boat, err error) {
	if seq != s.seq {
		log.Printf("Results: discarding stale response %d for filter %q (current %d)", seq, filter, s.seq)
		return
	}
	s.landed = seq

	next := PhaseLoaded
	if err != nil {
		log.Printf("Results: query for filter %q failed: %v", filter, err)
		s.records = nil
		s.err = err
		next = PhaseError
	} else {
		s.records = boats
		s.err = nil
	}
	s.grid.SetRecords(s.records)

	if s.phase == PhaseSaving {
		// the save in flight decides when loading is over
		s.afterSave = next
	} else {
		s.setPhase(next)
	}

	s.bus.Publish(domain.BoatsLoadedEvent{Filter: filter, Count: len(s.records), Err: err})
}

// HandleSave submits batch to the data service. Success refreshes the records
// and then shows a success toast; failure shows the server message. Drafts
// are cleared once the update call returns either way.
func (s *Service) HandleSave(batch domain.UpdateBatch) {
	if s.saves == 0 {
		s.afterSave = s.phase
	}
	s.saves++
	s.setPhase(PhaseSaving)

	s.runner.Go("UpdateBoats", func(ctx context.Context) loop.Continuation {
		err := s.data.UpdateBoats(ctx, batch)
		return func() { s.applySave(err) }
	})
}

// SaveDrafts saves the grid's pending edits
func (s *Service) SaveDrafts() {
	s.HandleSave(s.grid.DraftBatch())
}

func (s *Service) applySave(err error) {
	s.saves--
	s.grid.ClearDrafts()

	if err != nil {
		log.Printf("Results: save failed: %v", err)
		toast.Show(s.bus, toast.Error(dataservice.MessageOf(err)))
		if s.saves > 0 {
			return
		}
		if s.queryPending() {
			// a refresh started by an earlier save is still out
			s.setPhase(PhaseLoading)
		} else {
			s.setPhase(s.afterSave)
		}
		return
	}

	if s.saves == 0 {
		// Saving hands over to Loading without a DoneLoading in between
		s.phase = PhaseLoading
	}
	s.Refresh(func() {
		toast.Show(s.bus, toast.Success())
	})
}

// UpdateSelectedTile records id as the selection and broadcasts it on the
// boat message channel. Nothing is awaited.
func (s *Service) UpdateSelectedTile(id string) {
	s.selected = id
	s.bus.Publish(domain.BoatSelectedEvent{RecordID: id})
}

// setPhase moves to p, announcing the edges between idle and busy phases
func (s *Service) setPhase(p Phase) {
	was := s.phase.Busy()
	s.phase = p
	switch {
	case !was && p.Busy():
		s.bus.Publish(domain.LoadingEvent{Source: Source})
	case was && !p.Busy():
		s.bus.Publish(domain.DoneLoadingEvent{Source: Source})
	}
}
