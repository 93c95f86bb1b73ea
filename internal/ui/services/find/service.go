package find

import (
	"log"
	"strings"
)

// Service finds boats by name and moves the grid cursor between matches
type Service struct {
	state      *State
	namesFn    func() []string // Names of the rows in display order
	navigateFn func(int)       // Moves the cursor to a row
}

// NewService creates a find service over the rows namesFn returns
func NewService(namesFn func() []string, navigateFn func(int)) *Service {
	return &Service{
		state:      &State{},
		namesFn:    namesFn,
		navigateFn: navigateFn,
	}
}

// Find starts a case-insensitive search and jumps to the first match
func (s *Service) Find(query string) {
	s.state.Query = query
	s.state.CurrentMatch = 0
	if query == "" {
		s.state.Matches = nil
		return
	}
	s.rematch()
	log.Printf("Find completed for '%s': found %d matches", query, len(s.state.Matches))
	s.navigateToCurrentMatch()
}

// Refresh recomputes the matches after the rows changed, without moving the cursor
func (s *Service) Refresh() {
	if s.state.Query == "" {
		return
	}
	s.rematch()
	if s.state.CurrentMatch >= len(s.state.Matches) {
		s.state.CurrentMatch = 0
	}
}

// Clear drops the query and its matches
func (s *Service) Clear() {
	s.state.Query = ""
	s.state.Matches = nil
	s.state.CurrentMatch = 0
}

// Next moves to the next match, wrapping around
func (s *Service) Next() {
	if len(s.state.Matches) == 0 {
		return
	}
	s.state.CurrentMatch = (s.state.CurrentMatch + 1) % len(s.state.Matches)
	s.navigateToCurrentMatch()
}

// Previous moves to the previous match, wrapping around
func (s *Service) Previous() {
	if len(s.state.Matches) == 0 {
		return
	}
	s.state.CurrentMatch--
	if s.state.CurrentMatch < 0 {
		s.state.CurrentMatch = len(s.state.Matches) - 1
	}
	s.navigateToCurrentMatch()
}

// Query returns the active query
func (s *Service) Query() string {
	return s.state.Query
}

// MatchCount returns the number of matches
func (s *Service) MatchCount() int {
	return len(s.state.Matches)
}

// CurrentIndex returns the row of the current match, or -1
func (s *Service) CurrentIndex() int {
	if len(s.state.Matches) == 0 {
		return -1
	}
	return s.state.Matches[s.state.CurrentMatch]
}

// IsMatch reports whether a row matches the query
func (s *Service) IsMatch(index int) bool {
	for _, match := range s.state.Matches {
		if match == index {
			return true
		}
	}
	return false
}

func (s *Service) rematch() {
	s.state.Matches = nil
	if s.namesFn == nil {
		return
	}
	needle := strings.ToLower(s.state.Query)
	for i, name := range s.namesFn() {
		if strings.Contains(strings.ToLower(name), needle) {
			s.state.Matches = append(s.state.Matches, i)
		}
	}
}

func (s *Service) navigateToCurrentMatch() {
	if s.navigateFn == nil || len(s.state.Matches) == 0 {
		return
	}
	s.navigateFn(s.state.Matches[s.state.CurrentMatch])
}
