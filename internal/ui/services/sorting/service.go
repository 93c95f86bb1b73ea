package sorting

import (
	"sort"
	"strings"

	"boatyard/internal/domain"
)

// Service orders result rows without touching the record set it is given
type Service struct {
	state *State
}

// NewService creates a sorting service keeping the data service order
func NewService() *Service {
	return &Service{state: &State{Mode: SortNone}}
}

// Mode returns the current sort mode
func (s *Service) Mode() Mode {
	return s.state.Mode
}

// Descending reports whether the order is reversed
func (s *Service) Descending() bool {
	return s.state.Descending
}

// SetMode sets the sort mode
func (s *Service) SetMode(mode Mode) {
	s.state.Mode = mode
}

// NextMode cycles to the next sort mode
func (s *Service) NextMode() {
	currentIndex := 0
	for i, mode := range Modes {
		if mode == s.state.Mode {
			currentIndex = i
			break
		}
	}
	s.state.Mode = Modes[(currentIndex+1)%len(Modes)]
}

// ToggleDirection flips between ascending and descending
func (s *Service) ToggleDirection() {
	s.state.Descending = !s.state.Descending
}

// Label describes the current order for the status line
func (s *Service) Label() string {
	if s.state.Mode == SortNone {
		return ""
	}
	if s.state.Descending {
		return string(s.state.Mode) + " ↓"
	}
	return string(s.state.Mode) + " ↑"
}

// Sorted returns boats in the current order as a new slice
func (s *Service) Sorted(boats []domain.Boat) []domain.Boat {
	out := append([]domain.Boat(nil), boats...)
	if s.state.Mode == SortNone {
		return out
	}

	var less func(a, b domain.Boat) bool
	switch s.state.Mode {
	case SortName:
		less = func(a, b domain.Boat) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortLength:
		less = func(a, b domain.Boat) bool { return a.Length < b.Length }
	case SortPrice:
		less = func(a, b domain.Boat) bool { return a.Price < b.Price }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if s.state.Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}
