package cursor

// reservedRows is taken by the header, form bar, status line and help
const reservedRows = 8

// Service moves a cursor over a list of rows and keeps it inside the viewport
type Service struct {
	state   *State
	countFn func() int // number of rows, queried before every move
	limit   int
}

// NewService creates a cursor service over countFn rows
func NewService(countFn func() int) *Service {
	return &Service{
		state: &State{
			ViewportHeight: 20, // Default, updated on resize
		},
		countFn: countFn,
	}
}

// Cursor returns the current row index
func (s *Service) Cursor() int {
	return s.state.Cursor
}

// ViewportOffset returns the first visible row
func (s *Service) ViewportOffset() int {
	return s.state.ViewportOffset
}

// ViewportHeight returns the number of visible rows
func (s *Service) ViewportHeight() int {
	return s.state.ViewportHeight
}

// SetViewportHeight updates the viewport from the terminal height
func (s *Service) SetViewportHeight(height int) {
	effectiveHeight := height - reservedRows
	if effectiveHeight < 1 {
		effectiveHeight = 1
	}
	if s.limit > 0 && effectiveHeight > s.limit {
		effectiveHeight = s.limit
	}
	s.state.ViewportHeight = effectiveHeight
	s.ensureVisible()
}

// SetRowLimit caps the number of visible rows. Zero follows the terminal height.
// It applies from the next SetViewportHeight.
func (s *Service) SetRowLimit(rows int) {
	if rows < 0 {
		rows = 0
	}
	s.limit = rows
}

// Navigate moves the cursor and reports whether it changed
func (s *Service) Navigate(direction Direction) bool {
	s.refresh()
	old := s.state.Cursor

	switch direction {
	case DirectionUp:
		s.state.Cursor = s.clampIndex(s.state.Cursor - 1)
	case DirectionDown:
		s.state.Cursor = s.clampIndex(s.state.Cursor + 1)
	case DirectionPageUp:
		pageSize := s.state.ViewportHeight - 1
		s.state.Cursor = s.clampIndex(s.state.Cursor - pageSize)
		s.state.ViewportOffset -= pageSize
		if s.state.ViewportOffset < 0 {
			s.state.ViewportOffset = 0
		}
	case DirectionPageDown:
		s.state.Cursor = s.clampIndex(s.state.Cursor + s.state.ViewportHeight - 1)
	case DirectionHome:
		s.state.Cursor = 0
		s.state.ViewportOffset = 0
	case DirectionEnd:
		s.state.Cursor = s.clampIndex(s.state.Count - 1)
	}
	s.ensureVisible()
	return old != s.state.Cursor
}

// MoveToIndex moves the cursor to index, clamped to the rows
func (s *Service) MoveToIndex(index int) {
	s.refresh()
	s.state.Cursor = s.clampIndex(index)
	s.ensureVisible()
}

// Clamp pulls the cursor back inside the rows after they changed
func (s *Service) Clamp() {
	s.MoveToIndex(s.state.Cursor)
}

func (s *Service) refresh() {
	if s.countFn != nil {
		s.state.Count = s.countFn()
	}
}

func (s *Service) clampIndex(index int) int {
	if index >= s.state.Count {
		index = s.state.Count - 1
	}
	if index < 0 {
		return 0
	}
	return index
}

func (s *Service) ensureVisible() {
	if s.state.Cursor < s.state.ViewportOffset {
		s.state.ViewportOffset = s.state.Cursor
	} else if s.state.Cursor >= s.state.ViewportOffset+s.state.ViewportHeight {
		s.state.ViewportOffset = s.state.Cursor - s.state.ViewportHeight + 1
	}
	// Don't leave empty space below the last row
	if maxOffset := s.state.Count - s.state.ViewportHeight; s.state.ViewportOffset > maxOffset {
		s.state.ViewportOffset = maxOffset
	}
	if s.state.ViewportOffset < 0 {
		s.state.ViewportOffset = 0
	}
}
