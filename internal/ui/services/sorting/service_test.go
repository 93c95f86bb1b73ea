package sorting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"boatyard/internal/domain"
)

func fleet() []domain.Boat {
	return []domain.Boat{
		{ID: "b1", Name: "wave", Length: 32, Price: 48000},
		{ID: "b2", Name: "Blue", Length: 27, Price: 31500},
		{ID: "b3", Name: "Thunder", Length: 24, Price: 62000},
	}
}

func ids(boats []domain.Boat) []string {
	out := make([]string, len(boats))
	for i, b := range boats {
		out[i] = b.ID
	}
	return out
}

func TestSortedDoesNotMutateInput(t *testing.T) {
	s := NewService()
	s.SetMode(SortPrice)
	in := fleet()

	out := s.Sorted(in)
	assert.Equal(t, []string{"b2", "b1", "b3"}, ids(out))
	assert.Equal(t, []string{"b1", "b2", "b3"}, ids(in))
}

func TestModesAndDirection(t *testing.T) {
	s := NewService()
	assert.Equal(t, []string{"b1", "b2", "b3"}, ids(s.Sorted(fleet())))
	assert.Empty(t, s.Label())

	s.NextMode()
	assert.Equal(t, SortName, s.Mode())
	assert.Equal(t, []string{"b2", "b3", "b1"}, ids(s.Sorted(fleet())))

	s.NextMode()
	s.ToggleDirection()
	assert.Equal(t, SortLength, s.Mode())
	assert.Equal(t, []string{"b1", "b2", "b3"}, ids(s.Sorted(fleet())))
	assert.Equal(t, "length ↓", s.Label())

	s.NextMode()
	s.NextMode()
	assert.Equal(t, SortNone, s.Mode())
}
