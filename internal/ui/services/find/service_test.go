package find

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindMovesBetweenMatches(t *testing.T) {
	names := []string{"Wave Dancer", "Blue Heron", "Old Salt", "Heron II"}
	cursor := -1
	s := NewService(func() []string { return names }, func(i int) { cursor = i })

	s.Find("heron")
	assert.Equal(t, 2, s.MatchCount())
	assert.Equal(t, 1, cursor)
	assert.True(t, s.IsMatch(3))
	assert.False(t, s.IsMatch(0))

	s.Next()
	assert.Equal(t, 3, cursor)
	s.Next()
	assert.Equal(t, 1, cursor)
	s.Previous()
	assert.Equal(t, 3, cursor)
	assert.Equal(t, 3, s.CurrentIndex())
}

func TestFindWithoutMatches(t *testing.T) {
	moved := false
	s := NewService(func() []string { return []string{"Old Salt"} }, func(int) { moved = true })

	s.Find("yacht")
	s.Next()
	assert.Zero(t, s.MatchCount())
	assert.Equal(t, -1, s.CurrentIndex())
	assert.False(t, moved)
}

func TestRefreshAfterRowsChange(t *testing.T) {
	names := []string{"Blue Heron", "Heron II"}
	s := NewService(func() []string { return names }, func(int) {})
	s.Find("heron")
	s.Next()

	names = []string{"Heron II"}
	s.Refresh()
	assert.Equal(t, 1, s.MatchCount())
	assert.Equal(t, 0, s.CurrentIndex())

	s.Clear()
	assert.Empty(t, s.Query())
	assert.Zero(t, s.MatchCount())
}
