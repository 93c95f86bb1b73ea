package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boatyard/internal/dataservice/fake"
	"boatyard/internal/domain"
	"boatyard/internal/eventbus"
	inputtypes "boatyard/internal/ui/input/types"
	"boatyard/internal/ui/services/results"
	"boatyard/internal/ui/services/reviews"
	"boatyard/internal/ui/views"
)

func newTestModel(t *testing.T) (*Model, *fake.Service) {
	t.Helper()
	data := fake.New()
	data.Types = []domain.BoatType{{ID: "sail", Name: "Sailboat"}}
	data.Boats[domain.FilterAll] = []domain.Boat{
		{ID: "b1", Name: "Wave Dancer", Length: 32, Price: 48000, BoatTypeID: "sail"},
		{ID: "b2", Name: "Blue Heron", Length: 27, Price: 31500, BoatTypeID: "sail"},
	}
	data.Boats["sail"] = data.Boats[domain.FilterAll]
	data.Reviews["b1"] = []domain.Review{{ID: "rv1", BoatID: "b1", Name: "Great", Comment: "Fast and dry", Rating: 5}}

	m := NewModel(context.Background(), eventbus.New(), data, Options{Storage: "memory", EmptyIDPolicy: reviews.RetainLast})
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	drain(m, m.start())
	return m, data
}

// drain runs cmd and everything it leads to, feeding finished tasks back into
// the model. Other messages are returned.
func drain(m *Model, cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case taskDoneMsg:
			_, next := m.Update(msg)
			queue = append(queue, next)
		default:
			out = append(out, msg)
		}
	}
	return out
}

func press(m *Model, keys ...string) []tea.Msg {
	var out []tea.Msg
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd := m.Update(msg)
		out = append(out, drain(m, cmd)...)
	}
	return out
}

func screen(m *Model) string {
	return views.StripANSI(m.View())
}

func TestStartShowsBoats(t *testing.T) {
	m, data := newTestModel(t)

	assert.Equal(t, results.PhaseLoaded, m.coord.Results.Phase())
	assert.Len(t, data.CallsTo(fake.OpFetchBoatTypes), 1)
	out := screen(m)
	assert.Contains(t, out, "Wave Dancer")
	assert.Contains(t, out, "Blue Heron")
	assert.Contains(t, out, "All Types")
	assert.Contains(t, out, "Select a boat to see its reviews.")
}

func TestSelectShowsReviews(t *testing.T) {
	m, data := newTestModel(t)

	press(m, "enter")

	assert.Equal(t, "b1", m.coord.Results.Selected())
	require.Len(t, data.CallsTo(fake.OpFetchReviews), 1)
	out := screen(m)
	assert.Contains(t, out, "Reviews for Wave Dancer")
	assert.Contains(t, out, "Fast and dry")
}

func TestCycleTypeSearches(t *testing.T) {
	m, data := newTestModel(t)
	data.ResetCalls()

	press(m, "t")

	calls := data.CallsTo(fake.OpFetchBoats)
	require.Len(t, calls, 1)
	assert.Equal(t, domain.Filter("sail"), calls[0].Arg)
	assert.Contains(t, screen(m), "Sailboat")
}

func TestEditAndSave(t *testing.T) {
	m, data := newTestModel(t)

	press(m, "e")
	require.Equal(t, inputtypes.ModeEdit, m.inputHandler.CurrentMode())
	press(m, "!", "enter")
	assert.True(t, m.HasDrafts())
	assert.Contains(t, screen(m), "1 unsaved")

	press(m, "s")

	calls := data.CallsTo(fake.OpUpdateBoats)
	require.Len(t, calls, 1)
	assert.Equal(t, domain.UpdateBatch{"b1": {domain.FieldName: "Wave Dancer!"}}, calls[0].Arg)
	assert.False(t, m.HasDrafts())
	assert.Equal(t, results.PhaseLoaded, m.coord.Results.Phase())
	assert.Contains(t, screen(m), "Ship it!")
}

func TestBadEditStaysInEditMode(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "l", "e")
	require.Equal(t, inputtypes.ModeEdit, m.inputHandler.CurrentMode())
	press(m, "x", "enter")

	assert.Equal(t, inputtypes.ModeEdit, m.inputHandler.CurrentMode())
	assert.True(t, m.failed)
	assert.False(t, m.HasDrafts())
}

func TestQuitWithDraftsConfirms(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "e", "!", "enter")

	out := press(m, "q")
	assert.NotContains(t, out, quitMsg{})
	assert.Contains(t, screen(m), "Quit and lose 1 unsaved change(s)? (y/n)")

	out = press(m, "y")
	assert.Contains(t, out, quitMsg{})
}

func TestOpenBoatPageAndBack(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "o")
	require.Equal(t, pageBoat, m.pages.top().kind)
	assert.Equal(t, inputtypes.ModeRecord, m.inputHandler.CurrentMode())
	assert.Equal(t, "b1", m.coord.Reviews.RecordID())
	assert.Contains(t, screen(m), "boatyard / Boat")

	press(m, "enter")
	require.Equal(t, pageReview, m.pages.top().kind)
	assert.Contains(t, screen(m), "Fast and dry")

	press(m, "esc", "esc")
	assert.Equal(t, pageSearch, m.pages.top().kind)
	assert.Equal(t, inputtypes.ModeNormal, m.inputHandler.CurrentMode())
}

func TestFindMovesCursor(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "/", "h", "e", "r", "enter")

	assert.Equal(t, 1, m.coord.Grid().Cursor().Cursor())
	assert.Equal(t, "her", m.coord.Find.Query())
	press(m, "esc")
	assert.Equal(t, "", m.coord.Find.Query())
}

func TestNewBoatFlow(t *testing.T) {
	m, data := newTestModel(t)

	press(m, "a")
	require.Equal(t, pageNewBoat, m.pages.top().kind)
	require.NotNil(t, m.form)

	press(m, "S", "k", "i", "f", "f", "tab", "tab", "1", "2", "enter")

	calls := data.CallsTo(fake.OpCreateBoat)
	require.Len(t, calls, 1)
	created := calls[0].Arg.(domain.Boat)
	assert.Equal(t, "Skiff", created.Name)
	assert.Equal(t, "sail", created.BoatTypeID)
	assert.Equal(t, 12.0, created.Length)

	top := m.pages.top()
	assert.Equal(t, pageBoat, top.kind)
	assert.Equal(t, "new-1", top.recordID)
	assert.Len(t, m.coord.Results.Records(), 3)
	assert.Contains(t, screen(m), "Skiff was added")
}

func TestNewBoatValidation(t *testing.T) {
	m, data := newTestModel(t)

	press(m, "a", "enter")

	assert.Empty(t, data.CallsTo(fake.OpCreateBoat))
	assert.Equal(t, pageNewBoat, m.pages.top().kind)
	assert.Contains(t, screen(m), "name is required")
}
