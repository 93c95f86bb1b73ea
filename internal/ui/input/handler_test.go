package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boatyard/internal/ui/input/types"
)

type fakeContext struct {
	index  int
	total  int
	drafts bool
	find   bool
}

func (c fakeContext) CurrentIndex() int { return c.index }
func (c fakeContext) TotalItems() int   { return c.total }
func (c fakeContext) HasDrafts() bool   { return c.drafts }
func (c fakeContext) FindActive() bool  { return c.find }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNormalModeNavigation(t *testing.T) {
	h := New()
	ctx := fakeContext{total: 3}

	actions, _ := h.HandleKey(runes("j"), ctx)
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "down"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyRight}, ctx)
	assert.Equal(t, []types.Action{types.MoveColumnAction{Delta: 1}}, actions)

	actions, _ = h.HandleKey(runes("g"), ctx)
	assert.Empty(t, actions)
	actions, _ = h.HandleKey(runes("g"), ctx)
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "home"}}, actions)
}

func TestSelectNeedsRows(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, fakeContext{})
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, fakeContext{total: 1})
	assert.Equal(t, []types.Action{types.SelectAction{}}, actions)
}

func TestEditModeSubmitsSeededText(t *testing.T) {
	h := New()
	h.ChangeMode(types.ModeEdit, "Sea")
	require.Equal(t, types.ModeEdit, h.CurrentMode())
	assert.Equal(t, "Edit: ", h.Prompt())

	actions, _ := h.HandleKey(runes("l"), fakeContext{})
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "Seal"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, fakeContext{})
	assert.Equal(t, []types.Action{types.SubmitTextAction{Text: "Seal", Mode: types.ModeEdit}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
}

func TestFindModeEscCancels(t *testing.T) {
	h := New()

	actions, cmd := h.HandleKey(runes("/"), fakeContext{})
	assert.Empty(t, actions)
	assert.NotNil(t, cmd)
	require.Equal(t, types.ModeFind, h.CurrentMode())
	assert.Equal(t, "", h.TextInput().Value())

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, fakeContext{})
	assert.Equal(t, []types.Action{types.CancelTextAction{Mode: types.ModeFind}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestQuitWithDraftsAsksFirst(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(runes("q"), fakeContext{})
	assert.Equal(t, []types.Action{types.QuitAction{}}, actions)

	actions, _ = h.HandleKey(runes("q"), fakeContext{drafts: true})
	assert.Empty(t, actions)
	require.Equal(t, types.ModeConfirm, h.CurrentMode())
	assert.Equal(t, types.QuitAction{Force: true}, h.PendingConfirmation())

	actions, _ = h.HandleKey(runes("y"), fakeContext{drafts: true})
	assert.Equal(t, []types.Action{types.QuitAction{Force: true}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestConfirmDeclined(t *testing.T) {
	h := New()
	h.HandleKey(runes("u"), fakeContext{drafts: true})
	require.Equal(t, types.ModeConfirm, h.CurrentMode())

	actions, _ := h.HandleKey(runes("n"), fakeContext{drafts: true})
	assert.Empty(t, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestNewBoatFormForwardsKeys(t *testing.T) {
	h := New()
	h.ChangeMode(types.ModeNewBoat, nil)

	key := runes("x")
	actions, _ := h.HandleKey(key, fakeContext{})
	assert.Equal(t, []types.Action{types.FormKeyAction{Key: key}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, fakeContext{})
	assert.Equal(t, []types.Action{types.FocusFieldAction{Delta: 1}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, fakeContext{})
	assert.Equal(t, []types.Action{types.BackAction{}}, actions)
}

func TestRecordModeBack(t *testing.T) {
	h := New()
	h.ChangeMode(types.ModeRecord, nil)

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyBackspace}, fakeContext{})
	assert.Equal(t, []types.Action{types.BackAction{}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, fakeContext{})
	assert.Empty(t, actions)
}
