package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"boatyard/internal/ui/input/types"
)

// ConfirmMode asks before an action that throws unsaved edits away
type ConfirmMode struct {
	pending types.Action
}

func NewConfirmMode() *ConfirmMode {
	return &ConfirmMode{}
}

func (m *ConfirmMode) Name() string {
	return "confirm"
}

// SetData stores the action run on confirmation
func (m *ConfirmMode) SetData(data interface{}) {
	m.pending, _ = data.(types.Action)
}

// Pending returns the action waiting for confirmation
func (m *ConfirmMode) Pending() types.Action {
	return m.pending
}

func (m *ConfirmMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	m.pending = nil
	return nil
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "y", "Y":
		actions := []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}
		if m.pending != nil {
			actions = append(actions, m.pending)
		}
		return actions, true
	case "n", "N", "esc":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	}
	return nil, true
}
