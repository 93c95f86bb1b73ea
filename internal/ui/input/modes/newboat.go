package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"boatyard/internal/ui/input/types"
)

// NewBoatMode drives the multi-field new boat form
type NewBoatMode struct{}

func NewNewBoatMode() *NewBoatMode {
	return &NewBoatMode{}
}

func (m *NewBoatMode) Name() string {
	return "new-boat"
}

func (m *NewBoatMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NewBoatMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NewBoatMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{types.BackAction{}}, true
	case "tab", "down":
		return []types.Action{types.FocusFieldAction{Delta: 1}}, true
	case "shift+tab", "up":
		return []types.Action{types.FocusFieldAction{Delta: -1}}, true
	case "enter", "ctrl+s":
		return []types.Action{types.SubmitFormAction{}}, true
	}
	return []types.Action{types.FormKeyAction{Key: msg}}, true
}
