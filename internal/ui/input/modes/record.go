package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"boatyard/internal/ui/input/types"
)

// RecordMode drives the boat and review record pages
type RecordMode struct{}

func NewRecordMode() *RecordMode {
	return &RecordMode{}
}

func (m *RecordMode) Name() string {
	return "record"
}

func (m *RecordMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *RecordMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *RecordMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "backspace", "q":
		return []types.Action{types.BackAction{}}, true
	case "up", "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "down", "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "enter", "o":
		if ctx.TotalItems() == 0 {
			return nil, true
		}
		return []types.Action{types.OpenRecordAction{}}, true
	case "r":
		return []types.Action{types.RefreshAction{}}, true
	case "p":
		return []types.Action{types.ShowPagerAction{}}, true
	case "x":
		return []types.Action{types.DismissToastAction{}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	}
	return nil, false
}
