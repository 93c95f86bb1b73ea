package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"boatyard/internal/ui/input/types"
)

// NormalMode drives the search page: the type picker and the results grid
type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyCtrlS:
		return []types.Action{types.SaveAction{}}, true

	case tea.KeyEsc:
		if ctx.FindActive() {
			return []types.Action{types.ClearFindAction{}}, true
		}
		return nil, false

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyLeft:
		return []types.Action{types.MoveColumnAction{Delta: -1}}, true

	case tea.KeyRight:
		return []types.Action{types.MoveColumnAction{Delta: 1}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyEnter:
		if ctx.TotalItems() == 0 {
			return nil, false
		}
		return []types.Action{types.SelectAction{}}, true
	}

	key := msg.String()
	if key != "g" {
		m.lastKeyWasG = false
	}

	switch key {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "h":
		return []types.Action{types.MoveColumnAction{Delta: -1}}, true

	case "l":
		return []types.Action{types.MoveColumnAction{Delta: 1}}, true

	case "e", "i":
		if ctx.TotalItems() == 0 {
			return nil, true
		}
		return []types.Action{types.BeginEditAction{}}, true

	case "s":
		return []types.Action{types.SaveAction{}}, true

	case "u":
		if !ctx.HasDrafts() {
			return nil, true
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeConfirm, Data: types.DiscardDraftsAction{}}}, true

	case "r":
		return []types.Action{types.RefreshAction{}}, true

	case "t":
		return []types.Action{types.CycleTypeAction{Delta: 1}}, true

	case "T":
		return []types.Action{types.CycleTypeAction{Delta: -1}}, true

	case "a":
		return []types.Action{types.NewBoatAction{}}, true

	case "o":
		if ctx.TotalItems() == 0 {
			return nil, true
		}
		return []types.Action{types.OpenRecordAction{}}, true

	case "p":
		return []types.Action{types.ShowPagerAction{}}, true

	case "S":
		return []types.Action{types.SortAction{}}, true

	case "d":
		return []types.Action{types.SortAction{ToggleDirection: true}}, true

	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFind}}, true

	case "n":
		return []types.Action{types.FindNavigateAction{Direction: "next"}}, true

	case "N":
		return []types.Action{types.FindNavigateAction{Direction: "prev"}}, true

	case "x":
		return []types.Action{types.DismissToastAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		if ctx.HasDrafts() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeConfirm, Data: types.QuitAction{Force: true}}}, true
		}
		return []types.Action{types.QuitAction{Force: false}}, true

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - go to top
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	}

	return nil, false
}
