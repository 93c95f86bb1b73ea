package ui

import (
	"github.com/charmbracelet/bubbles/key"

	inputtypes "boatyard/internal/ui/input/types"
)

// keyMap describes the footer hints. Key handling itself lives in the input modes.
type keyMap struct {
	Move    key.Binding
	Select  key.Binding
	Edit    key.Binding
	Save    key.Binding
	Type    key.Binding
	Open    key.Binding
	Add     key.Binding
	Find    key.Binding
	Back    key.Binding
	Next    key.Binding
	Submit  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Move:    key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("↑↓", "move")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Save:    key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "save")),
		Type:    key.NewBinding(key.WithKeys("t", "T"), key.WithHelp("t", "type")),
		Open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Find:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// bindingsFor returns the footer hints of an input mode
func (k keyMap) bindingsFor(mode inputtypes.Mode) []key.Binding {
	switch mode {
	case inputtypes.ModeEdit, inputtypes.ModeFind:
		return []key.Binding{k.Submit, k.Back}
	case inputtypes.ModeConfirm:
		return []key.Binding{k.Confirm, k.Cancel}
	case inputtypes.ModeRecord:
		return []key.Binding{k.Move, k.Open, k.Back, k.Help}
	case inputtypes.ModeNewBoat:
		return []key.Binding{k.Next, k.Submit, k.Back}
	default:
		return []key.Binding{k.Move, k.Select, k.Edit, k.Save, k.Type, k.Open, k.Add, k.Find, k.Help, k.Quit}
	}
}
