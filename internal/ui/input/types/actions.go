package types

import tea "github.com/charmbracelet/bubbletea"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

type MoveColumnAction struct {
	Delta int
}

func (a MoveColumnAction) Type() string { return "move_column" }

// SelectAction broadcasts the boat under the cursor
type SelectAction struct{}

func (a SelectAction) Type() string { return "select" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Mode Mode
}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Grid editing actions
type BeginEditAction struct{}

func (a BeginEditAction) Type() string { return "begin_edit" }

type SaveAction struct{}

func (a SaveAction) Type() string { return "save" }

type DiscardDraftsAction struct{}

func (a DiscardDraftsAction) Type() string { return "discard_drafts" }

// Search form actions
type CycleTypeAction struct {
	Delta int
}

func (a CycleTypeAction) Type() string { return "cycle_type" }

type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type SortAction struct {
	ToggleDirection bool
}

func (a SortAction) Type() string { return "sort" }

type FindNavigateAction struct {
	Direction string // "next" or "prev"
}

func (a FindNavigateAction) Type() string { return "find_navigate" }

type ClearFindAction struct{}

func (a ClearFindAction) Type() string { return "clear_find" }

// Page actions
type NewBoatAction struct{}

func (a NewBoatAction) Type() string { return "new_boat" }

// OpenRecordAction opens the record page of the item under the cursor
type OpenRecordAction struct{}

func (a OpenRecordAction) Type() string { return "open_record" }

type BackAction struct{}

func (a BackAction) Type() string { return "back" }

type ShowPagerAction struct{}

func (a ShowPagerAction) Type() string { return "show_pager" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type DismissToastAction struct{}

func (a DismissToastAction) Type() string { return "dismiss_toast" }

// New boat form actions
type FocusFieldAction struct {
	Delta int
}

func (a FocusFieldAction) Type() string { return "focus_field" }

type SubmitFormAction struct{}

func (a SubmitFormAction) Type() string { return "submit_form" }

// FormKeyAction forwards a key to the focused form field
type FormKeyAction struct {
	Key tea.KeyMsg
}

func (a FormKeyAction) Type() string { return "form_key" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
