package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"boatyard/internal/ui/input/modes"
	"boatyard/internal/ui/input/types"
)

// Handler routes keys to the handler of the current mode
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // Shared text input for text modes
}

func New() *Handler {
	ti := textinput.New()
	ti.Prompt = ""

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	// Register all mode handlers
	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeEdit] = modes.NewEditMode(h.textInput)
	h.modes[types.ModeFind] = modes.NewFindMode(h.textInput)
	h.modes[types.ModeConfirm] = modes.NewConfirmMode()
	h.modes[types.ModeRecord] = modes.NewRecordMode()
	h.modes[types.ModeNewBoat] = modes.NewNewBoatMode()

	return h
}

// HandleKey turns a key into actions. Mode changes are applied here and not
// returned, except that the actions produced by entering and leaving a mode are.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action
	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			allActions = append(allActions, h.switchMode(changeMode, ctx)...)
			if h.isTextMode(h.currentMode) {
				cmd = textinput.Blink
			}
			continue
		}
		allActions = append(allActions, action)
	}

	// Keys the text mode did not handle go to the text input
	if h.isTextMode(h.currentMode) && !consumed {
		*h.textInput, cmd = h.textInput.Update(msg)
		allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return allActions, cmd
}

func (h *Handler) switchMode(change types.ChangeModeAction, ctx types.Context) []types.Action {
	var out []types.Action
	if current := h.modes[h.currentMode]; current != nil {
		out = append(out, current.Exit(ctx)...)
	}

	h.currentMode = change.Mode
	next := h.modes[h.currentMode]
	if receiver, ok := next.(types.DataReceiver); ok {
		receiver.SetData(change.Data)
	}

	if h.isTextMode(h.currentMode) {
		h.textInput.Reset()
		if text, ok := change.Data.(string); ok {
			h.textInput.SetValue(text)
			h.textInput.CursorEnd()
		}
	}
	if next != nil {
		out = append(out, next.Enter(ctx)...)
	}
	return out
}

// ChangeMode switches mode outside of key handling, seeding text modes with data
func (h *Handler) ChangeMode(mode types.Mode, data interface{}) tea.Cmd {
	h.switchMode(types.ChangeModeAction{Mode: mode, Data: data}, nil)
	if h.isTextMode(mode) {
		return textinput.Blink
	}
	return nil
}

// CurrentMode returns the current input mode
func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// ModeHandler returns the handler registered for a mode
func (h *Handler) ModeHandler(mode types.Mode) types.ModeHandler {
	return h.modes[mode]
}

// TextInput returns the shared text input while a text mode is active
func (h *Handler) TextInput() *textinput.Model {
	if h.isTextMode(h.currentMode) {
		return h.textInput
	}
	return nil
}

// Prompt returns the label of the active text mode
func (h *Handler) Prompt() string {
	if p, ok := h.modes[h.currentMode].(interface{ Prompt() string }); ok {
		return p.Prompt()
	}
	return ""
}

// PendingConfirmation returns the action waiting in confirm mode
func (h *Handler) PendingConfirmation() types.Action {
	if c, ok := h.modes[types.ModeConfirm].(*modes.ConfirmMode); ok && h.currentMode == types.ModeConfirm {
		return c.Pending()
	}
	return nil
}

func (h *Handler) RegisterMode(mode types.Mode, handler types.ModeHandler) {
	h.modes[mode] = handler
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	switch mode {
	case types.ModeEdit, types.ModeFind:
		return true
	default:
		return false
	}
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}
