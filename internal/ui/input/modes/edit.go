package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"boatyard/internal/ui/input/types"
)

// EditMode edits the grid cell under the cursor
type EditMode struct {
	TextInputMode
}

func NewEditMode(ti *textinput.Model) *EditMode {
	return &EditMode{
		TextInputMode: NewTextInputMode(types.ModeEdit, "edit", "Edit: ", ti),
	}
}
