package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"boatyard/internal/ui/input/types"
)

// FindMode searches boat names in the loaded results
type FindMode struct {
	TextInputMode
}

func NewFindMode(ti *textinput.Model) *FindMode {
	return &FindMode{
		TextInputMode: NewTextInputMode(types.ModeFind, "find", "Find: ", ti),
	}
}
