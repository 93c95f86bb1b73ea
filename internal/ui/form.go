package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"boatyard/internal/ui/services/newboat"
	"boatyard/internal/ui/services/searchform"
)

const (
	fieldName = iota
	fieldType
	fieldLength
	fieldPrice
	fieldDescription
	fieldContact
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Type", "Length (ft)", "Price", "Description", "Contact"}

// newBoatForm holds the new boat page inputs. The type field is a picker over
// the boat types, every other field is free text.
type newBoatForm struct {
	inputs    [fieldCount]textinput.Model
	focus     int
	types     []searchform.Option
	typeIndex int
}

func newNewBoatForm(options []searchform.Option) *newBoatForm {
	f := &newBoatForm{}
	for _, o := range options {
		if o.Filter != "" {
			f.types = append(f.types, o)
		}
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 120
		f.inputs[i] = ti
	}
	f.inputs[fieldLength].Placeholder = "e.g. 24.5"
	f.inputs[fieldPrice].Placeholder = "e.g. $45,000"
	f.inputs[fieldName].Focus()
	return f
}

// Focus moves the focus by delta fields, wrapping around
func (f *newBoatForm) Focus(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	if f.focus == fieldType {
		return nil
	}
	return f.inputs[f.focus].Focus()
}

// Update feeds a key to the focused field
func (f *newBoatForm) Update(msg tea.KeyMsg) tea.Cmd {
	if f.focus == fieldType {
		switch msg.String() {
		case "left", "h":
			f.cycleType(-1)
		case "right", "l", " ":
			f.cycleType(1)
		}
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *newBoatForm) cycleType(delta int) {
	if len(f.types) == 0 {
		return
	}
	f.typeIndex = (f.typeIndex + delta + len(f.types)) % len(f.types)
}

// TypeLabel returns the picked boat type name
func (f *newBoatForm) TypeLabel() string {
	if len(f.types) == 0 {
		return ""
	}
	return f.types[f.typeIndex].Label
}

// Input collects the typed values
func (f *newBoatForm) Input() newboat.Input {
	in := newboat.Input{
		Name:        f.inputs[fieldName].Value(),
		Length:      f.inputs[fieldLength].Value(),
		Price:       f.inputs[fieldPrice].Value(),
		Description: f.inputs[fieldDescription].Value(),
		Contact:     f.inputs[fieldContact].Value(),
	}
	if len(f.types) > 0 {
		in.TypeID = string(f.types[f.typeIndex].Filter)
	}
	return in
}
