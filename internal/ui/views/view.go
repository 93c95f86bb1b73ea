package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FrameState contains everything around the page body
type FrameState struct {
	Width   int
	Height  int
	Title   string // page title
	Storage string // storage backend name
	Spinner string // rendered spinner while results are busy
	Loading string // what is being loaded
	Badges  []string
	Prompt  string // active text input line
	Status  string
	Failed  bool // Status describes an error
	Toasts  string
	Body    string
	Footer  string
	Popup   string // confirmation popup drawn over everything
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles returns the renderer styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state FrameState) string {
	content := &strings.Builder{}

	logo := r.styles.Title.Render("boatyard")
	if state.Title != "" {
		logo += r.styles.Dim.Render(" / " + state.Title)
	}

	var right []string
	if state.Spinner != "" {
		right = append(right, r.styles.StatusLoading.Render(fmt.Sprintf("%s %s", state.Spinner, state.Loading)))
	}
	right = append(right, state.Badges...)
	if state.Storage != "" {
		right = append(right, r.styles.Dim.Render("["+state.Storage+"]"))
	}
	titleLine := logo
	if len(right) > 0 {
		rightContent := strings.Join(right, "  ")
		padding := state.Width - 4 - lipgloss.Width(logo) - lipgloss.Width(rightContent)
		if padding < 2 {
			padding = 2
		}
		titleLine = logo + strings.Repeat(" ", padding) + rightContent
	}
	content.WriteString(titleLine)
	content.WriteString("\n\n")

	if state.Toasts != "" {
		content.WriteString(state.Toasts)
		content.WriteString("\n")
	}

	if state.Prompt != "" {
		content.WriteString(state.Prompt)
		content.WriteString("\n\n")
	}

	content.WriteString(state.Body)

	var bottom []string
	if state.Status != "" {
		if state.Failed {
			bottom = append(bottom, r.styles.StatusError.Render(state.Status))
		} else {
			bottom = append(bottom, r.styles.Status.Render(state.Status))
		}
	}
	if state.Footer != "" {
		bottom = append(bottom, r.styles.Help.Render(state.Footer))
	}

	if len(bottom) > 0 {
		currentLines := strings.Count(content.String(), "\n") + 1
		// Account for container padding (1 top, 1 bottom from Padding(1, 2))
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}
		paddingNeeded := availableLines - currentLines - len(bottom)
		if paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(strings.Join(bottom, "\n"))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	finalContent := mainStyle.Render(content.String())

	if state.Popup != "" {
		return r.popupRender.RenderPopupOverlay(finalContent, state.Popup, state.Height, state.Width, r.styles.InfoBox)
	}
	return finalContent
}
