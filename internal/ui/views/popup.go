package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay greys out mainContent and draws the popup centred on top.
// Lines covered by the popup are replaced whole.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)
	popupLines := strings.Split(styledPopup, "\n")

	base := strings.Split(desaturateANSI(mainContent), "\n")
	for len(base) < height {
		base = append(base, "")
	}

	modalW := lipgloss.Width(styledPopup)
	x := (width - modalW) / 2
	if x < 0 {
		x = 0
	}
	y := (len(base) - len(popupLines)) / 2
	if y < 0 {
		y = 0
	}

	pad := strings.Repeat(" ", x)
	for i, line := range popupLines {
		if y+i >= len(base) {
			base = append(base, pad+line)
			continue
		}
		base[y+i] = pad + line
	}
	return strings.Join(base, "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	lines := strings.Split(ansiRE.ReplaceAllString(s, ""), "\n")
	grey := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	for i, l := range lines {
		lines[i] = grey.Render(l)
	}
	return strings.Join(lines, "\n")
}

// StripANSI removes styling from rendered text
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}
