package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"boatyard/internal/ui/services/grid"
)

// GridState is what the results grid needs for rendering
type GridState struct {
	Grid     *grid.Grid
	Selected string             // id of the boat broadcast on the boat channel
	IsMatch  func(row int) bool // find matches, may be nil
	Editing  string             // rendered edit input shown in the focused cell
}

// RenderGrid renders the visible rows of the results grid
func (r *Renderer) RenderGrid(state GridState) string {
	g := state.Grid
	cols := g.Columns()
	cur := g.Cursor()

	var b strings.Builder
	header := make([]string, 0, len(cols)+1)
	header = append(header, " ")
	for i, c := range cols {
		label := fit(c.Label, c.Width)
		if i == g.Column() {
			label = r.styles.Highlight.Render(label)
		} else {
			label = r.styles.Header.Render(label)
		}
		header = append(header, label)
	}
	b.WriteString(strings.Join(header, " "))
	b.WriteString("\n")

	rows := g.Rows()
	start := cur.ViewportOffset()
	end := start + cur.ViewportHeight()
	if end > len(rows) {
		end = len(rows)
	}

	for i := start; i < end; i++ {
		isCursor := i == cur.Cursor()
		marker := " "
		if rows[i].ID == state.Selected {
			marker = "▸"
		}

		cells := make([]string, 0, len(cols)+1)
		cells = append(cells, marker)
		for j, c := range cols {
			text := g.Cell(i, j)
			if isCursor && j == g.Column() && state.Editing != "" {
				cells = append(cells, state.Editing)
				continue
			}
			text = fit(text, c.Width)

			style := lipgloss.NewStyle()
			if g.IsDirty(i, j) {
				style = r.styles.Dirty
			}
			if state.IsMatch != nil && j == 0 && state.IsMatch(i) {
				style = style.Inherit(r.styles.Highlight)
			}
			if isCursor {
				style = style.Background(lipgloss.Color("238"))
				if j == g.Column() {
					style = style.Underline(true)
				}
			}
			cells = append(cells, style.Render(text))
		}
		b.WriteString(strings.Join(cells, " "))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if end < len(rows) || start > 0 {
		b.WriteString("\n")
		b.WriteString(r.styles.Scroll.Render(scrollHint(start, end, len(rows))))
	}
	return b.String()
}

func scrollHint(start, end, total int) string {
	var parts []string
	if start > 0 {
		parts = append(parts, "↑ more above")
	}
	if end < total {
		parts = append(parts, "↓ more below")
	}
	return strings.Join(parts, "  ")
}

// fit pads or truncates s to exactly width columns
func fit(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) > width {
		if width == 1 {
			return "…"
		}
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}
