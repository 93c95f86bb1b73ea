package views

import (
	"fmt"
	"strings"
)

// FormField is one rendered row of the new boat form
type FormField struct {
	Label   string
	Value   string // rendered input or picker text
	Focused bool
}

// RenderForm renders the new boat form
func (r *Renderer) RenderForm(title string, fields []FormField, errMsg string, saving bool) string {
	var b strings.Builder
	b.WriteString(r.styles.Section.Render(title))
	b.WriteString("\n\n")
	for _, f := range fields {
		label := r.styles.Label.Render(fmt.Sprintf("%-12s", f.Label))
		marker := "  "
		if f.Focused {
			marker = r.styles.Highlight.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", marker, label, f.Value))
	}
	switch {
	case saving:
		b.WriteString("\n")
		b.WriteString(r.styles.StatusLoading.Render("Saving..."))
	case errMsg != "":
		b.WriteString("\n")
		b.WriteString(r.styles.StatusError.Render(errMsg))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderPicker renders a search form choice as "< label >"
func (r *Renderer) RenderPicker(label string, focused bool) string {
	text := fmt.Sprintf("‹ %s ›", label)
	if focused {
		return r.styles.Highlight.Render(text)
	}
	return r.styles.Filter.Render(text)
}
