package views

import (
	"github.com/charmbracelet/lipgloss"

	"boatyard/internal/domain"
)

// RenderToasts stacks the visible toasts, newest last
func (r *Renderer) RenderToasts(toasts []domain.Toast) string {
	if len(toasts) == 0 {
		return ""
	}
	boxes := make([]string, 0, len(toasts))
	for _, t := range toasts {
		style := r.styles.ToastSuccess
		title := r.styles.StatusSuccess.Bold(true).Render(t.Title)
		if t.Variant == domain.ToastError {
			style = r.styles.ToastError
			title = r.styles.StatusError.Bold(true).Render(t.Title)
		}
		body := title
		if t.Message != "" {
			body += "  " + t.Message
		}
		boxes = append(boxes, style.Render(body))
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}
