package views

import (
	"fmt"
	"strconv"
	"strings"

	"boatyard/internal/dataservice"
	"boatyard/internal/domain"
	"boatyard/internal/ui/services/grid"
)

// ReviewsState is what the reviews panel needs for rendering
type ReviewsState struct {
	Boat     string // boat name shown in the heading
	Reviews  []domain.Review
	Cursor   int // -1 hides the cursor
	Loading  bool
	Err      error
	Assigned bool // a boat id is assigned
}

// RenderBoatDetails renders the fields of a boat record
func (r *Renderer) RenderBoatDetails(b domain.Boat, showPicture bool) string {
	var lines []string
	field := func(label, value string) {
		if value == "" {
			value = r.styles.Dim.Render("-")
		}
		lines = append(lines, fmt.Sprintf("%s %s", r.styles.Label.Render(fmt.Sprintf("%-12s", label)), value))
	}

	lines = append(lines, r.styles.Title.Render(b.Name))
	field("Type", b.BoatTypeName)
	field("Length", strconv.FormatFloat(b.Length, 'f', -1, 64)+" ft")
	field("Price", formatPrice(b.Price))
	field("Contact", b.Contact)
	if showPicture {
		field("Picture", b.Picture)
	}
	field("Description", b.Description)
	return strings.Join(lines, "\n")
}

// RenderReviews renders the reviews of one boat
func (r *Renderer) RenderReviews(state ReviewsState) string {
	var b strings.Builder
	heading := "Reviews"
	if state.Boat != "" {
		heading = fmt.Sprintf("Reviews for %s", state.Boat)
	}
	b.WriteString(r.styles.Section.Render(heading))
	b.WriteString("\n")

	switch {
	case state.Loading:
		b.WriteString(r.styles.StatusLoading.Render("Loading reviews..."))
		return b.String()
	case state.Err != nil:
		b.WriteString(r.styles.StatusError.Render(dataservice.MessageOf(state.Err)))
		return b.String()
	case !state.Assigned:
		b.WriteString(r.styles.Dim.Render("Select a boat to see its reviews."))
		return b.String()
	case len(state.Reviews) == 0:
		b.WriteString(r.styles.Dim.Render("No reviews available"))
		return b.String()
	}

	for i, rev := range state.Reviews {
		line := fmt.Sprintf("%s %s  %s", r.styles.Rating.Render(stars(rev.Rating)), rev.Name, r.styles.Dim.Render(byLine(rev)))
		if i == state.Cursor {
			line = r.styles.SelectionBg.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if rev.Comment != "" {
			b.WriteString("\n    ")
			b.WriteString(rev.Comment)
		}
		if i < len(state.Reviews)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderReview renders a single review record
func (r *Renderer) RenderReview(rev domain.Review) string {
	lines := []string{
		r.styles.Title.Render(rev.Name),
		r.styles.Rating.Render(stars(rev.Rating)),
		r.styles.Dim.Render(byLine(rev)),
		"",
		rev.Comment,
	}
	return strings.Join(lines, "\n")
}

func byLine(rev domain.Review) string {
	parts := []string{}
	if rev.CreatedBy != "" {
		parts = append(parts, rev.CreatedBy)
	}
	if !rev.CreatedDate.IsZero() {
		parts = append(parts, rev.CreatedDate.Format("Jan 2, 2006"))
	}
	return strings.Join(parts, " · ")
}

func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

var priceColumn = grid.Column{Type: grid.TypeCurrency}

func formatPrice(p float64) string {
	return priceColumn.Format(p)
}
