package ui

import (
	"fmt"
	"strings"

	"boatyard/internal/dataservice"
	"boatyard/internal/ui/input/types"
	"boatyard/internal/ui/services/results"
	"boatyard/internal/ui/services/sorting"
	"boatyard/internal/ui/views"
)

// View renders the page on top of the stack inside the common frame
func (m *Model) View() string {
	if m.inPager {
		return ""
	}
	top := m.pages.top()
	mode := m.inputHandler.CurrentMode()

	state := views.FrameState{
		Width:   m.width,
		Height:  m.height,
		Storage: m.opts.Storage,
		Status:  m.status,
		Failed:  m.failed,
		Toasts:  m.renderer.RenderToasts(m.coord.Toasts.Visible()),
		Footer:  m.help.ShortHelpView(m.keys.bindingsFor(mode)),
	}

	if m.coord.Results.IsLoading() {
		state.Spinner = m.spinner.View()
		state.Loading = "Loading boats"
		if m.coord.Results.Phase() == results.PhaseSaving {
			state.Loading = "Saving"
		}
	} else if m.coord.Reviews.IsLoading() {
		state.Spinner = m.spinner.View()
		state.Loading = "Loading reviews"
	}

	styles := m.renderer.Styles()
	if n := m.coord.Grid().DraftCount(); n > 0 {
		state.Badges = append(state.Badges, styles.Dirty.Render(fmt.Sprintf("%d unsaved", n)))
	}
	if m.coord.Sorting.Mode() != sorting.SortNone {
		state.Badges = append(state.Badges, styles.Filter.Render("[Sort: "+m.coord.Sorting.Label()+"]"))
	}

	if ti := m.inputHandler.TextInput(); ti != nil {
		state.Prompt = styles.Confirm.Render(m.inputHandler.Prompt()) + ti.View()
	}
	if mode == types.ModeConfirm {
		state.Popup = m.confirmText()
	}

	switch top.kind {
	case pageBoat:
		state.Title = "Boat"
		state.Body = m.boatPage(top)
	case pageReview:
		state.Title = "Review"
		state.Body = m.reviewPage(top)
	case pageNewBoat:
		state.Title = "New Boat"
		state.Body = m.newBoatPage()
	default:
		state.Title = "Boat Search"
		state.Body = m.searchPage()
	}
	return m.renderer.Render(state)
}

func (m *Model) confirmText() string {
	n := m.coord.Grid().DraftCount()
	if _, ok := m.inputHandler.PendingConfirmation().(types.QuitAction); ok {
		return fmt.Sprintf("Quit and lose %d unsaved change(s)? (y/n)", n)
	}
	return fmt.Sprintf("Discard %d unsaved change(s)? (y/n)", n)
}

func (m *Model) searchPage() string {
	r := m.renderer
	styles := r.Styles()
	form := m.coord.Form

	var b strings.Builder
	b.WriteString(styles.Label.Render("Boat Type "))
	b.WriteString(r.RenderPicker(form.Choice().Label, false))
	if form.IsLoading() {
		b.WriteString(styles.Dim.Render("  searching..."))
	}
	if err := form.TypesErr(); err != nil {
		b.WriteString("  ")
		b.WriteString(styles.StatusError.Render("Types unavailable: " + dataservice.MessageOf(err)))
	}
	b.WriteString("\n\n")

	res := m.coord.Results
	switch {
	case res.Phase() == results.PhaseError:
		b.WriteString(styles.StatusError.Render(dataservice.MessageOf(res.Err())))
	case res.Phase() == results.PhaseLoading && len(res.Records()) == 0:
		b.WriteString(styles.StatusLoading.Render("Loading boats..."))
	case len(res.Records()) == 0 && res.Phase() != results.PhaseIdle:
		b.WriteString(styles.Dim.Render("No boats found"))
	default:
		gs := views.GridState{Grid: m.coord.Grid(), Selected: res.Selected()}
		if m.FindActive() {
			gs.IsMatch = m.coord.Find.IsMatch
		}
		b.WriteString(r.RenderGrid(gs))
	}

	b.WriteString("\n")
	b.WriteString(r.RenderReviews(m.reviewsState(-1)))
	return b.String()
}

func (m *Model) reviewsState(cursor int) views.ReviewsState {
	rv := m.coord.Reviews
	state := views.ReviewsState{
		Reviews:  rv.Reviews(),
		Cursor:   cursor,
		Loading:  rv.IsLoading(),
		Err:      rv.Err(),
		Assigned: rv.RecordID() != "",
	}
	if b, ok := m.coord.Boat(rv.RecordID()); ok {
		state.Boat = b.Name
	}
	return state
}

func (m *Model) boatPage(p *page) string {
	r := m.renderer
	b, ok := m.coord.Boat(p.recordID)
	if !ok {
		if m.coord.Results.IsLoading() {
			return r.Styles().StatusLoading.Render("Loading boat...")
		}
		return r.Styles().Dim.Render(fmt.Sprintf("Boat %s is not in the current results", p.recordID))
	}
	return r.RenderBoatDetails(b, m.opts.ShowPictures) + "\n" + r.RenderReviews(m.reviewsState(p.cursor))
}

func (m *Model) reviewPage(p *page) string {
	rev, ok := m.review(p.recordID)
	if !ok {
		return m.renderer.Styles().Dim.Render("Review not found")
	}
	return m.renderer.RenderReview(rev)
}

func (m *Model) newBoatPage() string {
	f := m.form
	if f == nil {
		return ""
	}
	fields := make([]views.FormField, 0, fieldCount)
	for i := 0; i < fieldCount; i++ {
		value := f.inputs[i].View()
		if i == fieldType {
			label := f.TypeLabel()
			if label == "" {
				label = "no boat types"
			}
			value = m.renderer.RenderPicker(label, f.focus == fieldType)
		}
		fields = append(fields, views.FormField{Label: fieldLabels[i], Value: value, Focused: f.focus == i})
	}
	errMsg := ""
	if err := m.coord.NewBoat.Err(); err != nil {
		errMsg = dataservice.MessageOf(err)
	}
	return m.renderer.RenderForm("Add a boat", fields, errMsg, m.coord.NewBoat.Saving())
}
