package ui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"boatyard/internal/dataservice"
	"boatyard/internal/domain"
	"boatyard/internal/eventbus"
	"boatyard/internal/loop"
	"boatyard/internal/navigation"
	"boatyard/internal/ui/coordinator"
	"boatyard/internal/ui/input"
	inputtypes "boatyard/internal/ui/input/types"
	"boatyard/internal/ui/services/cursor"
	"boatyard/internal/ui/services/reviews"
	"boatyard/internal/ui/services/toast"
	"boatyard/internal/ui/views"
)

// reviewsPanelHeight is the number of rows kept free below the grid
const reviewsPanelHeight = 8

// Options configures the UI model
type Options struct {
	Storage       string // backend name shown in the title bar
	EmptyIDPolicy reviews.EmptyIDPolicy
	ToastTTL      time.Duration
	ShowPictures  bool
	PageSize      int // grid rows, 0 follows the terminal height
}

// Model represents the UI state
type Model struct {
	ctx   context.Context
	bus   eventbus.EventBus
	queue *loop.Queue
	coord *coordinator.Coordinator
	opts  Options

	width   int
	height  int
	help    help.Model
	keys    keyMap
	spinner spinner.Model

	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	inputHandler *input.Handler
	pages        *pageStack
	form         *newBoatForm

	status string
	failed bool

	// Program reference for terminal management
	program *tea.Program
	pager   *Pager
	inPager bool

	unsubs []func()
}

// NewModel creates the UI model and the components behind it. Remote calls
// scheduled by the components run as commands; their continuations come back
// through Update.
func NewModel(ctx context.Context, bus eventbus.EventBus, data dataservice.Service, opts Options) *Model {
	if opts.ToastTTL <= 0 {
		opts.ToastTTL = toast.DefaultTTL
	}
	queue := loop.NewQueue()

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := &Model{
		ctx:   ctx,
		bus:   bus,
		queue: queue,
		coord: coordinator.NewCoordinator(bus, queue, data, coordinator.Options{
			EmptyIDPolicy: opts.EmptyIDPolicy,
			ToastTTL:      opts.ToastTTL,
		}),
		opts:         opts,
		help:         help.New(),
		keys:         newKeyMap(),
		spinner:      s,
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		inputHandler: input.New(),
		pages:        newPageStack(),
	}

	m.coord.Grid().Cursor().SetRowLimit(opts.PageSize)

	m.unsubs = append(m.unsubs,
		bus.Subscribe(eventbus.EventNavigate, m.handleNavigate),
		bus.Subscribe(eventbus.EventBoatsLoaded, m.handleBoatsLoaded),
	)
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPager(p)
}

// Coordinator exposes the components, mainly for tests
func (m *Model) Coordinator() *coordinator.Coordinator {
	return m.coord
}

// Init starts the type and boat queries
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.start(), m.spinner.Tick, toastTick(m.opts.ToastTTL))
}

func (m *Model) start() tea.Cmd {
	m.coord.Start()
	m.bus.Publish(domain.AppReadyEvent{Storage: m.opts.Storage})
	return m.flush()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()

	case tea.KeyMsg:
		actions, cmd := m.inputHandler.HandleKey(msg, m)
		cmds = append(cmds, cmd)
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}

	case taskDoneMsg:
		if msg.next != nil {
			msg.next()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case toastTickMsg:
		m.coord.Toasts.Expire()
		cmds = append(cmds, toastTick(m.opts.ToastTTL))

	case pagerDoneMsg:
		m.inPager = false
		if msg.err != nil {
			log.Printf("Pager failed: %v", msg.err)
			m.setStatus(fmt.Sprintf("Pager failed: %v", msg.err), true)
		}

	case quitMsg:
		return m, tea.Quit

	default:
		cmds = append(cmds, m.inputHandler.Update(msg))
	}

	// Whatever the message triggered may have scheduled remote work
	cmds = append(cmds, m.flush())
	return m, tea.Batch(cmds...)
}

// flush turns queued tasks into commands. Each command runs its task off the
// loop and hands the continuation back as a taskDoneMsg.
func (m *Model) flush() tea.Cmd {
	pending := m.queue.Drain()
	if len(pending) == 0 {
		return nil
	}
	ctx := m.ctx
	cmds := make([]tea.Cmd, 0, len(pending))
	for _, p := range pending {
		cmds = append(cmds, func() tea.Msg {
			return taskDoneMsg{name: p.Name, next: p.Task(ctx)}
		})
	}
	return tea.Batch(cmds...)
}

func toastTick(ttl time.Duration) tea.Cmd {
	interval := ttl / 4
	if interval < 250*time.Millisecond {
		interval = 250 * time.Millisecond
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// Close drops the subscriptions of the model and its components
func (m *Model) Close() {
	for _, unsub := range m.unsubs {
		unsub()
	}
	m.unsubs = nil
	m.coord.Close()
}

// CurrentIndex implements the input context
func (m *Model) CurrentIndex() int {
	if p := m.pages.top(); p.kind == pageBoat {
		return p.cursor
	}
	return m.coord.Grid().Cursor().Cursor()
}

// TotalItems implements the input context
func (m *Model) TotalItems() int {
	switch m.pages.top().kind {
	case pageBoat:
		return len(m.coord.Reviews.Reviews())
	case pageReview, pageNewBoat:
		return 0
	}
	return m.coord.Grid().Len()
}

// HasDrafts implements the input context
func (m *Model) HasDrafts() bool {
	return m.coord.Grid().HasDrafts()
}

// FindActive implements the input context
func (m *Model) FindActive() bool {
	return m.coord.Find.Query() != ""
}

func (m *Model) setStatus(msg string, failed bool) {
	m.status = msg
	m.failed = failed
}

func (m *Model) updateViewportHeight() {
	m.coord.SetViewportHeight(m.height - reviewsPanelHeight)
}

// handleNavigate shows the page a navigation request points to
func (m *Model) handleNavigate(e eventbus.DomainEvent) {
	ref := e.(domain.NavigateEvent).Ref
	p, ok := pageFor(ref)
	if !ok {
		log.Printf("Navigate: no page for %s/%s", ref.Type, ref.ObjectName)
		return
	}
	m.pages.push(p)
	m.enterPage(m.pages.top())
}

// enterPage prepares the components and input mode for a page on top of the stack
func (m *Model) enterPage(p *page) {
	switch p.kind {
	case pageSearch:
		m.inputHandler.ChangeMode(inputtypes.ModeNormal, nil)
		// The panel follows the boat channel again
		if sel := m.coord.Results.Selected(); sel != "" && sel != m.coord.Reviews.RecordID() {
			m.coord.OpenBoat(sel)
		}
	case pageBoat:
		m.inputHandler.ChangeMode(inputtypes.ModeRecord, nil)
		if m.coord.Reviews.RecordID() != p.recordID {
			p.cursor = 0
			m.coord.OpenBoat(p.recordID)
		}
	case pageReview:
		m.inputHandler.ChangeMode(inputtypes.ModeRecord, nil)
	case pageNewBoat:
		m.form = newNewBoatForm(m.coord.Form.Options())
		m.inputHandler.ChangeMode(inputtypes.ModeNewBoat, nil)
	}
}

func (m *Model) popPage() {
	if !m.pages.pop() {
		return
	}
	m.form = nil
	m.enterPage(m.pages.top())
}

func (m *Model) handleBoatsLoaded(e eventbus.DomainEvent) {
	ev := e.(domain.BoatsLoadedEvent)
	if ev.Err != nil {
		m.setStatus(dataservice.MessageOf(ev.Err), true)
		return
	}
	if m.failed {
		m.setStatus("", false)
	}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	g := m.coord.Grid()
	top := m.pages.top()

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		if top.kind == pageBoat {
			m.moveReviewCursor(top, a.Direction)
			return nil
		}
		g.Cursor().Navigate(cursor.Direction(a.Direction))

	case inputtypes.MoveColumnAction:
		g.MoveColumn(a.Delta)

	case inputtypes.SelectAction:
		m.coord.SelectCurrent()
		if b, ok := m.coord.CurrentBoat(); ok {
			m.setStatus(fmt.Sprintf("Selected %s", b.Name), false)
		}

	case inputtypes.BeginEditAction:
		value, ok := g.BeginEdit()
		if !ok {
			m.setStatus("This column cannot be edited", true)
			return nil
		}
		m.setStatus("", false)
		return m.inputHandler.ChangeMode(inputtypes.ModeEdit, value)

	case inputtypes.UpdateTextAction:
		if m.inputHandler.CurrentMode() == inputtypes.ModeFind {
			m.coord.Find.Find(a.Text)
		}

	case inputtypes.SubmitTextAction:
		switch a.Mode {
		case inputtypes.ModeEdit:
			if err := g.CommitEdit(a.Text); err != nil {
				m.setStatus(err.Error(), true)
				return m.inputHandler.ChangeMode(inputtypes.ModeEdit, a.Text)
			}
			if n := g.DraftCount(); n > 0 {
				m.setStatus(fmt.Sprintf("%d unsaved change(s), press s to save", n), false)
			} else {
				m.setStatus("", false)
			}
		case inputtypes.ModeFind:
			m.coord.Find.Find(a.Text)
			m.setStatus(m.findStatus(), false)
		}

	case inputtypes.CancelTextAction:
		switch a.Mode {
		case inputtypes.ModeEdit:
			g.CancelEdit()
		case inputtypes.ModeFind:
			m.coord.Find.Clear()
		}

	case inputtypes.SaveAction:
		if !g.HasDrafts() {
			m.setStatus("No changes to save", false)
			return nil
		}
		m.setStatus(fmt.Sprintf("Saving %d boat(s)...", g.DraftBatch().Len()), false)
		m.coord.Results.SaveDrafts()

	case inputtypes.DiscardDraftsAction:
		g.ClearDrafts()
		m.setStatus("Changes discarded", false)

	case inputtypes.RefreshAction:
		if top.kind == pageBoat {
			m.coord.Reviews.Refresh()
			return nil
		}
		m.coord.Results.Refresh(nil)

	case inputtypes.CycleTypeAction:
		if a.Delta < 0 {
			m.coord.Form.Prev()
		} else {
			m.coord.Form.Next()
		}
		m.coord.Form.Submit()

	case inputtypes.SortAction:
		if a.ToggleDirection {
			m.coord.Sorting.ToggleDirection()
		} else {
			m.coord.Sorting.NextMode()
		}
		m.coord.Resort()
		m.setStatus(fmt.Sprintf("Sort: %s", m.coord.Sorting.Label()), false)

	case inputtypes.FindNavigateAction:
		if a.Direction == "prev" {
			m.coord.Find.Previous()
		} else {
			m.coord.Find.Next()
		}
		if m.FindActive() {
			m.setStatus(m.findStatus(), false)
		}

	case inputtypes.ClearFindAction:
		m.coord.Find.Clear()
		m.setStatus("", false)

	case inputtypes.NewBoatAction:
		m.coord.Form.CreateNew()

	case inputtypes.OpenRecordAction:
		m.openRecord(top)

	case inputtypes.BackAction:
		m.popPage()

	case inputtypes.ShowPagerAction:
		content := m.pagerContent(top)
		if content == "" {
			return nil
		}
		return m.showPager(content)

	case inputtypes.ToggleHelpAction:
		return m.showPager(m.helpRenderer.Render())

	case inputtypes.DismissToastAction:
		m.coord.Toasts.Dismiss()

	case inputtypes.FocusFieldAction:
		if m.form != nil {
			return m.form.Focus(a.Delta)
		}

	case inputtypes.FormKeyAction:
		if m.form != nil {
			return m.form.Update(a.Key)
		}

	case inputtypes.SubmitFormAction:
		m.submitForm()

	case inputtypes.QuitAction:
		return func() tea.Msg { return quitMsg{} }
	}
	return nil
}

func (m *Model) moveReviewCursor(p *page, direction string) {
	n := len(m.coord.Reviews.Reviews())
	switch direction {
	case "up":
		p.cursor--
	case "down":
		p.cursor++
	}
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (m *Model) openRecord(p *page) {
	switch p.kind {
	case pageSearch:
		if b, ok := m.coord.CurrentBoat(); ok {
			m.coord.Navigation.Navigate(navigation.RecordPage(domain.ObjectBoat, b.ID))
		}
	case pageBoat:
		list := m.coord.Reviews.Reviews()
		if p.cursor >= 0 && p.cursor < len(list) {
			m.coord.Reviews.NavigateToRecord(list[p.cursor].ID)
		}
	}
}

func (m *Model) submitForm() {
	if m.form == nil {
		return
	}
	m.coord.NewBoat.Submit(m.form.Input(), func(b domain.Boat) {
		if m.pages.top().kind == pageNewBoat {
			m.popPage()
		}
		m.coord.Navigation.Navigate(navigation.RecordPage(domain.ObjectBoat, b.ID))
	})
}

func (m *Model) findStatus() string {
	q := m.coord.Find.Query()
	if q == "" {
		return ""
	}
	if m.coord.Find.MatchCount() == 0 {
		return fmt.Sprintf("No boats match %q", q)
	}
	return fmt.Sprintf("Match %d of %d for %q", m.coord.Find.CurrentIndex()+1, m.coord.Find.MatchCount(), q)
}

// showPager returns a command that pages content in ov
func (m *Model) showPager(content string) tea.Cmd {
	if m.pager == nil {
		m.setStatus("Pager is not available", true)
		return nil
	}
	m.inPager = true
	pager := m.pager
	return func() tea.Msg {
		return pagerDoneMsg{err: pager.Show(content)}
	}
}

// pagerContent returns the record shown by the pager on the current page
func (m *Model) pagerContent(p *page) string {
	switch p.kind {
	case pageSearch:
		b, ok := m.coord.CurrentBoat()
		if !ok {
			return ""
		}
		return m.renderer.RenderBoatDetails(b, m.opts.ShowPictures)
	case pageBoat:
		b, ok := m.coord.Boat(p.recordID)
		if !ok {
			return ""
		}
		return m.renderer.RenderBoatDetails(b, m.opts.ShowPictures) + "\n\n" + m.renderer.RenderReviews(m.reviewsState(-1))
	case pageReview:
		if r, ok := m.review(p.recordID); ok {
			return m.renderer.RenderReview(r)
		}
	}
	return ""
}

func (m *Model) review(id string) (domain.Review, bool) {
	for _, r := range m.coord.Reviews.Reviews() {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Review{}, false
}
