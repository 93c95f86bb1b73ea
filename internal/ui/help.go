package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// pagerDoneMsg is sent once the pager handed the terminal back
type pagerDoneMsg struct {
	err error
}

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Navigation", []helpEntry{
		{"↑/↓, j/k", "Move between boats"},
		{"←/→, h/l", "Move between columns"},
		{"PgUp/PgDn", "Page up/down"},
		{"gg/G", "Go to top/bottom"},
		{"Enter", "Select boat and show its reviews"},
		{"o", "Open boat record page"},
	}},
	{"Search", []helpEntry{
		{"t/T", "Next/previous boat type"},
		{"r", "Refresh results"},
		{"/", "Find boat by name"},
		{"n/N", "Next/previous match"},
		{"S", "Cycle sort column"},
		{"d", "Toggle sort direction"},
	}},
	{"Editing", []helpEntry{
		{"e", "Edit cell"},
		{"s, Ctrl+S", "Save changes"},
		{"u", "Discard changes"},
		{"a", "Add a new boat"},
	}},
	{"Record Pages", []helpEntry{
		{"Enter", "Open selected review"},
		{"p", "Show record in pager"},
		{"Esc", "Back"},
	}},
	{"Other", []helpEntry{
		{"x", "Dismiss toast"},
		{"?", "Show this help"},
		{"q", "Quit"},
	}},
}

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// Render generates help content with colors for the pager
func (r *HelpRenderer) Render() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	width := 0
	for _, s := range helpSections {
		for _, e := range s.entries {
			if w := lipgloss.Width(e.keys); w > width {
				width = w
			}
		}
	}

	var help strings.Builder
	help.WriteString(titleStyle.Render("Boatyard Help"))
	help.WriteString("\n")
	for i, s := range helpSections {
		help.WriteString(sectionStyle.Render(s.title))
		help.WriteString("\n")
		for _, e := range s.entries {
			pad := strings.Repeat(" ", width-lipgloss.Width(e.keys)+2)
			help.WriteString(fmt.Sprintf("  %s%s%s\n", keyStyle.Render(e.keys), pad, descStyle.Render(e.desc)))
		}
		if i < len(helpSections)-1 {
			help.WriteString("\n")
		}
	}
	return strings.TrimRight(help.String(), "\n")
}

// Pager shows long content in ov while the program gives up the terminal
type Pager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPager creates a pager bound to a program
func NewPager(program *tea.Program) *Pager {
	return &Pager{
		program: program,
	}
}

// Show pages content until the user quits ov
func (p *Pager) Show(content string) error {
	if p == nil || p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
