// Package labeledspinner renders a spinner with a title, subtitle and help
// line.
package labeledspinner

import (
	"fmt"
	"strings"
	"time"

	"github.com/alkime/postauto/internal/tui/style"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model displays a spinner with title, subtitle, and help text.
// Used by the generation and batch phases while a network call is in flight.
type Model struct {
	Spinner  spinner.Model
	Title    string
	Subtitle string
	Help     string

	started time.Time
}

// New creates a new labeled spinner with the given configuration.
func New(s spinner.Spinner, title, subtitle, help string) Model {
	sp := spinner.New()
	sp.Spinner = s

	return Model{
		Spinner:  sp,
		Title:    title,
		Subtitle: subtitle,
		Help:     help,
	}
}

// Init returns the initial command for the spinner.
func (ls Model) Init() tea.Cmd {
	return ls.Spinner.Tick
}

// Start records the moment the spinner's work began.
func (ls Model) Start(now time.Time) Model {
	ls.started = now

	return ls
}

// Elapsed formats the time since Start, rounded to the second. It is empty
// before Start.
func (ls Model) Elapsed(now time.Time) string {
	if ls.started.IsZero() {
		return ""
	}

	return fmt.Sprintf("%s elapsed", now.Sub(ls.started).Round(time.Second))
}

// Update handles spinner tick messages.
func (ls Model) Update(teaMsg tea.Msg) (Model, tea.Cmd) {
	if tickMsg, ok := teaMsg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		ls.Spinner, cmd = ls.Spinner.Update(tickMsg)

		return ls, cmd
	}

	return ls, nil
}

// View renders the labeled spinner with static help text.
func (ls Model) View() string {
	return ls.ViewWithHelp(ls.Help)
}

// ViewWithHelp renders the labeled spinner with dynamic help text.
// Use this when help text needs to be computed at render time, e.g. Elapsed.
func (ls Model) ViewWithHelp(help string) string {
	var sb strings.Builder

	sb.WriteString(ls.Spinner.View())
	sb.WriteString(" ")
	sb.WriteString(style.Title.Render(ls.Title))
	sb.WriteString("\n\n")

	sb.WriteString(style.Subtitle.Render(ls.Subtitle))
	sb.WriteString("\n\n")

	sb.WriteString(style.Help.Render(help))

	return sb.String()
}
