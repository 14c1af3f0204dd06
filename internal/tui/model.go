// Package tui hosts the terminal front-end: a phase container with global
// quit handling around the workflow phases.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/alkime/postauto/internal/tui/components/phases"
	"github.com/alkime/postauto/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Config configures the root model.
type Config struct {
	// Cancel aborts in-flight generation when the user quits.
	Cancel context.CancelFunc
	// Title is shown above the phase header.
	Title string
}

type model struct {
	config       Config
	keys         KeyMap
	phases       phases.Model
	windowWidth  int
	windowHeight int
}

// New creates the root model running phs in order.
func New(config Config, phs ...phases.Phase) tea.Model {
	return &model{
		config:       config,
		keys:         DefaultKeyMap(),
		phases:       phases.New(phs),
		windowWidth:  80,
		windowHeight: 24,
	}
}

// Init returns the initial command.
func (m *model) Init() tea.Cmd {
	return m.phases.Init()
}

// Update handles all messages.
func (m *model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := teaMsg.(tea.WindowSizeMsg); ok {
		m.windowWidth = wsm.Width
		m.windowHeight = wsm.Height
	}

	// Global key handling (quit from any phase)
	if km, ok := teaMsg.(tea.KeyMsg); ok {
		if key.Matches(km, m.keys.ForceQuit) || key.Matches(km, m.keys.Quit) {
			if m.config.Cancel != nil {
				m.config.Cancel()
			}

			return m, tea.Quit
		}
	}

	updatedPhases, cmd := m.phases.Update(teaMsg)
	m.phases = updatedPhases.(phases.Model) //nolint:forcetypeassert // phases.Model always returns phases.Model

	return m, cmd
}

// View renders the current UI.
func (m *model) View() string {
	var sb strings.Builder

	if m.config.Title != "" {
		sb.WriteString(style.Title.Render(m.config.Title))
		sb.WriteString("\n")
	}

	sb.WriteString(style.Subtitle.Render(fmt.Sprintf("Phase %d/%d: %s",
		m.phases.Index()+1, m.phases.Len(), m.phases.CurrentPhaseName())))
	sb.WriteString("\n\n")

	sb.WriteString(m.phases.View())

	return sb.String()
}
