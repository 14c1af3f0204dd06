package tui_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/alkime/postauto/internal/tui"
	"github.com/alkime/postauto/internal/tui/components/phases"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

//nolint:gochecknoinits // recommend for CI by bubbletea folks
func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

type staticPhase string

func (s staticPhase) Init() tea.Cmd                       { return nil }
func (s staticPhase) Update(tea.Msg) (tea.Model, tea.Cmd) { return s, nil }
func (s staticPhase) View() string                        { return string(s) }

func TestModel_HeaderAndQuit(t *testing.T) {
	cancelled := false
	m := tui.New(tui.Config{
		Title:  "postauto",
		Cancel: func() { cancelled = true },
	},
		phases.NewPhase("Instructions", staticPhase("editing")),
		phases.NewPhase("Generating", staticPhase("working")),
	)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("Phase 1/2: Instructions")) && bytes.Contains(b, []byte("editing"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(phases.NextPhaseMsg{})
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("Phase 2/2: Generating"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	assert.True(t, cancelled)
}
