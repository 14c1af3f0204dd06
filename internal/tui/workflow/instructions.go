package workflow

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/alkime/postauto/internal/content"
	"github.com/alkime/postauto/internal/tui/components/phases"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type instructionsPhase struct {
	draftPath string
	launcher  EditorLauncher
	existing  existingDraftState
	err       error
}

// NewInstructionsPhase creates the phase that lets the user edit the
// instructions draft at draftPath before generation. A missing draft is
// seeded with the default instructions and opened straight away.
func NewInstructionsPhase(launcher EditorLauncher, draftPath string) tea.Model {
	return &instructionsPhase{
		draftPath: draftPath,
		launcher:  launcher,
		existing:  newExistingDraftState(draftPath),
	}
}

// DefaultEditorLauncher runs EditorCmd, then $EDITOR, then vi.
type DefaultEditorLauncher struct {
	EditorCmd string
}

// Launch opens the file in the configured editor.
//
//nolint:gosec // subprocess launching
func (d *DefaultEditorLauncher) Launch(filePath string) tea.Cmd {
	editor := d.EditorCmd
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	slog.Info("Opening file in editor", "editor", editor, "path", filePath)

	c := exec.CommandContext(context.Background(), editor, filePath)

	return tea.ExecProcess(c, func(err error) tea.Msg {
		return editorCompleteMsg{err: err}
	})
}

type startEditorMsg struct{}

type editorCompleteMsg struct {
	err error
}

func (ip *instructionsPhase) Init() tea.Cmd {
	if ip.existing.found {
		return nil
	}

	if err := seedDraft(ip.draftPath); err != nil {
		ip.err = err
		return nil
	}

	return startEditorAfterRender()
}

// startEditorAfterRender gives the renderer a tick to draw before
// tea.ExecProcess suspends the TUI.
// See: https://github.com/charmbracelet/bubbletea/pull/1429
func startEditorAfterRender() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return startEditorMsg{}
	})
}

func (ip *instructionsPhase) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case tea.KeyMsg:
		if !ip.existing.found {
			return ip, nil
		}

		switch {
		case key.Matches(msg, ip.existing.keys.UseExisting):
			return ip, phases.NextPhaseCmd
		case key.Matches(msg, ip.existing.keys.Edit):
			ip.existing.found = false

			return ip, startEditorAfterRender()
		}
	case startEditorMsg:
		return ip, ip.launcher.Launch(ip.draftPath)
	case editorCompleteMsg:
		if msg.err != nil {
			slog.Error("Editor closed with error", "error", msg.err)
		}

		return ip, phases.NextPhaseCmd
	}

	return ip, nil
}

func (ip *instructionsPhase) View() string {
	if ip.err != nil {
		return renderError("Could not prepare instructions", ip.err)
	}

	if ip.existing.found {
		return renderExistingDraftView(ip.existing)
	}

	return "Opening editor..."
}

func seedDraft(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	//nolint:gosec // Instructions are not secret
	return os.WriteFile(path, []byte(content.DefaultInstructions), 0o644)
}
