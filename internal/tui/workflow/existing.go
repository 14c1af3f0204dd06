package workflow

import (
	"os"
	"strings"

	"github.com/alkime/postauto/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
)

// existingDraftKeyMap defines keys for handling an existing instructions draft.
type existingDraftKeyMap struct {
	UseExisting key.Binding
	Edit        key.Binding
}

func defaultExistingDraftKeyMap() existingDraftKeyMap {
	return existingDraftKeyMap{
		UseExisting: key.NewBinding(
			key.WithKeys("enter", "y"),
			key.WithHelp("enter/y", "use as is"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
	}
}

// existingDraftState tracks whether the instructions draft already exists.
type existingDraftState struct {
	found bool
	path  string
	keys  existingDraftKeyMap
}

func newExistingDraftState(path string) existingDraftState {
	state := existingDraftState{
		path: path,
		keys: defaultExistingDraftKeyMap(),
	}

	if _, err := os.Stat(path); err == nil {
		state.found = true
	}

	return state
}

func renderExistingDraftView(state existingDraftState) string {
	var sb strings.Builder

	sb.WriteString(style.Success.Render("✓ Instructions draft already exists!"))
	sb.WriteString("\n\n")

	sb.WriteString(style.Label.Render("File: "))
	sb.WriteString(style.Muted.Render(state.path))
	sb.WriteString("\n\n")

	sb.WriteString(renderKeyHelp(state.keys.UseExisting, " "))
	sb.WriteString(renderKeyHelp(state.keys.Edit, "\n"))
	sb.WriteString(renderGlobalKeyHelp())

	return sb.String()
}
