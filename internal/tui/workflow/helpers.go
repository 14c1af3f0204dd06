// Package workflow provides the TUI phases for generating posts.
package workflow

import (
	"fmt"
	"strings"

	"github.com/alkime/postauto/internal/content"
	"github.com/alkime/postauto/internal/tui"
	"github.com/alkime/postauto/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
)

func renderKeyHelp(keyBinding key.Binding, suffix ...string) string {
	s := style.Help.Render("[") + style.Key.Render(keyBinding.Help().Key) +
		style.Help.Render("] ") +
		style.Help.Render(keyBinding.Help().Desc)

	s += strings.Join(suffix, "")

	return s
}

func renderGlobalKeyHelp() string {
	km := tui.DefaultKeyMap()
	s := renderKeyHelp(km.Quit, " ")
	s += renderKeyHelp(km.ForceQuit, "\n")

	return s
}

// renderAssessment formats a quality score and its feedback.
func renderAssessment(a content.Assessment) string {
	var sb strings.Builder

	sb.WriteString(style.Label.Render("Quality: "))
	sb.WriteString(style.Score(a.Score).Render(fmt.Sprintf("%.0f/100", a.Score)))
	sb.WriteString("\n")
	sb.WriteString(style.Label.Render("Feedback: "))
	sb.WriteString(a.Feedback)
	sb.WriteString("\n")

	return sb.String()
}

func renderError(title string, err error) string {
	var sb strings.Builder

	sb.WriteString(style.Error.Render("✗ " + title))
	sb.WriteString("\n\n")
	sb.WriteString(err.Error())
	sb.WriteString("\n\n")
	sb.WriteString(renderGlobalKeyHelp())

	return sb.String()
}
