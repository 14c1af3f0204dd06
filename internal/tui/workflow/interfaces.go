package workflow

import (
	"context"

	"github.com/alkime/postauto/internal/pipeline"
	tea "github.com/charmbracelet/bubbletea"
)

// PostGenerator runs the single-post pipeline.
type PostGenerator interface {
	Generate(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

// BatchRunner runs the pipeline over a list of rows.
type BatchRunner interface {
	RunBatch(ctx context.Context, rows []pipeline.Row, instructions string, opts pipeline.BatchOptions) (*pipeline.BatchReport, error)
}

// EditorLauncher opens files in an external editor.
type EditorLauncher interface {
	Launch(filePath string) tea.Cmd
}
