package workflow

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alkime/postauto/internal/pipeline"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
)

//nolint:gochecknoinits // recommend for CI by bubbletea folks
func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// outputChecker provides helpers for testing teatest output.
type outputChecker struct {
	intervl, timeout time.Duration
}

func defaultChecker() outputChecker {
	return outputChecker{
		intervl: 100 * time.Millisecond,
		timeout: 3 * time.Second,
	}
}

func (o outputChecker) check(t *testing.T, tm *teatest.TestModel, checkFunc func(buf []byte) bool) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), checkFunc,
		teatest.WithCheckInterval(o.intervl),
		teatest.WithDuration(o.timeout))
}

// checkString waits until every substr has been rendered. Output is consumed
// by each call, so assertions about one frame belong in a single call.
func (o outputChecker) checkString(t *testing.T, tm *teatest.TestModel, substrs ...string) {
	t.Helper()
	o.check(t, tm, func(buf []byte) bool {
		for _, s := range substrs {
			if !bytes.Contains(buf, []byte(s)) {
				return false
			}
		}

		return true
	})
}

// mockGenerator implements PostGenerator for testing.
type mockGenerator struct {
	mu     sync.Mutex
	result *pipeline.Result
	err    error
	req    *pipeline.Request
}

func (m *mockGenerator) Generate(_ context.Context, req pipeline.Request) (*pipeline.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.req = &req

	return m.result, m.err
}

func (m *mockGenerator) request() *pipeline.Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.req
}

// mockBatchRunner implements BatchRunner by replaying outcomes.
type mockBatchRunner struct {
	outcomes    []pipeline.Outcome
	archivePath string
	err         error
}

func (m *mockBatchRunner) RunBatch(
	_ context.Context,
	rows []pipeline.Row,
	_ string,
	opts pipeline.BatchOptions,
) (*pipeline.BatchReport, error) {
	report := &pipeline.BatchReport{RunID: "test-run"}

	for i, o := range m.outcomes {
		report.Outcomes = append(report.Outcomes, o)
		if opts.OnProgress != nil {
			opts.OnProgress(pipeline.Progress{Done: i + 1, Total: len(rows), Outcome: o})
		}
	}

	report.ArchivePath = m.archivePath

	return report, m.err
}

// mockEditorLauncher implements EditorLauncher for testing.
type mockEditorLauncher struct {
	mu       sync.Mutex
	launched bool
	filePath string
}

func (m *mockEditorLauncher) Launch(filePath string) tea.Cmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.launched = true
	m.filePath = filePath

	return func() tea.Msg {
		return editorCompleteMsg{err: nil}
	}
}

func (m *mockEditorLauncher) wasLaunched() (bool, string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.launched, m.filePath
}
