package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alkime/postauto/internal/pipeline"
	"github.com/alkime/postauto/internal/tui/style"
	"github.com/alkime/postauto/pkg/channels"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// BatchResult receives the outcome of the batch phase. Report and Err are
// set by the batch goroutine before Done is closed; read them only after
// Done, or after the phase has shown its summary.
type BatchResult struct {
	Report *pipeline.BatchReport
	Err    error

	started chan struct{}
	done    chan struct{}
}

// NewBatchResult creates an empty result for NewBatchPhase.
func NewBatchResult() *BatchResult {
	return &BatchResult{
		started: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Done is closed once the batch run has returned.
func (r *BatchResult) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until a started batch run has returned. A run that never
// started returns immediately; it will see the cancelled context and stop
// before publishing anything.
func (r *BatchResult) Wait() {
	select {
	case <-r.started:
		<-r.done
	default:
	}
}

// completionSendTimeout bounds how long the batch goroutine waits for the UI
// to take the final message.
const completionSendTimeout = time.Second

type batchPhase struct {
	ctx          context.Context
	runner       BatchRunner
	rows         []pipeline.Row
	instructions string
	opts         pipeline.BatchOptions
	result       *BatchResult

	events   chan tea.Msg
	bar      progress.Model
	done     int
	lines    []string
	launched bool
	complete bool
}

// NewBatchPhase creates the phase that runs rows through runner, showing a
// progress bar and one line per finished row. opts.OnProgress is replaced.
func NewBatchPhase(
	ctx context.Context,
	runner BatchRunner,
	rows []pipeline.Row,
	instructions string,
	opts pipeline.BatchOptions,
	result *BatchResult,
) tea.Model {
	return &batchPhase{
		ctx:          ctx,
		runner:       runner,
		rows:         rows,
		instructions: instructions,
		opts:         opts,
		result:       result,
		events:       make(chan tea.Msg, len(rows)+1),
		bar:          progress.New(progress.WithDefaultGradient(), progress.WithWidth(50)),
	}
}

type batchProgressMsg struct {
	progress pipeline.Progress
}

type batchCompleteMsg struct{}

func (bp *batchPhase) Init() tea.Cmd {
	if bp.launched {
		return nil
	}
	bp.launched = true

	return tea.Batch(bp.runCmd(), bp.waitForEvent())
}

// runCmd runs the batch off the UI goroutine and forwards progress over
// events. The buffer holds one message per row plus completion.
func (bp *batchPhase) runCmd() tea.Cmd {
	return func() tea.Msg {
		opts := bp.opts
		opts.OnProgress = func(p pipeline.Progress) {
			if err := channels.SendNonBlock(bp.events, tea.Msg(batchProgressMsg{progress: p})); err != nil {
				slog.Warn("Dropped batch progress update", "done", p.Done, "error", err)
			}
		}

		close(bp.result.started)
		bp.result.Report, bp.result.Err = bp.runner.RunBatch(bp.ctx, bp.rows, bp.instructions, opts)
		close(bp.result.done)

		if err := channels.SendWithTimeout(bp.events, tea.Msg(batchCompleteMsg{}), completionSendTimeout); err != nil {
			slog.Error("Failed to deliver batch completion", "error", err)
		}

		return nil
	}
}

func (bp *batchPhase) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-bp.events
	}
}

func (bp *batchPhase) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case batchProgressMsg:
		bp.done = msg.progress.Done
		bp.lines = append(bp.lines, renderOutcome(msg.progress.Outcome))

		return bp, tea.Batch(bp.bar.SetPercent(msg.progress.Fraction()), bp.waitForEvent())

	case batchCompleteMsg:
		bp.complete = true

		return bp, nil

	case progress.FrameMsg:
		updated, cmd := bp.bar.Update(msg)
		bp.bar = updated.(progress.Model) //nolint:forcetypeassert // progress.Model always returns progress.Model

		return bp, cmd
	}

	return bp, nil
}

func renderOutcome(o pipeline.Outcome) string {
	if !o.OK() {
		return style.Error.Render("[실패] ") + fmt.Sprintf("%s: %v", o.Row.Topic, o.Err)
	}

	return style.Success.Render("[완료] ") + fmt.Sprintf("%s (퀄리티 점수: %.0f, 피드백: %s)",
		o.Row.Topic, o.Result.Assessment.Score, o.Result.Assessment.Feedback)
}

func (bp *batchPhase) View() string {
	var sb strings.Builder

	sb.WriteString(style.Title.Render(fmt.Sprintf("총 %d개의 블로그를 생성합니다", len(bp.rows))))
	sb.WriteString("\n\n")
	sb.WriteString(bp.bar.View())
	sb.WriteString(style.Progress.Render(fmt.Sprintf("  %d/%d", bp.done, len(bp.rows))))
	sb.WriteString("\n\n")

	for _, line := range bp.lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if bp.complete {
		sb.WriteString("\n")
		sb.WriteString(bp.summaryView())
	}

	sb.WriteString("\n")
	sb.WriteString(renderGlobalKeyHelp())

	return sb.String()
}

func (bp *batchPhase) summaryView() string {
	var sb strings.Builder

	if bp.result.Err != nil {
		sb.WriteString(style.Error.Render("✗ Batch stopped: " + bp.result.Err.Error()))
		sb.WriteString("\n")
	}

	if report := bp.result.Report; report != nil {
		sb.WriteString(style.Label.Render("Published: "))
		sb.WriteString(fmt.Sprintf("%d, failed: %d\n", report.Succeeded(), report.Failed()))

		if report.ArchivePath != "" {
			sb.WriteString(style.Label.Render("Archive: "))
			sb.WriteString(style.Muted.Render(report.ArchivePath))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
