package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alkime/postauto/internal/content"
	"github.com/alkime/postauto/internal/pipeline"
	"github.com/alkime/postauto/internal/tui/components/labeledspinner"
	"github.com/alkime/postauto/internal/tui/style"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// GenerateReport receives the outcome of the generating phase. Result and
// Err are set by the generation goroutine before Done is closed.
type GenerateReport struct {
	Result *pipeline.Result
	Err    error

	started chan struct{}
	done    chan struct{}
}

// NewGenerateReport creates an empty report for NewGeneratingPhase.
func NewGenerateReport() *GenerateReport {
	return &GenerateReport{
		started: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Done is closed once generation has returned.
func (r *GenerateReport) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until a started generation has returned. Generation that never
// started returns immediately.
func (r *GenerateReport) Wait() {
	select {
	case <-r.started:
		<-r.done
	default:
	}
}

func (r *GenerateReport) finish(res *pipeline.Result, err error) {
	r.Result, r.Err = res, err
	close(r.done)
}

type generatingPhase struct {
	ctx              context.Context
	spinner          labeledspinner.Model
	generator        PostGenerator
	topic            string
	category         string
	instructionsPath string
	report           *GenerateReport
	now              func() time.Time

	launched bool
	complete bool
}

// NewGeneratingPhase creates the phase that runs the pipeline for one topic.
// Instructions are read from instructionsPath when the phase starts so edits
// made in an earlier phase are picked up.
func NewGeneratingPhase(
	ctx context.Context,
	generator PostGenerator,
	topic, category, instructionsPath string,
	report *GenerateReport,
) tea.Model {
	return &generatingPhase{
		ctx: ctx,
		spinner: labeledspinner.New(
			spinner.Pulse,
			"Generating post...",
			fmt.Sprintf("%s · %s", topic, category),
			"Writing, scoring and publishing",
		),
		generator:        generator,
		topic:            topic,
		category:         category,
		instructionsPath: instructionsPath,
		report:           report,
		now:              time.Now,
	}
}

type generateCompleteMsg struct{}

func (gp *generatingPhase) Init() tea.Cmd {
	// Re-entering the phase must not run the post twice.
	if gp.launched {
		return nil
	}
	gp.launched = true
	gp.spinner = gp.spinner.Start(gp.now())

	return tea.Batch(
		gp.spinner.Init(),
		gp.generateCmd(),
	)
}

func (gp *generatingPhase) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := teaMsg.(generateCompleteMsg); ok {
		gp.complete = true

		return gp, nil
	}

	if gp.complete {
		return gp, nil
	}

	var cmd tea.Cmd
	gp.spinner, cmd = gp.spinner.Update(teaMsg)

	return gp, cmd
}

func (gp *generatingPhase) View() string {
	if !gp.complete {
		return gp.spinner.ViewWithHelp(gp.spinner.Help + " · " + gp.spinner.Elapsed(gp.now()))
	}

	if gp.report.Err != nil {
		return renderError("Generation failed", gp.report.Err)
	}

	return gp.completeView(gp.report.Result)
}

func (gp *generatingPhase) completeView(res *pipeline.Result) string {
	var sb strings.Builder

	sb.WriteString(style.Title.Render("=== Post Published ==="))
	sb.WriteString("\n\n")

	sb.WriteString(style.Label.Render("Topic: "))
	sb.WriteString(res.Record.Topic)
	sb.WriteString("\n")
	sb.WriteString(style.Label.Render("Saved: "))
	sb.WriteString(style.Muted.Render(res.RemotePath))
	sb.WriteString("\n")

	sb.WriteString(style.Label.Render("Tags:"))
	sb.WriteString("\n")
	for _, tag := range content.SplitTags(res.Document.Tags) {
		sb.WriteString("  ")
		sb.WriteString(style.Bullet.Render("• "))
		sb.WriteString(tag)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(renderAssessment(res.Assessment))
	sb.WriteString("\n")
	sb.WriteString(renderGlobalKeyHelp())

	return sb.String()
}

func (gp *generatingPhase) generateCmd() tea.Cmd {
	return func() tea.Msg {
		close(gp.report.started)
		gp.report.finish(gp.generate())

		return generateCompleteMsg{}
	}
}

func (gp *generatingPhase) generate() (*pipeline.Result, error) {
	instructions, err := os.ReadFile(gp.instructionsPath)
	if err != nil {
		slog.Error("Failed to read instructions", "path", gp.instructionsPath, "error", err)
		return nil, fmt.Errorf("failed to read instructions: %w", err)
	}

	res, err := gp.generator.Generate(gp.ctx, pipeline.Request{
		Topic:        gp.topic,
		Category:     gp.category,
		Instructions: string(instructions),
	})
	if err != nil {
		slog.Error("Post generation failed", "topic", gp.topic, "error", err)
		return nil, err
	}

	return res, nil
}
