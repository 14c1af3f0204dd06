package pipeline

import (
	"context"
	"fmt"

	"github.com/alkime/postauto/pkg/collections"
	"github.com/google/uuid"
)

// Row is one line of a batch: a topic and its category.
type Row struct {
	Topic    string
	Category string
}

// Outcome is the result of one batch row. Exactly one of Result and Err is
// set.
type Outcome struct {
	Index  int
	Row    Row
	Result *Result
	Err    error
}

// OK reports whether the row was published.
func (o Outcome) OK() bool {
	return o.Err == nil && o.Result != nil
}

// Filename returns the published filename, or "" for a failed row.
func (o Outcome) Filename() string {
	if o.Result == nil {
		return ""
	}

	return o.Result.Filename
}

// Progress is reported after every finished row.
type Progress struct {
	Done    int
	Total   int
	Outcome Outcome
}

// Fraction returns Done/Total.
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 1
	}

	return float64(p.Done) / float64(p.Total)
}

// BatchOptions control RunBatch.
type BatchOptions struct {
	// StopOnError aborts the batch after the first failed row. By default
	// failures are recorded and the remaining rows still run.
	StopOnError bool
	// ArchiveDir receives the dated zip of all published posts. Empty skips
	// archiving.
	ArchiveDir string
	// OnProgress is called synchronously after each row.
	OnProgress func(Progress)
}

// BatchReport summarises a batch run.
type BatchReport struct {
	RunID       string
	Outcomes    []Outcome
	ArchivePath string
}

// Succeeded counts published rows.
func (r *BatchReport) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK() {
			n++
		}
	}

	return n
}

// Failed counts rows that returned an error.
func (r *BatchReport) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// RunBatch generates one post per row, in order, sharing instructions.
// The returned report holds one outcome per processed row; an error is only
// returned when the batch stopped early or archiving failed.
func (p *Pipeline) RunBatch(ctx context.Context, rows []Row, instructions string, opts BatchOptions) (*BatchReport, error) {
	report := &BatchReport{
		RunID:    uuid.NewString(),
		Outcomes: make([]Outcome, 0, len(rows)),
	}

	logger := p.logger.With("run_id", report.RunID)
	logger.Info("Batch started", "rows", len(rows))

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("batch cancelled after %d of %d rows: %w", i, len(rows), err)
		}

		outcome := Outcome{Index: i, Row: row}
		outcome.Result, outcome.Err = p.Generate(ctx, Request{
			Topic:        row.Topic,
			Category:     row.Category,
			Instructions: instructions,
		})

		if outcome.Err != nil {
			logger.Error("Batch row failed", "row", i, "topic", row.Topic, "error", outcome.Err)
		}

		report.Outcomes = append(report.Outcomes, outcome)

		if opts.OnProgress != nil {
			opts.OnProgress(Progress{Done: i + 1, Total: len(rows), Outcome: outcome})
		}

		if outcome.Err != nil && opts.StopOnError {
			return report, fmt.Errorf("batch stopped at row %d: %w", i, outcome.Err)
		}
	}

	logger.Info("Batch finished", "succeeded", report.Succeeded(), "failed", report.Failed())

	if opts.ArchiveDir == "" || report.Succeeded() == 0 {
		return report, nil
	}

	files := collections.Apply(collections.Filter(report.Outcomes, Outcome.OK), func(o Outcome) ArchiveFile {
		return ArchiveFile{Name: o.Result.Filename, Content: o.Result.Record.Content}
	})

	archivePath, err := WriteArchive(opts.ArchiveDir, p.now(), files)
	if err != nil {
		return report, err
	}

	report.ArchivePath = archivePath
	logger.Info("Batch archive written", "path", archivePath, "files", len(files))

	return report, nil
}
