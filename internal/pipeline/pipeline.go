// Package pipeline turns a topic into a published blog post and drives the
// same chain over batches of topics.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alkime/postauto/internal/catalog"
	"github.com/alkime/postauto/internal/content"
)

// ErrInvalidRequest is returned when a request lacks topic, category or
// instructions.
var ErrInvalidRequest = errors.New("invalid post request")

// Request is one post to generate.
type Request struct {
	Topic        string
	Category     string
	Instructions string
}

func (r Request) validate() error {
	var missing []string
	if strings.TrimSpace(r.Topic) == "" {
		missing = append(missing, "topic")
	}
	if strings.TrimSpace(r.Category) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(r.Instructions) == "" {
		missing = append(missing, "instructions")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidRequest, strings.Join(missing, ", "))
	}

	return nil
}

// Result is a published post.
type Result struct {
	Filename   string
	RemotePath string
	Document   content.Document
	Record     catalog.Record
	Assessment content.Assessment
}

// Pipeline generates, scores and publishes posts.
type Pipeline struct {
	generator content.Generator
	evaluator content.Evaluator
	session   *Session
	logger    *slog.Logger
	now       func() time.Time
}

// Option customises a Pipeline.
type Option func(*Pipeline)

// WithClock replaces time.Now, which drives filenames and timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// New creates a Pipeline.
func New(
	generator content.Generator,
	evaluator content.Evaluator,
	session *Session,
	logger *slog.Logger,
	opts ...Option,
) *Pipeline {
	p := &Pipeline{
		generator: generator,
		evaluator: evaluator,
		session:   session,
		logger:    logger,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Session returns the pipeline's application state.
func (p *Pipeline) Session() *Session {
	return p.session
}

// Generate runs the full single-post chain for req.
func (p *Pipeline) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	prompt := content.BuildPrompt(req.Instructions, req.Topic, req.Category)

	p.logger.Info("Generating post", "topic", req.Topic, "category", req.Category)

	res, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generation failed for %q: %w", req.Topic, err)
	}

	doc, err := content.NormalizeResult(res, req.Topic)
	if err != nil {
		return nil, err
	}

	now := p.now()
	filename := content.Filename(req.Topic, now)
	assessment := p.evaluate(ctx, doc)

	rec := catalog.NewRecord(filename, req.Topic, req.Category, doc.Tags, doc.String(), now)
	if err := p.session.Commit(ctx, rec); err != nil {
		return nil, err
	}

	p.logger.Info("Post generated",
		"filename", filename,
		"tags", doc.Tags,
		"score", assessment.Score,
	)

	return &Result{
		Filename:   filename,
		RemotePath: p.session.publisher.PostPath(filename),
		Document:   doc,
		Record:     rec,
		Assessment: assessment,
	}, nil
}

func (p *Pipeline) evaluate(ctx context.Context, doc content.Document) content.Assessment {
	if p.evaluator == nil {
		return content.NeutralAssessment()
	}

	assessment, err := p.evaluator.Evaluate(ctx, doc.String())
	if err != nil {
		p.logger.Warn("Quality assessment failed", "error", err)
		return content.NeutralAssessment()
	}

	return assessment
}
