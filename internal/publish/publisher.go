// Package publish writes posts and the catalog document to the remote store.
package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/alkime/postauto/internal/catalog"
	"github.com/alkime/postauto/internal/store"
)

// DuplicatePolicy decides what happens when a post path already exists.
type DuplicatePolicy string

const (
	// DuplicateReject surfaces store.ErrConflict to the caller.
	DuplicateReject DuplicatePolicy = "reject"
	// DuplicateOverwrite replaces the existing post at its current revision.
	DuplicateOverwrite DuplicatePolicy = "overwrite"
)

// ParseDuplicatePolicy validates a policy name.
func ParseDuplicatePolicy(name string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(name) {
	case DuplicateReject, DuplicateOverwrite:
		return DuplicatePolicy(name), nil
	default:
		return "", fmt.Errorf("invalid duplicate policy %q: must be 'reject' or 'overwrite'", name)
	}
}

// Config locates posts and the catalog document in the store.
type Config struct {
	PostPrefix  string
	CatalogPath string
	Duplicates  DuplicatePolicy
}

// Publisher writes posts and the catalog document. Catalog updates are
// optimistic: a concurrent writer makes UpsertCatalog fail with
// store.ErrConflict rather than merge.
type Publisher struct {
	store  store.Store
	cfg    Config
	logger *slog.Logger
}

// New creates a Publisher.
func New(s store.Store, cfg Config, logger *slog.Logger) *Publisher {
	if cfg.Duplicates == "" {
		cfg.Duplicates = DuplicateReject
	}

	return &Publisher{store: s, cfg: cfg, logger: logger}
}

// PostPath returns the remote path of a post file.
func (p *Publisher) PostPath(filename string) string {
	return path.Join(p.cfg.PostPrefix, filename)
}

// Publish creates the post file for filename.
func (p *Publisher) Publish(ctx context.Context, filename, topic, content string) error {
	postPath := p.PostPath(filename)

	_, err := p.store.Create(ctx, postPath, fmt.Sprintf("Add blog post: %s", topic), []byte(content))
	if err == nil {
		p.logger.Info("Post published", "path", postPath)
		return nil
	}

	if !errors.Is(err, store.ErrConflict) || p.cfg.Duplicates != DuplicateOverwrite {
		return fmt.Errorf("failed to publish %s: %w", postPath, err)
	}

	p.logger.Warn("Post already exists, overwriting", "path", postPath)

	existing, err := p.store.Get(ctx, postPath)
	if err != nil {
		return fmt.Errorf("failed to read existing post %s: %w", postPath, err)
	}

	_, err = p.store.Update(ctx, postPath, fmt.Sprintf("Update blog post: %s", topic), []byte(content), existing.Revision)
	if err != nil {
		return fmt.Errorf("failed to overwrite %s: %w", postPath, err)
	}

	p.logger.Info("Post overwritten", "path", postPath)

	return nil
}

// UpsertCatalog replaces the remote catalog document with records, creating
// it when absent.
func (p *Publisher) UpsertCatalog(ctx context.Context, records []catalog.Record) error {
	data, err := catalog.Marshal(records)
	if err != nil {
		return err
	}

	current, err := p.store.Get(ctx, p.cfg.CatalogPath)
	switch {
	case errors.Is(err, store.ErrNotFound):
		if _, err := p.store.Create(ctx, p.cfg.CatalogPath, "Create blog post metadata", data); err != nil {
			return fmt.Errorf("failed to create catalog: %w", err)
		}

		p.logger.Info("Catalog created", "path", p.cfg.CatalogPath, "records", len(records))

		return nil
	case err != nil:
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	if _, err := p.store.Update(ctx, p.cfg.CatalogPath, "Update blog post metadata", data, current.Revision); err != nil {
		return fmt.Errorf("failed to update catalog: %w", err)
	}

	p.logger.Info("Catalog updated", "path", p.cfg.CatalogPath, "records", len(records))

	return nil
}

// Fetch reads a published post. A missing post yields store.ErrNotFound.
func (p *Publisher) Fetch(ctx context.Context, filename string) (string, error) {
	doc, err := p.store.Get(ctx, p.PostPath(filename))
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", filename, err)
	}

	return string(doc.Content), nil
}

// FetchCatalog reads the remote catalog document.
func (p *Publisher) FetchCatalog(ctx context.Context) ([]catalog.Record, error) {
	doc, err := p.store.Get(ctx, p.cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	return catalog.Unmarshal(doc.Content)
}
