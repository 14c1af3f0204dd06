package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alkime/postauto/internal/catalog"
	"github.com/alkime/postauto/internal/publish"
	"github.com/alkime/postauto/internal/store"
)

// NotFoundPlaceholder is shown in place of a post the remote store cannot
// return.
const NotFoundPlaceholder = "파일을 찾을 수 없습니다."

// Session is the application state shared by every generation: the local
// catalog and the publisher that mirrors it remotely. It starts from the
// local mirror (empty when absent) and Close flushes anything the remote
// store has not yet acknowledged.
//
// A Session serves one pipeline run at a time; concurrent Commits may lose
// catalog updates.
type Session struct {
	catalog   *catalog.Catalog
	publisher *publish.Publisher
	logger    *slog.Logger
	dirty     bool
}

// OpenSession loads the local catalog at catalogPath.
func OpenSession(catalogPath string, publisher *publish.Publisher, logger *slog.Logger) (*Session, error) {
	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, err
	}

	logger.Debug("Session opened", "catalog", catalogPath, "records", cat.Len())

	return &Session{catalog: cat, publisher: publisher, logger: logger}, nil
}

// Commit publishes a post, records it locally and pushes the updated
// catalog. A republished filename replaces its earlier record. A failed
// publish leaves the catalog untouched.
func (s *Session) Commit(ctx context.Context, rec catalog.Record) error {
	if err := s.publisher.Publish(ctx, rec.Filename, rec.Topic, rec.Content); err != nil {
		return err
	}

	replaced, err := s.catalog.Upsert(rec)
	if err != nil {
		return fmt.Errorf("failed to save local catalog: %w", err)
	}
	if replaced {
		s.logger.Info("Catalog record replaced", "filename", rec.Filename)
	}

	if err := s.publisher.UpsertCatalog(ctx, s.catalog.Records()); err != nil {
		s.dirty = true
		return err
	}

	s.dirty = false

	return nil
}

// Sync replaces the local catalog with the remote catalog document. A
// missing remote document keeps the local catalog.
func (s *Session) Sync(ctx context.Context) error {
	records, err := s.publisher.FetchCatalog(ctx)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Info("No remote catalog yet", "records", s.catalog.Len())
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.catalog.Replace(records); err != nil {
		return err
	}

	s.dirty = false
	s.logger.Info("Catalog synced from remote store", "records", len(records))

	return nil
}

// Records returns the catalog in insertion order.
func (s *Session) Records() []catalog.Record {
	return s.catalog.Records()
}

// Find returns the record for filename.
func (s *Session) Find(filename string) (catalog.Record, bool) {
	return s.catalog.Find(filename)
}

// Fetch reads a published post from the remote store.
func (s *Session) Fetch(ctx context.Context, filename string) (string, error) {
	return s.publisher.Fetch(ctx, filename)
}

// View returns a published post for display. Any fetch failure yields
// NotFoundPlaceholder and found=false.
func (s *Session) View(ctx context.Context, filename string) (body string, found bool) {
	body, err := s.publisher.Fetch(ctx, filename)
	if err == nil {
		return body, true
	}

	if errors.Is(err, store.ErrNotFound) {
		s.logger.Warn("Post not found in remote store", "filename", filename)
	} else {
		s.logger.Error("Failed to fetch post", "filename", filename, "error", err)
	}

	return NotFoundPlaceholder, false
}

// Close saves the local mirror and retries a catalog push that failed
// during the session.
func (s *Session) Close(ctx context.Context) error {
	if err := s.catalog.Save(); err != nil {
		return err
	}

	if !s.dirty {
		return nil
	}

	s.logger.Info("Flushing catalog to remote store", "records", s.catalog.Len())

	if err := s.publisher.UpsertCatalog(ctx, s.catalog.Records()); err != nil {
		return fmt.Errorf("failed to flush catalog: %w", err)
	}

	s.dirty = false

	return nil
}
