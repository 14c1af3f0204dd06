// Package store provides access to the remote content store that holds
// published posts and the catalog document.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when the requested path does not exist.
	ErrNotFound = errors.New("remote path not found")
	// ErrConflict is returned when a write loses against the current remote
	// state: creating a path that exists, or updating with a stale revision.
	ErrConflict = errors.New("remote write conflict")
)

// Document is a remote file and the revision marker needed to update it.
type Document struct {
	Path     string
	Content  []byte
	Revision string
}

// Store is a path-addressed document API.
type Store interface {
	// Get reads the document at path.
	Get(ctx context.Context, path string) (*Document, error)
	// Create writes a new document and returns its revision marker.
	Create(ctx context.Context, path, message string, content []byte) (string, error)
	// Update replaces a document if revision is still current and returns the
	// new revision marker.
	Update(ctx context.Context, path, message string, content []byte, revision string) (string, error)
}
