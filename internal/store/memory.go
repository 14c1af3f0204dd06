package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store used for dry runs and tests.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]Document
	log  []string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]Document)}
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, path string) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[path]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", path, ErrNotFound)
	}

	doc.Content = append([]byte(nil), doc.Content...)

	return &doc, nil
}

// Create implements Store.
func (m *MemoryStore) Create(_ context.Context, path, message string, content []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[path]; ok {
		return "", fmt.Errorf("create %s: %w", path, ErrConflict)
	}

	return m.put(path, message, content), nil
}

// Update implements Store.
func (m *MemoryStore) Update(_ context.Context, path, message string, content []byte, revision string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[path]
	if !ok {
		return "", fmt.Errorf("update %s: %w", path, ErrNotFound)
	}

	if doc.Revision != revision {
		return "", fmt.Errorf("update %s at revision %s: %w", path, revision, ErrConflict)
	}

	return m.put(path, message, content), nil
}

// Messages returns the commit messages of all successful writes in order.
func (m *MemoryStore) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.log...)
}

// Len returns the number of stored documents.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.docs)
}

func (m *MemoryStore) put(path, message string, content []byte) string {
	rev := uuid.NewString()
	m.docs[path] = Document{
		Path:     path,
		Content:  append([]byte(nil), content...),
		Revision: rev,
	}
	m.log = append(m.log, message)

	return rev
}
