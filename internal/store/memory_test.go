package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "blog_posts.json")
	require.ErrorIs(t, err, ErrNotFound)

	rev1, err := s.Create(ctx, "blog_posts.json", "create", []byte("[]"))
	require.NoError(t, err)
	assert.NotEmpty(t, rev1)

	doc, err := s.Get(ctx, "blog_posts.json")
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), doc.Content)
	assert.Equal(t, rev1, doc.Revision)

	rev2, err := s.Update(ctx, "blog_posts.json", "update", []byte(`[{"a":1}]`), rev1)
	require.NoError(t, err)
	assert.NotEqual(t, rev1, rev2)

	assert.Equal(t, []string{"create", "update"}, s.Messages())
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_CreateExistingConflicts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Create(ctx, "post.md", "first", []byte("a"))
	require.NoError(t, err)

	_, err = s.Create(ctx, "post.md", "second", []byte("b"))
	assert.ErrorIs(t, err, ErrConflict)

	doc, err := s.Get(ctx, "post.md")
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), doc.Content)
}

func TestMemoryStore_StaleRevisionConflicts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	rev, err := s.Create(ctx, "catalog.json", "create", []byte("[]"))
	require.NoError(t, err)

	_, err = s.Update(ctx, "catalog.json", "writer A", []byte("[1]"), rev)
	require.NoError(t, err)

	_, err = s.Update(ctx, "catalog.json", "writer B", []byte("[2]"), rev)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMemoryStore_UpdateMissing(t *testing.T) {
	_, err := NewMemoryStore().Update(context.Background(), "nope", "m", nil, "rev")

	assert.ErrorIs(t, err, ErrNotFound)
}
