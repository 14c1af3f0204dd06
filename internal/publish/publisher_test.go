package publish

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alkime/postauto/internal/catalog"
	"github.com/alkime/postauto/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestPublisher(policy DuplicatePolicy) (*Publisher, *store.MemoryStore) {
	mem := store.NewMemoryStore()
	pub := New(mem, Config{
		PostPrefix:  "blog/posts",
		CatalogPath: "blog_posts.json",
		Duplicates:  policy,
	}, testLogger())

	return pub, mem
}

func TestParseDuplicatePolicy(t *testing.T) {
	p, err := ParseDuplicatePolicy("overwrite")
	require.NoError(t, err)
	assert.Equal(t, DuplicateOverwrite, p)

	_, err = ParseDuplicatePolicy("version")
	assert.Error(t, err)
}

func TestPublish_CreatesUnderPrefix(t *testing.T) {
	ctx := context.Background()
	pub, mem := newTestPublisher(DuplicateReject)

	require.NoError(t, pub.Publish(ctx, "2024-03-14-ev.md", "EV", "---\nbody"))

	doc, err := mem.Get(ctx, "blog/posts/2024-03-14-ev.md")
	require.NoError(t, err)
	assert.Equal(t, "---\nbody", string(doc.Content))
	assert.Equal(t, []string{"Add blog post: EV"}, mem.Messages())
}

func TestPublish_DuplicateRejected(t *testing.T) {
	ctx := context.Background()
	pub, mem := newTestPublisher(DuplicateReject)

	require.NoError(t, pub.Publish(ctx, "same.md", "Same", "first"))
	err := pub.Publish(ctx, "same.md", "Same", "second")

	assert.ErrorIs(t, err, store.ErrConflict)

	body, err := pub.Fetch(ctx, "same.md")
	require.NoError(t, err)
	assert.Equal(t, "first", body)
	assert.Equal(t, 1, mem.Len())
}

func TestPublish_DuplicateOverwritten(t *testing.T) {
	ctx := context.Background()
	pub, mem := newTestPublisher(DuplicateOverwrite)

	require.NoError(t, pub.Publish(ctx, "same.md", "Same", "first"))
	require.NoError(t, pub.Publish(ctx, "same.md", "Same", "second"))
	require.NoError(t, pub.Publish(ctx, "same.md", "Same", "second"))

	body, err := pub.Fetch(ctx, "same.md")
	require.NoError(t, err)
	assert.Equal(t, "second", body)
	assert.Equal(t, []string{"Add blog post: Same", "Update blog post: Same", "Update blog post: Same"}, mem.Messages())
}

func TestUpsertCatalog_CreateThenUpdate(t *testing.T) {
	ctx := context.Background()
	pub, mem := newTestPublisher(DuplicateReject)

	first := []catalog.Record{{Filename: "a.md"}}
	require.NoError(t, pub.UpsertCatalog(ctx, first))

	second := append(first, catalog.Record{Filename: "b.md"})
	require.NoError(t, pub.UpsertCatalog(ctx, second))

	remote, err := pub.FetchCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, remote)
	assert.Equal(t, []string{"Create blog post metadata", "Update blog post metadata"}, mem.Messages())
}

// racingStore moves the catalog revision between the read and the write.
type racingStore struct {
	*store.MemoryStore
	raced bool
}

func (r *racingStore) Update(ctx context.Context, path, message string, content []byte, revision string) (string, error) {
	if !r.raced {
		r.raced = true
		if _, err := r.MemoryStore.Update(ctx, path, "concurrent writer", []byte("[]"), revision); err != nil {
			return "", err
		}
	}

	return r.MemoryStore.Update(ctx, path, message, content, revision)
}

func TestUpsertCatalog_ConcurrentWriterConflicts(t *testing.T) {
	ctx := context.Background()
	racing := &racingStore{MemoryStore: store.NewMemoryStore()}
	_, err := racing.Create(ctx, "blog_posts.json", "seed", []byte("[]"))
	require.NoError(t, err)

	pub := New(racing, Config{PostPrefix: "blog/posts", CatalogPath: "blog_posts.json"}, testLogger())

	err = pub.UpsertCatalog(ctx, []catalog.Record{{Filename: "a.md"}})

	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestFetch_NotFound(t *testing.T) {
	pub, _ := newTestPublisher(DuplicateReject)

	_, err := pub.Fetch(context.Background(), "missing.md")

	assert.ErrorIs(t, err, store.ErrNotFound)
}
