package workdir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Override(t *testing.T) {
	root := filepath.Join(t.TempDir(), "state")

	d, err := Open(root)
	require.NoError(t, err)

	assert.Equal(t, root, d.Path())
	assert.Equal(t, filepath.Join(root, "blog_posts.json"), d.CatalogPath("nested/blog_posts.json"))
	assert.Equal(t, filepath.Join(root, "archives"), d.ArchiveDir())
	assert.Equal(t, filepath.Join(root, "postauto.log"), d.LogPath())

	require.NoError(t, d.Prep())
	info, err := os.Stat(d.ArchiveDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpen_Default(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	d, err := Open("")
	require.NoError(t, err)

	root, err := Root()
	require.NoError(t, err)
	assert.Equal(t, root, d.Path())
	assert.Equal(t, "PostAuto", filepath.Base(root))
}
