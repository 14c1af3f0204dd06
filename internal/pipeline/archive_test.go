package pipeline

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alkime/postauto/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteArchive_ReplacesPreviousArchive(t *testing.T) {
	dir := t.TempDir()

	_, err := WriteArchive(dir, fixedClock(), []ArchiveFile{{Name: "old.md", Content: "old"}})
	require.NoError(t, err)

	path, err := WriteArchive(dir, fixedClock(), []ArchiveFile{{Name: "new.md", Content: "새 글"}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2024-03-14-blog-files.zip"), path)

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	require.Len(t, zr.File, 1)
	assert.Equal(t, "new.md", zr.File[0].Name)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteArchive_FailureLeavesNothingBehind(t *testing.T) {
	dir := t.TempDir()

	// A non-empty directory at the archive path cannot be replaced.
	blocked := filepath.Join(dir, content.ArchiveName(fixedClock()))
	require.NoError(t, os.MkdirAll(filepath.Join(blocked, "keep"), 0o755))

	_, err := WriteArchive(dir, fixedClock(), []ArchiveFile{{Name: "a.md", Content: "a"}})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(blocked), entries[0].Name())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteZip_ReportsWriteErrors(t *testing.T) {
	files := []ArchiveFile{{Name: "a.md", Content: "a"}}

	assert.ErrorContains(t, writeZip(failingWriter{}, files), "disk full")
	assert.NoError(t, writeZip(io.Discard, files))
}
