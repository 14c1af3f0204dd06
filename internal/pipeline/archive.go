package pipeline

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alkime/postauto/internal/content"
)

// ArchiveFile is one entry of a batch archive.
type ArchiveFile struct {
	Name    string
	Content string
}

// WriteArchive zips files into dir under the dated archive name and returns
// the archive path. An existing archive for the same date is replaced only
// once the new one is complete; a failed write leaves nothing behind.
func WriteArchive(dir string, now time.Time, files []ArchiveFile) (path string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	archivePath := filepath.Join(dir, content.ArchiveName(now))

	tmp, err := os.CreateTemp(dir, ".archive-*.zip")
	if err != nil {
		return "", fmt.Errorf("failed to create archive %s: %w", archivePath, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	//nolint:gosec // Archives are served for download
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to set archive permissions: %w", err)
	}

	if err := writeZip(tmp, files); err != nil {
		_ = tmp.Close()
		return "", err
	}

	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close archive: %w", err)
	}

	if err := os.Rename(tmp.Name(), archivePath); err != nil {
		return "", fmt.Errorf("failed to move archive into place: %w", err)
	}

	return archivePath, nil
}

func writeZip(w io.Writer, files []ArchiveFile) error {
	zw := zip.NewWriter(w)
	for _, file := range files {
		fw, err := zw.Create(file.Name)
		if err != nil {
			return errors.Join(fmt.Errorf("failed to add %s to archive: %w", file.Name, err), zw.Close())
		}

		if _, err := io.WriteString(fw, file.Content); err != nil {
			return errors.Join(fmt.Errorf("failed to write %s to archive: %w", file.Name, err), zw.Close())
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}

	return nil
}
