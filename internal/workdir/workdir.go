// Package workdir lays out the local state directory: the catalog mirror,
// batch archives, logs and instruction drafts.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dir is a resolved state directory.
type Dir struct {
	root string
}

// Root returns the default state directory. The path is expanded at runtime
// to resolve to:
//
//	$HOME/Documents/Alkime/PostAuto
func Root() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, "Documents", "Alkime", "PostAuto"), nil
}

// Open resolves the state directory. An empty override selects Root.
func Open(override string) (Dir, error) {
	if override != "" {
		return Dir{root: override}, nil
	}

	root, err := Root()
	if err != nil {
		return Dir{}, err
	}

	return Dir{root: root}, nil
}

// Path returns the state directory itself.
func (d Dir) Path() string {
	return d.root
}

// CatalogPath returns the local catalog mirror named name.
func (d Dir) CatalogPath(name string) string {
	return filepath.Join(d.root, filepath.Base(name))
}

// ArchiveDir returns the directory batch archives are written to.
func (d Dir) ArchiveDir() string {
	return filepath.Join(d.root, "archives")
}

// LogPath returns the log file used while a TUI owns the terminal.
func (d Dir) LogPath() string {
	return filepath.Join(d.root, "postauto.log")
}

// InstructionsPath returns the draft edited by generate --edit.
func (d Dir) InstructionsPath() string {
	return filepath.Join(d.root, "instructions.md")
}

// Prep ensures that the state directory and its archive directory exist.
func (d Dir) Prep() error {
	if err := os.MkdirAll(d.ArchiveDir(), 0755); err != nil {
		return fmt.Errorf("failed to create state directory %s: %w", d.root, err)
	}

	return nil
}
