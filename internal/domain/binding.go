package domain

import (
	"path/filepath"
	"strings"
)

// Logseq keeps regular pages and dated journal entries in two fixed
// top-level folders of the graph.
const (
	JournalsFolder = "journals"
	PagesFolder    = "pages"
)

// VaultBinding pairs one source vault with one destination graph.
// JournalRoot names the identifier subtree holding dated entries (a root of
// "daily" classifies daily.2024.01.15 as a journal); when empty, journal
// classification is disabled and every note becomes a page.
//
// A binding is plain immutable configuration and is shared by value.
type VaultBinding struct {
	SourceRoot      string
	DestinationRoot string
	JournalRoot     string
}

// JournalsDir returns the destination folder for journal entries.
func (b VaultBinding) JournalsDir() string {
	return filepath.Join(b.DestinationRoot, JournalsFolder)
}

// PagesDir returns the destination folder for regular pages.
func (b VaultBinding) PagesDir() string {
	return filepath.Join(b.DestinationRoot, PagesFolder)
}

// DestinationPath computes the destination file for one source path.
// It is a convenience wrapper around MapNote.
func (b VaultBinding) DestinationPath(sourcePath string) (string, error) {
	m, err := MapNote(b, sourcePath)
	if err != nil {
		return "", err
	}
	return m.DestinationPath, nil
}

// Contains reports whether a source path lies under the binding's source
// root. The comparison is lexical, so callers should pass paths in the same
// form (absolute or relative) as the configured root.
func (b VaultBinding) Contains(sourcePath string) bool {
	root := filepath.Clean(b.SourceRoot)
	path := filepath.Clean(sourcePath)
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}

// MatchBinding returns the first binding whose source root contains the
// given path.
func MatchBinding(bindings []VaultBinding, sourcePath string) (VaultBinding, bool) {
	for _, b := range bindings {
		if b.Contains(sourcePath) {
			return b, true
		}
	}
	return VaultBinding{}, false
}
