package filesystem

import (
	"os"
	"path/filepath"
	"strings"

	"trasloco/internal/ports"
)

// Scanner implements ports.NoteScanner over the local filesystem.
type Scanner struct{}

// NewScanner creates a filesystem note scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Interface compliance check
var _ ports.NoteScanner = (*Scanner)(nil)

// ScanNotes walks root and streams every markdown file path over a channel,
// so the mapping step consumes paths while the walk is still running.
// Hidden directories (.obsidian, .git, trash folders) are skipped.
// Unreadable entries below the root are skipped; a missing or unreadable
// root fails the walk.
func (s *Scanner) ScanNotes(root string) (<-chan string, <-chan error) {
	paths := make(chan string, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(paths)
		defer close(errCh)

		errCh <- filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				if path == root {
					return err
				}
				return nil // Skip unreadable entries
			}

			if info.IsDir() {
				if strings.HasPrefix(info.Name(), ".") && path != root {
					return filepath.SkipDir
				}
				return nil
			}

			if strings.HasSuffix(strings.ToLower(info.Name()), ".md") {
				paths <- path
			}
			return nil
		})
	}()

	return paths, errCh
}
