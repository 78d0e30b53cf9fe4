package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"trasloco/internal/ports"
)

// Copier implements ports.NoteCopier with plain byte-for-byte file copies.
// Note bodies are never rewritten; link translation is a separate concern.
type Copier struct{}

// NewCopier creates a filesystem copier.
func NewCopier() *Copier {
	return &Copier{}
}

// Interface compliance check
var _ ports.NoteCopier = (*Copier)(nil)

// Copy copies src to dst, creating dst's parent directory when missing. An
// existing destination is truncated; colliding destinations are reported by
// the plan, not refused here.
func (c *Copier) Copy(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source note: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination note: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", filepath.Base(src), err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to finish writing %s: %w", filepath.Base(dst), err)
	}
	return nil
}
