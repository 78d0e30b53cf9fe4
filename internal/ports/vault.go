package ports

import "trasloco/internal/domain"

// NoteScanner enumerates the markdown notes of a source vault.
type NoteScanner interface {
	// ScanNotes walks root and streams every note path over the returned
	// channel. The paths channel closes when the walk finishes; the error
	// channel then yields the terminal walk error, or nil. Unreadable
	// entries below the root are skipped, not fatal.
	ScanNotes(root string) (<-chan string, <-chan error)
}

// NoteCopier transfers one note byte-for-byte into the destination graph.
type NoteCopier interface {
	// Copy copies src to dst, creating dst's parent directory when
	// missing. An existing destination file is overwritten.
	Copy(src, dst string) error
}

// MetadataReader extracts frontmatter from a note file.
type MetadataReader interface {
	// Read returns the note's frontmatter mapping. Notes without a
	// frontmatter block yield an empty mapping, not an error.
	Read(path string) (domain.Metadata, error)
}
