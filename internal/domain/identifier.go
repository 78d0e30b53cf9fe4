package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Delimiters of the two naming conventions a migration bridges: Dendron
// expresses hierarchy with dots in the file name, Logseq escapes hierarchy
// in page file names with triple underscores and joins journal dates with
// single underscores.
const (
	HierarchyDelimiter = "."
	PageDelimiter      = "___"
	JournalDelimiter   = "_"
)

// NoteExtension is the only file extension the migration considers.
const NoteExtension = ".md"

// IdentifierFromPath derives the hierarchical note identifier from a source
// file path by stripping the directory and the .md extension.
// e.g., "/vault/projects.alpha.notes.md" -> "projects.alpha.notes"
//
// The identifier is not validated: names with empty segments (doubled,
// leading, or trailing dots) are accepted source behavior and pass through
// unchanged.
func IdentifierFromPath(filePath string) string {
	return strings.TrimSuffix(filepath.Base(filePath), NoteExtension)
}

// Segments splits an identifier into its dot-delimited hierarchy segments.
// e.g., "daily.2024.01.15" -> ["daily", "2024", "01", "15"]
func Segments(identifier string) []string {
	return strings.Split(identifier, HierarchyDelimiter)
}

// FlattenPage renders an identifier as a flat Logseq page name, replacing
// every hierarchy delimiter with the triple-underscore escape.
// e.g., "projects.alpha.notes" -> "projects___alpha___notes"
//
// The result never contains a dot. The escape is reversible via ExpandPage
// as long as the identifier itself contains no triple-underscore run.
func FlattenPage(identifier string) string {
	return strings.Join(Segments(identifier), PageDelimiter)
}

// ExpandPage reverses FlattenPage, recovering the dot-delimited identifier
// from a flattened page name. Lossy when the original identifier contained
// a literal triple underscore.
// e.g., "projects___alpha___notes" -> "projects.alpha.notes"
func ExpandPage(pageName string) string {
	return strings.ReplaceAll(pageName, PageDelimiter, HierarchyDelimiter)
}

// FlattenJournalSuffix renders the date portion of a journal identifier as a
// Logseq journal name: the journal root prefix is removed and every
// remaining hierarchy delimiter becomes a single underscore.
// e.g., ("daily.2024.01.15", "daily") -> "2024_01_15"
//
// Callers must gate on IsJournalEntry first. Requesting a journal suffix
// without a configured root returns ErrNoJournalRoot; an identifier outside
// the journal subtree is rejected as well.
func FlattenJournalSuffix(identifier, journalRoot string) (string, error) {
	if journalRoot == "" {
		return "", ErrNoJournalRoot
	}

	prefix := journalRoot + HierarchyDelimiter
	if !strings.HasPrefix(identifier, prefix) {
		return "", fmt.Errorf("identifier %s is not under journal root %s", identifier, journalRoot)
	}

	return strings.Join(Segments(identifier[len(prefix):]), JournalDelimiter), nil
}
