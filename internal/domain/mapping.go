package domain

import "path/filepath"

// NoteKind classifies a source note by the destination shape it migrates to.
type NoteKind int

const (
	KindPage NoteKind = iota
	KindJournal
)

// String returns the kind name used in output and in the migration ledger.
func (k NoteKind) String() string {
	if k == KindJournal {
		return "journal"
	}
	return "page"
}

// ParseNoteKind converts a stored kind name back to a NoteKind. Unknown
// names fall back to page, the migration's default shape.
func ParseNoteKind(s string) NoteKind {
	if s == "journal" {
		return KindJournal
	}
	return KindPage
}

// Mapping is the computed migration of one source note: where it came from,
// the identifier it carries, and the single destination file it lands on.
type Mapping struct {
	SourcePath      string
	Identifier      string
	Kind            NoteKind
	DestinationPath string
}

// MapNote computes the destination for one source file under a binding. It
// is a pure function of the file name and the binding: journal entries land
// in journals/ with underscore-joined date names, everything else lands in
// pages/ with triple-underscore escaped names. Two distinct sources can map
// to the same destination; Plan.Collisions surfaces those.
//
// The only failure is a binding misconfiguration reported by
// FlattenJournalSuffix, which the IsJournalEntry gate makes unreachable for
// well-formed bindings.
func MapNote(b VaultBinding, sourcePath string) (Mapping, error) {
	identifier := IdentifierFromPath(sourcePath)

	if IsJournalEntry(identifier, b.JournalRoot) {
		suffix, err := FlattenJournalSuffix(identifier, b.JournalRoot)
		if err != nil {
			return Mapping{}, err
		}
		return Mapping{
			SourcePath:      sourcePath,
			Identifier:      identifier,
			Kind:            KindJournal,
			DestinationPath: filepath.Join(b.JournalsDir(), suffix+NoteExtension),
		}, nil
	}

	return Mapping{
		SourcePath:      sourcePath,
		Identifier:      identifier,
		Kind:            KindPage,
		DestinationPath: filepath.Join(b.PagesDir(), FlattenPage(identifier)+NoteExtension),
	}, nil
}
