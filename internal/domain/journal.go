package domain

import (
	"errors"
	"strings"
)

// ErrNoJournalRoot reports a journal-name operation on a binding without a
// configured journal root. Callers that gate on IsJournalEntry never see it.
var ErrNoJournalRoot = errors.New("journal root not configured")

// IsJournalEntry reports whether an identifier belongs to the journal
// subtree rooted at journalRoot. With no journal root configured nothing is
// a journal entry. The root note itself is not a member; only its dotted
// descendants are, so "daily.md" migrates as a regular page even when the
// journal root is "daily".
// e.g., ("daily.2024.01.15", "daily") -> true
// e.g., ("daily", "daily") -> false
// e.g., ("dailyplanner.2024", "daily") -> false
func IsJournalEntry(identifier, journalRoot string) bool {
	if journalRoot == "" {
		return false
	}
	return strings.HasPrefix(identifier, journalRoot+HierarchyDelimiter)
}
