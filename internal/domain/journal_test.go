package domain

import "testing"

func TestIsJournalEntry(t *testing.T) {
	tests := []struct {
		name        string
		identifier  string
		journalRoot string
		expected    bool
	}{
		{"date entry under root", "daily.2024.01.15", "daily", true},
		{"direct child of root", "daily.2024", "daily", true},
		{"root itself is not a member", "daily", "daily", false},
		{"unrelated identifier", "projects.alpha", "daily", false},
		{"shared prefix is not membership", "dailyplanner.2024", "daily", false},
		{"no root disables classification", "daily.2024.01.15", "", false},
		{"multi-segment root member", "log.daily.2024", "log.daily", true},
		{"multi-segment root itself", "log.daily", "log.daily", false},
		{"empty identifier", "", "daily", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsJournalEntry(tt.identifier, tt.journalRoot)
			if got != tt.expected {
				t.Errorf("IsJournalEntry(%q, %q): expected %v, got %v",
					tt.identifier, tt.journalRoot, tt.expected, got)
			}
		})
	}
}
