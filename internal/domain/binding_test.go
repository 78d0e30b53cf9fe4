package domain

import "testing"

func TestVaultBindingDirs(t *testing.T) {
	b := VaultBinding{SourceRoot: "/v", DestinationRoot: "/graph"}

	if got := b.PagesDir(); got != "/graph/pages" {
		t.Errorf("expected /graph/pages, got %s", got)
	}
	if got := b.JournalsDir(); got != "/graph/journals" {
		t.Errorf("expected /graph/journals, got %s", got)
	}
}

func TestVaultBindingDestinationPath(t *testing.T) {
	b := VaultBinding{SourceRoot: "/v", DestinationRoot: "/g", JournalRoot: "daily"}

	dest, err := b.DestinationPath("/v/daily.2024.01.15.md")
	if err != nil {
		t.Fatalf("DestinationPath failed: %v", err)
	}
	if dest != "/g/journals/2024_01_15.md" {
		t.Errorf("expected /g/journals/2024_01_15.md, got %s", dest)
	}
}

func TestVaultBindingContains(t *testing.T) {
	b := VaultBinding{SourceRoot: "/home/user/vault", DestinationRoot: "/g"}

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"file inside root", "/home/user/vault/daily.md", true},
		{"nested file", "/home/user/vault/sub/note.md", true},
		{"the root itself", "/home/user/vault", true},
		{"sibling with shared prefix", "/home/user/vault2/daily.md", false},
		{"outside entirely", "/tmp/daily.md", false},
		{"unclean path inside", "/home/user/vault/../vault/daily.md", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.path); got != tt.expected {
				t.Errorf("Contains(%q): expected %v, got %v", tt.path, tt.expected, got)
			}
		})
	}
}

func TestMatchBinding(t *testing.T) {
	bindings := []VaultBinding{
		{SourceRoot: "/vaults/work", DestinationRoot: "/graphs/work"},
		{SourceRoot: "/vaults/personal", DestinationRoot: "/graphs/personal"},
	}

	b, ok := MatchBinding(bindings, "/vaults/personal/daily.2024.01.15.md")
	if !ok {
		t.Fatal("expected a matching binding")
	}
	if b.DestinationRoot != "/graphs/personal" {
		t.Errorf("expected /graphs/personal, got %s", b.DestinationRoot)
	}

	if _, ok := MatchBinding(bindings, "/elsewhere/note.md"); ok {
		t.Error("expected no match for a path outside every vault")
	}
}
