package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"trasloco/internal/adapters/filesystem"
	"trasloco/internal/application"
	"trasloco/internal/domain"
)

// writeVault materializes a source vault with the given file names.
func writeVault(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create vault dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write vault note: %v", err)
		}
	}
	return root
}

func sourceFiles() map[string]string {
	return map[string]string{
		"daily.2024.01.15.md":     "---\ntitle: Jan 15\n---\n\n- morning\n",
		"daily.2024.01.md":        "dotted month\n",
		"daily.2024_01.md":        "underscore month\n",
		"daily.md":                "journal root note\n",
		"inbox.md":                "---\ntitle: Inbox\n---\n\nstuff\n",
		"projects.alpha.notes.md": "---\ntitle: Notes\n---\n\nalpha\n",
		"projects.beta.notes.md":  "---\ntitle: Notes\n---\n\nbeta\n",
	}
}

func TestPlanCommand_Validate(t *testing.T) {
	tests := []struct {
		name     string
		bindings []domain.VaultBinding
		wantErr  bool
		errMsg   string
	}{
		{
			name: "valid binding",
			bindings: []domain.VaultBinding{
				{SourceRoot: "/v", DestinationRoot: "/g", JournalRoot: "daily"},
			},
			wantErr: false,
		},
		{
			name:     "no bindings",
			bindings: nil,
			wantErr:  true,
			errMsg:   "no vaults configured",
		},
		{
			name: "missing source root",
			bindings: []domain.VaultBinding{
				{DestinationRoot: "/g"},
			},
			wantErr: true,
			errMsg:  "source root is required",
		},
		{
			name: "missing destination root",
			bindings: []domain.VaultBinding{
				{SourceRoot: "/v"},
			},
			wantErr: true,
			errMsg:  "destination root is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewPlanCommand(filesystem.NewScanner(), tt.bindings)
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestPlanCommand_Execute(t *testing.T) {
	source := writeVault(t, sourceFiles())
	dest := filepath.Join(t.TempDir(), "graph")
	binding := domain.VaultBinding{SourceRoot: source, DestinationRoot: dest, JournalRoot: "daily"}

	cmd := NewPlanCommand(filesystem.NewScanner(), []domain.VaultBinding{binding})
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Failed() {
		t.Fatalf("expected a clean plan, got %v", result.Vaults[0].Err)
	}
	if result.TotalNotes() != 7 {
		t.Errorf("expected 7 notes, got %d", result.TotalNotes())
	}
	if result.TotalJournals() != 3 {
		t.Errorf("expected 3 journals, got %d", result.TotalJournals())
	}
	if result.TotalPages() != 4 {
		t.Errorf("expected 4 pages, got %d", result.TotalPages())
	}
	if result.TotalCollisions() != 1 {
		t.Errorf("expected 1 collision, got %d", result.TotalCollisions())
	}

	// Nothing may be written during planning.
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("expected the destination to stay untouched")
	}
}

func TestPlanCommand_VaultIsolation(t *testing.T) {
	source := writeVault(t, map[string]string{"inbox.md": "stuff\n"})
	dest := filepath.Join(t.TempDir(), "graph")

	bindings := []domain.VaultBinding{
		{SourceRoot: "/nonexistent/vault", DestinationRoot: dest},
		{SourceRoot: source, DestinationRoot: dest},
	}

	cmd := NewPlanCommand(filesystem.NewScanner(), bindings)
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Vaults[0].Err == nil {
		t.Error("expected an error for the missing vault")
	}
	var vaultErr *application.VaultError
	if !errors.As(result.Vaults[0].Err, &vaultErr) {
		t.Errorf("expected a VaultError, got %T", result.Vaults[0].Err)
	}

	if result.Vaults[1].Err != nil {
		t.Errorf("expected the healthy vault to plan cleanly, got %v", result.Vaults[1].Err)
	}
	if len(result.Vaults[1].Plan.Entries) != 1 {
		t.Errorf("expected 1 entry in the healthy vault, got %d", len(result.Vaults[1].Plan.Entries))
	}
}

func TestBuildPlan_WalkOrderIsDeterministic(t *testing.T) {
	source := writeVault(t, sourceFiles())
	binding := domain.VaultBinding{SourceRoot: source, DestinationRoot: "/g", JournalRoot: "daily"}

	first, err := BuildPlan(context.Background(), filesystem.NewScanner(), binding)
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}
	second, err := BuildPlan(context.Background(), filesystem.NewScanner(), binding)
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}

	if len(first.Entries) != len(second.Entries) {
		t.Fatalf("expected identical plans, got %d and %d entries",
			len(first.Entries), len(second.Entries))
	}
	for i := range first.Entries {
		if first.Entries[i] != second.Entries[i] {
			t.Errorf("expected stable entry %d, got %+v and %+v",
				i, first.Entries[i], second.Entries[i])
		}
	}
}
