package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"trasloco/internal/adapters/filesystem"
	"trasloco/internal/adapters/sqlite"
	"trasloco/internal/application"
	"trasloco/internal/domain"
	"trasloco/internal/ports"
)

func openTestLedger(t *testing.T) *sqlite.Ledger {
	t.Helper()

	ledger := sqlite.NewLedger()
	if err := ledger.Open(filepath.Join(t.TempDir(), "ledger.db")); err != nil {
		t.Fatalf("failed to open ledger: %v", err)
	}
	t.Cleanup(func() { ledger.Close() })
	return ledger
}

func newTestMigrate(ledger ports.MigrationLedger, bindings []domain.VaultBinding) *MigrateCommand {
	return NewMigrateCommand(
		filesystem.NewScanner(),
		filesystem.NewCopier(),
		filesystem.NewMetadataReader(),
		ledger,
		bindings,
	)
}

func assertFileContent(t *testing.T, path, expected string) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
		return
	}
	if string(data) != expected {
		t.Errorf("expected %s to contain %q, got %q", path, expected, string(data))
	}
}

func TestMigrateCommand_Execute(t *testing.T) {
	source := writeVault(t, sourceFiles())
	dest := filepath.Join(t.TempDir(), "graph")
	binding := domain.VaultBinding{SourceRoot: source, DestinationRoot: dest, JournalRoot: "daily"}

	ledger := openTestLedger(t)
	cmd := newTestMigrate(ledger, []domain.VaultBinding{binding})

	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Failed() {
		t.Fatalf("expected a clean migration, got %v", result.Vaults[0].Err)
	}

	vault := result.Vaults[0]
	if vault.Stats.Copied != 7 {
		t.Errorf("expected 7 copies, got %d", vault.Stats.Copied)
	}
	if vault.Stats.Failed != 0 || vault.Stats.Skipped != 0 {
		t.Errorf("expected no failures or skips, got %+v", vault.Stats)
	}
	if len(vault.Collisions) != 1 {
		t.Errorf("expected 1 reported collision, got %d", len(vault.Collisions))
	}

	// Journal entries land under journals/ with underscore-joined names.
	assertFileContent(t, filepath.Join(dest, "journals", "2024_01_15.md"),
		"---\ntitle: Jan 15\n---\n\n- morning\n")

	// Pages land under pages/ with triple-underscore escapes.
	assertFileContent(t, filepath.Join(dest, "pages", "projects___alpha___notes.md"),
		"---\ntitle: Notes\n---\n\nalpha\n")
	assertFileContent(t, filepath.Join(dest, "pages", "daily.md"), "journal root note\n")
	assertFileContent(t, filepath.Join(dest, "pages", "inbox.md"),
		"---\ntitle: Inbox\n---\n\nstuff\n")

	// Without strict mode both collision claims are copied in walk order,
	// so the later source wins the shared destination.
	assertFileContent(t, filepath.Join(dest, "journals", "2024_01.md"), "underscore month\n")

	// The run is recorded with its duplicate titles.
	if vault.RunID == "" {
		t.Fatal("expected a recorded run ID")
	}
	titles, err := ledger.DuplicateTitles(vault.RunID)
	if err != nil {
		t.Fatalf("DuplicateTitles failed: %v", err)
	}
	if len(titles) != 1 || titles[0].Title != "Notes" {
		t.Errorf("expected one duplicate title group for Notes, got %v", titles)
	}
}

func TestMigrateCommand_DryRun(t *testing.T) {
	source := writeVault(t, sourceFiles())
	dest := filepath.Join(t.TempDir(), "graph")
	binding := domain.VaultBinding{SourceRoot: source, DestinationRoot: dest, JournalRoot: "daily"}

	ledger := openTestLedger(t)
	cmd := newTestMigrate(ledger, []domain.VaultBinding{binding})
	cmd.DryRun = true

	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	vault := result.Vaults[0]
	if vault.Stats.Copied != 0 {
		t.Errorf("expected no copies in a dry run, got %d", vault.Stats.Copied)
	}
	if vault.Stats.NotesScanned != 7 {
		t.Errorf("expected 7 scanned notes, got %d", vault.Stats.NotesScanned)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("expected the destination to stay untouched in a dry run")
	}

	// A dry run still stages the plan, so reports work before committing.
	report, err := NewReportCommand(ledger, vault.RunID).Execute(context.Background())
	if err != nil {
		t.Fatalf("report after dry run failed: %v", err)
	}
	if len(report.Collisions) != 1 {
		t.Errorf("expected 1 collision in the dry-run report, got %d", len(report.Collisions))
	}
}

func TestMigrateCommand_Strict(t *testing.T) {
	source := writeVault(t, sourceFiles())
	dest := filepath.Join(t.TempDir(), "graph")
	binding := domain.VaultBinding{SourceRoot: source, DestinationRoot: dest, JournalRoot: "daily"}

	cmd := newTestMigrate(openTestLedger(t), []domain.VaultBinding{binding})
	cmd.Strict = true

	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	vault := result.Vaults[0]
	if !errors.Is(vault.Err, application.ErrDestinationCollision) {
		t.Errorf("expected a collision failure, got %v", vault.Err)
	}
	if vault.Stats.Skipped != 2 {
		t.Errorf("expected both collision claims skipped, got %d", vault.Stats.Skipped)
	}
	if vault.Stats.Copied != 5 {
		t.Errorf("expected 5 copies, got %d", vault.Stats.Copied)
	}

	// The contested destination is never written.
	if _, err := os.Stat(filepath.Join(dest, "journals", "2024_01.md")); !os.IsNotExist(err) {
		t.Error("expected the contested destination to stay unwritten in strict mode")
	}

	// Uncontested notes still migrate.
	assertFileContent(t, filepath.Join(dest, "pages", "inbox.md"),
		"---\ntitle: Inbox\n---\n\nstuff\n")
}

func TestMigrateCommand_VaultIsolation(t *testing.T) {
	source := writeVault(t, map[string]string{"inbox.md": "stuff\n"})
	dest := filepath.Join(t.TempDir(), "graph")

	bindings := []domain.VaultBinding{
		{SourceRoot: "/nonexistent/vault", DestinationRoot: dest},
		{SourceRoot: source, DestinationRoot: dest},
	}

	cmd := newTestMigrate(openTestLedger(t), bindings)
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Vaults[0].Err == nil {
		t.Error("expected an error for the missing vault")
	}
	if result.Vaults[1].Err != nil {
		t.Errorf("expected the healthy vault to migrate, got %v", result.Vaults[1].Err)
	}
	assertFileContent(t, filepath.Join(dest, "pages", "inbox.md"), "stuff\n")
}

func TestMigrateCommand_Validate(t *testing.T) {
	cmd := newTestMigrate(openTestLedger(t), nil)

	err := cmd.Validate()
	if !errors.Is(err, application.ErrNoVaults) {
		t.Errorf("expected ErrNoVaults, got %v", err)
	}
}

// failLedger simulates a broken ledger database.
type failLedger struct{}

var errLedgerDown = errors.New("ledger unavailable")

func (f *failLedger) Open(string) error { return errLedgerDown }
func (f *failLedger) Close() error      { return nil }
func (f *failLedger) BeginRun(domain.VaultBinding, bool) (string, error) {
	return "", errLedgerDown
}
func (f *failLedger) FinishRun(string) error     { return errLedgerDown }
func (f *failLedger) LastRunID() (string, error) { return "", errLedgerDown }
func (f *failLedger) Begin() (ports.LedgerTx, error) {
	return nil, errLedgerDown
}
func (f *failLedger) SetNoteStatus(string, string, string) error { return errLedgerDown }
func (f *failLedger) Summary(string) (domain.MigrationStats, error) {
	return domain.MigrationStats{}, errLedgerDown
}
func (f *failLedger) Collisions(string) ([]domain.Collision, error) {
	return nil, errLedgerDown
}
func (f *failLedger) DuplicateTitles(string) ([]domain.TitleGroup, error) {
	return nil, errLedgerDown
}

func TestMigrateCommand_LedgerFailureDoesNotBlockCopies(t *testing.T) {
	source := writeVault(t, map[string]string{"inbox.md": "stuff\n"})
	dest := filepath.Join(t.TempDir(), "graph")
	binding := domain.VaultBinding{SourceRoot: source, DestinationRoot: dest}

	cmd := newTestMigrate(&failLedger{}, []domain.VaultBinding{binding})
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	vault := result.Vaults[0]
	if vault.Err != nil {
		t.Errorf("expected the migration to survive a broken ledger, got %v", vault.Err)
	}
	if vault.RunID != "" {
		t.Errorf("expected no run ID from a broken ledger, got %s", vault.RunID)
	}
	if vault.Stats.Copied != 1 {
		t.Errorf("expected 1 copy, got %d", vault.Stats.Copied)
	}
	assertFileContent(t, filepath.Join(dest, "pages", "inbox.md"), "stuff\n")
}
