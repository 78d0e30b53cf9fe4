package ports

import "trasloco/internal/domain"

// MigrationLedger records every migration run so collisions and duplicate
// titles can be reported after the fact. Recording is best effort: a broken
// ledger degrades reporting, never the copy itself.
type MigrationLedger interface {
	// Lifecycle
	Open(dbPath string) error
	Close() error

	// Run tracking
	BeginRun(binding domain.VaultBinding, dryRun bool) (string, error)
	FinishRun(runID string) error
	LastRunID() (string, error)

	// Batch staging (one transaction per vault plan)
	Begin() (LedgerTx, error)

	// Per-note status updates during the copy phase
	SetNoteStatus(runID, sourcePath, status string) error

	// Reporting
	Summary(runID string) (domain.MigrationStats, error)
	Collisions(runID string) ([]domain.Collision, error)
	DuplicateTitles(runID string) ([]domain.TitleGroup, error)
}

// LedgerTx stages the notes of one plan atomically.
type LedgerTx interface {
	StageNote(runID string, m domain.Mapping, title string) error

	// Transaction control
	Commit() error
	Rollback() error
}
