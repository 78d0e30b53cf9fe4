package sqlite

import (
	"database/sql"

	"trasloco/internal/domain"
	"trasloco/internal/ports"
)

// ledgerTx implements ports.LedgerTx
type ledgerTx struct {
	tx *sql.Tx
}

// Ensure ledgerTx implements LedgerTx
var _ ports.LedgerTx = (*ledgerTx)(nil)

// StageNote records one computed mapping with status staged.
func (t *ledgerTx) StageNote(runID string, m domain.Mapping, title string) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO notes (run_id, source_path, identifier, kind, destination_path, title, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, runID, m.SourcePath, m.Identifier, m.Kind.String(), m.DestinationPath,
		nullString(title), domain.StatusStaged)
	return err
}

// Commit commits the transaction
func (t *ledgerTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *ledgerTx) Rollback() error {
	return t.tx.Rollback()
}
