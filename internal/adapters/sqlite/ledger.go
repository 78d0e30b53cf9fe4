package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"trasloco/internal/domain"
	"trasloco/internal/ports"
)

const schemaVersion = "1"

// Ledger implements ports.MigrationLedger using SQLite. Every run is
// recorded with its full note manifest so collisions and duplicate titles
// can be reported after the copy finished.
type Ledger struct {
	db     *sql.DB
	dbPath string
}

// Ensure Ledger implements MigrationLedger
var _ ports.MigrationLedger = (*Ledger)(nil)

// NewLedger creates a new SQLite migration ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Open initializes the ledger database at dbPath. An empty path selects the
// default location under the XDG data directory.
func (l *Ledger) Open(dbPath string) error {
	if dbPath == "" {
		dbPath = DatabasePath()
	}

	// Expand ~ in path
	if len(dbPath) > 0 && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	l.dbPath = dbPath

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(l.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite3", l.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open ledger database: %w", err)
	}
	l.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source_root TEXT NOT NULL,
			destination_root TEXT NOT NULL,
			journal_root TEXT,
			dry_run INTEGER NOT NULL,
			started_at INTEGER NOT NULL,
			finished_at INTEGER
		);
		CREATE TABLE IF NOT EXISTS notes (
			run_id TEXT NOT NULL,
			source_path TEXT NOT NULL,
			identifier TEXT NOT NULL,
			kind TEXT NOT NULL,
			destination_path TEXT NOT NULL,
			title TEXT,
			status TEXT NOT NULL,
			PRIMARY KEY (run_id, source_path)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_notes_destination ON notes(run_id, destination_path);
		CREATE INDEX IF NOT EXISTS idx_notes_title ON notes(run_id, title);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup ledger database: %w", err)
	}

	if err := l.updateMeta(); err != nil {
		db.Close()
		return fmt.Errorf("failed to update ledger metadata: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// DatabasePath returns the default ledger location. Unlike a per-vault
// cache, the ledger is a single shared file: each run row carries its own
// vault roots.
func DatabasePath() string {
	// XDG data directory
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "trasloco", "ledger.db")
}

// updateMeta records the schema version
func (l *Ledger) updateMeta() error {
	_, err := l.db.Exec(`
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)
	`, schemaVersion)
	return err
}

// BeginRun opens a run for one binding and returns its ID.
func (l *Ledger) BeginRun(binding domain.VaultBinding, dryRun bool) (string, error) {
	runID := uuid.New().String()

	_, err := l.db.Exec(`
		INSERT INTO runs (id, source_root, destination_root, journal_root, dry_run, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, runID, binding.SourceRoot, binding.DestinationRoot, nullString(binding.JournalRoot),
		boolToInt(dryRun), time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}

	return runID, nil
}

// FinishRun stamps the run's completion time.
func (l *Ledger) FinishRun(runID string) error {
	_, err := l.db.Exec(`UPDATE runs SET finished_at = ? WHERE id = ?`,
		time.Now().Unix(), runID)
	return err
}

// LastRunID returns the most recently started run, or "" when the ledger is
// empty.
func (l *Ledger) LastRunID() (string, error) {
	var runID string
	err := l.db.QueryRow(`
		SELECT id FROM runs ORDER BY started_at DESC, rowid DESC LIMIT 1
	`).Scan(&runID)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return runID, nil
}

// SetNoteStatus updates one staged note's status during the copy phase.
func (l *Ledger) SetNoteStatus(runID, sourcePath, status string) error {
	_, err := l.db.Exec(`
		UPDATE notes SET status = ? WHERE run_id = ? AND source_path = ?
	`, status, runID, sourcePath)
	return err
}

// Summary tallies one run's note manifest back into per-kind and per-status
// counters. Duration spans started_at to finished_at and stays zero for a
// run that never finished.
func (l *Ledger) Summary(runID string) (domain.MigrationStats, error) {
	var stats domain.MigrationStats

	var started int64
	var finished sql.NullInt64
	err := l.db.QueryRow(`
		SELECT started_at, finished_at FROM runs WHERE id = ?
	`, runID).Scan(&started, &finished)
	if err == sql.ErrNoRows {
		return stats, fmt.Errorf("unknown run: %s", runID)
	}
	if err != nil {
		return stats, err
	}
	if finished.Valid {
		stats.Duration = time.Duration(finished.Int64-started) * time.Second
	}

	rows, err := l.db.Query(`SELECT kind, status FROM notes WHERE run_id = ?`, runID)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var kind, status string
		if err := rows.Scan(&kind, &status); err != nil {
			return stats, err
		}
		stats.NotesScanned++
		if domain.ParseNoteKind(kind) == domain.KindJournal {
			stats.Journals++
		} else {
			stats.Pages++
		}
		switch status {
		case domain.StatusCopied:
			stats.Copied++
		case domain.StatusSkipped:
			stats.Skipped++
		case domain.StatusFailed:
			stats.Failed++
		}
	}

	return stats, rows.Err()
}

// Collisions returns every destination claimed by more than one note in the
// given run, with the claiming sources in staging order.
func (l *Ledger) Collisions(runID string) ([]domain.Collision, error) {
	rows, err := l.db.Query(`
		SELECT destination_path, source_path
		FROM notes
		WHERE run_id = ? AND destination_path IN (
			SELECT destination_path FROM notes
			WHERE run_id = ?
			GROUP BY destination_path
			HAVING COUNT(*) > 1
		)
		ORDER BY destination_path, rowid
	`, runID, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return groupRows(rows, func(dest string, sources []string) domain.Collision {
		return domain.Collision{DestinationPath: dest, SourcePaths: sources}
	})
}

// DuplicateTitles returns every frontmatter title shared by more than one
// note in the given run.
func (l *Ledger) DuplicateTitles(runID string) ([]domain.TitleGroup, error) {
	rows, err := l.db.Query(`
		SELECT title, source_path
		FROM notes
		WHERE run_id = ? AND title IS NOT NULL AND title != '' AND title IN (
			SELECT title FROM notes
			WHERE run_id = ? AND title IS NOT NULL AND title != ''
			GROUP BY title
			HAVING COUNT(*) > 1
		)
		ORDER BY title, rowid
	`, runID, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return groupRows(rows, func(title string, sources []string) domain.TitleGroup {
		return domain.TitleGroup{Title: title, SourcePaths: sources}
	})
}

// Begin starts a staging transaction.
func (l *Ledger) Begin() (ports.LedgerTx, error) {
	tx, err := l.db.Begin()
	if err != nil {
		return nil, err
	}
	return &ledgerTx{tx: tx}, nil
}

// groupRows folds ordered (key, source) rows into per-key groups.
func groupRows[T any](rows *sql.Rows, build func(key string, sources []string) T) ([]T, error) {
	var out []T
	var key string
	var sources []string

	flush := func() {
		if len(sources) > 0 {
			out = append(out, build(key, sources))
		}
	}

	for rows.Next() {
		var k, source string
		if err := rows.Scan(&k, &source); err != nil {
			return nil, err
		}
		if k != key {
			flush()
			key = k
			sources = nil
		}
		sources = append(sources, source)
	}
	flush()

	return out, rows.Err()
}

// nullString returns nil for empty strings (for nullable columns)
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
