package commands

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"trasloco/internal/application"
	"trasloco/internal/domain"
	"trasloco/internal/ports"
)

// FileError records one note that could not be copied
type FileError struct {
	SourcePath string
	Err        error
}

// VaultResult contains one vault's migration outcome
type VaultResult struct {
	Binding    domain.VaultBinding
	RunID      string
	Stats      domain.MigrationStats
	Collisions []domain.Collision
	FileErrors []FileError
	Err        error
}

// MigrateResult contains the outcome of a full migration
type MigrateResult struct {
	DryRun bool
	Vaults []VaultResult
}

// Failed reports whether any vault failed outright
func (r *MigrateResult) Failed() bool {
	for _, v := range r.Vaults {
		if v.Err != nil {
			return true
		}
	}
	return false
}

// TotalCopied counts the copied notes across all vaults
func (r *MigrateResult) TotalCopied() int {
	n := 0
	for _, v := range r.Vaults {
		n += v.Stats.Copied
	}
	return n
}

// TotalFailed counts the failed notes across all vaults
func (r *MigrateResult) TotalFailed() int {
	n := 0
	for _, v := range r.Vaults {
		n += v.Stats.Failed
	}
	return n
}

// MigrateCommand copies every note of every configured vault into its
// destination graph. Each vault is planned, staged in the ledger, and
// copied independently: one broken vault never blocks the others.
type MigrateCommand struct {
	scanner  ports.NoteScanner
	copier   ports.NoteCopier
	metadata ports.MetadataReader
	ledger   ports.MigrationLedger
	log      zerolog.Logger

	Bindings []domain.VaultBinding

	// DryRun plans and stages without copying a single file.
	DryRun bool

	// Strict refuses colliding destinations instead of copying in plan
	// order and letting the last claim win.
	Strict bool
}

// NewMigrateCommand creates a new MigrateCommand
func NewMigrateCommand(
	scanner ports.NoteScanner,
	copier ports.NoteCopier,
	metadata ports.MetadataReader,
	ledger ports.MigrationLedger,
	bindings []domain.VaultBinding,
) *MigrateCommand {
	return &MigrateCommand{
		scanner:  scanner,
		copier:   copier,
		metadata: metadata,
		ledger:   ledger,
		log:      zerolog.Nop(),
		Bindings: bindings,
	}
}

// SetLogger replaces the command's no-op logger
func (c *MigrateCommand) SetLogger(log zerolog.Logger) {
	c.log = log
}

// Validate checks the configured bindings
func (c *MigrateCommand) Validate() error {
	return application.ValidateBindings(c.Bindings)
}

// Execute runs the migration
func (c *MigrateCommand) Execute(ctx context.Context) (*MigrateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &MigrateResult{DryRun: c.DryRun}
	for _, b := range c.Bindings {
		result.Vaults = append(result.Vaults, c.migrateVault(ctx, b))
	}
	return result, nil
}

func (c *MigrateCommand) migrateVault(ctx context.Context, b domain.VaultBinding) VaultResult {
	start := time.Now()
	result := VaultResult{Binding: b}
	log := c.log.With().Str("vault", b.SourceRoot).Logger()

	plan, err := BuildPlan(ctx, c.scanner, b)
	if err != nil {
		result.Err = &application.VaultError{SourceRoot: b.SourceRoot, Err: err}
		log.Error().Err(err).Msg("failed to plan vault")
		return result
	}

	result.Stats.NotesScanned = len(plan.Entries)
	result.Stats.Pages = plan.Pages()
	result.Stats.Journals = plan.Journals()
	result.Collisions = plan.Collisions()

	for _, col := range result.Collisions {
		log.Warn().
			Str("destination", col.DestinationPath).
			Strs("sources", col.SourcePaths).
			Msg("destination claimed by multiple notes")
	}

	runID := c.stagePlan(log, plan)
	result.RunID = runID

	if !c.DryRun {
		c.copyPlan(ctx, log, plan, runID, &result)
	}

	if runID != "" {
		if err := c.ledger.FinishRun(runID); err != nil {
			log.Warn().Err(err).Msg("failed to close ledger run")
		}
	}

	if result.Err == nil && c.Strict && len(result.Collisions) > 0 {
		result.Err = &application.CollisionError{Count: len(result.Collisions)}
	}

	result.Stats.Duration = time.Since(start)

	log.Info().
		Bool("dry_run", c.DryRun).
		Int("notes", result.Stats.NotesScanned).
		Int("pages", result.Stats.Pages).
		Int("journals", result.Stats.Journals).
		Int("copied", result.Stats.Copied).
		Int("skipped", result.Stats.Skipped).
		Int("failed", result.Stats.Failed).
		Dur("took", result.Stats.Duration).
		Msg("vault migrated")

	return result
}

// copyPlan copies the planned entries in plan order. In strict mode
// colliding entries are skipped and the vault is marked failed afterwards.
func (c *MigrateCommand) copyPlan(ctx context.Context, log zerolog.Logger, plan *domain.Plan, runID string, result *VaultResult) {
	var colliding map[string]bool
	if c.Strict {
		colliding = plan.CollidingDestinations()
	}

	for _, entry := range plan.Entries {
		if err := ctx.Err(); err != nil {
			result.Err = err
			return
		}

		if c.Strict && colliding[entry.DestinationPath] {
			result.Stats.Skipped++
			c.setStatus(log, runID, entry.SourcePath, domain.StatusSkipped)
			continue
		}

		if err := c.copier.Copy(entry.SourcePath, entry.DestinationPath); err != nil {
			log.Error().Err(err).Str("source", entry.SourcePath).Msg("failed to copy note")
			result.FileErrors = append(result.FileErrors, FileError{SourcePath: entry.SourcePath, Err: err})
			result.Stats.Failed++
			c.setStatus(log, runID, entry.SourcePath, domain.StatusFailed)
			continue
		}

		result.Stats.Copied++
		c.setStatus(log, runID, entry.SourcePath, domain.StatusCopied)

		log.Debug().
			Str("source", entry.SourcePath).
			Str("destination", entry.DestinationPath).
			Str("kind", entry.Kind.String()).
			Msg("note copied")
	}
}

// stagePlan records the plan in the ledger and returns the run ID.
// Recording is best effort: a broken ledger degrades reporting, never the
// migration itself.
func (c *MigrateCommand) stagePlan(log zerolog.Logger, plan *domain.Plan) string {
	runID, err := c.ledger.BeginRun(plan.Binding, c.DryRun)
	if err != nil {
		log.Warn().Err(err).Msg("ledger unavailable, run will not be recorded")
		return ""
	}

	tx, err := c.ledger.Begin()
	if err != nil {
		log.Warn().Err(err).Msg("failed to stage plan in ledger")
		return runID
	}

	for _, entry := range plan.Entries {
		if err := tx.StageNote(runID, entry, c.noteTitle(entry.SourcePath)); err != nil {
			log.Warn().Err(err).Str("source", entry.SourcePath).Msg("failed to stage note")
			tx.Rollback()
			return runID
		}
	}

	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("failed to commit staged plan")
	}
	return runID
}

// noteTitle reads the frontmatter title, tolerating unreadable notes.
func (c *MigrateCommand) noteTitle(path string) string {
	meta, err := c.metadata.Read(path)
	if err != nil {
		return ""
	}
	return meta.Title()
}

func (c *MigrateCommand) setStatus(log zerolog.Logger, runID, sourcePath, status string) {
	if runID == "" {
		return
	}
	if err := c.ledger.SetNoteStatus(runID, sourcePath, status); err != nil {
		log.Warn().Err(err).Str("source", sourcePath).Msg("failed to update note status")
	}
}
