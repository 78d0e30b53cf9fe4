package commands

import (
	"context"
	"fmt"

	"trasloco/internal/application"
	"trasloco/internal/domain"
	"trasloco/internal/ports"
)

// Report contains the counters and the collision and duplicate-title
// findings of one recorded run
type Report struct {
	RunID           string
	Stats           domain.MigrationStats
	Collisions      []domain.Collision
	DuplicateTitles []domain.TitleGroup
}

// Clean reports whether the run had no findings
func (r *Report) Clean() bool {
	return len(r.Collisions) == 0 && len(r.DuplicateTitles) == 0
}

// ReportCommand summarizes a recorded migration run from the ledger
type ReportCommand struct {
	ledger ports.MigrationLedger

	// RunID selects the run to report; empty selects the most recent one.
	RunID string
}

// NewReportCommand creates a new ReportCommand
func NewReportCommand(ledger ports.MigrationLedger, runID string) *ReportCommand {
	return &ReportCommand{
		ledger: ledger,
		RunID:  runID,
	}
}

// Execute runs the report command
func (c *ReportCommand) Execute(ctx context.Context) (*Report, error) {
	runID := c.RunID
	if runID == "" {
		last, err := c.ledger.LastRunID()
		if err != nil {
			return nil, fmt.Errorf("failed to look up last run: %w", err)
		}
		if last == "" {
			return nil, application.ErrNoRuns
		}
		runID = last
	}

	stats, err := c.ledger.Summary(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run summary: %w", err)
	}

	collisions, err := c.ledger.Collisions(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load collisions: %w", err)
	}

	titles, err := c.ledger.DuplicateTitles(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load duplicate titles: %w", err)
	}

	return &Report{
		RunID:           runID,
		Stats:           stats,
		Collisions:      collisions,
		DuplicateTitles: titles,
	}, nil
}
