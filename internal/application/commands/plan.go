package commands

import (
	"context"
	"fmt"

	"trasloco/internal/application"
	"trasloco/internal/domain"
	"trasloco/internal/ports"
)

// VaultPlan pairs one binding's computed plan with its vault-level failure.
// A broken vault never stops the others, so callers check Err per vault.
type VaultPlan struct {
	Binding domain.VaultBinding
	Plan    *domain.Plan
	Err     error
}

// PlanResult contains the computed plans of every configured vault
type PlanResult struct {
	Vaults []VaultPlan
}

// TotalNotes counts the mapped notes across all vaults
func (r *PlanResult) TotalNotes() int {
	n := 0
	for _, v := range r.Vaults {
		if v.Plan != nil {
			n += len(v.Plan.Entries)
		}
	}
	return n
}

// TotalPages counts the page mappings across all vaults
func (r *PlanResult) TotalPages() int {
	n := 0
	for _, v := range r.Vaults {
		if v.Plan != nil {
			n += v.Plan.Pages()
		}
	}
	return n
}

// TotalJournals counts the journal mappings across all vaults
func (r *PlanResult) TotalJournals() int {
	n := 0
	for _, v := range r.Vaults {
		if v.Plan != nil {
			n += v.Plan.Journals()
		}
	}
	return n
}

// TotalCollisions counts the colliding destinations across all vaults
func (r *PlanResult) TotalCollisions() int {
	n := 0
	for _, v := range r.Vaults {
		if v.Plan != nil {
			n += len(v.Plan.Collisions())
		}
	}
	return n
}

// Failed reports whether any vault could not be planned
func (r *PlanResult) Failed() bool {
	for _, v := range r.Vaults {
		if v.Err != nil {
			return true
		}
	}
	return false
}

// PlanCommand computes every vault's migration plan without touching any
// destination file
type PlanCommand struct {
	scanner  ports.NoteScanner
	Bindings []domain.VaultBinding
}

// NewPlanCommand creates a new PlanCommand
func NewPlanCommand(scanner ports.NoteScanner, bindings []domain.VaultBinding) *PlanCommand {
	return &PlanCommand{
		scanner:  scanner,
		Bindings: bindings,
	}
}

// Validate checks the configured bindings
func (c *PlanCommand) Validate() error {
	return application.ValidateBindings(c.Bindings)
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) (*PlanResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &PlanResult{}
	for _, b := range c.Bindings {
		plan, err := BuildPlan(ctx, c.scanner, b)
		if err != nil {
			err = &application.VaultError{SourceRoot: b.SourceRoot, Err: err}
		}
		result.Vaults = append(result.Vaults, VaultPlan{Binding: b, Plan: plan, Err: err})
	}
	return result, nil
}

// BuildPlan scans one vault and maps every note, in walk order. Plan and
// migrate share it so a migration copies exactly what a plan previewed.
func BuildPlan(ctx context.Context, scanner ports.NoteScanner, b domain.VaultBinding) (*domain.Plan, error) {
	plan := &domain.Plan{Binding: b}

	paths, errCh := scanner.ScanNotes(b.SourceRoot)

	var mapErr error
	for path := range paths {
		// Keep draining after a failure so the walker can finish
		if mapErr != nil || ctx.Err() != nil {
			continue
		}
		m, err := domain.MapNote(b, path)
		if err != nil {
			mapErr = err
			continue
		}
		plan.Entries = append(plan.Entries, m)
	}

	if err := <-errCh; err != nil {
		return nil, fmt.Errorf("failed to scan vault: %w", err)
	}
	if mapErr != nil {
		return nil, mapErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return plan, nil
}
