package commands

import (
	"context"
	"fmt"

	"trasloco/internal/application"
	"trasloco/internal/domain"
)

// ResolveResult contains the resolved destination of one source note
type ResolveResult struct {
	Binding domain.VaultBinding
	Mapping domain.Mapping
}

// ResolveCommand computes the destination of a single source note without
// scanning or copying anything
type ResolveCommand struct {
	Bindings   []domain.VaultBinding
	SourcePath string
}

// NewResolveCommand creates a new ResolveCommand
func NewResolveCommand(bindings []domain.VaultBinding, sourcePath string) *ResolveCommand {
	return &ResolveCommand{
		Bindings:   bindings,
		SourcePath: sourcePath,
	}
}

// Validate checks the source path and the configured bindings
func (c *ResolveCommand) Validate() error {
	if err := application.ValidateRequired("sourcePath", c.SourcePath); err != nil {
		return err
	}
	return application.ValidateBindings(c.Bindings)
}

// Execute resolves the note against the vault that contains it
func (c *ResolveCommand) Execute(ctx context.Context) (*ResolveResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	binding, ok := domain.MatchBinding(c.Bindings, c.SourcePath)
	if !ok {
		return nil, fmt.Errorf("%s is not under any configured vault", c.SourcePath)
	}

	m, err := domain.MapNote(binding, c.SourcePath)
	if err != nil {
		return nil, err
	}

	return &ResolveResult{Binding: binding, Mapping: m}, nil
}
