package application

import "trasloco/internal/domain"

// Re-export domain types for the command surfaces, which program against
// the application layer.
type (
	VaultBinding = domain.VaultBinding
	Mapping      = domain.Mapping
	Collision    = domain.Collision
	TitleGroup   = domain.TitleGroup
)
