package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNoVaults             = errors.New("no vaults configured")
	ErrNoRuns               = errors.New("no migration runs recorded")
	ErrDestinationCollision = errors.New("destination collision")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// VaultError wraps one vault's failure. A broken binding never stops the
// other configured vaults from processing.
type VaultError struct {
	SourceRoot string
	Err        error
}

func (e *VaultError) Error() string {
	return fmt.Sprintf("vault %s: %v", e.SourceRoot, e.Err)
}

func (e *VaultError) Unwrap() error {
	return e.Err
}

// CollisionError reports colliding destinations promoted to a failure in
// strict mode
type CollisionError struct {
	Count int
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%d destination(s) claimed by multiple notes", e.Count)
}

func (e *CollisionError) Is(target error) bool {
	return target == ErrDestinationCollision
}
