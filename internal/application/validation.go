package application

import (
	"fmt"
	"strings"

	"trasloco/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		// Format field name with spaces for error message (e.g., "sourceRoot" -> "source root")
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "sourceRoot" -> "source root")
func formatFieldName(fieldName string) string {
	// Handle common patterns directly
	replacements := map[string]string{
		"sourceRoot":      "source root",
		"destinationRoot": "destination root",
		"journalRoot":     "journal root",
		"sourcePath":      "source path",
		"runID":           "run ID",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	// Fallback: just return the field name as-is
	return fieldName
}

// ValidateBinding checks that a vault binding names both of its roots.
func ValidateBinding(b domain.VaultBinding) error {
	if err := ValidateRequired("sourceRoot", b.SourceRoot); err != nil {
		return err
	}
	return ValidateRequired("destinationRoot", b.DestinationRoot)
}

// ValidateBindings checks a full binding list, reporting the position of the
// first broken entry.
func ValidateBindings(bindings []domain.VaultBinding) error {
	if len(bindings) == 0 {
		return ErrNoVaults
	}
	for i, b := range bindings {
		if err := ValidateBinding(b); err != nil {
			return fmt.Errorf("vault %d: %w", i+1, err)
		}
	}
	return nil
}
