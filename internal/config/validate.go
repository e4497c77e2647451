package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidHookEvents lists the primary-repository events a hook can be installed for.
var ValidHookEvents = []string{"post-commit", "pre-push", "post-merge"}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, FormatOptions(allowed))
	}
	return nil
}

// validateRange checks that a non-zero value lies within [lo, hi].
func validateRange(value int, field string, lo, hi int) error {
	if value == 0 {
		return nil
	}
	if value < lo || value > hi {
		return fmt.Errorf("invalid %s %d: must be between %d and %d", field, value, lo, hi)
	}
	return nil
}

// FormatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func FormatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
