// Package validation checks client-supplied identifiers before they
// reach the engine or the database.
package validation

import (
	"fmt"
	"regexp"
)

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateSessionID validates session id format.
func ValidateSessionID(id string) error {
	if len(id) == 0 || len(id) > 64 {
		return fmt.Errorf("session ID must be 1-64 characters")
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("session ID can only contain alphanumeric characters, hyphens, and underscores")
	}
	return nil
}

// ValidateCategory validates an event category name.
func ValidateCategory(category string) error {
	switch category {
	case "transport", "band", "gig", "financial", "special":
		return nil
	}
	return fmt.Errorf("unknown event category %q", category)
}

// ValidateTrigger validates a selection trigger phase.
func ValidateTrigger(trigger string) error {
	if len(trigger) > 64 {
		return fmt.Errorf("trigger must be at most 64 characters")
	}
	if trigger != "" && !idPattern.MatchString(trigger) {
		return fmt.Errorf("trigger can only contain alphanumeric characters, hyphens, and underscores")
	}
	return nil
}

// ValidateOptionIndex validates a choice index against an option count.
func ValidateOptionIndex(index, optionCount int) error {
	if index < 0 || index >= optionCount {
		return fmt.Errorf("option index must be between 0 and %d", optionCount-1)
	}
	return nil
}

// ValidateBandName validates a band name for session creation.
func ValidateBandName(name string) error {
	if len(name) > 128 {
		return fmt.Errorf("band name must be at most 128 characters")
	}
	return nil
}
