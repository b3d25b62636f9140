package config

import "fmt"

// ValidationError represents a single validation issue with an expectations file.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks an Expectations for structural errors.
// It returns a slice of all validation errors found (empty if valid).
func Validate(cfg *Expectations) []ValidationError {
	var errs []ValidationError
	v := cfg.Verify

	seen := make(map[string]bool)
	for i, tool := range v.ExpectedTools {
		if tool == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("verify.expected_tools[%d]", i),
				Message: "tool name must not be empty",
			})
			continue
		}
		if seen[tool] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("verify.expected_tools[%d]", i),
				Message: fmt.Sprintf("duplicate tool %q", tool),
			})
		}
		seen[tool] = true
	}

	if v.MinReadyActors < 0 {
		errs = append(errs, ValidationError{
			Field:   "verify.min_ready_actors",
			Message: "must not be negative",
		})
	}

	return errs
}
