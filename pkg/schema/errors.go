package schema

import "fmt"

// ValidationError represents a single input validation failure.
type ValidationError struct {
	Key    string // Input name
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("input %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("input %q: %s (got %T)", e.Key, e.Reason, e.Value)
}
