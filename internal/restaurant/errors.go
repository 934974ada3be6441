package restaurant

import "fmt"

// ValidationError reports a violated restaurant/employee invariant, such
// as a decision that would breach a hiring or pricing rule.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("restaurant: %s", e.Reason) }

func newValidationError(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
