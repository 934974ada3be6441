package costing

import "fmt"

// CostingError reports a malformed recipe reference; this is a programmer
// error surfaced as a value rather than a panic, since it originates from
// catalog data the host supplied.
type CostingError struct {
	Reason string
}

func (e *CostingError) Error() string { return fmt.Sprintf("costing: %s", e.Reason) }

func newError(format string, args ...any) error {
	return &CostingError{Reason: fmt.Sprintf(format, args...)}
}
