package simulation

import "fmt"

// DecisionError reports a decision this package's own checks reject: a
// non-positive price, a recipe or ingredient absent from the catalog, a
// staffing or quality level out of range, a duplicate or unknown employee,
// a non-positive marketing spend, or an empty purchase order. A hire that
// breaks an employee invariant surfaces instead as the
// *restaurant.ValidationError from Employee.Validate, returned unwrapped;
// invalid loan terms are reported as *CashError.
type DecisionError struct {
	Reason string
}

func (e *DecisionError) Error() string { return fmt.Sprintf("simulation: %s", e.Reason) }

func newDecisionError(format string, args ...any) error {
	return &DecisionError{Reason: fmt.Sprintf(format, args...)}
}

// CashError is returned for explicit cash-affecting checks: a loan request
// with a non-positive amount, a negative rate or a non-positive term. The
// kernel otherwise never
// prevents cash from going negative through ordinary operation.
type CashError struct {
	Reason string
}

func (e *CashError) Error() string { return fmt.Sprintf("simulation: %s", e.Reason) }

func newCashError(format string, args ...any) error {
	return &CashError{Reason: fmt.Sprintf(format, args...)}
}

// SnapshotError reports a version mismatch or structural corruption while
// restoring a saved simulation.
type SnapshotError struct {
	Reason string
}

func (e *SnapshotError) Error() string { return fmt.Sprintf("simulation: %s", e.Reason) }

func newSnapshotError(format string, args ...any) error {
	return &SnapshotError{Reason: fmt.Sprintf(format, args...)}
}
