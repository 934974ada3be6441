package market

import "fmt"

// ScenarioError reports invalid scenario configuration: bad segment
// shares (Scenario.ValidateShares) or a non-positive turn count
// (simulation.New). Affinity keys are not checked against the known
// restaurant types.
type ScenarioError struct {
	Reason string
}

func (e *ScenarioError) Error() string { return fmt.Sprintf("market: %s", e.Reason) }

func newScenarioError(format string, args ...any) error {
	return &ScenarioError{Reason: fmt.Sprintf(format, args...)}
}
