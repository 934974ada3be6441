package stock

import (
	"fmt"

	"github.com/foodops/foodops-kernel/internal/money"
)

// InsufficientStockError reports a shortfall against requested stock. It is
// a runtime warning, not a validation failure: the turn engine records it
// in TurnOutcome.Warnings rather than aborting the turn, and does not
// reduce the served customers or revenue for the shortfall.
type InsufficientStockError struct {
	IngredientID string
	Requested    money.Qty
	Available    money.Qty
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock: insufficient %s: requested %s, available %s", e.IngredientID, e.Requested, e.Available)
}
