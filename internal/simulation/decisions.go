package simulation

import (
	"github.com/foodops/foodops-kernel/internal/money"
	"github.com/foodops/foodops-kernel/internal/procurement"
	"github.com/foodops/foodops-kernel/internal/restaurant"
)

// Decision is one human or AI action for a single restaurant in a single
// turn. The concrete types below are the closed set the turn engine
// understands; unknown decisions cannot be constructed outside this
// package's type set, so dispatch is exhaustive by construction.
type Decision interface {
	isDecision()
}

type SetPrice struct {
	RecipeID string
	PriceTTC money.Money
}

type ActivateRecipe struct {
	RecipeID string
}

type DeactivateRecipe struct {
	RecipeID string
}

type SetStaffingLevel struct {
	Level restaurant.StaffingLevel
}

type SetIngredientQuality struct {
	IngredientID string
	Level        int
}

type HireDecision struct {
	Employee restaurant.Employee
}

type FireDecision struct {
	EmployeeID string
}

type RunMarketingCampaign struct {
	Cost        money.Money
	ImpactTurns int
}

type SubmitPurchaseOrder struct {
	Lines []*procurement.PurchaseOrderLine
}

type RequestLoan struct {
	Amount   money.Money
	Rate     float64
	TermTurns int
}

func (SetPrice) isDecision()             {}
func (ActivateRecipe) isDecision()       {}
func (DeactivateRecipe) isDecision()     {}
func (SetStaffingLevel) isDecision()     {}
func (SetIngredientQuality) isDecision() {}
func (HireDecision) isDecision()         {}
func (FireDecision) isDecision()         {}
func (RunMarketingCampaign) isDecision() {}
func (SubmitPurchaseOrder) isDecision()  {}
func (RequestLoan) isDecision()          {}
