package simulation

import (
	"github.com/foodops/foodops-kernel/internal/restaurant"
)

// validateDecision checks a decision against the same invariants its
// corresponding restaurant mutator enforces, without mutating anything.
// RunTurn validates every queued decision for every restaurant before
// applying any of them, so a single rejected decision aborts the whole
// turn with no partial effect.
func (s *Simulation) validateDecision(r *restaurant.Restaurant, d Decision) error {
	switch dec := d.(type) {
	case SetPrice:
		if !dec.PriceTTC.IsPositive() {
			return newDecisionError("price for %s must be > 0", dec.RecipeID)
		}
		if _, ok := s.Catalog.Recipe(dec.RecipeID); !ok {
			return newDecisionError("unknown recipe %s", dec.RecipeID)
		}
	case ActivateRecipe:
		if _, ok := s.Catalog.Recipe(dec.RecipeID); !ok {
			return newDecisionError("unknown recipe %s", dec.RecipeID)
		}
		if _, active := r.Menu[dec.RecipeID]; !active {
			if _, everPriced := r.InactiveMenu[dec.RecipeID]; !everPriced {
				return newDecisionError("recipe %s has never been priced; use SetPrice to activate it", dec.RecipeID)
			}
		}
	case DeactivateRecipe:
		// Deactivating an absent recipe is a no-op, not an error.
	case SetStaffingLevel:
		if !dec.Level.Valid() {
			return newDecisionError("staffing level %d out of range 0..3", dec.Level)
		}
	case SetIngredientQuality:
		if dec.Level < 1 || dec.Level > 5 {
			return newDecisionError("quality level %d out of range 1..5", dec.Level)
		}
		if _, ok := s.Catalog.Ingredient(dec.IngredientID); !ok {
			return newDecisionError("unknown ingredient %s", dec.IngredientID)
		}
	case HireDecision:
		if err := dec.Employee.Validate(); err != nil {
			return err
		}
		for _, existing := range r.Employees {
			if existing.ID == dec.Employee.ID {
				return newDecisionError("employee %s already on roster", dec.Employee.ID)
			}
		}
	case FireDecision:
		found := false
		for _, existing := range r.Employees {
			if existing.ID == dec.EmployeeID {
				found = true
				break
			}
		}
		if !found {
			return newDecisionError("employee %s not found", dec.EmployeeID)
		}
	case RunMarketingCampaign:
		if !dec.Cost.IsPositive() {
			return newDecisionError("marketing spend must be > 0")
		}
		if dec.ImpactTurns <= 0 {
			return newDecisionError("marketing impact_turns must be > 0")
		}
	case SubmitPurchaseOrder:
		if len(dec.Lines) == 0 {
			return newDecisionError("purchase order has no lines")
		}
	case RequestLoan:
		if !dec.Amount.IsPositive() {
			return newCashError("loan amount must be > 0")
		}
		if dec.Rate < 0 {
			return newCashError("loan rate must be >= 0")
		}
		if dec.TermTurns <= 0 {
			return newCashError("loan term_turns must be > 0")
		}
	default:
		return newDecisionError("unrecognized decision type")
	}
	return nil
}

// applyDecision mutates restaurant and ledger state for one already
// validated decision. Cash-affecting decisions (marketing, loans) post
// their ledger entry immediately, since their cost is known at decision
// time rather than derived from the turn's market outcome.
func (s *Simulation) applyDecision(r *restaurant.Restaurant, d Decision, turn int, outcome *TurnOutcome) error {
	switch dec := d.(type) {
	case SetPrice:
		return r.SetPrice(dec.RecipeID, dec.PriceTTC)
	case ActivateRecipe:
		return r.ActivateRecipe(dec.RecipeID)
	case DeactivateRecipe:
		r.DeactivateRecipe(dec.RecipeID)
		return nil
	case SetStaffingLevel:
		return r.SetStaffingLevel(dec.Level)
	case SetIngredientQuality:
		return r.SetIngredientQuality(dec.IngredientID, dec.Level)
	case HireDecision:
		return r.HireEmployee(dec.Employee)
	case FireDecision:
		return r.FireEmployee(dec.EmployeeID)
	case RunMarketingCampaign:
		r.Cash = r.Cash.Sub(dec.Cost)
		entry := newLedgerMarketingEntry(r.ID, turn, dec.Cost)
		s.Ledger.Append(entry)
		outcome.LedgerDelta = append(outcome.LedgerDelta, entry)
		return nil
	case SubmitPurchaseOrder:
		r.PendingPOLines = append(r.PendingPOLines, dec.Lines...)
		for _, line := range dec.Lines {
			s.poLines[line.ID] = line
			s.poOwner[line.ID] = r.ID
		}
		return nil
	case RequestLoan:
		r.Cash = r.Cash.Add(dec.Amount)
		entry := newLedgerLoanEntry(r.ID, turn, dec.Amount)
		s.Ledger.Append(entry)
		outcome.LedgerDelta = append(outcome.LedgerDelta, entry)
		return nil
	default:
		return newDecisionError("unrecognized decision type")
	}
}
