package restaurant

import (
	"github.com/foodops/foodops-kernel/internal/money"
	"github.com/foodops/foodops-kernel/internal/procurement"
	"github.com/foodops/foodops-kernel/internal/stock"
)

const satisfactionHistoryLimit = 10

// Restaurant is the mutable per-restaurant state the kernel tracks. It is
// mutated exactly once per turn, by the turn engine.
type Restaurant struct {
	ID    string
	Name  string
	Type  Type

	BaseCapacity  float64
	ServiceSpeed  float64

	Menu map[string]MenuEntry // recipe id -> entry

	// InactiveMenu remembers the last TTC price a deactivated recipe was
	// sold at, so a later ActivateRecipe decision (with no accompanying
	// SetPrice) can republish it unchanged instead of being a no-op.
	InactiveMenu map[string]money.Money

	StaffingLevel StaffingLevel
	Employees     []Employee

	IngredientQuality map[string]int // ingredient id -> level 1..5

	Stock *stock.Manager

	Reputation          float64 // [0,10], default 5
	satisfactionHistory []float64

	Cash money.Money

	EquipmentValue    money.Money
	MonthlyRent       money.Money
	MonthlyFixedCosts money.Money

	PendingPOLines []*procurement.PurchaseOrderLine

	LastUtilization   float64
	LastServedTotal   int64
}

// New creates a restaurant with its starting defaults: reputation 5, empty
// satisfaction history, empty menu.
func New(id, name string, typ Type, baseCapacity, serviceSpeed float64, startingCash, rent, fixedCosts money.Money) *Restaurant {
	return &Restaurant{
		ID:                id,
		Name:              name,
		Type:              typ,
		BaseCapacity:      baseCapacity,
		ServiceSpeed:      serviceSpeed,
		Menu:              make(map[string]MenuEntry),
		InactiveMenu:      make(map[string]money.Money),
		IngredientQuality: make(map[string]int),
		Stock:             stock.NewManager(),
		Reputation:        5.0,
		Cash:              startingCash,
		MonthlyRent:       rent,
		MonthlyFixedCosts: fixedCosts,
	}
}

// SetPrice sets or adds a menu entry. Prices must be > 0.
func (r *Restaurant) SetPrice(recipeID string, priceTTC money.Money) error {
	if !priceTTC.IsPositive() {
		return newValidationError("price for %s must be > 0", recipeID)
	}
	r.Menu[recipeID] = MenuEntry{RecipeID: recipeID, PriceTTC: priceTTC}
	delete(r.InactiveMenu, recipeID)
	return nil
}

// DeactivateRecipe removes a recipe from the active menu, remembering its
// price so a later ActivateRecipe republishes it unchanged.
func (r *Restaurant) DeactivateRecipe(recipeID string) {
	if entry, ok := r.Menu[recipeID]; ok {
		r.InactiveMenu[recipeID] = entry.PriceTTC
	}
	delete(r.Menu, recipeID)
}

// ActivateRecipe republishes a previously-priced recipe at its last known
// price. A recipe already active is left unchanged. A recipe that was
// never priced has nothing to republish and must go through SetPrice
// first.
func (r *Restaurant) ActivateRecipe(recipeID string) error {
	if _, ok := r.Menu[recipeID]; ok {
		return nil
	}
	price, ok := r.InactiveMenu[recipeID]
	if !ok {
		return newValidationError("recipe %s has never been priced; use SetPrice to activate it", recipeID)
	}
	r.Menu[recipeID] = MenuEntry{RecipeID: recipeID, PriceTTC: price}
	delete(r.InactiveMenu, recipeID)
	return nil
}

// SetStaffingLevel validates and applies a staffing level change.
func (r *Restaurant) SetStaffingLevel(level StaffingLevel) error {
	if !level.Valid() {
		return newValidationError("staffing level %d out of range 0..3", level)
	}
	r.StaffingLevel = level
	return nil
}

// SetIngredientQuality validates and applies a quality-tier choice.
func (r *Restaurant) SetIngredientQuality(ingredientID string, level int) error {
	if level < 1 || level > 5 {
		return newValidationError("quality level %d out of range 1..5", level)
	}
	r.IngredientQuality[ingredientID] = level
	return nil
}

// HireEmployee validates and adds an employee to the roster.
func (r *Restaurant) HireEmployee(e Employee) error {
	if err := e.Validate(); err != nil {
		return err
	}
	for _, existing := range r.Employees {
		if existing.ID == e.ID {
			return newValidationError("employee %s already on roster", e.ID)
		}
	}
	r.Employees = append(r.Employees, e)
	return nil
}

// FireEmployee removes an employee by id.
func (r *Restaurant) FireEmployee(employeeID string) error {
	for i, e := range r.Employees {
		if e.ID == employeeID {
			r.Employees = append(r.Employees[:i], r.Employees[i+1:]...)
			return nil
		}
	}
	return newValidationError("employee %s not found", employeeID)
}

// Capacity is base_capacity × service_speed × staffing_factor +
// Σ employee_contribution, floored to an integer.
func (r *Restaurant) Capacity() int64 {
	if r.StaffingLevel == 0 {
		return 0
	}
	base := r.BaseCapacity * r.ServiceSpeed * r.StaffingLevel.StaffingFactor()
	var employeeSum float64
	for _, e := range r.Employees {
		employeeSum += e.CapacityContribution()
	}
	total := base + employeeSum
	if total < 0 {
		return 0
	}
	return int64(total)
}

// QualityScore is the restaurant's overall quality score, clamped to [1,5].
func (r *Restaurant) QualityScore() float64 {
	if len(r.IngredientQuality) == 0 {
		return r.Type.BaselineQuality()
	}
	sum := 0
	for _, level := range r.IngredientQuality {
		sum += level
	}
	avg := float64(sum) / float64(len(r.IngredientQuality))
	score := r.Type.BaselineQuality() + 0.6*(avg-2) + 0.2*(float64(r.StaffingLevel)-1)
	if score < 1 {
		return 1
	}
	if score > 5 {
		return 5
	}
	return score
}

// PushSatisfaction records a satisfaction sample (clamped to [1,5]) into
// the bounded-length-10 history.
func (r *Restaurant) PushSatisfaction(value float64) {
	if value < 1 {
		value = 1
	}
	if value > 5 {
		value = 5
	}
	r.satisfactionHistory = append(r.satisfactionHistory, value)
	if len(r.satisfactionHistory) > satisfactionHistoryLimit {
		r.satisfactionHistory = r.satisfactionHistory[len(r.satisfactionHistory)-satisfactionHistoryLimit:]
	}
}

// SatisfactionHistory returns a defensive copy of the bounded history.
func (r *Restaurant) SatisfactionHistory() []float64 {
	out := make([]float64, len(r.satisfactionHistory))
	copy(out, r.satisfactionHistory)
	return out
}

// RestoreSatisfactionHistory replaces the satisfaction history wholesale,
// used when reconstructing a restaurant from a saved snapshot.
func (r *Restaurant) RestoreSatisfactionHistory(history []float64) {
	out := make([]float64, len(history))
	copy(out, history)
	r.satisfactionHistory = out
}

// UpdateReputation applies an exponential-smoothing update:
// target = 2 × average(last 10 satisfactions); reputation +=
// 0.15 × (target - reputation); clamped to [0,10]. A restaurant with no
// satisfaction samples yet leaves reputation unchanged.
func (r *Restaurant) UpdateReputation() {
	if len(r.satisfactionHistory) == 0 {
		return
	}
	sum := 0.0
	for _, s := range r.satisfactionHistory {
		sum += s
	}
	avg := sum / float64(len(r.satisfactionHistory))
	target := 2 * avg
	r.Reputation += 0.15 * (target - r.Reputation)
	if r.Reputation < 0 {
		r.Reputation = 0
	}
	if r.Reputation > 10 {
		r.Reputation = 10
	}
}

// MedianMenuPrice returns the median TTC price across the active menu, and
// false if the menu is empty. Used by the market allocator's eligibility
// and attractiveness scoring.
func (r *Restaurant) MedianMenuPrice() (money.Money, bool) {
	if len(r.Menu) == 0 {
		return money.Zero, false
	}
	prices := make([]money.Money, 0, len(r.Menu))
	for _, entry := range r.Menu {
		prices = append(prices, entry.PriceTTC)
	}
	sortMoney(prices)
	n := len(prices)
	if n%2 == 1 {
		return prices[n/2], true
	}
	mid1, mid2 := prices[n/2-1], prices[n/2]
	return mid1.Add(mid2).DivInt(2), true
}

func sortMoney(values []money.Money) {
	for i := 1; i < len(values); i++ {
		for j := i; j > 0 && values[j].LessThan(values[j-1]); j-- {
			values[j], values[j-1] = values[j-1], values[j]
		}
	}
}

// MonthlyPersonnelCost sums MonthlyEmployeeCost across the roster.
func (r *Restaurant) MonthlyPersonnelCost(charges SocialChargesTable) money.Money {
	total := money.Zero
	for _, e := range r.Employees {
		total = total.Add(MonthlyEmployeeCost(e, charges))
	}
	return total
}
