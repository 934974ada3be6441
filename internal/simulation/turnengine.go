package simulation

import (
	"sort"
	"time"

	"github.com/foodops/foodops-kernel/internal/costing"
	"github.com/foodops/foodops-kernel/internal/events"
	"github.com/foodops/foodops-kernel/internal/ledger"
	"github.com/foodops/foodops-kernel/internal/market"
	"github.com/foodops/foodops-kernel/internal/money"
	"github.com/foodops/foodops-kernel/internal/restaurant"
	"github.com/foodops/foodops-kernel/internal/rng"
	"github.com/foodops/foodops-kernel/internal/stock"
	"github.com/shopspring/decimal"
)

// TurnResult is one restaurant's full financial and operational outcome
// for a turn.
type TurnResult struct {
	RestaurantID  string
	Capacity      int64
	Served        int64
	LostCustomers int64
	Utilization   float64
	Revenue       money.Money
	COGS          money.Money
	Labor         money.Money
	Rent          money.Money
	Fixed         money.Money
	Marketing     money.Money
	NetProfit     money.Money
	Reputation    float64
	Satisfaction  float64
	Cash          money.Money
}

// TurnOutcome is everything run_turn produces: per-restaurant results, any
// events that newly triggered, every ledger entry posted this turn, lots
// swept for expiry, and non-fatal warnings (insufficient stock, and
// similar) that do not abort the turn.
type TurnOutcome struct {
	Turn          int
	PerRestaurant []TurnResult
	NewEvents     []events.Instance
	LedgerDelta   []ledger.Entry
	Waste         []stock.Lot
	Warnings      []error
}

// AIControl marks a restaurant as AI-operated at a given difficulty; a
// restaurant absent from this map is assumed human-controlled and simply
// keeps its last decisions in effect when none are submitted.
func (s *Simulation) AIControl(restaurantID string, difficulty Difficulty) {
	if s.aiControl == nil {
		s.aiControl = make(map[string]Difficulty)
	}
	s.aiControl[restaurantID] = difficulty
}

func seasonForMonth(month int) events.Season {
	switch ((month - 1) % 12) + 1 {
	case 3, 4, 5:
		return events.SeasonSpring
	case 6, 7, 8:
		return events.SeasonSummer
	case 9, 10, 11:
		return events.SeasonAutumn
	default:
		return events.SeasonWinter
	}
}

// turnDate derives the calendar date a turn lands on from the scenario's
// turn duration: one week per turn by default, one day for service-level
// turns, and roughly 30 days for month turns.
func (s *Simulation) turnDate(turn int) time.Time {
	var step time.Duration
	switch s.Scenario.TurnDuration {
	case market.TurnDurationService:
		step = 24 * time.Hour
	case market.TurnDurationMonth:
		step = 30 * 24 * time.Hour
	default:
		step = 7 * 24 * time.Hour
	}
	return s.startDate().Add(time.Duration(turn) * step)
}

func (s *Simulation) startDate() time.Time {
	if s.StartDate.IsZero() {
		return time.Date(2026, time.Month(s.startMonth), 1, 0, 0, 0, 0, time.UTC)
	}
	return s.StartDate
}

// RunTurn executes the nine-step turn pipeline: apply queued decisions,
// post submitted purchase orders, evaluate events, run the market
// allocator, consume stock for served customers, post revenue/COGS,
// update reputation and cash, and sweep expired stock. It is atomic: every
// queued decision across every restaurant is validated before any of them
// is applied, so a rejected decision leaves the simulation state exactly
// as it was before the call.
func (s *Simulation) RunTurn() (TurnOutcome, error) {
	turn := s.turn + 1
	today := s.turnDate(turn)
	month := int(today.Month())
	stream := rng.NewStream(s.seed, turn)

	restaurants := s.orderedRestaurants()

	effective := make(map[string][]Decision, len(restaurants))
	for _, r := range restaurants {
		decisions := s.pendingDecisions[r.ID]
		if len(decisions) == 0 {
			if difficulty, ok := s.aiControl[r.ID]; ok {
				decisions = GenerateAIDecisions(r, difficulty, stream)
			}
		}
		effective[r.ID] = decisions
	}

	for _, r := range restaurants {
		for _, d := range effective[r.ID] {
			if err := s.validateDecision(r, d); err != nil {
				return TurnOutcome{}, err
			}
		}
	}

	outcome := TurnOutcome{Turn: turn}

	for _, r := range restaurants {
		for _, d := range effective[r.ID] {
			if err := s.applyDecision(r, d, turn, &outcome); err != nil {
				return TurnOutcome{}, err
			}
		}
		delete(s.pendingDecisions, r.ID)
	}

	triggered, mods := s.Events.Step(turn, seasonForMonth(month), stream)
	outcome.NewEvents = triggered

	allocation := market.Allocate(s.Scenario, restaurants, month, mods, stream)

	periods := s.Scenario.TurnDuration.PeriodsPerMonth()

	for _, r := range restaurants {
		alloc := allocation.PerRestaurant[r.ID]
		if alloc == nil {
			alloc = &market.RestaurantResult{RestaurantID: r.ID}
		}

		cogs, warnings := s.consumeForService(r, alloc.Served, today)
		outcome.Warnings = append(outcome.Warnings, warnings...)

		labor := r.MonthlyPersonnelCost(s.SocialCharges).DivInt(int64(periods))
		rent := r.MonthlyRent.DivInt(int64(periods))
		fixed := r.MonthlyFixedCosts.DivInt(int64(periods))

		revenueEntry := ledger.Entry{Date: today, Kind: ledger.KindRevenue, Amount: alloc.Revenue, RestaurantID: r.ID, Turn: turn, Description: "turn revenue"}
		cogsEntry := ledger.Entry{Date: today, Kind: ledger.KindCOGS, Amount: cogs.Neg(), RestaurantID: r.ID, Turn: turn, Description: "turn cost of goods"}
		laborEntry := ledger.Entry{Date: today, Kind: ledger.KindLabor, Amount: labor.Neg(), RestaurantID: r.ID, Turn: turn, Description: "payroll"}
		rentEntry := ledger.Entry{Date: today, Kind: ledger.KindRent, Amount: rent.Neg(), RestaurantID: r.ID, Turn: turn, Description: "rent"}
		fixedEntry := ledger.Entry{Date: today, Kind: ledger.KindFixed, Amount: fixed.Neg(), RestaurantID: r.ID, Turn: turn, Description: "fixed costs"}

		for _, e := range []ledger.Entry{revenueEntry, cogsEntry, laborEntry, rentEntry, fixedEntry} {
			s.Ledger.Append(e)
			outcome.LedgerDelta = append(outcome.LedgerDelta, e)
		}

		netProfit := money.Sum(alloc.Revenue, cogs.Neg(), labor.Neg(), rent.Neg(), fixed.Neg())
		r.Cash = r.Cash.Add(netProfit)

		r.UpdateReputation()
		r.LastUtilization = alloc.Utilization
		r.LastServedTotal = alloc.Served

		waste := r.Stock.SweepExpired(today)
		if len(waste) > 0 {
			outcome.Waste = append(outcome.Waste, waste...)
			wasteCost := money.Zero
			for _, lot := range waste {
				wasteCost = wasteCost.Add(lot.UnitCostHT.MulQty(lot.Quantity))
			}
			wasteEntry := ledger.Entry{Date: today, Kind: ledger.KindOther, Amount: wasteCost.Neg(), RestaurantID: r.ID, Turn: turn, Description: "expired stock"}
			s.Ledger.Append(wasteEntry)
			outcome.LedgerDelta = append(outcome.LedgerDelta, wasteEntry)
			r.Cash = r.Cash.Sub(wasteCost)
		}

		outcome.PerRestaurant = append(outcome.PerRestaurant, TurnResult{
			RestaurantID:  r.ID,
			Capacity:      alloc.Capacity,
			Served:        alloc.Served,
			LostCustomers: alloc.LostCustomers,
			Utilization:   alloc.Utilization,
			Revenue:       alloc.Revenue,
			COGS:          cogs,
			Labor:         labor,
			Rent:          rent,
			Fixed:         fixed,
			NetProfit:     netProfit,
			Reputation:    r.Reputation,
			Satisfaction:  alloc.Satisfaction,
			Cash:          r.Cash,
		})
	}

	s.turn = turn
	s.history = append(s.history, outcome)

	return outcome, nil
}

// consumeForService distributes a restaurant's served-portion total evenly
// across its active menu entries (the uniform_over_menu consumption
// policy) and draws the required ingredient quantities FEFO from stock.
// Segment-weighted consumption falls back to the same even split, since
// the allocator does not currently track which segment chose which
// recipe. Shortfalls do not abort the turn; they are returned as warnings.
// The served count and revenue from the allocator are not reduced for a
// shortfall.
func (s *Simulation) consumeForService(r *restaurant.Restaurant, served int64, today time.Time) (money.Money, []error) {
	cogs := money.Zero
	if served <= 0 || len(r.Menu) == 0 {
		return cogs, nil
	}

	recipeIDs := make([]string, 0, len(r.Menu))
	for id := range r.Menu {
		recipeIDs = append(recipeIDs, id)
	}
	// r.Menu is a map; iteration order must be fixed for determinism (spec.md §8).
	sort.Strings(recipeIDs)

	base := served / int64(len(recipeIDs))
	remainder := served % int64(len(recipeIDs))

	var warnings []error
	for i, recipeID := range recipeIDs {
		portions := base
		if int64(i) < remainder {
			portions++
		}
		if portions <= 0 {
			continue
		}
		recipe, ok := s.Catalog.Recipe(recipeID)
		if !ok {
			continue
		}

		// Value this recipe's ingredient cost through the costing engine
		// (FEFO-weighted against current stock, quality-multiplier applied)
		// before depleting any lot, so the valuation basis matches what is
		// about to be consumed. The labor rate is zeroed here: payroll is
		// already charged in full via MonthlyPersonnelCost, and spec.md
		// §4.6's variable_costs is ingredient cost only.
		portionCost, err := s.costing.ComputePortionCost(recipe, costing.QualityChoices(r.IngredientQuality), r.Stock, today, money.Zero, r.Type.LaborFactor())
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		cogs = cogs.Add(portionCost.IngredientCost.Mul(decimal.NewFromInt(portions)))

		for _, item := range recipe.Items {
			// qty_brute is a per-batch quantity (a batch yields recipe.Portions
			// servings); divide down to a per-portion quantity before scaling
			// by the portions actually served this turn, matching the
			// procurement engine's gross_need = qty_brute × forecast ÷ portions.
			perPortion := item.QtyBrute.Div(decimal.NewFromInt(int64(recipe.Portions)))
			need := perPortion.Mul(decimal.NewFromInt(portions))
			if _, err := r.Stock.Consume(item.IngredientID, need, today); err != nil {
				warnings = append(warnings, err)
			}
		}
	}
	return cogs, warnings
}

func newLedgerMarketingEntry(restaurantID string, turn int, cost money.Money) ledger.Entry {
	return ledger.Entry{Kind: ledger.KindMarketing, Amount: cost.Neg(), RestaurantID: restaurantID, Turn: turn, Description: "marketing campaign"}
}

func newLedgerLoanEntry(restaurantID string, turn int, amount money.Money) ledger.Entry {
	return ledger.Entry{Kind: ledger.KindLoan, Amount: amount, RestaurantID: restaurantID, Turn: turn, Description: "loan proceeds"}
}
