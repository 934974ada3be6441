// Package simulation orchestrates the per-turn pipeline: apply decisions,
// run procurement, evaluate events, run the market allocator, consume
// stock, post ledger entries, and update reputation and cash. It is the
// only package that wires every other kernel subsystem together.
package simulation

import (
	"fmt"
	"time"

	"github.com/foodops/foodops-kernel/internal/catalog"
	"github.com/foodops/foodops-kernel/internal/costing"
	"github.com/foodops/foodops-kernel/internal/events"
	"github.com/foodops/foodops-kernel/internal/ids"
	"github.com/foodops/foodops-kernel/internal/ledger"
	"github.com/foodops/foodops-kernel/internal/market"
	"github.com/foodops/foodops-kernel/internal/money"
	"github.com/foodops/foodops-kernel/internal/procurement"
	"github.com/foodops/foodops-kernel/internal/restaurant"
	"github.com/foodops/foodops-kernel/internal/rng"
)

// RestaurantSpec describes a restaurant to add to a simulation.
type RestaurantSpec struct {
	ID                string
	Name              string
	Type              restaurant.Type
	BaseCapacity      float64
	ServiceSpeed      float64
	StartingCash      money.Money
	MonthlyRent       money.Money
	MonthlyFixedCosts money.Money
	Employees         []restaurant.Employee
}

// Simulation is one kernel instance: a scenario, a catalog, a roster of
// restaurants, and the shared ledger/events/RNG state that evolves turn
// by turn.
type Simulation struct {
	Scenario      market.Scenario
	Catalog       *catalog.Catalog
	SocialCharges restaurant.SocialChargesTable

	Restaurants    map[string]*restaurant.Restaurant
	restaurantOrder []string

	Ledger *ledger.Ledger
	Events *events.Modulator
	costing *costing.Engine

	seed int64
	turn int

	pendingDecisions map[string][]Decision
	poLines          map[string]*procurement.PurchaseOrderLine
	poOwner          map[string]string
	aiControl        map[string]Difficulty
	history          []TurnOutcome

	startMonth int
	// StartDate anchors turn 1's calendar date; zero means "derive from
	// startMonth at a fixed reference year".
	StartDate time.Time
}

// New constructs a simulation from a validated scenario and catalog. seed
// is the deterministic root seed; when scenario.Seed is set and seed is 0,
// the scenario's seed is used instead.
func New(scenario market.Scenario, cat *catalog.Catalog, registry *events.Registry, seed int64, startMonth int) (*Simulation, error) {
	if err := scenario.ValidateShares(); err != nil {
		return nil, err
	}
	if scenario.Turns <= 0 {
		return nil, newScenarioTurnsError(scenario.Turns)
	}
	if seed == 0 && scenario.Seed != nil {
		seed = *scenario.Seed
	}
	return &Simulation{
		Scenario:         scenario,
		Catalog:          cat,
		SocialCharges:    restaurant.DefaultSocialCharges(),
		Restaurants:      make(map[string]*restaurant.Restaurant),
		Ledger:           ledger.New(),
		Events:           events.NewModulator(registry),
		costing:          costing.NewEngine(cat),
		seed:             seed,
		pendingDecisions: make(map[string][]Decision),
		poLines:          make(map[string]*procurement.PurchaseOrderLine),
		poOwner:          make(map[string]string),
		startMonth:       startMonth,
	}, nil
}

func newScenarioTurnsError(turns int) error {
	return &market.ScenarioError{Reason: fmt.Sprintf("scenario turns must be > 0, got %d", turns)}
}

// AddRestaurant registers a new restaurant and returns its id.
func (s *Simulation) AddRestaurant(spec RestaurantSpec) (string, error) {
	id := spec.ID
	if id == "" {
		id = ids.NewPrefixed("restaurant")
	}
	if _, exists := s.Restaurants[id]; exists {
		return "", newDecisionError("restaurant %s already exists", id)
	}
	r := restaurant.New(id, spec.Name, spec.Type, spec.BaseCapacity, spec.ServiceSpeed, spec.StartingCash, spec.MonthlyRent, spec.MonthlyFixedCosts)
	for _, e := range spec.Employees {
		if err := r.HireEmployee(e); err != nil {
			return "", err
		}
	}
	s.Restaurants[id] = r
	s.restaurantOrder = append(s.restaurantOrder, id)
	return id, nil
}

// orderedRestaurants returns restaurants in registration order, the
// deterministic iteration order the turn engine relies on.
func (s *Simulation) orderedRestaurants() []*restaurant.Restaurant {
	out := make([]*restaurant.Restaurant, 0, len(s.restaurantOrder))
	for _, id := range s.restaurantOrder {
		out = append(out, s.Restaurants[id])
	}
	return out
}

// SubmitDecisions queues decisions for a restaurant's next run_turn call.
// Decisions for the same restaurant across multiple calls before run_turn
// accumulate in call order.
func (s *Simulation) SubmitDecisions(restaurantID string, decisions []Decision) error {
	if _, ok := s.Restaurants[restaurantID]; !ok {
		return newDecisionError("unknown restaurant %s", restaurantID)
	}
	s.pendingDecisions[restaurantID] = append(s.pendingDecisions[restaurantID], decisions...)
	return nil
}

// ConfirmDelivery processes a delivery against a restaurant's open PO
// lines, producing stock lots immediately.
func (s *Simulation) ConfirmDelivery(restaurantID string, deliveries []procurement.DeliveryLine, receivedDate time.Time) (*procurement.GoodsReceipt, error) {
	r, ok := s.Restaurants[restaurantID]
	if !ok {
		return nil, newDecisionError("unknown restaurant %s", restaurantID)
	}

	lines := make(map[string]*procurement.PurchaseOrderLine)
	for _, line := range r.PendingPOLines {
		lines[line.ID] = line
	}

	receipt, err := procurement.Receive(lines, deliveries, receivedDate, func(ingredientID string) (int, bool) {
		ing, ok := s.Catalog.Ingredient(ingredientID)
		if !ok {
			return 0, false
		}
		return ing.ShelfLifeDays, true
	})
	if err != nil {
		return nil, err
	}

	for _, gl := range receipt.Lines {
		r.Stock.AddLot(gl.Lot)
	}

	var kept []*procurement.PurchaseOrderLine
	for _, line := range r.PendingPOLines {
		if line.Status != procurement.StatusClosed {
			kept = append(kept, line)
		}
	}
	r.PendingPOLines = kept

	return receipt, nil
}
