package simulation

import (
	"errors"
	"time"

	"github.com/foodops/foodops-kernel/internal/catalog"
	"github.com/foodops/foodops-kernel/internal/costing"
	"github.com/foodops/foodops-kernel/internal/events"
	"github.com/foodops/foodops-kernel/internal/ledger"
	"github.com/foodops/foodops-kernel/internal/market"
	"github.com/foodops/foodops-kernel/internal/money"
	"github.com/foodops/foodops-kernel/internal/procurement"
	"github.com/foodops/foodops-kernel/internal/restaurant"
	"github.com/foodops/foodops-kernel/internal/stock"
)

// SchemaVersion is the current Snapshot wire format. Restore rejects any
// other value with a *SnapshotError rather than guessing at a migration.
const SchemaVersion = 1

// RestaurantSnapshot is the serializable form of one restaurant's mutable
// state: menu, staffing, employees, stock lots, reputation, satisfaction
// history, cash, and open purchase order lines. money.Money already
// marshals as a decimal string (spec.md §6), so these fields need no
// special handling beyond the struct tags below.
type RestaurantSnapshot struct {
	ID                  string                            `json:"id"`
	Name                string                            `json:"name"`
	Type                restaurant.Type                   `json:"type"`
	BaseCapacity        float64                           `json:"base_capacity"`
	ServiceSpeed        float64                           `json:"service_speed"`
	Menu                map[string]restaurant.MenuEntry   `json:"menu"`
	InactiveMenu        map[string]money.Money            `json:"inactive_menu"`
	StaffingLevel       restaurant.StaffingLevel          `json:"staffing_level"`
	Employees           []restaurant.Employee             `json:"employees"`
	IngredientQuality   map[string]int                    `json:"ingredient_quality"`
	Lots                []stock.Lot                       `json:"lots"`
	Reputation          float64                           `json:"reputation"`
	SatisfactionHistory []float64                         `json:"satisfaction_history"`
	Cash                money.Money                       `json:"cash"`
	EquipmentValue      money.Money                       `json:"equipment_value"`
	MonthlyRent         money.Money                       `json:"monthly_rent"`
	MonthlyFixedCosts   money.Money                       `json:"monthly_fixed_costs"`
	PendingPOLines      []*procurement.PurchaseOrderLine  `json:"pending_po_lines"`
	LastUtilization     float64                           `json:"last_utilization"`
	LastServedTotal     int64                             `json:"last_served_total"`
}

// Snapshot is the fully versioned, serializable state of a Simulation.
// Catalogs and event template registries are treated as host-supplied,
// shared read-only seed data: Restore takes them as parameters rather than
// re-reading them from the snapshot, the same way New does.
type Snapshot struct {
	SchemaVersion int `json:"schema_version"`

	Scenario      market.Scenario               `json:"scenario"`
	SocialCharges restaurant.SocialChargesTable  `json:"social_charges"`

	Seed       int64     `json:"seed"`
	Turn       int       `json:"turn"`
	StartMonth int       `json:"start_month"`
	StartDate  time.Time `json:"start_date"`

	RestaurantOrder []string             `json:"restaurant_order"`
	Restaurants     []RestaurantSnapshot `json:"restaurants"`

	LedgerEntries []ledger.Entry        `json:"ledger_entries"`
	ActiveEvents  []events.Instance     `json:"active_events"`
	AIControl     map[string]Difficulty `json:"ai_control"`

	History []TurnOutcomeSnapshot `json:"history"`
}

// TurnOutcomeSnapshot is TurnOutcome in a form encoding/json can round-trip:
// TurnOutcome.Warnings holds the error interface, which JSON can marshal
// (via the concrete error type's exported fields) but never unmarshal back
// to the original concrete type, so the snapshot keeps warnings as their
// rendered strings instead.
type TurnOutcomeSnapshot struct {
	Turn          int                       `json:"turn"`
	PerRestaurant []TurnResult              `json:"per_restaurant"`
	NewEvents     []events.Instance         `json:"new_events"`
	LedgerDelta   []ledger.Entry            `json:"ledger_delta"`
	Waste         []stock.Lot               `json:"waste"`
	Warnings      []string                  `json:"warnings"`
}

func toTurnOutcomeSnapshot(o TurnOutcome) TurnOutcomeSnapshot {
	warnings := make([]string, len(o.Warnings))
	for i, w := range o.Warnings {
		warnings[i] = w.Error()
	}
	return TurnOutcomeSnapshot{
		Turn:          o.Turn,
		PerRestaurant: o.PerRestaurant,
		NewEvents:     o.NewEvents,
		LedgerDelta:   o.LedgerDelta,
		Waste:         o.Waste,
		Warnings:      warnings,
	}
}

// fromTurnOutcomeSnapshot rebuilds a TurnOutcome for the in-memory turn
// history. Warnings are restored as generic errors carrying the original
// message; their concrete type is not preserved across a save/load cycle.
func fromTurnOutcomeSnapshot(s TurnOutcomeSnapshot) TurnOutcome {
	var warnings []error
	for _, w := range s.Warnings {
		warnings = append(warnings, errors.New(w))
	}
	return TurnOutcome{
		Turn:          s.Turn,
		PerRestaurant: s.PerRestaurant,
		NewEvents:     s.NewEvents,
		LedgerDelta:   s.LedgerDelta,
		Waste:         s.Waste,
		Warnings:      warnings,
	}
}

// Snapshot captures the simulation's full mutable state for save/load. The
// RNG carries no persisted position: every turn derives a fresh stream
// from (seed, turn) (see internal/rng), so the seed and turn counter alone
// are sufficient to resume drawing from exactly the same logical point the
// next RunTurn call would have reached.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		SchemaVersion:   SchemaVersion,
		Scenario:        s.Scenario,
		SocialCharges:   s.SocialCharges,
		Seed:            s.seed,
		Turn:            s.turn,
		StartMonth:      s.startMonth,
		StartDate:       s.StartDate,
		RestaurantOrder: append([]string(nil), s.restaurantOrder...),
		LedgerEntries:   s.Ledger.Entries(),
		ActiveEvents:    s.Events.Active(),
		AIControl:       make(map[string]Difficulty, len(s.aiControl)),
	}
	for _, o := range s.history {
		snap.History = append(snap.History, toTurnOutcomeSnapshot(o))
	}
	for id, d := range s.aiControl {
		snap.AIControl[id] = d
	}
	for _, id := range s.restaurantOrder {
		r := s.Restaurants[id]
		menu := make(map[string]restaurant.MenuEntry, len(r.Menu))
		for k, v := range r.Menu {
			menu[k] = v
		}
		inactiveMenu := make(map[string]money.Money, len(r.InactiveMenu))
		for k, v := range r.InactiveMenu {
			inactiveMenu[k] = v
		}
		quality := make(map[string]int, len(r.IngredientQuality))
		for k, v := range r.IngredientQuality {
			quality[k] = v
		}
		snap.Restaurants = append(snap.Restaurants, RestaurantSnapshot{
			ID:                  r.ID,
			Name:                r.Name,
			Type:                r.Type,
			BaseCapacity:        r.BaseCapacity,
			ServiceSpeed:        r.ServiceSpeed,
			Menu:                menu,
			InactiveMenu:        inactiveMenu,
			StaffingLevel:       r.StaffingLevel,
			Employees:           append([]restaurant.Employee(nil), r.Employees...),
			IngredientQuality:   quality,
			Lots:                r.Stock.AllLots(),
			Reputation:          r.Reputation,
			SatisfactionHistory: r.SatisfactionHistory(),
			Cash:                r.Cash,
			EquipmentValue:      r.EquipmentValue,
			MonthlyRent:         r.MonthlyRent,
			MonthlyFixedCosts:   r.MonthlyFixedCosts,
			PendingPOLines:      append([]*procurement.PurchaseOrderLine(nil), r.PendingPOLines...),
			LastUtilization:     r.LastUtilization,
			LastServedTotal:     r.LastServedTotal,
		})
	}
	return snap
}

// Restore reconstructs a Simulation from a Snapshot, re-attaching the
// host-supplied catalog and event registry. A schema_version the kernel
// doesn't recognize is rejected with *SnapshotError rather than guessed at.
func Restore(snap Snapshot, cat *catalog.Catalog, registry *events.Registry) (*Simulation, error) {
	if snap.SchemaVersion != SchemaVersion {
		return nil, newSnapshotError("unsupported schema_version %d (expected %d)", snap.SchemaVersion, SchemaVersion)
	}

	sim := &Simulation{
		Scenario:         snap.Scenario,
		Catalog:          cat,
		SocialCharges:    snap.SocialCharges,
		Restaurants:      make(map[string]*restaurant.Restaurant, len(snap.Restaurants)),
		restaurantOrder:  append([]string(nil), snap.RestaurantOrder...),
		Ledger:           ledger.Restore(snap.LedgerEntries),
		Events:           events.NewModulator(registry),
		costing:          costing.NewEngine(cat),
		seed:             snap.Seed,
		turn:             snap.Turn,
		pendingDecisions: make(map[string][]Decision),
		poLines:          make(map[string]*procurement.PurchaseOrderLine),
		poOwner:          make(map[string]string),
		aiControl:        make(map[string]Difficulty, len(snap.AIControl)),
		startMonth:       snap.StartMonth,
		StartDate:        snap.StartDate,
	}
	for _, os := range snap.History {
		sim.history = append(sim.history, fromTurnOutcomeSnapshot(os))
	}
	sim.Events.RestoreActive(snap.ActiveEvents)
	for id, d := range snap.AIControl {
		sim.aiControl[id] = d
	}

	for _, rs := range snap.Restaurants {
		r := restaurant.New(rs.ID, rs.Name, rs.Type, rs.BaseCapacity, rs.ServiceSpeed, rs.Cash, rs.MonthlyRent, rs.MonthlyFixedCosts)
		r.EquipmentValue = rs.EquipmentValue
		r.StaffingLevel = rs.StaffingLevel
		r.Reputation = rs.Reputation
		r.LastUtilization = rs.LastUtilization
		r.LastServedTotal = rs.LastServedTotal
		r.PendingPOLines = append([]*procurement.PurchaseOrderLine(nil), rs.PendingPOLines...)
		r.RestoreSatisfactionHistory(rs.SatisfactionHistory)
		for recipeID, entry := range rs.Menu {
			r.Menu[recipeID] = entry
		}
		for recipeID, price := range rs.InactiveMenu {
			r.InactiveMenu[recipeID] = price
		}
		for ingredientID, level := range rs.IngredientQuality {
			r.IngredientQuality[ingredientID] = level
		}
		for _, e := range rs.Employees {
			if err := r.HireEmployee(e); err != nil {
				return nil, newSnapshotError("restaurant %s: %v", rs.ID, err)
			}
		}
		r.Stock.RestoreLots(rs.Lots)
		sim.Restaurants[rs.ID] = r

		for _, line := range r.PendingPOLines {
			sim.poLines[line.ID] = line
			sim.poOwner[line.ID] = rs.ID
		}
	}

	return sim, nil
}
