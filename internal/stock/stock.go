// Package stock implements a FEFO (first-expired-first-out) lot store.
// Consumption is transactional — either every requested unit is drawn from
// non-expired lots, or nothing is mutated and an InsufficientStockError is
// returned.
package stock

import (
	"sort"
	"time"

	"github.com/foodops/foodops-kernel/internal/money"
)

// entry wraps a Lot with the insertion sequence used to keep the sort
// stable when DLC and received date tie.
type entry struct {
	lot Lot
	seq uint64
}

// Manager is the per-simulation stock store, one ingredient-keyed lot list
// per restaurant. It has no concurrency guard: within a turn, procurement
// (add) and consumption run strictly sequentially, so no lock is needed.
type Manager struct {
	lots map[string][]*entry
	seq  uint64
}

// NewManager creates an empty stock store.
func NewManager() *Manager {
	return &Manager{lots: make(map[string][]*entry)}
}

// AddLot inserts a lot and keeps the ingredient's list sorted by
// (DLC ascending, received date ascending, insertion order).
func (m *Manager) AddLot(lot Lot) {
	m.seq++
	e := &entry{lot: lot, seq: m.seq}
	list := append(m.lots[lot.IngredientID], e)
	sort.SliceStable(list, func(i, j int) bool {
		return less(list[i], list[j])
	})
	m.lots[lot.IngredientID] = list
}

func less(a, b *entry) bool {
	if !a.lot.DLC.Equal(b.lot.DLC) {
		return a.lot.DLC.Before(b.lot.DLC)
	}
	if !a.lot.ReceivedDate.Equal(b.lot.ReceivedDate) {
		return a.lot.ReceivedDate.Before(b.lot.ReceivedDate)
	}
	return a.seq < b.seq
}

// Available sums non-expired lot quantities for an ingredient as of today.
// When excludeExpired is false, expired lots are included too.
func (m *Manager) Available(ingredientID string, today time.Time, excludeExpired bool) money.Qty {
	total := money.ZeroQty
	for _, e := range m.lots[ingredientID] {
		if excludeExpired && e.lot.IsExpired(today) {
			continue
		}
		total = total.Add(e.lot.Quantity)
	}
	return total
}

// Consume draws qty units from the earliest-DLC non-expired lots first. On
// success it mutates lot quantities and purges any lot that reaches zero,
// returning the slices consumed. On insufficient stock, no lot is mutated
// and an *InsufficientStockError is returned instead.
func (m *Manager) Consume(ingredientID string, qty money.Qty, today time.Time) ([]ConsumedSlice, error) {
	list := m.lots[ingredientID]

	available := money.ZeroQty
	for _, e := range list {
		if e.lot.IsExpired(today) {
			continue
		}
		available = available.Add(e.lot.Quantity)
	}
	if available.LessThan(qty) {
		return nil, &InsufficientStockError{IngredientID: ingredientID, Requested: qty, Available: available}
	}

	remaining := qty
	var slices []ConsumedSlice
	kept := make([]*entry, 0, len(list))
	for _, e := range list {
		// Expired lots are never drawn from but stay in the store until an
		// explicit SweepExpired call.
		if e.lot.IsExpired(today) || remaining.IsZero() {
			kept = append(kept, e)
			continue
		}
		take := money.MinQty(remaining, e.lot.Quantity)
		slices = append(slices, ConsumedSlice{
			IngredientID: ingredientID,
			LotNumber:    e.lot.LotNumber,
			ConsumedQty:  take,
			UnitCostHT:   e.lot.UnitCostHT,
			DLC:          e.lot.DLC,
			SupplierID:   e.lot.SupplierID,
		})
		e.lot.Quantity = e.lot.Quantity.Sub(take)
		remaining = remaining.Sub(take)
		if e.lot.Quantity.IsPositive() {
			kept = append(kept, e)
		}
	}
	m.lots[ingredientID] = kept
	return slices, nil
}

// SweepExpired removes lots with DLC < today and returns them for waste
// accounting.
func (m *Manager) SweepExpired(today time.Time) []Lot {
	var waste []Lot
	for ingredientID, list := range m.lots {
		var kept []*entry
		for _, e := range list {
			if e.lot.IsExpired(today) {
				waste = append(waste, e.lot)
			} else {
				kept = append(kept, e)
			}
		}
		m.lots[ingredientID] = kept
	}
	return waste
}

// NearExpiry returns lots whose days-until-expiry falls in [0, days] across
// all ingredients.
func (m *Manager) NearExpiry(today time.Time, days int) []Lot {
	var out []Lot
	for _, list := range m.lots {
		for _, e := range list {
			d := e.lot.DaysUntilExpiry(today)
			if d >= 0 && d <= days {
				out = append(out, e.lot)
			}
		}
	}
	return out
}

// ValueHT sums quantity × unit cost HT over non-expired lots. An empty
// ingredientID sums across every ingredient.
func (m *Manager) ValueHT(ingredientID string, today time.Time) money.Money {
	total := money.Zero
	sumIngredient := func(list []*entry) {
		for _, e := range list {
			if e.lot.IsExpired(today) {
				continue
			}
			total = total.Add(e.lot.UnitCostHT.MulQty(e.lot.Quantity))
		}
	}
	if ingredientID != "" {
		sumIngredient(m.lots[ingredientID])
		return total
	}
	for _, list := range m.lots {
		sumIngredient(list)
	}
	return total
}

// AllLots returns every lot currently held, expired or not, across every
// ingredient — used to serialize a full snapshot of the store.
func (m *Manager) AllLots() []Lot {
	var out []Lot
	for _, list := range m.lots {
		for _, e := range list {
			out = append(out, e.lot)
		}
	}
	return out
}

// RestoreLots rebuilds the store from a flat lot list, re-establishing the
// FEFO order per ingredient. Used when reconstructing from a snapshot.
func (m *Manager) RestoreLots(lots []Lot) {
	m.lots = make(map[string][]*entry)
	m.seq = 0
	for _, lot := range lots {
		m.AddLot(lot)
	}
}

// Lots returns a defensive copy of the non-expired lots for an ingredient,
// in FEFO order — used by the costing engine to preview consumption
// without mutating the store.
func (m *Manager) Lots(ingredientID string, today time.Time) []Lot {
	list := m.lots[ingredientID]
	out := make([]Lot, 0, len(list))
	for _, e := range list {
		if e.lot.IsExpired(today) {
			continue
		}
		out = append(out, e.lot)
	}
	return out
}
