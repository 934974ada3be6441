package stock

import (
	"time"

	"github.com/foodops/foodops-kernel/internal/catalog"
	"github.com/foodops/foodops-kernel/internal/money"
)

// Lot is a quantity of a single ingredient received on a date, carrying its
// own cost and expiry (DLC — date limite de consommation). Stock is never
// valued at a blended catalog average; every lot keeps the price it was
// actually bought at.
type Lot struct {
	IngredientID string
	Quantity     money.Qty
	DLC          time.Time // expiry date, day resolution
	UnitCostHT   money.Money
	VATRate      catalog.Rate
	SupplierID   string
	ReceivedDate time.Time
	LotNumber    string // optional
}

// IsExpired reports whether the lot is past its DLC as of today.
func (l Lot) IsExpired(today time.Time) bool {
	return dateOnly(today).After(dateOnly(l.DLC))
}

// DaysUntilExpiry returns the (possibly negative) day count to DLC.
func (l Lot) DaysUntilExpiry(today time.Time) int {
	return int(dateOnly(l.DLC).Sub(dateOnly(today)).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ConsumedSlice records one lot's contribution to a consume() call.
type ConsumedSlice struct {
	IngredientID string
	LotNumber    string
	ConsumedQty  money.Qty
	UnitCostHT   money.Money
	DLC          time.Time
	SupplierID   string
}

// Cost is the exact HT cost of this slice.
func (s ConsumedSlice) Cost() money.Money {
	return s.UnitCostHT.MulQty(s.ConsumedQty)
}
