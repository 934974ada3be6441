package procurement

import "github.com/foodops/foodops-kernel/internal/money"

// Status is a purchase order line's fulfillment state.
type Status string

const (
	StatusOpen    Status = "OPEN"
	StatusPartial Status = "PARTIAL"
	StatusClosed  Status = "CLOSED"
)

// PurchaseOrderLine is one ingredient line of a purchase order: what was
// ordered, from whom, and how much of it has been accepted so far.
type PurchaseOrderLine struct {
	ID           string
	IngredientID string
	SupplierID   string
	OrderedQty   money.Qty
	UnitPriceHT  money.Money
	VATRate      float64
	PackSize     money.Qty
	PackUnit     string
	QualityLevel int // 0 means unspecified
	ETADays      int

	ReceivedQty money.Qty
	AcceptedQty money.Qty
	Status      Status
}

// NewPurchaseOrderLine creates an OPEN line for a freshly placed order.
func NewPurchaseOrderLine(id, ingredientID, supplierID string, qty money.Qty, unitPriceHT money.Money, vat float64, packSize money.Qty, packUnit string, qualityLevel, etaDays int) *PurchaseOrderLine {
	return &PurchaseOrderLine{
		ID:           id,
		IngredientID: ingredientID,
		SupplierID:   supplierID,
		OrderedQty:   qty,
		UnitPriceHT:  unitPriceHT,
		VATRate:      vat,
		PackSize:     packSize,
		PackUnit:     packUnit,
		QualityLevel: qualityLevel,
		ETADays:      etaDays,
		Status:       StatusOpen,
	}
}

// ApplyAcceptance records qty additionally accepted against this line,
// capping at OrderedQty (over-delivery is never auto-accepted beyond what
// was ordered), and recomputes Status.
func (l *PurchaseOrderLine) ApplyAcceptance(delivered, accepted money.Qty) money.Qty {
	l.ReceivedQty = l.ReceivedQty.Add(delivered)
	remaining := l.OrderedQty.Sub(l.AcceptedQty)
	cappedAccept := money.MinQty(accepted, remaining)
	if cappedAccept.IsNegative() {
		cappedAccept = money.ZeroQty
	}
	l.AcceptedQty = l.AcceptedQty.Add(cappedAccept)

	switch {
	case l.AcceptedQty.GreaterOrEqual(l.OrderedQty):
		l.Status = StatusClosed
	case l.AcceptedQty.IsPositive():
		l.Status = StatusPartial
	default:
		l.Status = StatusOpen
	}
	return cappedAccept
}

// TotalValueHT is ordered qty × unit price.
func (l *PurchaseOrderLine) TotalValueHT() money.Money {
	return l.UnitPriceHT.MulQty(l.OrderedQty)
}
