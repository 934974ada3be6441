// Package procurement turns ingredient shortfalls into purchase order
// lines and turns deliveries into stock lots. It never touches the stock
// manager directly — the turn engine feeds its output (lots) in.
package procurement

import (
	"github.com/foodops/foodops-kernel/internal/catalog"
	"github.com/foodops/foodops-kernel/internal/ids"
	"github.com/foodops/foodops-kernel/internal/money"
)

// BuildOrderLine selects the best offer for an ingredient's net need and
// returns a ready-to-submit OPEN purchase order line, or false if no
// available offer exists for that ingredient.
func BuildOrderLine(cat *catalog.Catalog, ingredientID string, netNeed, safetyStock money.Qty) (*PurchaseOrderLine, bool) {
	offers := cat.OffersFor(ingredientID)
	quote, ok := SelectOffer(offers, netNeed, safetyStock)
	if !ok {
		return nil, false
	}
	o := quote.Offer
	line := NewPurchaseOrderLine(
		ids.NewPrefixed("po"),
		ingredientID,
		o.SupplierID,
		quote.Quantity,
		o.UnitPriceHT,
		o.VATRate.Value(),
		o.PackSize,
		o.PackUnit,
		o.QualityLevel,
		o.LeadTimeDays,
	)
	return line, true
}
