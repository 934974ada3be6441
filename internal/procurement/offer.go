package procurement

import (
	"sort"

	"github.com/foodops/foodops-kernel/internal/catalog"
	"github.com/foodops/foodops-kernel/internal/money"
)

// Quote is one offer priced against a required quantity, including the
// MOQ-and-pack rounding and the ranking score.
type Quote struct {
	Offer      catalog.SupplierOffer
	Quantity   money.Qty
	TotalValue money.Money
	Score      float64
}

// quantityForOffer computes the pack-rounded, MOQ-satisfying order quantity
// for one offer against a target need. The pack rounding is applied twice:
// once before the MOQ top-up and once after, so a MOQ top-up never leaves
// an order quantity that isn't itself a multiple of the pack size.
func quantityForOffer(offer catalog.SupplierOffer, target money.Qty) money.Qty {
	qty := money.CeilToMultiple(target, offer.PackSize)
	value := offer.UnitPriceHT.MulQty(qty)
	if offer.MOQValue.IsPositive() && value.LessThan(offer.MOQValue) && offer.UnitPriceHT.IsPositive() {
		shortfall := offer.MOQValue.Sub(value)
		extraUnits := shortfall.Decimal().Div(offer.UnitPriceHT.Decimal()).Ceil()
		extraQty := money.QtyFromDecimal(extraUnits)
		qty = money.CeilToMultiple(qty.Add(extraQty), offer.PackSize)
	}
	if offer.MOQQty.IsPositive() && qty.LessThan(offer.MOQQty) {
		qty = money.CeilToMultiple(offer.MOQQty, offer.PackSize)
	}
	return qty
}

// score is qty × unit_price_ht + 0.5 × lead_time_days − 10 × reliability;
// lower is better.
func score(offer catalog.SupplierOffer, qty money.Qty) float64 {
	value := offer.UnitPriceHT.MulQty(qty).Float64()
	return value + 0.5*float64(offer.LeadTimeDays) - 10*offer.Reliability
}

// SelectOffer picks the best-scoring available offer for a net need (plus
// optional safety stock), computing each candidate's pack/MOQ-rounded
// quantity first. Ties break by (lower price, shorter lead time, higher
// reliability, supplier id ascending).
func SelectOffer(offers []catalog.SupplierOffer, netNeed, safetyStock money.Qty) (Quote, bool) {
	target := netNeed.Add(safetyStock)
	if target.IsZero() || target.IsNegative() {
		return Quote{}, false
	}

	var candidates []Quote
	for _, o := range offers {
		if !o.Available || o.PackSize.IsZero() || o.PackSize.IsNegative() {
			continue
		}
		qty := quantityForOffer(o, target)
		candidates = append(candidates, Quote{
			Offer:      o,
			Quantity:   qty,
			TotalValue: o.UnitPriceHT.MulQty(qty),
			Score:      score(o, qty),
		})
	}
	if len(candidates) == 0 {
		return Quote{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score < b.Score
		}
		if !a.Offer.UnitPriceHT.Equal(b.Offer.UnitPriceHT) {
			return a.Offer.UnitPriceHT.LessThan(b.Offer.UnitPriceHT)
		}
		if a.Offer.LeadTimeDays != b.Offer.LeadTimeDays {
			return a.Offer.LeadTimeDays < b.Offer.LeadTimeDays
		}
		if a.Offer.Reliability != b.Offer.Reliability {
			return a.Offer.Reliability > b.Offer.Reliability
		}
		return a.Offer.SupplierID < b.Offer.SupplierID
	})

	return candidates[0], true
}

// QuoteManual prices a specific offer against a caller-chosen quantity
// (manual purchasing mode): the requested quantity is only a floor, still
// subject to pack rounding and MOQ enforcement.
func QuoteManual(offer catalog.SupplierOffer, requestedQty money.Qty) Quote {
	qty := quantityForOffer(offer, requestedQty)
	return Quote{
		Offer:      offer,
		Quantity:   qty,
		TotalValue: offer.UnitPriceHT.MulQty(qty),
		Score:      score(offer, qty),
	}
}
