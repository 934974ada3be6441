package procurement

import (
	"time"

	"github.com/foodops/foodops-kernel/internal/catalog"
	"github.com/foodops/foodops-kernel/internal/money"
	"github.com/foodops/foodops-kernel/internal/stock"
)

// DeliveryLine is one host-supplied line of an incoming delivery, matched
// against an open PO line by ID.
type DeliveryLine struct {
	POLineID     string
	QtyDelivered money.Qty
	UnitPriceHT  money.Money
	VATRate      float64
	SupplierID   string
	LotNumber    string
	QualityLevel int
}

// GoodsReceiptLine is one processed delivery line: the PO line it settled
// against, what was delivered/accepted, and the lot it produced.
type GoodsReceiptLine struct {
	POLineID    string
	QtyDelivered money.Qty
	QtyAccepted money.Qty
	Lot         stock.Lot
}

// GoodsReceipt is the result of processing one delivery against a set of
// open purchase order lines.
type GoodsReceipt struct {
	ReceiptDate time.Time
	Lines       []GoodsReceiptLine
	TotalHT     money.Money
	TotalTTC    money.Money
}

// shelfLifeAdjustmentDays maps a quality level to a shelf-life adjustment in
// days: higher quality tiers ship fresher and keep longer.
func shelfLifeAdjustmentDays(level int) int {
	switch level {
	case 1:
		return -2
	case 2:
		return -1
	case 3:
		return 0
	case 4:
		return 1
	case 5:
		return 2
	default:
		return 0
	}
}

// ShelfLifeDaysFunc resolves an ingredient's default shelf life, supplied by
// the caller (the catalog) so this package doesn't need to import it.
type ShelfLifeDaysFunc func(ingredientID string) (int, bool)

// Receive processes a batch of delivery lines against open PO lines,
// producing stock lots and updating each line's accepted quantity and
// status. Lines are matched by ID; an unmatched POLineID or an ingredient
// the shelf-life resolver doesn't know about is a ReceivingError.
func Receive(openLines map[string]*PurchaseOrderLine, deliveries []DeliveryLine, receivedDate time.Time, shelfLifeDays ShelfLifeDaysFunc) (*GoodsReceipt, error) {
	receipt := &GoodsReceipt{ReceiptDate: receivedDate}

	for _, d := range deliveries {
		line, ok := openLines[d.POLineID]
		if !ok {
			return nil, newReceivingError("delivery references unknown PO line %s", d.POLineID)
		}
		base, ok := shelfLifeDays(line.IngredientID)
		if !ok {
			return nil, newReceivingError("delivery references unknown ingredient %s", line.IngredientID)
		}

		vatRate, err := catalog.NewRate(d.VATRate)
		if err != nil {
			return nil, newReceivingError("delivery for %s has invalid VAT rate: %v", line.IngredientID, err)
		}

		accepted := line.ApplyAcceptance(d.QtyDelivered, d.QtyDelivered)

		dlc := receivedDate.AddDate(0, 0, base+shelfLifeAdjustmentDays(d.QualityLevel))
		lot := stock.Lot{
			IngredientID: line.IngredientID,
			Quantity:     accepted,
			DLC:          dlc,
			UnitCostHT:   d.UnitPriceHT,
			VATRate:      vatRate,
			SupplierID:   d.SupplierID,
			ReceivedDate: receivedDate,
			LotNumber:    d.LotNumber,
		}

		receipt.Lines = append(receipt.Lines, GoodsReceiptLine{
			POLineID:     d.POLineID,
			QtyDelivered: d.QtyDelivered,
			QtyAccepted:  accepted,
			Lot:          lot,
		})

		lineValueHT := d.UnitPriceHT.MulQty(accepted)
		receipt.TotalHT = receipt.TotalHT.Add(lineValueHT)
		receipt.TotalTTC = receipt.TotalTTC.Add(lineValueHT.Mul(oneDecimal.Add(rateDecimal(d.VATRate))))
	}

	return receipt, nil
}
