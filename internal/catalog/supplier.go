package catalog

import "github.com/foodops/foodops-kernel/internal/money"

// Supplier is immutable seed data describing a procurement counterparty.
type Supplier struct {
	ID                string
	Reliability       float64 // 0..1
	LeadTimeDays      int
	MOQValue          money.Money
	ShippingCost      money.Money
	PaymentTermsDays  int
	DiscountThreshold *money.Money
	DiscountRate      *float64
}

func newSupplier(s Supplier) (Supplier, error) {
	if s.ID == "" {
		return Supplier{}, newError("supplier missing id")
	}
	if s.Reliability < 0 || s.Reliability > 1 {
		return Supplier{}, newError("supplier %s reliability %v out of range 0..1", s.ID, s.Reliability)
	}
	if s.LeadTimeDays < 0 {
		return Supplier{}, newError("supplier %s has negative lead time", s.ID)
	}
	return s, nil
}

// SupplierOffer is a catalog row: one supplier's terms for selling one
// ingredient at one quality level.
type SupplierOffer struct {
	IngredientID string
	SupplierID   string
	QualityLevel int
	PackSize     money.Qty
	PackUnit     string
	UnitPriceHT  money.Money
	VATRate      Rate
	MOQQty       money.Qty
	MOQValue     money.Money
	LeadTimeDays int
	Reliability  float64
	Available    bool
}

// Key returns the unique (ingredient, supplier, quality) key used to
// detect duplicate offer rows.
func (o SupplierOffer) Key() string {
	return o.IngredientID + "|" + o.SupplierID + "|" + ratingKey(o.QualityLevel)
}

func ratingKey(level int) string {
	digits := [5]string{"1", "2", "3", "4", "5"}
	if level >= 1 && level <= 5 {
		return digits[level-1]
	}
	return "x"
}

func newSupplierOffer(o SupplierOffer) (SupplierOffer, error) {
	if o.IngredientID == "" || o.SupplierID == "" {
		return SupplierOffer{}, newError("supplier offer missing ingredient or supplier id")
	}
	if o.PackSize.IsZero() || o.PackSize.IsNegative() {
		return SupplierOffer{}, newError("offer %s/%s has invalid pack size", o.IngredientID, o.SupplierID)
	}
	if o.QualityLevel < 1 || o.QualityLevel > 5 {
		return SupplierOffer{}, newError("offer %s/%s quality level %d out of range", o.IngredientID, o.SupplierID, o.QualityLevel)
	}
	return o, nil
}
