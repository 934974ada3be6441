package procurement

import (
	"testing"

	"github.com/foodops/foodops-kernel/internal/catalog"
	"github.com/foodops/foodops-kernel/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantityForOfferMOQTopUpAndPackRounding(t *testing.T) {
	offer := catalog.SupplierOffer{
		IngredientID: "flour",
		SupplierID:   "acme",
		QualityLevel: 1,
		PackSize:     money.MustQty("10.000"),
		UnitPriceHT:  money.MustMoney("2.0000"),
		MOQValue:     money.MustMoney("50.0000"),
		Available:    true,
	}

	quote := QuoteManual(offer, money.MustQty("7.000"))
	assert.Equal(t, "30.000", quote.Quantity.String())
	assert.Equal(t, "60.0000", quote.TotalValue.String())
}

func TestQuantityForOfferNoMOQJustPackRounds(t *testing.T) {
	offer := catalog.SupplierOffer{
		PackSize:    money.MustQty("5.000"),
		UnitPriceHT: money.MustMoney("1.0000"),
		Available:   true,
	}
	quote := QuoteManual(offer, money.MustQty("11.000"))
	assert.Equal(t, "15.000", quote.Quantity.String())
}

func TestSelectOfferPrefersLowerScore(t *testing.T) {
	offers := []catalog.SupplierOffer{
		{SupplierID: "expensive", PackSize: money.MustQty("1.000"), UnitPriceHT: money.MustMoney("5.0000"), Available: true, Reliability: 0.9},
		{SupplierID: "cheap", PackSize: money.MustQty("1.000"), UnitPriceHT: money.MustMoney("1.0000"), Available: true, Reliability: 0.9},
	}
	quote, ok := SelectOffer(offers, money.MustQty("10.000"), money.ZeroQty)
	require.True(t, ok)
	assert.Equal(t, "cheap", quote.Offer.SupplierID)
}

func TestSelectOfferIgnoresUnavailableOffers(t *testing.T) {
	offers := []catalog.SupplierOffer{
		{SupplierID: "unavailable", PackSize: money.MustQty("1.000"), UnitPriceHT: money.MustMoney("1.0000"), Available: false},
	}
	_, ok := SelectOffer(offers, money.MustQty("10.000"), money.ZeroQty)
	assert.False(t, ok)
}

func TestSelectOfferZeroNeedReturnsNoQuote(t *testing.T) {
	offers := []catalog.SupplierOffer{
		{SupplierID: "a", PackSize: money.MustQty("1.000"), UnitPriceHT: money.MustMoney("1.0000"), Available: true},
	}
	_, ok := SelectOffer(offers, money.ZeroQty, money.ZeroQty)
	assert.False(t, ok)
}
