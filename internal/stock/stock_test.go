package stock

import (
	"testing"
	"time"

	"github.com/foodops/foodops-kernel/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestConsumeFEFOOrdersByEarliestExpiry(t *testing.T) {
	m := NewManager()
	m.AddLot(Lot{IngredientID: "tomato", Quantity: money.MustQty("5.000"), DLC: mustDate("2024-03-10"), UnitCostHT: money.MustMoney("1.0000")})
	m.AddLot(Lot{IngredientID: "tomato", Quantity: money.MustQty("10.000"), DLC: mustDate("2024-03-20"), UnitCostHT: money.MustMoney("1.2000")})

	today := mustDate("2024-03-01")
	slices, err := m.Consume("tomato", money.MustQty("7.000"), today)
	require.NoError(t, err)
	require.Len(t, slices, 2)

	cogs := money.Zero
	for _, s := range slices {
		cogs = cogs.Add(s.Cost())
	}
	assert.Equal(t, "7.4000", cogs.String())

	remaining := m.Available("tomato", today, false)
	assert.Equal(t, "8.000", remaining.String())
}

func TestConsumeInsufficientStockLeavesStoreUntouched(t *testing.T) {
	m := NewManager()
	m.AddLot(Lot{IngredientID: "flour", Quantity: money.MustQty("3.000"), DLC: mustDate("2024-03-10"), UnitCostHT: money.MustMoney("2.0000")})

	today := mustDate("2024-03-01")
	_, err := m.Consume("flour", money.MustQty("10.000"), today)
	require.Error(t, err)
	assert.IsType(t, &InsufficientStockError{}, err)

	// A rejected consume must not mutate the store.
	assert.Equal(t, "3.000", m.Available("flour", today, false).String())
}

func TestConsumeSkipsExpiredLots(t *testing.T) {
	m := NewManager()
	m.AddLot(Lot{IngredientID: "milk", Quantity: money.MustQty("5.000"), DLC: mustDate("2024-03-01"), UnitCostHT: money.MustMoney("1.0000")})
	m.AddLot(Lot{IngredientID: "milk", Quantity: money.MustQty("5.000"), DLC: mustDate("2024-03-20"), UnitCostHT: money.MustMoney("1.5000")})

	today := mustDate("2024-03-10")
	slices, err := m.Consume("milk", money.MustQty("4.000"), today)
	require.NoError(t, err)
	require.Len(t, slices, 1)
	assert.Equal(t, "1.5000", slices[0].UnitCostHT.String())
}

func TestSweepExpiredRemovesOnlyExpiredLots(t *testing.T) {
	m := NewManager()
	m.AddLot(Lot{IngredientID: "milk", Quantity: money.MustQty("5.000"), DLC: mustDate("2024-03-01"), UnitCostHT: money.MustMoney("1.0000")})
	m.AddLot(Lot{IngredientID: "milk", Quantity: money.MustQty("5.000"), DLC: mustDate("2024-03-20"), UnitCostHT: money.MustMoney("1.5000")})

	waste := m.SweepExpired(mustDate("2024-03-10"))
	require.Len(t, waste, 1)
	assert.Equal(t, "1.0000", waste[0].UnitCostHT.String())

	remaining := m.Available("milk", mustDate("2024-03-10"), false)
	assert.Equal(t, "5.000", remaining.String())
}

func TestStockNeverGoesNegative(t *testing.T) {
	m := NewManager()
	m.AddLot(Lot{IngredientID: "sugar", Quantity: money.MustQty("2.000"), DLC: mustDate("2024-04-01"), UnitCostHT: money.MustMoney("0.5000")})

	today := mustDate("2024-03-01")
	_, err := m.Consume("sugar", money.MustQty("2.500"), today)
	require.Error(t, err)
	assert.False(t, m.Available("sugar", today, false).IsNegative())
}

func TestRestoreLotsReestablishesFEFOOrder(t *testing.T) {
	m := NewManager()
	m.RestoreLots([]Lot{
		{IngredientID: "tomato", Quantity: money.MustQty("10.000"), DLC: mustDate("2024-03-20"), UnitCostHT: money.MustMoney("1.2000")},
		{IngredientID: "tomato", Quantity: money.MustQty("5.000"), DLC: mustDate("2024-03-10"), UnitCostHT: money.MustMoney("1.0000")},
	})

	today := mustDate("2024-03-01")
	slices, err := m.Consume("tomato", money.MustQty("5.000"), today)
	require.NoError(t, err)
	require.Len(t, slices, 1)
	assert.Equal(t, "1.0000", slices[0].UnitCostHT.String())
}
