package ledger

import (
	"testing"
	"time"

	"github.com/foodops/foodops-kernel/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePnLAggregatesByKind(t *testing.T) {
	entries := []Entry{
		{Kind: KindRevenue, Amount: money.MustMoney("1280.0000")},
		{Kind: KindCOGS, Amount: money.MustMoney("-400.0000")},
		{Kind: KindLabor, Amount: money.MustMoney("-300.0000")},
		{Kind: KindRent, Amount: money.MustMoney("-200.0000")},
		{Kind: KindFixed, Amount: money.MustMoney("-50.0000")},
	}

	pnl := ComputePnL(entries)
	assert.Equal(t, "1280.0000", pnl.Revenue.String())
	assert.Equal(t, "-400.0000", pnl.COGS.String())
	assert.Equal(t, "330.0000", pnl.NetProfit.String())
}

func TestTrialBalanceEqualsSumOfAmounts(t *testing.T) {
	entries := []Entry{
		{Kind: KindRevenue, Amount: money.MustMoney("100.0000")},
		{Kind: KindCOGS, Amount: money.MustMoney("-40.0000")},
	}
	assert.Equal(t, "60.0000", TrialBalance(entries).String())
}

func TestLedgerAppendAndFilter(t *testing.T) {
	l := New()
	today := time.Now()
	l.Append(Entry{Date: today, Kind: KindRevenue, Amount: money.MustMoney("10.0000"), RestaurantID: "r1", Turn: 1})
	l.Append(Entry{Date: today, Kind: KindRevenue, Amount: money.MustMoney("20.0000"), RestaurantID: "r2", Turn: 1})
	l.Append(Entry{Date: today, Kind: KindRevenue, Amount: money.MustMoney("5.0000"), RestaurantID: "r1", Turn: 2})

	r1Entries := l.ForRestaurant("r1")
	require.Len(t, r1Entries, 2)

	turn1Entries := l.ForTurn(1)
	require.Len(t, turn1Entries, 2)
}

func TestLedgerRestoreIsIndependentCopy(t *testing.T) {
	entries := []Entry{{Kind: KindRevenue, Amount: money.MustMoney("10.0000")}}
	l := Restore(entries)

	entries[0].Amount = money.MustMoney("999.0000")
	assert.Equal(t, "10.0000", l.Entries()[0].Amount.String())
}

func TestEntriesReturnsDefensiveCopy(t *testing.T) {
	l := New()
	l.Append(Entry{Kind: KindRevenue, Amount: money.MustMoney("1.0000")})

	got := l.Entries()
	got[0].Amount = money.MustMoney("999.0000")
	assert.Equal(t, "1.0000", l.Entries()[0].Amount.String())
}
