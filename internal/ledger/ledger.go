// Package ledger is an append-only journal of cash-affecting entries, plus
// pure functions that derive a P&L and trial balance from it. Nothing in
// this package mutates an entry once appended.
package ledger

import (
	"time"

	"github.com/foodops/foodops-kernel/internal/money"
)

// Kind classifies one journal entry for P&L grouping.
type Kind string

const (
	KindRevenue   Kind = "REVENUE"
	KindCOGS      Kind = "COGS"
	KindLabor     Kind = "LABOR"
	KindRent      Kind = "RENT"
	KindFixed     Kind = "FIXED"
	KindMarketing Kind = "MARKETING"
	KindInvest    Kind = "INVEST"
	KindLoan      Kind = "LOAN"
	KindTax       Kind = "TAX"
	KindOther     Kind = "OTHER"
)

// Entry is one immutable journal line. Revenue entries carry a positive
// Amount; expense entries carry a negative Amount, so Σ Amount across a
// restaurant's entries is exactly its cash delta.
type Entry struct {
	Date         time.Time
	Kind         Kind
	Amount       money.Money
	RestaurantID string
	Turn         int
	Description  string
}

// Ledger is the append-only journal for one simulation.
type Ledger struct {
	entries []Entry
}

func New() *Ledger {
	return &Ledger{}
}

// Restore rebuilds a ledger from a previously-saved entry list, used when
// reconstructing a simulation from a snapshot.
func Restore(entries []Entry) *Ledger {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return &Ledger{entries: out}
}

// Append adds an entry to the journal.
func (l *Ledger) Append(e Entry) {
	l.entries = append(l.entries, e)
}

// Entries returns a defensive copy of every entry recorded so far.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// ForRestaurant returns entries for one restaurant, in append order.
func (l *Ledger) ForRestaurant(restaurantID string) []Entry {
	var out []Entry
	for _, e := range l.entries {
		if e.RestaurantID == restaurantID {
			out = append(out, e)
		}
	}
	return out
}

// ForTurn returns entries recorded during one turn, across all restaurants.
func (l *Ledger) ForTurn(turn int) []Entry {
	var out []Entry
	for _, e := range l.entries {
		if e.Turn == turn {
			out = append(out, e)
		}
	}
	return out
}

// PnL is a profit-and-loss summary derived from a set of entries.
type PnL struct {
	Revenue   money.Money
	COGS      money.Money
	Labor     money.Money
	Rent      money.Money
	Fixed     money.Money
	Marketing money.Money
	Other     money.Money
	NetProfit money.Money
}

// ComputePnL derives a P&L purely from a slice of entries; it has no
// dependency on the Ledger itself so it composes with ForRestaurant or
// ForTurn freely.
func ComputePnL(entries []Entry) PnL {
	var p PnL
	for _, e := range entries {
		switch e.Kind {
		case KindRevenue:
			p.Revenue = p.Revenue.Add(e.Amount)
		case KindCOGS:
			p.COGS = p.COGS.Add(e.Amount)
		case KindLabor:
			p.Labor = p.Labor.Add(e.Amount)
		case KindRent:
			p.Rent = p.Rent.Add(e.Amount)
		case KindFixed:
			p.Fixed = p.Fixed.Add(e.Amount)
		case KindMarketing:
			p.Marketing = p.Marketing.Add(e.Amount)
		default:
			p.Other = p.Other.Add(e.Amount)
		}
	}
	p.NetProfit = money.Sum(p.Revenue, p.COGS, p.Labor, p.Rent, p.Fixed, p.Marketing, p.Other)
	return p
}

// TrialBalance sums every entry's Amount; since expenses are stored
// negative, this equals the net cash change the entries represent.
func TrialBalance(entries []Entry) money.Money {
	total := money.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}
