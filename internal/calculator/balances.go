package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/contry/internal/models"
)

// Totals holds the aggregated amounts for one name.
type Totals struct {
	Paid decimal.Decimal // Total amount paid upfront across all expenses
	Owed decimal.Decimal // Total of this person's shares
}

// Net returns paid minus owed. Positive means the person is owed money.
func (t Totals) Net() decimal.Decimal {
	return t.Paid.Sub(t.Owed)
}

// CalculateBalances aggregates who paid what and who owes what.
// Every name that appears as a payer or participant gets an entry, whether
// or not it is a registered member.
//
// Algorithm:
// - For each expense: payer contributed +amount
// - Each participant owes amount / len(participants)
func CalculateBalances(expenses []models.Expense) map[string]*Totals {
	totals := make(map[string]*Totals)
	get := func(name string) *Totals {
		t, ok := totals[name]
		if !ok {
			t = &Totals{}
			totals[name] = t
		}
		return t
	}

	for _, e := range expenses {
		splits, err := SplitEvenly(e.Amount, e.Participants)
		if err != nil {
			continue
		}
		p := get(e.Payer)
		p.Paid = p.Paid.Add(e.Amount)

		for name, share := range splits {
			o := get(name)
			o.Owed = o.Owed.Add(share)
		}
	}
	return totals
}

// TotalPaidBy sums the amounts of expenses paid by name.
func TotalPaidBy(expenses []models.Expense, name string) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.Payer == name {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// TotalOwedBy sums name's share over every expense it participates in.
func TotalOwedBy(expenses []models.Expense, name string) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if !e.Includes(name) {
			continue
		}
		if splits, err := SplitEvenly(e.Amount, e.Participants); err == nil {
			total = total.Add(splits[name])
		}
	}
	return total
}

// GrandTotal sums the amounts of all expenses.
func GrandTotal(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
