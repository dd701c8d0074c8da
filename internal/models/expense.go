package models

import "github.com/shopspring/decimal"

// Expense represents an amount paid upfront by one member and split evenly
// among the participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Amount is the total cost. Always positive for recorded expenses.
	Amount decimal.Decimal `json:"amount"`

	// Payer is the name of the member who paid the full amount.
	Payer string `json:"payer"`

	// Participants are the names the amount is split among, in the order
	// they were selected. Never empty, never contains duplicates.
	Participants []string `json:"participants"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at"`
}

// Includes reports whether name is one of the participants.
func (e Expense) Includes(name string) bool {
	for _, p := range e.Participants {
		if p == name {
			return true
		}
	}
	return false
}
