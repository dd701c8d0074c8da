package models

import "github.com/shopspring/decimal"

// MemberBalance is one row of the ledger summary.
type MemberBalance struct {
	Name      string          `json:"name"`
	TotalPaid decimal.Decimal `json:"total_paid"` // sum of expenses this member paid
	TotalOwed decimal.Decimal `json:"total_owed"` // sum of this member's shares
	Net       decimal.Decimal `json:"net"`        // positive = is owed money
}
