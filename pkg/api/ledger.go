// Package api defines the request and response messages of the
// contry.v1.LedgerService RPC API. Messages are encoded as JSON; decimal
// amounts travel as strings.
package api

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/contry/internal/models"
)

// CreateSessionRequest opens a new hosted ledger.
type CreateSessionRequest struct {
	Title string `json:"title,omitempty"`
}

// CreateSessionResponse carries the new session and the bearer token that
// scopes subsequent calls to it.
type CreateSessionResponse struct {
	Session models.Session `json:"session"`
	Token   string         `json:"token"`
}

// AddMemberRequest adds a member to the caller's ledger.
type AddMemberRequest struct {
	Name string `json:"name"`
}

// AddExpenseRequest records an expense in the caller's ledger.
// Amount is the raw form input; anything that is not a positive number
// is rejected without changing the ledger.
type AddExpenseRequest struct {
	Amount       string   `json:"amount"`
	Payer        string   `json:"payer"`
	Participants []string `json:"participants"`
}

// MutationResponse is returned by every mutating call.
// Applied is false when the input was rejected; Reason then holds a short
// code such as "blank_name" or "invalid_amount".
type MutationResponse struct {
	Applied bool     `json:"applied"`
	Reason  string   `json:"reason,omitempty"`
	Summary *Summary `json:"summary"`
}

// GetSummaryRequest asks for the caller's full ledger state.
type GetSummaryRequest struct{}

// GetSummaryResponse wraps the ledger summary.
type GetSummaryResponse struct {
	Summary *Summary `json:"summary"`
}

// GetMemberTotalsRequest asks for one name's totals. The name does not have
// to belong to a registered member.
type GetMemberTotalsRequest struct {
	Name string `json:"name"`
}

// GetMemberTotalsResponse holds one name's totals.
type GetMemberTotalsResponse struct {
	Name      string          `json:"name"`
	TotalPaid decimal.Decimal `json:"total_paid"`
	TotalOwed decimal.Decimal `json:"total_owed"`
}

// Summary is everything a presentation layer needs to render a ledger.
type Summary struct {
	Session    models.Session         `json:"session"`
	Members    []models.Member        `json:"members"`
	Expenses   []models.Expense       `json:"expenses"`
	Balances   []models.MemberBalance `json:"balances"`
	GrandTotal decimal.Decimal        `json:"grand_total"`
}
