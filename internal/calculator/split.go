package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/contry/internal/models"
)

// SplitEvenly computes each participant's share of amount.
// Every share is the plain quotient amount / len(participants); shares are
// not rounded, so after display rounding they may not add up to amount.
func SplitEvenly(amount decimal.Decimal, participants []string) (map[string]decimal.Decimal, error) {
	if len(participants) == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive, got %s", amount)
	}

	share := amount.Div(decimal.NewFromInt(int64(len(participants))))
	splits := make(map[string]decimal.Decimal, len(participants))
	for _, p := range participants {
		splits[p] = share
	}
	return splits, nil
}

// Share returns one participant's share of e, or zero when e has no
// participants or a non-positive amount.
func Share(e models.Expense) decimal.Decimal {
	splits, err := SplitEvenly(e.Amount, e.Participants)
	if err != nil {
		return decimal.Zero
	}
	return splits[e.Participants[0]]
}
