// Package report renders a ledger summary as a plain-text table.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/mmynk/contry/internal/models"
)

// Money formats an amount with two decimals. Rounding happens only here;
// ledger values keep their full precision.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Table writes one row per member (name, split amount, paid amount)
// followed by the grand total.
func Table(w io.Writer, rows []models.MemberBalance, grandTotal decimal.Decimal) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Name\tSplit Amount\tPaid Amount")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, Money(r.TotalOwed), Money(r.TotalPaid))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	if _, err := fmt.Fprintf(w, "\nTotal Paid Amount: %s\n", Money(grandTotal)); err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}
	return nil
}
