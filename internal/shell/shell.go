// Package shell is a line-oriented terminal front end for one ledger.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mmynk/contry/internal/calculator"
	"github.com/mmynk/contry/internal/ledger"
	"github.com/mmynk/contry/internal/report"
)

const help = `Commands:
  member <name>                           add a member
  expense <amount> <payer>: <p1,p2,...>   record an expense split among participants
  paid <name>                             total paid by name
  owed <name>                             total owed by name
  total                                   total paid amount
  table                                   summary table
  help                                    this text
  quit                                    exit
`

// Shell reads commands and applies them to its ledger.
type Shell struct {
	ledger *ledger.Ledger
	out    io.Writer
	prompt string
}

// New creates a shell driving l and writing to out.
func New(l *ledger.Ledger, out io.Writer) *Shell {
	return &Shell{ledger: l, out: out, prompt: "> "}
}

// Run processes commands from in until EOF or "quit".
func (s *Shell) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, s.prompt)
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if quit := s.Exec(scanner.Text()); quit {
			return nil
		}
	}
}

// Exec runs one command line. It reports whether the shell should exit.
func (s *Shell) Exec(line string) bool {
	cmd, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	args = strings.TrimSpace(args)

	switch strings.ToLower(cmd) {
	case "":
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprint(s.out, help)
	case "member":
		s.addMember(args)
	case "expense":
		s.addExpense(args)
	case "paid":
		fmt.Fprintf(s.out, "%s paid %s\n", args, report.Money(s.ledger.TotalPaidBy(args)))
	case "owed":
		fmt.Fprintf(s.out, "%s owes %s\n", args, report.Money(s.ledger.TotalOwedBy(args)))
	case "total":
		fmt.Fprintf(s.out, "Total Paid Amount: %s\n", report.Money(s.ledger.GrandTotal()))
	case "table":
		if err := report.Table(s.out, s.ledger.Balances(), s.ledger.GrandTotal()); err != nil {
			slog.Error("Failed to render table", "error", err)
		}
	default:
		fmt.Fprintf(s.out, "unknown command %q, type help\n", cmd)
	}
	return false
}

func (s *Shell) addMember(name string) {
	m, err := s.ledger.AddMember(name)
	if err != nil {
		s.ignored(err)
		return
	}
	slog.Debug("Member added", "member_id", m.ID, "name", m.Name)
	fmt.Fprintf(s.out, "added %s\n", m.Name)
}

const expenseUsage = "usage: expense <amount> <payer>: <p1,p2,...>"

// addExpense parses "<amount> <payer>: <p1,p2,...>". The payer ends at the
// first colon, so payer and participant names may contain spaces.
func (s *Shell) addExpense(args string) {
	raw, rest, _ := strings.Cut(args, " ")
	payer, list, ok := strings.Cut(rest, ":")
	if !ok {
		fmt.Fprintln(s.out, expenseUsage)
		return
	}

	amount, err := ledger.ParseAmount(raw)
	if err != nil {
		s.ignored(err)
		return
	}

	e, err := s.ledger.AddExpense(amount, payer, strings.Split(list, ","))
	if err != nil {
		s.ignored(err)
		return
	}
	slog.Debug("Expense recorded", "expense_id", e.ID, "amount", e.Amount.String())
	fmt.Fprintf(s.out, "recorded %s paid by %s, %s each for %s\n",
		report.Money(e.Amount), e.Payer, report.Money(calculator.Share(e)), strings.Join(e.Participants, ", "))
}

// ignored reports a rejected command. The ledger is unchanged.
func (s *Shell) ignored(err error) {
	if !ledger.IsRejection(err) {
		slog.Error("Unexpected ledger error", "error", err)
	}
	fmt.Fprintf(s.out, "ignored: %v\n", err)
}
