// Package ledger tracks shared group expenses.
//
// A Ledger owns an append-only list of members and an append-only list of
// expenses. Each expense is paid by one member and split evenly among its
// participants. Per-member totals are never cached: every query is computed
// from the expense list, so repeated queries without mutation return the same
// result.
//
// A Ledger is not safe for concurrent use. It is meant to have exactly one
// owner, such as a terminal shell or a request handler holding a lock.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/contry/internal/calculator"
	"github.com/mmynk/contry/internal/models"
)

// Ledger holds the members and expenses of one group.
type Ledger struct {
	members  []models.Member
	expenses []models.Expense

	strict bool
	newID  func() string
	now    func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithStrictMembers rejects expenses whose payer or participants are not
// current members. Without it such expenses are recorded and produce totals
// for names that are not in the member list.
func WithStrictMembers() Option {
	return func(l *Ledger) { l.strict = true }
}

// WithIDGenerator overrides the UUID generator used for new records.
func WithIDGenerator(fn func() string) Option {
	return func(l *Ledger) { l.newID = fn }
}

// WithClock overrides the clock used to stamp new records.
func WithClock(fn func() time.Time) Option {
	return func(l *Ledger) { l.now = fn }
}

// New creates an empty ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		newID: func() string { return uuid.New().String() },
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Restore rebuilds a ledger from records that were previously accepted by a
// ledger. The records are copied and not validated again.
func Restore(members []models.Member, expenses []models.Expense, opts ...Option) *Ledger {
	l := New(opts...)
	l.members = append(l.members, members...)
	for _, e := range expenses {
		e.Participants = append([]string(nil), e.Participants...)
		l.expenses = append(l.expenses, e)
	}
	return l
}

// Strict reports whether the ledger rejects expenses naming unknown members.
func (l *Ledger) Strict() bool {
	return l.strict
}

// AddMember appends a member with the given name.
// The name is trimmed; a blank or already used name leaves the ledger
// unchanged and returns ErrBlankName or ErrDuplicateName.
func (l *Ledger) AddMember(name string) (models.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Member{}, ErrBlankName
	}
	if l.HasMember(name) {
		return models.Member{}, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	m := models.Member{
		ID:        l.newID(),
		Name:      name,
		CreatedAt: l.now().Unix(),
	}
	l.members = append(l.members, m)
	return m, nil
}

// AddExpense records an expense of amount paid by payer and split evenly
// among participants. Participant names are trimmed, blank entries dropped
// and duplicates collapsed.
//
// The ledger is left unchanged when amount is not positive or out of range
// (ErrInvalidAmount),
// payer is blank (ErrNoPayer), no participant remains (ErrNoParticipants) or,
// in strict mode, a name is not a current member (ErrUnknownMember).
func (l *Ledger) AddExpense(amount decimal.Decimal, payer string, participants []string) (models.Expense, error) {
	if err := checkAmount(amount); err != nil {
		return models.Expense{}, err
	}
	payer = strings.TrimSpace(payer)
	if payer == "" {
		return models.Expense{}, ErrNoPayer
	}
	set := normalizeNames(participants)
	if len(set) == 0 {
		return models.Expense{}, ErrNoParticipants
	}

	if l.strict {
		if !l.HasMember(payer) {
			return models.Expense{}, fmt.Errorf("%w: payer %q", ErrUnknownMember, payer)
		}
		for _, p := range set {
			if !l.HasMember(p) {
				return models.Expense{}, fmt.Errorf("%w: participant %q", ErrUnknownMember, p)
			}
		}
	}

	e := models.Expense{
		ID:           l.newID(),
		Amount:       amount,
		Payer:        payer,
		Participants: set,
		CreatedAt:    l.now().Unix(),
	}
	l.expenses = append(l.expenses, e)
	return e, nil
}

// Amounts are bounded so that every share and total stays cheap to compute
// and print. Larger magnitudes or finer fractions yield ErrInvalidAmount.
const (
	maxAmountExponent = 12
	minAmountExponent = -32
	maxAmountScale    = 8
)

var maxAmount = decimal.New(1, maxAmountExponent)

// ParseAmount parses raw form input into an amount.
// Anything that is not a positive number within range yields ErrInvalidAmount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if err := checkAmount(amount); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", err, raw)
	}
	return amount, nil
}

// checkAmount looks at the exponent before comparing values, since comparing
// rescales both operands to a common exponent.
func checkAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	exp := amount.Exponent()
	if exp > maxAmountExponent || exp < minAmountExponent {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(maxAmount) {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Truncate(maxAmountScale)) {
		return ErrInvalidAmount
	}
	return nil
}

// HasMember reports whether a member named name exists.
func (l *Ledger) HasMember(name string) bool {
	for _, m := range l.members {
		if m.Name == name {
			return true
		}
	}
	return false
}

// Members returns a copy of the members in insertion order.
func (l *Ledger) Members() []models.Member {
	return append([]models.Member(nil), l.members...)
}

// Expenses returns a copy of the expenses in insertion order.
func (l *Ledger) Expenses() []models.Expense {
	out := make([]models.Expense, len(l.expenses))
	for i, e := range l.expenses {
		e.Participants = append([]string(nil), e.Participants...)
		out[i] = e
	}
	return out
}

// TotalPaidBy returns the sum of the expenses paid by name.
func (l *Ledger) TotalPaidBy(name string) decimal.Decimal {
	return calculator.TotalPaidBy(l.expenses, name)
}

// TotalOwedBy returns the sum of name's shares over every expense it
// participates in.
func (l *Ledger) TotalOwedBy(name string) decimal.Decimal {
	return calculator.TotalOwedBy(l.expenses, name)
}

// GrandTotal returns the sum of all expense amounts.
func (l *Ledger) GrandTotal() decimal.Decimal {
	return calculator.GrandTotal(l.expenses)
}

// Balances returns one summary row per member, in member order.
// Names referenced by expenses but never added as members are not listed;
// query them with TotalPaidBy and TotalOwedBy.
func (l *Ledger) Balances() []models.MemberBalance {
	totals := calculator.CalculateBalances(l.expenses)
	rows := make([]models.MemberBalance, len(l.members))
	for i, m := range l.members {
		row := models.MemberBalance{
			Name:      m.Name,
			TotalPaid: decimal.Zero,
			TotalOwed: decimal.Zero,
			Net:       decimal.Zero,
		}
		if t, ok := totals[m.Name]; ok {
			row.TotalPaid = t.Paid
			row.TotalOwed = t.Owed
			row.Net = t.Net()
		}
		rows[i] = row
	}
	return rows
}

func normalizeNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
