package shell

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/contry/internal/ledger"
)

func run(t *testing.T, l *ledger.Ledger, script string) string {
	t.Helper()
	var out bytes.Buffer
	if err := New(l, &out).Run(strings.NewReader(script)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return out.String()
}

func TestShellSession(t *testing.T) {
	l := ledger.New()
	out := run(t, l, strings.Join([]string{
		"member Alice",
		"member Bob",
		"expense 100 Alice: Alice,Bob",
		"owed Bob",
		"paid Alice",
		"total",
		"table",
		"quit",
		"member Never",
	}, "\n"))

	if len(l.Members()) != 2 {
		t.Fatalf("members: expected 2, got %d", len(l.Members()))
	}
	if !l.GrandTotal().Equal(decimal.NewFromInt(100)) {
		t.Errorf("grand total = %s, want 100", l.GrandTotal())
	}

	for _, want := range []string{
		"added Alice",
		"recorded 100.00 paid by Alice, 50.00 each for Alice, Bob",
		"Bob owes 50.00",
		"Alice paid 100.00",
		"Total Paid Amount: 100.00",
		"Split Amount",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Never") {
		t.Error("commands after quit should not run")
	}
}

func TestShellIgnoresInvalidInput(t *testing.T) {
	l := ledger.New()
	out := run(t, l, strings.Join([]string{
		"member",
		"member Alice",
		"expense 0 Alice: Alice",
		"expense abc Alice: Alice",
		"expense 10 Alice Alice",
		"expense 10 Alice: ,",
		"expense 10 : Alice",
		"frobnicate",
	}, "\n"))

	if len(l.Members()) != 1 || len(l.Expenses()) != 0 {
		t.Errorf("ledger changed: %d members, %d expenses", len(l.Members()), len(l.Expenses()))
	}
	if got := strings.Count(out, "ignored:"); got != 5 {
		t.Errorf("expected 5 ignored commands, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "usage: expense") {
		t.Errorf("expected usage hint:\n%s", out)
	}
	if !strings.Contains(out, `unknown command "frobnicate"`) {
		t.Errorf("expected unknown command message:\n%s", out)
	}
}

func TestShellParticipantsWithSpaces(t *testing.T) {
	l := ledger.New()
	run(t, l, "member Mary Ann\nmember Bob\nexpense 30 Bob: Mary Ann, Bob\n")

	if owed := l.TotalOwedBy("Mary Ann"); !owed.Equal(decimal.NewFromInt(15)) {
		t.Errorf("Mary Ann owed = %s, want 15", owed)
	}
}

func TestShellPayerWithSpaces(t *testing.T) {
	l := ledger.New(ledger.WithStrictMembers())
	out := run(t, l, "member Mary Ann\nmember Bob\nexpense 30 Mary Ann: Bob\n")

	if !strings.Contains(out, "recorded 30.00 paid by Mary Ann, 30.00 each for Bob") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if paid := l.TotalPaidBy("Mary Ann"); !paid.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Mary Ann paid = %s, want 30", paid)
	}
	if owed := l.TotalOwedBy("Bob"); !owed.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Bob owed = %s, want 30", owed)
	}
	if paid := l.TotalPaidBy("Mary"); !paid.IsZero() {
		t.Errorf("Mary paid = %s, want 0", paid)
	}
}
