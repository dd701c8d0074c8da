package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/contry/internal/models"
)

func TestMoney(t *testing.T) {
	tests := map[string]string{
		"0":                   "0.00",
		"50":                  "50.00",
		"33.3333333333333333": "33.33",
		"0.005":               "0.01",
		"-10":                 "-10.00",
	}
	for in, want := range tests {
		if got := Money(decimal.RequireFromString(in)); got != want {
			t.Errorf("Money(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestTable(t *testing.T) {
	rows := []models.MemberBalance{
		{Name: "Alice", TotalPaid: decimal.NewFromInt(100), TotalOwed: decimal.RequireFromString("33.3333333333333333")},
		{Name: "Bob", TotalOwed: decimal.RequireFromString("33.3333333333333333")},
	}

	var buf bytes.Buffer
	if err := Table(&buf, rows, decimal.NewFromInt(100)); err != nil {
		t.Fatalf("Table failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := [][]string{
		{"Name", "Split", "Amount", "Paid", "Amount"},
		{"Alice", "33.33", "100.00"},
		{"Bob", "33.33", "0.00"},
		{},
		{"Total", "Paid", "Amount:", "100.00"},
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i, w := range want {
		if got := strings.Fields(lines[i]); strings.Join(got, " ") != strings.Join(w, " ") {
			t.Errorf("line %d = %q, want fields %v", i, lines[i], w)
		}
	}
}
