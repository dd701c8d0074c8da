package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/contry/internal/models"
	"github.com/mmynk/contry/internal/storage"
)

func TestStore(t *testing.T) {
	store := New()
	defer store.Close()
	ctx := context.Background()

	session := &models.Session{Title: "Flat"}
	if err := store.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if session.ID == "" || session.CreatedAt == 0 {
		t.Fatalf("expected ID and CreatedAt to be set, got %+v", session)
	}
	if err := store.CreateSession(ctx, &models.Session{ID: session.ID}); err == nil {
		t.Error("expected duplicate session ID to fail")
	}

	if err := store.AppendMember(ctx, session.ID, &models.Member{ID: "m1", Name: "Alice"}); err != nil {
		t.Fatalf("AppendMember failed: %v", err)
	}
	expense := &models.Expense{ID: "e1", Amount: decimal.NewFromInt(10), Payer: "Alice", Participants: []string{"Alice", "Bob"}}
	if err := store.AppendExpense(ctx, session.ID, expense); err != nil {
		t.Fatalf("AppendExpense failed: %v", err)
	}
	// The store keeps its own copy of the participant slice.
	expense.Participants[1] = "Mallory"

	expenses, err := store.ListExpenses(ctx, session.ID)
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(expenses) != 1 || expenses[0].Participants[1] != "Bob" {
		t.Errorf("unexpected expenses: %+v", expenses)
	}

	members, err := store.ListMembers(ctx, session.ID)
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	if len(members) != 1 || members[0].Name != "Alice" {
		t.Errorf("unexpected members: %+v", members)
	}

	if n, _ := store.CountSessions(ctx); n != 1 {
		t.Errorf("CountSessions = %d, want 1", n)
	}

	if _, err := store.GetSession(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetSession: expected ErrNotFound, got %v", err)
	}
	if err := store.AppendMember(ctx, "missing", &models.Member{Name: "x"}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("AppendMember: expected ErrNotFound, got %v", err)
	}
	if _, err := store.ListMembers(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("ListMembers: expected ErrNotFound, got %v", err)
	}
}
