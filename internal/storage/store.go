// Package storage provides abstractions for hosting ledger records.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/contry/internal/models"
)

// ErrNotFound is returned (wrapped) when a session does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for ledger record storage.
// A store holds raw records only; validation and aggregation belong to
// package ledger. Implementations must be safe for concurrent use.
type Store interface {
	// CreateSession persists a new session.
	// The session.ID and session.CreatedAt fields are populated if unset.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves a session by its ID.
	// Returns an error wrapping ErrNotFound if the session does not exist.
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)

	// CountSessions returns the number of hosted sessions.
	CountSessions(ctx context.Context) (int, error)

	// AppendMember adds a member to the session's member list.
	AppendMember(ctx context.Context, sessionID string, member *models.Member) error

	// AppendExpense adds an expense to the session's expense list.
	AppendExpense(ctx context.Context, sessionID string, expense *models.Expense) error

	// ListMembers returns the session's members in insertion order.
	ListMembers(ctx context.Context, sessionID string) ([]models.Member, error)

	// ListExpenses returns the session's expenses in insertion order.
	ListExpenses(ctx context.Context, sessionID string) ([]models.Expense, error)

	// Close releases any resources held by the store.
	Close() error
}
