// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
//
// The default DSN is ":memory:", so records live exactly as long as the
// process. The store keeps a single open connection because every
// connection to ":memory:" would otherwise see its own empty database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/contry/internal/models"
	"github.com/mmynk/contry/internal/storage"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore for the given DSN.
// File paths get their parent directories created. Migrations run automatically.
func New(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	if !isMemoryDSN(dsn) {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func isMemoryDSN(dsn string) bool {
	return dsn == MemoryDSN || strings.HasPrefix(dsn, "file::memory:") || strings.Contains(dsn, "mode=memory")
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession persists a new session.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt == 0 {
		session.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (id, title, created_at) VALUES (?, ?, ?)",
		session.ID, session.Title, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session := &models.Session{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, created_at FROM sessions WHERE id = ?",
		sessionID,
	).Scan(&session.ID, &session.Title, &session.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", sessionID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// CountSessions returns the number of sessions.
func (s *SQLiteStore) CountSessions(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return n, nil
}

// queryRower is satisfied by both *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// requireSession returns an ErrNotFound error if the session does not exist.
func (s *SQLiteStore) requireSession(ctx context.Context, q queryRower, sessionID string) error {
	var one int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM sessions WHERE id = ?", sessionID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("session %s: %w", sessionID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to look up session: %w", err)
	}
	return nil
}

// AppendMember inserts a member row.
func (s *SQLiteStore) AppendMember(ctx context.Context, sessionID string, member *models.Member) error {
	if err := s.requireSession(ctx, s.db, sessionID); err != nil {
		return err
	}
	if member.ID == "" {
		member.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO members (id, session_id, name, created_at) VALUES (?, ?, ?, ?)",
		member.ID, sessionID, member.Name, member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// AppendExpense inserts an expense and its participants in one transaction.
func (s *SQLiteStore) AppendExpense(ctx context.Context, sessionID string, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.requireSession(ctx, tx, sessionID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, session_id, amount, payer, created_at) VALUES (?, ?, ?, ?, ?)",
		expense.ID, sessionID, expense.Amount.String(), expense.Payer, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, name := range expense.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, position, name) VALUES (?, ?, ?)",
			expense.ID, i, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListMembers returns the session's members ordered by insertion.
func (s *SQLiteStore) ListMembers(ctx context.Context, sessionID string) ([]models.Member, error) {
	if err := s.requireSession(ctx, s.db, sessionID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM members WHERE session_id = ? ORDER BY seq",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// ListExpenses returns the session's expenses ordered by insertion, with
// participants in their recorded order.
func (s *SQLiteStore) ListExpenses(ctx context.Context, sessionID string) ([]models.Expense, error) {
	if err := s.requireSession(ctx, s.db, sessionID); err != nil {
		return nil, err
	}

	expenses, err := s.listExpenseRows(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return expenses, nil
	}

	// The single connection is busy while rows are open, so participants are
	// fetched in a second pass rather than per expense.
	index := make(map[string]int, len(expenses))
	for i, e := range expenses {
		index[e.ID] = i
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.expense_id, p.name
		FROM expense_participants p
		JOIN expenses e ON e.id = p.expense_id
		WHERE e.session_id = ?
		ORDER BY e.seq, p.position`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID, name string
		if err := rows.Scan(&expenseID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		if i, ok := index[expenseID]; ok {
			expenses[i].Participants = append(expenses[i].Participants, name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return expenses, nil
}

func (s *SQLiteStore) listExpenseRows(ctx context.Context, sessionID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, amount, payer, created_at FROM expenses WHERE session_id = ? ORDER BY seq",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Amount, &e.Payer, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}
