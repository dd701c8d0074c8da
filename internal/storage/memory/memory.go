// Package memory provides a map-backed implementation of the storage.Store interface.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/contry/internal/models"
	"github.com/mmynk/contry/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

type book struct {
	session  models.Session
	members  []models.Member
	expenses []models.Expense
}

// Store keeps all records in process memory.
type Store struct {
	mu    sync.RWMutex
	books map[string]*book
}

// New creates an empty Store.
func New() *Store {
	return &Store{books: make(map[string]*book)}
}

// Close drops all records.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = make(map[string]*book)
	return nil
}

// CreateSession registers a new session.
func (s *Store) CreateSession(_ context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt == 0 {
		session.CreatedAt = time.Now().Unix()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.books[session.ID]; exists {
		return fmt.Errorf("session already exists: %s", session.ID)
	}
	s.books[session.ID] = &book{session: *session}
	return nil
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(_ context.Context, sessionID string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.books[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, storage.ErrNotFound)
	}
	session := b.session
	return &session, nil
}

// CountSessions returns the number of sessions.
func (s *Store) CountSessions(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books), nil
}

// AppendMember adds a member to a session.
func (s *Store) AppendMember(_ context.Context, sessionID string, member *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[sessionID]
	if !ok {
		return fmt.Errorf("session %s: %w", sessionID, storage.ErrNotFound)
	}
	b.members = append(b.members, *member)
	return nil
}

// AppendExpense adds an expense to a session.
func (s *Store) AppendExpense(_ context.Context, sessionID string, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[sessionID]
	if !ok {
		return fmt.Errorf("session %s: %w", sessionID, storage.ErrNotFound)
	}
	e := *expense
	e.Participants = append([]string(nil), expense.Participants...)
	b.expenses = append(b.expenses, e)
	return nil
}

// ListMembers returns a copy of the session's members.
func (s *Store) ListMembers(_ context.Context, sessionID string) ([]models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.books[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, storage.ErrNotFound)
	}
	return append([]models.Member(nil), b.members...), nil
}

// ListExpenses returns a copy of the session's expenses.
func (s *Store) ListExpenses(_ context.Context, sessionID string) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.books[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, storage.ErrNotFound)
	}
	out := make([]models.Expense, len(b.expenses))
	for i, e := range b.expenses {
		e.Participants = append([]string(nil), e.Participants...)
		out[i] = e
	}
	return out, nil
}
