package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"connectrpc.com/connect"

	"github.com/mmynk/contry/internal/auth"
	"github.com/mmynk/contry/internal/calculator"
	"github.com/mmynk/contry/internal/ledger"
	"github.com/mmynk/contry/internal/middleware"
	"github.com/mmynk/contry/internal/models"
	"github.com/mmynk/contry/internal/storage"
	"github.com/mmynk/contry/pkg/api"
	"github.com/mmynk/contry/pkg/api/apiconnect"
)

// Ensure LedgerService implements the Connect handler interface
var _ apiconnect.LedgerServiceHandler = (*LedgerService)(nil)

// LedgerService implements the Connect LedgerService.
// Every call restores the caller's ledger from the store, applies the
// operation on it and appends accepted records back to the store.
type LedgerService struct {
	store   storage.Store
	tokens  *auth.TokenManager
	metrics *middleware.Metrics
	strict  bool

	// mu serializes restore-validate-append sequences so two concurrent
	// calls cannot both accept the same member name. Reads take it too so a
	// summary never mixes two states.
	mu sync.Mutex
}

// Option configures a LedgerService.
type Option func(*LedgerService)

// WithStrictMembers makes hosted ledgers reject expenses that name unknown members.
func WithStrictMembers(strict bool) Option {
	return func(s *LedgerService) { s.strict = strict }
}

// WithMetrics records mutation outcomes and session counts.
func WithMetrics(m *middleware.Metrics) Option {
	return func(s *LedgerService) { s.metrics = m }
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.Store, tokens *auth.TokenManager, opts ...Option) *LedgerService {
	s := &LedgerService{store: store, tokens: tokens}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSession opens a new hosted ledger and issues its access token.
func (s *LedgerService) CreateSession(ctx context.Context, req *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error) {
	slog.Info("CreateSession request received", "title", req.Msg.Title)

	session := &models.Session{Title: strings.TrimSpace(req.Msg.Title)}
	if err := s.store.CreateSession(ctx, session); err != nil {
		slog.Error("CreateSession failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.tokens.Generate(session.ID)
	if err != nil {
		slog.Error("CreateSession token generation failed", "session_id", session.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	if n, err := s.store.CountSessions(ctx); err == nil {
		s.metrics.SetSessions(n)
	}

	slog.Info("Session created", "session_id", session.ID)

	return connect.NewResponse(&api.CreateSessionResponse{
		Session: *session,
		Token:   token,
	}), nil
}

// AddMember adds a member to the caller's ledger.
// Blank or duplicate names are not errors: the response reports
// applied=false and the ledger is unchanged.
func (s *LedgerService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.MutationResponse], error) {
	sessionID, err := requireSessionID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddMember request received", "session_id", sessionID, "name", req.Msg.Name)

	s.mu.Lock()
	defer s.mu.Unlock()

	session, l, err := s.restore(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	member, err := l.AddMember(req.Msg.Name)
	if err != nil {
		return s.rejected(ctx, "add_member", err, session, l)
	}

	if err := s.store.AppendMember(ctx, sessionID, &member); err != nil {
		slog.Error("AddMember failed", "session_id", sessionID, "error", err)
		return nil, storeError(err)
	}
	s.metrics.ObserveMutation("add_member", "")

	slog.Info("Member added", "session_id", sessionID, "member_id", member.ID, "name", member.Name)

	return connect.NewResponse(&api.MutationResponse{
		Applied: true,
		Summary: summarize(session, l),
	}), nil
}

// AddExpense records an expense in the caller's ledger.
// Invalid input (non-numeric or non-positive amount, missing payer, no
// participants, unknown members in strict mode) leaves the ledger unchanged
// and is reported with applied=false.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.MutationResponse], error) {
	sessionID, err := requireSessionID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddExpense request received",
		"session_id", sessionID,
		"amount", req.Msg.Amount,
		"payer", req.Msg.Payer,
		"participants_count", len(req.Msg.Participants),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	session, l, err := s.restore(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	amount, err := ledger.ParseAmount(req.Msg.Amount)
	if err != nil {
		return s.rejected(ctx, "add_expense", err, session, l)
	}

	expense, err := l.AddExpense(amount, req.Msg.Payer, req.Msg.Participants)
	if err != nil {
		return s.rejected(ctx, "add_expense", err, session, l)
	}

	if err := s.store.AppendExpense(ctx, sessionID, &expense); err != nil {
		slog.Error("AddExpense failed", "session_id", sessionID, "error", err)
		return nil, storeError(err)
	}
	s.metrics.ObserveMutation("add_expense", "")

	slog.Info("Expense recorded",
		"session_id", sessionID,
		"expense_id", expense.ID,
		"amount", expense.Amount.String(),
		"share", calculator.Share(expense).String(),
	)

	return connect.NewResponse(&api.MutationResponse{
		Applied: true,
		Summary: summarize(session, l),
	}), nil
}

// GetSummary returns the caller's full ledger state.
func (s *LedgerService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	sessionID, err := requireSessionID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("GetSummary request received", "session_id", sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	session, l, err := s.restore(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.GetSummaryResponse{
		Summary: summarize(session, l),
	}), nil
}

// GetMemberTotals returns paid and owed totals for one name. The name is
// trimmed; a blank or unknown name gets zero totals like any name that
// appears in no expense.
func (s *LedgerService) GetMemberTotals(ctx context.Context, req *connect.Request[api.GetMemberTotalsRequest]) (*connect.Response[api.GetMemberTotalsResponse], error) {
	sessionID, err := requireSessionID(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Msg.Name)
	slog.Debug("GetMemberTotals request received", "session_id", sessionID, "name", name)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, l, err := s.restore(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.GetMemberTotalsResponse{
		Name:      name,
		TotalPaid: l.TotalPaidBy(name),
		TotalOwed: l.TotalOwedBy(name),
	}), nil
}

// restore loads the session's records and rebuilds its ledger.
func (s *LedgerService) restore(ctx context.Context, sessionID string) (*models.Session, *ledger.Ledger, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		slog.Error("Failed to load session", "session_id", sessionID, "error", err)
		return nil, nil, storeError(err)
	}
	members, err := s.store.ListMembers(ctx, sessionID)
	if err != nil {
		slog.Error("Failed to load members", "session_id", sessionID, "error", err)
		return nil, nil, storeError(err)
	}
	expenses, err := s.store.ListExpenses(ctx, sessionID)
	if err != nil {
		slog.Error("Failed to load expenses", "session_id", sessionID, "error", err)
		return nil, nil, storeError(err)
	}

	var opts []ledger.Option
	if s.strict {
		opts = append(opts, ledger.WithStrictMembers())
	}
	return session, ledger.Restore(members, expenses, opts...), nil
}

// rejected builds the response for input the ledger refused.
// Anything that is not a ledger rejection is an internal error.
func (s *LedgerService) rejected(ctx context.Context, kind string, err error, session *models.Session, l *ledger.Ledger) (*connect.Response[api.MutationResponse], error) {
	reason := ledger.Reason(err)
	if reason == "" {
		slog.Error("Ledger mutation failed", "kind", kind, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.metrics.ObserveMutation(kind, reason)
	slog.Info("Ledger mutation rejected",
		"kind", kind,
		"session_id", middleware.GetSessionID(ctx),
		"reason", reason,
		"error", err,
	)

	return connect.NewResponse(&api.MutationResponse{
		Applied: false,
		Reason:  reason,
		Summary: summarize(session, l),
	}), nil
}

func summarize(session *models.Session, l *ledger.Ledger) *api.Summary {
	return &api.Summary{
		Session:    *session,
		Members:    l.Members(),
		Expenses:   l.Expenses(),
		Balances:   l.Balances(),
		GrandTotal: l.GrandTotal(),
	}
}

func requireSessionID(ctx context.Context) (string, error) {
	sessionID := middleware.GetSessionID(ctx)
	if sessionID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return sessionID, nil
}

func storeError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}
