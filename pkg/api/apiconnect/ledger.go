// Package apiconnect wires the contry.v1.LedgerService messages to Connect
// handlers and clients.
package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/contry/pkg/api"
)

const (
	// LedgerServiceName is the fully-qualified name of the LedgerService service.
	LedgerServiceName = "contry.v1.LedgerService"
)

// Procedure names, used as HTTP paths and in interceptors.
const (
	LedgerServiceCreateSessionProcedure   = "/contry.v1.LedgerService/CreateSession"
	LedgerServiceAddMemberProcedure       = "/contry.v1.LedgerService/AddMember"
	LedgerServiceAddExpenseProcedure      = "/contry.v1.LedgerService/AddExpense"
	LedgerServiceGetSummaryProcedure      = "/contry.v1.LedgerService/GetSummary"
	LedgerServiceGetMemberTotalsProcedure = "/contry.v1.LedgerService/GetMemberTotals"
)

// LedgerServiceHandler is implemented by servers of the LedgerService.
type LedgerServiceHandler interface {
	CreateSession(context.Context, *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.MutationResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.MutationResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
	GetMemberTotals(context.Context, *connect.Request[api.GetMemberTotalsRequest]) (*connect.Response[api.GetMemberTotalsResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	createSession := connect.NewUnaryHandler(LedgerServiceCreateSessionProcedure, svc.CreateSession, opts...)
	addMember := connect.NewUnaryHandler(LedgerServiceAddMemberProcedure, svc.AddMember, opts...)
	addExpense := connect.NewUnaryHandler(LedgerServiceAddExpenseProcedure, svc.AddExpense, opts...)
	getSummary := connect.NewUnaryHandler(LedgerServiceGetSummaryProcedure, svc.GetSummary, opts...)
	getMemberTotals := connect.NewUnaryHandler(LedgerServiceGetMemberTotalsProcedure, svc.GetMemberTotals, opts...)

	return "/" + LedgerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceCreateSessionProcedure:
			createSession.ServeHTTP(w, r)
		case LedgerServiceAddMemberProcedure:
			addMember.ServeHTTP(w, r)
		case LedgerServiceAddExpenseProcedure:
			addExpense.ServeHTTP(w, r)
		case LedgerServiceGetSummaryProcedure:
			getSummary.ServeHTTP(w, r)
		case LedgerServiceGetMemberTotalsProcedure:
			getMemberTotals.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// LedgerServiceClient is a client for the LedgerService.
type LedgerServiceClient interface {
	CreateSession(context.Context, *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.MutationResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.MutationResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
	GetMemberTotals(context.Context, *connect.Request[api.GetMemberTotalsRequest]) (*connect.Response[api.GetMemberTotalsResponse], error)
}

// NewLedgerServiceClient constructs a client for the LedgerService at baseURL
// (for example, http://localhost:8080).
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &ledgerServiceClient{
		createSession:   connect.NewClient[api.CreateSessionRequest, api.CreateSessionResponse](httpClient, baseURL+LedgerServiceCreateSessionProcedure, opts...),
		addMember:       connect.NewClient[api.AddMemberRequest, api.MutationResponse](httpClient, baseURL+LedgerServiceAddMemberProcedure, opts...),
		addExpense:      connect.NewClient[api.AddExpenseRequest, api.MutationResponse](httpClient, baseURL+LedgerServiceAddExpenseProcedure, opts...),
		getSummary:      connect.NewClient[api.GetSummaryRequest, api.GetSummaryResponse](httpClient, baseURL+LedgerServiceGetSummaryProcedure, opts...),
		getMemberTotals: connect.NewClient[api.GetMemberTotalsRequest, api.GetMemberTotalsResponse](httpClient, baseURL+LedgerServiceGetMemberTotalsProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	createSession   *connect.Client[api.CreateSessionRequest, api.CreateSessionResponse]
	addMember       *connect.Client[api.AddMemberRequest, api.MutationResponse]
	addExpense      *connect.Client[api.AddExpenseRequest, api.MutationResponse]
	getSummary      *connect.Client[api.GetSummaryRequest, api.GetSummaryResponse]
	getMemberTotals *connect.Client[api.GetMemberTotalsRequest, api.GetMemberTotalsResponse]
}

func (c *ledgerServiceClient) CreateSession(ctx context.Context, req *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error) {
	return c.createSession.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.MutationResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.MutationResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetMemberTotals(ctx context.Context, req *connect.Request[api.GetMemberTotalsRequest]) (*connect.Response[api.GetMemberTotalsResponse], error) {
	return c.getMemberTotals.CallUnary(ctx, req)
}
