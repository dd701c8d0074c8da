package middleware

import (
	"context"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the ledger server.
type Metrics struct {
	rpcs      *prometheus.CounterVec
	mutations *prometheus.CounterVec
	sessions  prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rpcs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contry",
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contry",
			Name:      "ledger_mutations_total",
			Help:      "Ledger mutations by kind and outcome. The outcome is applied or a rejection reason.",
		}, []string{"kind", "outcome"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "contry",
			Name:      "sessions",
			Help:      "Number of hosted ledger sessions.",
		}),
	}
	reg.MustRegister(m.rpcs, m.mutations, m.sessions)
	return m
}

// Interceptor counts every RPC by procedure and Connect code.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			resp, err := next(ctx, req)
			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			m.rpcs.WithLabelValues(req.Spec().Procedure, code).Inc()
			return resp, err
		}
	}
}

// ObserveMutation records the outcome of a ledger mutation.
// An empty reason means the mutation was applied.
func (m *Metrics) ObserveMutation(kind, reason string) {
	if m == nil {
		return
	}
	outcome := reason
	if outcome == "" {
		outcome = "applied"
	}
	m.mutations.WithLabelValues(kind, outcome).Inc()
}

// SetSessions updates the hosted sessions gauge.
func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}
