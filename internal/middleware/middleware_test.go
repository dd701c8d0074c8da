package middleware

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSessionIDContext(t *testing.T) {
	ctx := context.Background()
	if got := GetSessionID(ctx); got != "" {
		t.Errorf("empty context: got %q", got)
	}
	if got := GetSessionID(WithSessionID(ctx, "s-1")); got != "s-1" {
		t.Errorf("GetSessionID = %q, want s-1", got)
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveMutation("add_member", "")
	m.ObserveMutation("add_member", "")
	m.ObserveMutation("add_member", "blank_name")
	m.SetSessions(3)

	if got := testutil.ToFloat64(m.mutations.WithLabelValues("add_member", "applied")); got != 2 {
		t.Errorf("applied = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.mutations.WithLabelValues("add_member", "blank_name")); got != 1 {
		t.Errorf("blank_name = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.sessions); got != 3 {
		t.Errorf("sessions = %v, want 3", got)
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	m.ObserveMutation("add_member", "")
	m.SetSessions(1)
}
