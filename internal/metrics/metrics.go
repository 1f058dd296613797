// Package metrics holds the Prometheus collectors for authentication events.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Login results.
const (
	LoginSuccess = "success"
	LoginInvalid = "invalid_credentials"
	LoginError   = "error"
)

// Gate decisions.
const (
	DecisionAllow           = "allow"
	DecisionUnauthenticated = "unauthenticated"
	DecisionUnauthorized    = "unauthorized"
)

// Metrics groups the service counters. A nil *Metrics records nothing.
type Metrics struct {
	LoginsTotal        *prometheus.CounterVec
	LogoutsTotal       prometheus.Counter
	GateDecisionsTotal *prometheus.CounterVec
	SessionsSwept      prometheus.Counter
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookstore_logins_total",
				Help: "Login attempts by result",
			},
			[]string{"result"},
		),
		LogoutsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "bookstore_logouts_total",
				Help: "Logout requests",
			},
		),
		GateDecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookstore_gate_decisions_total",
				Help: "Access gate decisions by capability and outcome",
			},
			[]string{"capability", "decision"},
		),
		SessionsSwept: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "bookstore_sessions_swept_total",
				Help: "Expired sessions removed by the sweeper",
			},
		),
	}

	reg.MustRegister(m.LoginsTotal, m.LogoutsTotal, m.GateDecisionsTotal, m.SessionsSwept)

	return m
}

func (m *Metrics) ObserveLogin(result string) {
	if m == nil {
		return
	}
	m.LoginsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveLogout() {
	if m == nil {
		return
	}
	m.LogoutsTotal.Inc()
}

func (m *Metrics) ObserveDecision(capability, decision string) {
	if m == nil {
		return
	}
	m.GateDecisionsTotal.WithLabelValues(capability, decision).Inc()
}

func (m *Metrics) ObserveSweep(removed int) {
	if m == nil || removed <= 0 {
		return
	}
	m.SessionsSwept.Add(float64(removed))
}
