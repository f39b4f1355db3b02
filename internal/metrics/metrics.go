// Package metrics provides Prometheus counters for the annotation flow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Login outcomes recorded by RecordLogin.
const (
	LoginSuccess      = "success"
	LoginUserNotFound = "user_not_found"
	LoginBadPassword  = "incorrect_password"
	LoginDenied       = "access_denied"
	LoginError        = "error"
)

// Metrics contains the service's Prometheus collectors. A nil *Metrics is a no-op.
type Metrics struct {
	loginAttempts    *prometheus.CounterVec
	annotationsSaved prometheus.Counter
	assignments      *prometheus.CounterVec
	storeErrors      *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics(registry prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		loginAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "evalmind_login_attempts_total",
				Help: "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
		annotationsSaved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "evalmind_annotations_saved_total",
				Help: "Annotations written, including overwrites",
			},
		),
		assignments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "evalmind_assignments_total",
				Help: "Next-item selections by result",
			},
			[]string{"result"}, // result: item, exhausted
		),
		storeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "evalmind_store_errors_total",
				Help: "Data store failures by operation",
			},
			[]string{"operation"},
		),
	}

	for _, c := range []prometheus.Collector{m.loginAttempts, m.annotationsSaved, m.assignments, m.storeErrors} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) RecordLogin(outcome string) {
	if m == nil {
		return
	}
	m.loginAttempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordAnnotationSaved() {
	if m == nil {
		return
	}
	m.annotationsSaved.Inc()
}

func (m *Metrics) RecordAssignment(exhausted bool) {
	if m == nil {
		return
	}
	result := "item"
	if exhausted {
		result = "exhausted"
	}
	m.assignments.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordStoreError(operation string) {
	if m == nil {
		return
	}
	m.storeErrors.WithLabelValues(operation).Inc()
}
