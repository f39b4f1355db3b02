package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.RecordLogin(LoginSuccess)
	m.RecordLogin(LoginSuccess)
	m.RecordLogin(LoginDenied)
	m.RecordAnnotationSaved()
	m.RecordAssignment(false)
	m.RecordAssignment(true)
	m.RecordStoreError("progress")

	assert.InDelta(t, 2, testutil.ToFloat64(m.loginAttempts.WithLabelValues(LoginSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.loginAttempts.WithLabelValues(LoginDenied)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.annotationsSaved), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.assignments.WithLabelValues("item")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.assignments.WithLabelValues("exhausted")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.storeErrors.WithLabelValues("progress")), 0)
}

func TestMetricsDoubleRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := NewMetrics(registry)
	require.NoError(t, err)

	_, err = NewMetrics(registry)
	assert.Error(t, err)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordLogin(LoginError)
		m.RecordAnnotationSaved()
		m.RecordAssignment(true)
		m.RecordStoreError("x")
	})
}
