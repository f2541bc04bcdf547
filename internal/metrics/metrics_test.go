package metrics_test

import (
	"testing"

	"github.com/UnknownOlympus/beacon/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	m.Lookups.WithLabelValues(metrics.OutcomeLocated).Inc()
	m.Lookups.WithLabelValues(metrics.OutcomeFailed).Add(2)
	m.Alerts.Inc()

	assert.InDelta(t, 1, testutil.ToFloat64(m.Lookups.WithLabelValues(metrics.OutcomeLocated)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Lookups.WithLabelValues(metrics.OutcomeFailed)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Alerts), 0)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNewMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.NewMetrics(reg)

	assert.Panics(t, func() {
		metrics.NewMetrics(reg)
	})
}
