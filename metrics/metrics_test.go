package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveOperation(t *testing.T) {
	m := New()
	m.ObserveOperation("generate_schedule", time.Now(), nil)
	m.ObserveOperation("generate_schedule", time.Now(), errors.New("boom"))
	m.ObserveOperation("generate_schedule", time.Now(), nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("generate_schedule", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("generate_schedule", "error")))
}

func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.SchedulesGenerated("RoundRobin", 6)
	m.RatingsApplied(2)
	m.SnapshotsPublished()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.schedules.WithLabelValues("RoundRobin")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ratingUpdates))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.snapshotsPublished))

	expected := `
# HELP tournament_engine_rating_updates_total Rating records produced.
# TYPE tournament_engine_rating_updates_total counter
tournament_engine_rating_updates_total 2
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "tournament_engine_rating_updates_total"))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	var r Recorder = m
	assert.NotPanics(t, func() {
		r.ObserveOperation("x", time.Now(), nil)
		r.SchedulesGenerated("RoundRobin", 1)
		r.RatingsApplied(1)
		r.SnapshotsPublished()
	})
}
