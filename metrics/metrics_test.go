package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twodct/transport"
	"twodct/types"
)

func TestObservePoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	res := transport.PointResult{}
	res.Status[types.ValleyKp] = transport.StatusSolved
	res.Status[types.ValleyKn] = transport.StatusDegenerate
	m.ObservePoint(res, time.Millisecond)
	m.ObservePoint(res, time.Millisecond)
	m.KxDone()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Points.WithLabelValues("+K", "solved")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Points.WithLabelValues("-K", "degenerate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.KxCompleted))

	n, err := testutil.GatherAndCount(reg, "twodct_point_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *SweepMetrics
	assert.NotPanics(t, func() {
		m.ObservePoint(transport.PointResult{}, time.Second)
		m.KxDone()
	})
}
