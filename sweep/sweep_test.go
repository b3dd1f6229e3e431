package sweep

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twodct/band"
	"twodct/maths"
	"twodct/metrics"
	"twodct/transport"
	tt "twodct/transport/transporttest"
	"twodct/types"
)

const energies = 16

// sweepData 两层器件；出射层随能量平移，每隔三个能量点 -K 谷只有一个传播通道
func sweepData() (*band.Data, []float64) {
	in := make([]band.Point, energies)
	out := make([]band.Point, energies)
	for e := 0; e < energies; e++ {
		kn := tt.WellDefined
		if e%3 == 0 {
			kn = tt.OneChannel
		}
		shifted := make([]complex128, 4)
		for i, v := range tt.WellDefined {
			shifted[i] = v + complex(0.01*float64(e), 0)
		}
		in[e] = tt.Point(tt.ModeSet(tt.WellDefined), tt.ModeSet(kn))
		out[e] = tt.Point(tt.ModeSet(shifted), tt.ModeSet(kn))
	}
	grid := make([]float64, energies)
	for i := range grid {
		grid[i] = float64(i)
	}
	return tt.Stack(0.02, in, out), grid
}

func newDispatcher(t *testing.T, threads int) *Dispatcher {
	t.Helper()
	e, err := transport.NewEngine(tt.SigmaOp{K: 1e8}, transport.Options{})
	require.NoError(t, err)
	logger, _ := test.NewNullLogger()
	return &Dispatcher{Engine: e, Threads: threads, Logger: logger}
}

func TestDispatcherDeterministicAcrossPoolSizes(t *testing.T) {
	data, grid := sweepData()
	lengths := []float64{1000, 1000}

	base, err := newDispatcher(t, 1).Run(context.Background(), grid, data, lengths)
	require.NoError(t, err)
	require.Len(t, base, energies)
	for i, res := range base {
		assert.Equal(t, i, res.Index)
		assert.Equal(t, grid[i], res.Energy)
		assert.NoError(t, res.Err)
		if i%3 == 0 {
			assert.Equal(t, transport.StatusDegenerate, res.Status[types.ValleyKn])
		}
	}

	for _, threads := range []int{2, 8} {
		got, err := newDispatcher(t, threads).Run(context.Background(), grid, data, lengths)
		require.NoError(t, err)
		assert.Equal(t, base, got, "threads=%d", threads)
	}
}

func TestDispatcherCarriesPointFailures(t *testing.T) {
	data, grid := sweepData()
	bad := tt.ModeSet(tt.WellDefined)
	bad.Val[1] = bad.Val[0]
	for i := 0; i < 4; i++ {
		bad.Vec.Set(i, 1, bad.Vec.Get(i, 0))
		bad.VecConj.Set(i, 1, bad.VecConj.Get(i, 0))
	}
	// 三层：中间层在能量 5 处奇异
	mid := make([]band.Point, energies)
	for e := range mid {
		mid[e] = tt.Point(tt.ModeSet(tt.WellDefined), tt.ModeSet(tt.WellDefined))
	}
	mid[5] = tt.Point(bad, tt.ModeSet(tt.WellDefined))
	data.Layers = [][]band.Point{data.Layers[0], mid, data.Layers[1]}

	d := newDispatcher(t, 4)
	logger, hook := test.NewNullLogger()
	d.Logger = logger
	reg := prometheus.NewRegistry()
	d.Metrics = metrics.New(reg)

	results, err := d.Run(context.Background(), grid, data, []float64{1000, 10, 1000})
	require.NoError(t, err)
	assert.ErrorIs(t, results[5].Err, transport.ErrSingularInterface)
	assert.Equal(t, transport.StatusFailed, results[5].Status[types.ValleyKp])
	assert.Equal(t, transport.StatusSolved, results[5].Status[types.ValleyKn])
	assert.NoError(t, results[4].Err)

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, 5, entry.Data["energy_idx"])
	assert.Equal(t, 0.02, entry.Data["kx"])

	assert.Equal(t, 1.0, testutil.ToFloat64(d.Metrics.Points.WithLabelValues("+K", "failed")))
}

func TestDispatcherRejectsInconsistentInput(t *testing.T) {
	data, grid := sweepData()
	d := newDispatcher(t, 2)

	_, err := d.Run(context.Background(), grid, data, []float64{1000})
	assert.ErrorIs(t, err, maths.ErrDimension)

	_, err = d.Run(context.Background(), grid[:3], data, []float64{1000, 1000})
	assert.ErrorIs(t, err, band.ErrModeShape)
}

func TestDispatcherStopsOnCancel(t *testing.T) {
	data, grid := sweepData()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := newDispatcher(t, 2).Run(ctx, grid, data, []float64{1000, 1000})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, energies)
	for i, res := range results {
		assert.Equal(t, i, res.Index)
		assert.ErrorIs(t, res.Err, context.Canceled)
		assert.Equal(t, transport.StatusFailed, res.Status[types.ValleyKp])
	}
}

func TestPolarization(t *testing.T) {
	p, err := Polarization(3, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.5, p)

	p, err = Polarization(0, 0)
	assert.True(t, errors.Is(err, ErrUndefinedPolarization))
	assert.True(t, math.IsNaN(p))
}

type constWeight float64

func (c constWeight) Weight(gap, v, kx, ky float64) (float64, error) { return float64(c), nil }

type failingWeight struct{}

func (failingWeight) Weight(gap, v, kx, ky float64) (float64, error) {
	return 0, errors.New("no bands")
}

func result(idx int, tkp, tkn float64, kn transport.Status) transport.PointResult {
	r := transport.PointResult{Index: idx}
	r.T = [types.NumValleys]float64{tkp, tkn}
	r.Status = [types.NumValleys]transport.Status{transport.StatusSolved, kn}
	r.Velocity = [types.NumValleys]float64{1, 2}
	return r
}

func TestAggregatorTotals(t *testing.T) {
	a := &Aggregator{Fermi: constWeight(0.5)}
	a.Add(0, []transport.PointResult{
		result(0, 1, 0.5, transport.StatusSolved),
		result(1, 0.6, 0, transport.StatusDegenerate),
	})
	a.Add(0.1, []transport.PointResult{
		result(0, 0.4, 0.25, transport.StatusFailed),
	})
	tot := a.Totals()
	require.NoError(t, a.Err())

	assert.InDelta(t, 0.5*(1+0.6+0.4), tot.J[types.ValleyKp], 1e-15)
	assert.InDelta(t, 0.5*2*0.5, tot.J[types.ValleyKn], 1e-15)
	assert.Equal(t, 1, tot.Skipped)
	require.True(t, tot.PolarizationDefined)
	assert.InDelta(t, (1.0-0.5)/(1.0+0.5), tot.P, 1e-15)
	assert.GreaterOrEqual(t, tot.P, -1.0)
	assert.LessOrEqual(t, tot.P, 1.0)
}

func TestAggregatorUndefinedPolarization(t *testing.T) {
	a := &Aggregator{Fermi: constWeight(0)}
	a.Add(0, []transport.PointResult{result(0, 1, 1, transport.StatusSolved)})
	tot := a.Totals()
	assert.False(t, tot.PolarizationDefined)
	assert.True(t, math.IsNaN(tot.P))

	b := &Aggregator{Fermi: failingWeight{}}
	b.Add(0, []transport.PointResult{result(0, 1, 1, transport.StatusSolved)})
	assert.Equal(t, 2, b.Totals().Skipped)
	assert.Error(t, b.Err())
}
