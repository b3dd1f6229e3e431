package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArange(t *testing.T) {
	got, err := Arange(0, 1, 0.25)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75}, got)

	got, err = Arange(1, 0, 0.1)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Arange(0, 1, 0)
	assert.ErrorIs(t, err, ErrGrid)
}

func TestKxGrid(t *testing.T) {
	got, err := KxGrid(0.3, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.3}, got)

	got, err = KxGrid(0, 0.2, 0.1)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func job() Job {
	return Job{Name: "pn", Regions: []Region{
		{Gap: 0, Length: 100, Mesh: 1},
		{Gap: 20, Length: 30, Mesh: 3},
		{Gap: 0, Length: 100, Mesh: 1},
	}}
}

func TestBuildWithLeads(t *testing.T) {
	d, err := Build(job(), 40, true)
	require.NoError(t, err)
	require.Len(t, d.Layers, 5)

	assert.Equal(t, []float64{100, 10, 10, 10, 100}, d.Lengths())
	assert.Equal(t, 230.0, d.TotalLength())
	assert.Equal(t, 20.0, d.Layers[2].Gap)

	// 内部 3 层各降 40/4
	want := []float64{0, 10, 20, 30, 30}
	for i, l := range d.Layers {
		assert.InDelta(t, want[i], l.V, 1e-12, "layer %d", i)
	}
	assert.Equal(t, d.Layers[0], d.Incident())
}

func TestBuildWithoutLeads(t *testing.T) {
	d, err := Build(job(), 12, false)
	require.NoError(t, err)
	// 5 层各降 12/6
	want := []float64{2, 4, 6, 8, 10}
	for i, l := range d.Layers {
		assert.InDelta(t, want[i], l.V, 1e-12, "layer %d", i)
	}
}

func TestBuildRejectsBadJobs(t *testing.T) {
	_, err := Build(Job{Name: "empty"}, 0, false)
	assert.ErrorIs(t, err, ErrEmptyJob)

	bad := job()
	bad.Regions[1].Mesh = 0
	_, err = Build(bad, 0, false)
	assert.ErrorIs(t, err, ErrMesh)

	_, err = Build(Job{Name: "one", Regions: []Region{{Mesh: 2, Length: 10}}}, 0, true)
	assert.ErrorIs(t, err, ErrMesh)
}
