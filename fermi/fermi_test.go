package fermi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twodct/material"
)

func TestOccupationStep(t *testing.T) {
	// Ef = 10 meV, V = 5 meV，阈值 15 meV
	assert.Equal(t, 1.0, Occupation(14e-3*material.Q, 10, 5, 0))
	assert.Equal(t, 0.0, Occupation(16e-3*material.Q, 10, 5, 0))
	assert.Equal(t, 1.0, Occupation(14e-3*material.Q, 10, 5, 10))
	assert.Equal(t, 0.0, Occupation(16e-3*material.Q, 10, 5, 10))
}

func TestOccupationFermiDirac(t *testing.T) {
	mu := 15e-3 * material.Q
	assert.InDelta(t, 0.5, Occupation(mu, 10, 5, 300), 1e-12)

	kt := material.KB * 300
	assert.InDelta(t, 1/(1+math.E), Occupation(mu+kt, 10, 5, 300), 1e-12)
	assert.Greater(t, Occupation(mu-kt, 10, 5, 300), 0.5)
}

func newEvaluator(t *testing.T, ef float64) *Evaluator {
	t.Helper()
	m, err := material.Lookup("Graphene")
	require.NoError(t, err)
	h, err := material.NewHamiltonian(material.Options{Direction: "Zigzag", HType: material.HTypeLinearize, Material: m})
	require.NoError(t, err)
	return &Evaluator{Ham: h, Ef: ef}
}

func TestWeightAtDiracPoint(t *testing.T) {
	// k = 0, gap = 0：第三低能级为 0
	ref, err := newEvaluator(t, 0).Reference(0, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0, ref, 1e-30)

	f, err := newEvaluator(t, 1).Weight(0, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, f)

	f, err = newEvaluator(t, -1).Weight(0, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, f)
}

func TestDriftShiftsMomentum(t *testing.T) {
	e := newEvaluator(t, 0)
	e.DkAmp, e.DkAng = 0.01, 90
	dkx, dky := e.Drift()
	assert.InDelta(t, 0, dkx, 1e-18)
	assert.InDelta(t, 0.01, dky, 1e-18)

	// 漂移抵消：在 (0, δky) 处求值等价于无漂移的原点
	shifted, err := e.Reference(0, 0, 0.01)
	require.NoError(t, err)
	plain, err := newEvaluator(t, 0).Reference(0, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, plain, shifted, 1e-30)
}
