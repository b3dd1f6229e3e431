package band

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twodct/types"
)

const twoByTwo = `
kx: 0.01
layers:
  - - "+K":
        val: [[0.1, 0.5], 0.2]
        vec: [[[1, 0], 0], [0, [0, 1]]]
        velocity: [1, 2]
      "-K":
        val: [[-0.1, -0.5], -0.2]
        vec: [[1, 0], [0, 1]]
        vec_conj: [[1, 0], [0, 1]]
`

func TestLoadDerivesConjugate(t *testing.T) {
	d, err := Load(strings.NewReader(twoByTwo))
	require.NoError(t, err)
	require.NoError(t, d.Validate(2, 1))

	assert.Equal(t, 0.01, d.Kx)
	assert.Equal(t, 1, d.NumLayers())
	assert.Equal(t, 1, d.NumEnergies())

	kp := d.At(0, 0, types.ValleyKp)
	assert.Equal(t, complex(0.1, 0.5), kp.Val[0])
	assert.Equal(t, complex(0.2, 0), kp.Val[1])
	assert.Equal(t, 1i, kp.Vec.Get(1, 1))
	assert.Equal(t, -1i, kp.VecConj.Get(1, 1))
	assert.Equal(t, 2.0, kp.GroupVelocity(1))

	kn := d.At(0, 0, types.ValleyKn)
	assert.Equal(t, 1.0, kn.GroupVelocity(0))
	assert.Equal(t, []complex128{0.1 + 0.5i, 0.2, -0.1 - 0.5i, -0.2}, d.Stacked(0, 0))
}

func TestLoadRejectsBadShapes(t *testing.T) {
	cases := map[string]string{
		"ragged vec": `
layers:
  - - "+K": {val: [1, 2], vec: [[1, 0], [0]]}
      "-K": {val: [1, 2], vec: [[1, 0], [0, 1]]}
`,
		"missing valley": `
layers:
  - - "+K": {val: [1, 2], vec: [[1, 0], [0, 1]]}
`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(src))
			assert.ErrorIs(t, err, ErrModeShape)
		})
	}

	_, err := Load(strings.NewReader(`layers: [[{"+K": {val: [[1, 2, 3]]}}]]`))
	assert.Error(t, err)
}

func TestLoadReportsValleysInOrder(t *testing.T) {
	// 两个谷都缺失时总是先报告 +K
	for i := 0; i < 10; i++ {
		_, err := Load(strings.NewReader("layers: [[{}]]"))
		require.ErrorIs(t, err, ErrModeShape)
		assert.Contains(t, err.Error(), "missing valley +K")
	}
	_, err := Load(strings.NewReader(`
layers:
  - - "+K": {val: [1, 2], vec: [[1, 0], [0, 1]]}
`))
	assert.Contains(t, err.Error(), "missing valley -K")
}

func TestValidateBlockAndEnergies(t *testing.T) {
	d, err := Load(strings.NewReader(twoByTwo))
	require.NoError(t, err)
	assert.ErrorIs(t, d.Validate(4, 1), ErrModeShape)
	assert.ErrorIs(t, d.Validate(2, 3), ErrModeShape)
	assert.ErrorIs(t, (&Data{}).Validate(2, 1), ErrModeShape)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	name := FileName("hBN", 0.01)
	assert.Equal(t, "hBN_kx=0.01.yaml", name)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(twoByTwo), 0o644))

	src := FileSource{Dir: dir}
	d, err := src.Modes(context.Background(), "hBN", 0.01)
	require.NoError(t, err)
	assert.Equal(t, 1, d.NumLayers())

	_, err = src.Modes(context.Background(), "hBN", 0.02)
	assert.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Modes(ctx, "hBN", 0.01)
	assert.ErrorIs(t, err, context.Canceled)
}
