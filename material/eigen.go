package material

import (
	"errors"
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"twodct/maths"
)

// ErrNotHermitian 体哈密顿量非厄米
var ErrNotHermitian = errors.New("material: hamiltonian is not hermitian")

// hermitianTolerance 厄米性检查的相对容差
const hermitianTolerance = 1e-9

// BandEnergies 厄米矩阵本征值（升序）。
// 复 n×n 厄米矩阵 H = A + iB 嵌入为实对称 2n×2n 矩阵 [[A, -B], [B, A]]，
// 其谱为 H 的谱每个值重复两次。
func BandEnergies(h maths.Matrix[complex128]) ([]float64, error) {
	if !h.IsSquare() {
		return nil, fmt.Errorf("band energies of %dx%d: %w", h.Rows(), h.Cols(), maths.ErrDimension)
	}
	n := h.Rows()
	tol := hermitianTolerance * h.MaxAbs()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if cmplx.Abs(h.Get(i, j)-cmplx.Conj(h.Get(j, i))) > tol {
				return nil, fmt.Errorf("element (%d,%d): %w", i, j, ErrNotHermitian)
			}
		}
	}

	sym := mat.NewSymDense(2*n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := h.Get(i, j)
			a, b := real(v), imag(v)
			sym.SetSym(i, j, a)
			sym.SetSym(n+i, n+j, a)
			sym.SetSym(i, n+j, -b)
			sym.SetSym(j, n+i, b)
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(sym, false); !ok {
		return nil, fmt.Errorf("band energies: eigen decomposition did not converge")
	}
	doubled := eig.Values(nil) // 升序
	values := make([]float64, n)
	for i := range values {
		values[i] = doubled[2*i]
	}
	return values, nil
}
