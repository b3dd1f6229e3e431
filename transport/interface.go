package transport

import (
	"fmt"
	"math/cmplx"

	"twodct/band"
	"twodct/maths"
	"twodct/material"
)

// couple 左层模式 i 与任一层模式 j 在 z 处的电流耦合
// I0·exp(i(ky_j−ky_i)K z)·(ψ̄ᵢ · J · ψⱼ)
func couple(op material.CurrentOperator, kx float64, left *band.ModeSet, i int, other *band.ModeSet, j int, z float64) complex128 {
	ky1, ky2 := left.Val[i], other.Val[j]
	jm := op.Current(kx, ky1, ky2, false)
	prob := left.PsiConj(i).DotProduct(jm.MatrixVectorMultiply(other.Psi(j)))
	phase := cmplx.Exp(1i * (ky2 - ky1) * complex(op.KNorm()*z*1e-9, 0))
	return op.Prefactor() * phase * prob
}

// InterfaceCurrent 位置 z (nm) 处界面的电流矩阵对 (Ji, Jo)，返回时 Jo 已左乘 Ji⁻¹
func InterfaceCurrent(op material.CurrentOperator, kx float64, left, right *band.ModeSet, z float64) (ji, jo maths.Matrix[complex128], err error) {
	m := left.Size()
	if right.Size() != m {
		return nil, nil, fmt.Errorf("interface %d vs %d modes: %w", m, right.Size(), maths.ErrDimension)
	}
	ji = maths.NewDenseMatrix[complex128](m, m)
	raw := maths.NewDenseMatrix[complex128](m, m)
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			ji.Set(i, j, couple(op, kx, left, i, left, j, z))
			raw.Set(i, j, couple(op, kx, left, i, right, j, z))
		}
	}
	jo, err = maths.LeftDivide(ji, raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrSingularInterface, err)
	}
	return ji, jo, nil
}
