// Package transport 模式匹配转移矩阵引擎：界面电流矩阵、累积转移矩阵、
// 入射态判定与边界求解，给出每个能量点每个谷的透射/反射比。
package transport

import (
	"math/cmplx"

	"twodct/band"
	"twodct/maths"
	"twodct/material"
)

// decay 模式在长度 zLen (nm) 上的衰减因子，始终取衰减方向
func decay(ky complex128, kNorm, zLen float64) complex128 {
	d := ky - cmplx.Conj(ky)
	s := complex(1, 0)
	if imag(d) < 0 {
		s = -1
	}
	return cmplx.Exp(s * 1i * d * complex(kNorm*zLen*1e-9, 0))
}

// LocalCurrent 单层各模式的局域电流 I0·phase·⟨ψᵢ|J|ψᵢ⟩
func LocalCurrent(op material.CurrentOperator, kx float64, modes *band.ModeSet, zLen float64) []complex128 {
	i0, kNorm := op.Prefactor(), op.KNorm()
	out := make([]complex128, modes.Size())
	for i, ky := range modes.Val {
		psi := modes.Psi(i)
		j := op.Current(kx, ky, ky, true)
		prob := maths.Conj(psi).DotProduct(j.MatrixVectorMultiply(psi))
		out[i] = i0 * decay(ky, kNorm, zLen) * prob
	}
	return out
}
