// Package transporttest 输运引擎测试用的解析可解模式数据。
//
// 电流算符取 J = σy ⊕ σy，模式基取 σy 本征矢 (1,∓i)/√2 组成的块对角矩阵，
// 使 Ψ^H J Ψ = diag(-1, 1, -1, 1)：奇数位置为正向传播通道。
package transporttest

import (
	"math"
	"math/cmplx"

	"twodct/band"
	"twodct/maths"
	"twodct/types"
)

// 本征值样例（单谷块）
var (
	WellDefined = []complex128{0.1 + 0.5i, 0.2, -0.1 - 0.5i, -0.2}       // 两个传播通道
	OneChannel  = []complex128{0.1 + 0.5i, 0.2 + 0.3i, -0.1 - 0.5i, -0.2} // 一个传播通道
)

// SigmaOp 电流算符 J = σy ⊕ σy，I0 = 1
type SigmaOp struct {
	K float64
}

func (s SigmaOp) BlockSize() int        { return 4 }
func (s SigmaOp) Prefactor() complex128 { return 1 }
func (s SigmaOp) KNorm() float64        { return s.K }
func (s SigmaOp) Current(kx float64, ky1, ky2 complex128, local bool) maths.Matrix[complex128] {
	return maths.NewDenseMatrixFromRows([][]complex128{
		{0, -1i, 0, 0},
		{1i, 0, 0, 0},
		{0, 0, 0, -1i},
		{0, 0, 1i, 0},
	})
}

// ModeSet 以 vals 为本征值的模式集
func ModeSet(vals []complex128) *band.ModeSet {
	s := complex(1/math.Sqrt2, 0)
	u := [][]complex128{{s, s}, {-1i * s, 1i * s}}
	vec := maths.NewDenseMatrix[complex128](4, 4)
	conj := maths.NewDenseMatrix[complex128](4, 4)
	for b := 0; b < 2; b++ {
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				vec.Set(2*b+i, 2*b+j, u[i][j])
				conj.Set(2*b+i, 2*b+j, cmplx.Conj(u[i][j]))
			}
		}
	}
	return &band.ModeSet{Val: append([]complex128(nil), vals...), Vec: vec, VecConj: conj}
}

// DiracModes 有质量狄拉克模型 H = ky·σy + Δ·σz 在能量 e (e > |Δ|) 处的模式。
// 两个相同的 2×2 子块，偶数位置为左行波 -k，奇数位置为右行波 +k，
// 本征矢 (-i·ky, e-Δ)。电流算符与 SigmaOp 一致。
func DiracModes(delta, e float64) *band.ModeSet {
	k := math.Sqrt(e*e - delta*delta)
	vals := []complex128{complex(-k, 0), complex(k, 0), complex(-k, 0), complex(k, 0)}
	vec := maths.NewDenseMatrix[complex128](4, 4)
	conj := maths.NewDenseMatrix[complex128](4, 4)
	for b := 0; b < 2; b++ {
		for j := 0; j < 2; j++ {
			ky := real(vals[2*b+j])
			spinor := [2]complex128{complex(0, -ky), complex(e-delta, 0)}
			for i, c := range spinor {
				vec.Set(2*b+i, 2*b+j, c)
				conj.Set(2*b+i, 2*b+j, cmplx.Conj(c))
			}
		}
	}
	return &band.ModeSet{Val: vals, Vec: vec, VecConj: conj}
}

// Point 两谷模式
func Point(kp, kn *band.ModeSet) band.Point {
	return band.Point{types.ValleyKp: kp, types.ValleyKn: kn}
}

// Stack 每层给出全部能量点的模式
func Stack(kx float64, layers ...[]band.Point) *band.Data {
	return &band.Data{Kx: kx, Layers: layers}
}

// Uniform n 层、energies 个能量点的相同模式
func Uniform(kx float64, n, energies int, vals []complex128) *band.Data {
	layers := make([][]band.Point, n)
	for l := range layers {
		layers[l] = make([]band.Point, energies)
		for e := range layers[l] {
			layers[l][e] = Point(ModeSet(vals), ModeSet(vals))
		}
	}
	return Stack(kx, layers...)
}
