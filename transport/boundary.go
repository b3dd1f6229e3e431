package transport

import (
	"fmt"
	"math"
	"math/cmplx"

	"twodct/maths"
)

// Options 边界求解选项
type Options struct {
	// LiteralChannelAveraging 只激发块内最后一个奇数通道，
	// 不对全部传播通道求平均（用于与旧结果对照）
	LiteralChannelAveraging bool
}

// boundaryStates 透射/反射通道标记 t=[0,1,0,1,…]，r=[1,0,1,0,…]
func boundaryStates(m int) (t, r []float64) {
	t = make([]float64, m)
	r = make([]float64, m)
	for i := range t {
		if i%2 == 1 {
			t[i] = 1
		} else {
			r[i] = 1
		}
	}
	return t, r
}

// boundaryMatrix 反射通道对角置 -1，其余按透射标记缩放（不修改输入）
func boundaryMatrix(tmat maths.Matrix[complex128], t []float64) maths.Matrix[complex128] {
	b := maths.Clone(tmat)
	for i := range t {
		for j := range t {
			if i == j && t[j] == 0 {
				b.Set(i, j, -1)
			} else {
				b.Set(i, j, b.Get(i, j)*complex(t[j], 0))
			}
		}
	}
	return b
}

// CurrentRatio 单个谷的透射比与反射比 (Jt/Ji, Jr/Ji)。
// mask 为该谷块内的入射标记，jt 为出射层局域电流，jr 为入射层局域电流。
// 对每个传播通道 k 求解 T'·c = e_k，累加三路电流后归一化。
func CurrentRatio(mask IncidentMask, tmat, jinc maths.Matrix[complex128], jt, jr []complex128, opts Options) (float64, float64, error) {
	m := len(mask)
	if tmat.Rows() != m || jinc.Rows() != m || len(jt) != m || len(jr) != m {
		return 0, 0, fmt.Errorf("current ratio for block %d: %w", m, maths.ErrDimension)
	}
	ts, rs := boundaryStates(m)
	lu, err := maths.NewLU[complex128](m)
	if err != nil {
		return 0, 0, err
	}
	if err := lu.Decompose(boundaryMatrix(tmat, ts)); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrSingularBoundary, err)
	}

	channels := mask.Channels()
	if opts.LiteralChannelAveraging {
		channels = []int{m - 1}
	}
	var sumI, sumT, sumR float64
	c := maths.NewDenseVector[complex128](m)
	for _, k := range channels {
		if err := lu.SolveReuse(maths.UnitVector[complex128](m, k), c); err != nil {
			return 0, 0, err
		}
		sumI += math.Abs(real(jinc.Get(k, k)))
		for i := 0; i < m; i++ {
			a := cmplx.Abs(c.Get(i))
			a *= a
			sumT += ts[i] * a * math.Abs(real(jt[i]))
			sumR += rs[i] * a * math.Abs(real(jr[i]))
		}
	}
	if sumI == 0 {
		return 0, 0, ErrZeroIncidentCurrent
	}
	return sumT / sumI, sumR / sumI, nil
}
