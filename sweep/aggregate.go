package sweep

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"twodct/transport"
	"twodct/types"
)

// ErrUndefinedPolarization 两谷电流之和为零
var ErrUndefinedPolarization = errors.New("sweep: polarization undefined for zero total current")

// Polarization 谷极化 (a-b)/(a+b)；分母为零时返回 NaN 与 ErrUndefinedPolarization
func Polarization(a, b float64) (float64, error) {
	if a+b == 0 {
		return math.NaN(), ErrUndefinedPolarization
	}
	return (a - b) / (a + b), nil
}

// Weigher 费米占据权重
type Weigher interface {
	Weight(gap, v, kx, ky float64) (float64, error)
}

// Totals 汇总结果
type Totals struct {
	J                   [types.NumValleys]float64
	P                   float64
	PolarizationDefined bool
	Skipped             int // 失败而未计入的 (能量, 谷) 数
}

// Aggregator 按 kx、能量累加费米加权的谷电流（非并发安全）
type Aggregator struct {
	Fermi Weigher
	Gap   float64 // 入射层带隙 (meV)
	V     float64 // 入射层电势 (meV)

	terms   [types.NumValleys][]float64
	skipped int
	errs    []error
}

// Add 累加一个 kx 的扫描结果：|f·vel·T_v|
func (a *Aggregator) Add(kx float64, results []transport.PointResult) {
	for _, res := range results {
		for _, v := range types.Valleys {
			switch res.Status[v] {
			case transport.StatusDegenerate:
				continue
			case transport.StatusFailed:
				a.skipped++
				continue
			}
			f, err := a.Fermi.Weight(a.Gap, a.V, kx, real(res.Ky[v]))
			if err != nil {
				a.skipped++
				a.errs = append(a.errs, fmt.Errorf("kx %g energy %d valley %s: %w", kx, res.Index, v, err))
				continue
			}
			a.terms[v] = append(a.terms[v], math.Abs(f*res.Velocity[v]*res.T[v]))
		}
	}
}

// Err 费米权重计算中的错误
func (a *Aggregator) Err() error { return errors.Join(a.errs...) }

// Totals 当前累计的谷电流与极化
func (a *Aggregator) Totals() Totals {
	var t Totals
	for _, v := range types.Valleys {
		t.J[v] = floats.Sum(a.terms[v])
	}
	p, err := Polarization(t.J[types.ValleyKp], t.J[types.ValleyKn])
	t.P, t.PolarizationDefined = p, err == nil
	t.Skipped = a.skipped
	return t
}
