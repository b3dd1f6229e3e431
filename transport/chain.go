package transport

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"twodct/band"
	"twodct/maths"
	"twodct/material"
)

// Chain 累积转移矩阵
type Chain struct {
	T    maths.Matrix[complex128] // Jo₀·Jo₁·…
	Jinc maths.Matrix[complex128] // 第一个界面的 Ji
}

// Interfaces 界面位置：层长累加去掉最后一项 (nm)
func Interfaces(lengths []float64) []float64 {
	if len(lengths) < 2 {
		return nil
	}
	z := floats.CumSum(make([]float64, len(lengths)), lengths)
	return z[:len(z)-1]
}

// BuildChain 自左向右依次处理每个界面并累乘转移矩阵。
// 单层器件没有界面：转移矩阵为单位阵，Jinc 取该层自身的电流矩阵。
func BuildChain(op material.CurrentOperator, kx float64, layers []*band.ModeSet, lengths []float64) (*Chain, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("no layers: %w", ErrEmptyStack)
	}
	if len(layers) != len(lengths) {
		return nil, fmt.Errorf("%d mode sets for %d layer lengths: %w", len(layers), len(lengths), maths.ErrDimension)
	}
	if len(layers) == 1 {
		ji, _, err := InterfaceCurrent(op, kx, layers[0], layers[0], 0)
		if err != nil {
			return nil, err
		}
		return &Chain{T: maths.Identity[complex128](layers[0].Size()), Jinc: ji}, nil
	}
	c := &Chain{}
	for idx, z := range Interfaces(lengths) {
		ji, jo, err := InterfaceCurrent(op, kx, layers[idx], layers[idx+1], z)
		if err != nil {
			return nil, fmt.Errorf("interface %d (z=%g nm): %w", idx, z, err)
		}
		if idx == 0 {
			c.Jinc, c.T = ji, jo
			continue
		}
		if c.T, err = maths.Mul(c.T, jo); err != nil {
			return nil, err
		}
	}
	return c, nil
}
