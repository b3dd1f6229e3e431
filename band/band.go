// Package band 保存能带求解器输出的模式数据（每层 × 每能量 × 每谷），
// 输运引擎只读使用。
package band

import (
	"errors"
	"fmt"

	"twodct/maths"
	"twodct/types"
)

// ErrModeShape 模式数据尺寸不一致
var ErrModeShape = errors.New("band: inconsistent mode data shape")

// ModeSet 单层、单能量、单谷的模式
type ModeSet struct {
	Val      []complex128             // 本征值（横向波矢，归一化）
	Vec      maths.Matrix[complex128] // 右本征矢（第 i 列对应模式 i）
	VecConj  maths.Matrix[complex128] // 共轭左本征矢（第 i 列对应模式 i）
	Velocity []float64                // 群速度（可选，缺省视为 1）
}

// Size 模式数
func (m *ModeSet) Size() int { return len(m.Val) }

// Psi 第 i 个右本征矢
func (m *ModeSet) Psi(i int) maths.Vector[complex128] { return maths.Column(m.Vec, i) }

// PsiConj 第 i 个共轭左本征矢
func (m *ModeSet) PsiConj(i int) maths.Vector[complex128] { return maths.Column(m.VecConj, i) }

// GroupVelocity 第 i 个模式的群速度
func (m *ModeSet) GroupVelocity(i int) float64 {
	if i < len(m.Velocity) {
		return m.Velocity[i]
	}
	return 1
}

// Validate 检查块大小
func (m *ModeSet) Validate(block int) error {
	if m == nil {
		return fmt.Errorf("missing mode set: %w", ErrModeShape)
	}
	if len(m.Val) != block {
		return fmt.Errorf("%d eigenvalues, want %d: %w", len(m.Val), block, ErrModeShape)
	}
	for name, v := range map[string]maths.Matrix[complex128]{"vec": m.Vec, "vec_conj": m.VecConj} {
		if v == nil || v.Rows() != block || v.Cols() != block {
			return fmt.Errorf("%s is not %dx%d: %w", name, block, block, ErrModeShape)
		}
	}
	if len(m.Velocity) != 0 && len(m.Velocity) != block {
		return fmt.Errorf("%d velocities, want %d: %w", len(m.Velocity), block, ErrModeShape)
	}
	return nil
}

// Point 单层单能量的两个谷
type Point [types.NumValleys]*ModeSet

// Data 全器件模式数据，索引 [layer][energy][valley]
type Data struct {
	Kx     float64   // 纵向动量
	Layers [][]Point // 每层每能量
}

// NumLayers 层数
func (d *Data) NumLayers() int { return len(d.Layers) }

// NumEnergies 能量点数
func (d *Data) NumEnergies() int {
	if len(d.Layers) == 0 {
		return 0
	}
	return len(d.Layers[0])
}

// At 取模式集
func (d *Data) At(layer, energy int, v types.Valley) *ModeSet {
	return d.Layers[layer][energy][v]
}

// Stacked 按 (+K, -K) 堆叠的本征值（长度 2m）
func (d *Data) Stacked(layer, energy int) []complex128 {
	var out []complex128
	for _, v := range types.Valleys {
		out = append(out, d.At(layer, energy, v).Val...)
	}
	return out
}

// Validate 检查全部模式集的块大小、能量点数
func (d *Data) Validate(block, energies int) error {
	if len(d.Layers) == 0 {
		return fmt.Errorf("no layers: %w", ErrModeShape)
	}
	for l, layer := range d.Layers {
		if len(layer) != energies {
			return fmt.Errorf("layer %d has %d energies, want %d: %w", l, len(layer), energies, ErrModeShape)
		}
		for e, p := range layer {
			for _, v := range types.Valleys {
				if err := p[v].Validate(block); err != nil {
					return fmt.Errorf("layer %d energy %d valley %s: %w", l, e, v, err)
				}
			}
		}
	}
	return nil
}
