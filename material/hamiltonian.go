package material

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"twodct/maths"
)

// 错误定义
var (
	ErrUnknownMaterial   = errors.New("material: unknown material")
	ErrUnsupportedFamily = errors.New("material: unsupported hamiltonian family")
)

// CurrentOperator 电流算符
// Current 返回两个基态之间电流观测量的矩阵表示（块大小 m×m）。
// local 为真时求对角期望（ky1 == ky2），否则为区间耦合。
type CurrentOperator interface {
	BlockSize() int
	Prefactor() complex128
	KNorm() float64
	Current(kx float64, ky1, ky2 complex128, local bool) maths.Matrix[complex128]
}

// Hamiltonian 材料族哈密顿量：电流算符 + 体哈密顿量
type Hamiltonian interface {
	CurrentOperator
	// Bulk 体哈密顿量（gap 单位 meV，kx/ky 为归一化波矢）
	Bulk(gap, kx, ky float64) maths.Matrix[complex128]
}

// Options 构造材料族的选项
type Options struct {
	Direction string   // 晶向（Zigzag）
	HType     string   // 哈密顿量类型（linearize）
	Material  Material // 材料参数
}

// Factory 材料族构造函数
type Factory func(opts Options) (Hamiltonian, error)

var families = map[string]Factory{}

// RegisterFamily 注册材料族（按晶向名称，不区分大小写）
func RegisterFamily(direction string, f Factory) {
	families[strings.ToLower(direction)] = f
}

// NewHamiltonian 按晶向创建哈密顿量；未实现的晶向立即返回 ErrUnsupportedFamily
func NewHamiltonian(opts Options) (Hamiltonian, error) {
	f, ok := families[strings.ToLower(opts.Direction)]
	if !ok {
		return nil, fmt.Errorf("direction %q (supported: %s): %w",
			opts.Direction, strings.Join(Families(), ", "), ErrUnsupportedFamily)
	}
	return f(opts)
}

// Families 已注册晶向
func Families() []string {
	names := make([]string, 0, len(families))
	for n := range families {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
