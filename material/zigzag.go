package material

import (
	"fmt"
	"strings"

	"twodct/maths"
)

// HTypeLinearize 线性化（连续介质）哈密顿量
const HTypeLinearize = "linearize"

// Zigzag 锯齿晶向双层蜂窝晶格四带模型
// 基矢顺序 (A1, B1, A2, B2)，输运沿 y 方向，kx 守恒。
//
//	H = [[ Δ/2,  π*,   0,   wπ ],
//	     [ π,    Δ/2,  γ1,  0  ],
//	     [ 0,    γ1,  -Δ/2, π* ],
//	     [ wπ*,  0,    π,  -Δ/2]]
//
// 其中 π = ħvF·K·(kx + i·ky)，w = vF3/vF。
type Zigzag struct {
	mat Material
}

// NewZigzag 创建锯齿晶向哈密顿量
func NewZigzag(opts Options) (Hamiltonian, error) {
	if ht := strings.ToLower(opts.HType); ht != "" && ht != HTypeLinearize {
		return nil, fmt.Errorf("zigzag: H_type %q: %w", opts.HType, ErrUnsupportedFamily)
	}
	if opts.Material.KNorm == 0 || opts.Material.VF == 0 {
		return nil, fmt.Errorf("zigzag: material %q has no band parameters: %w", opts.Material.Name, ErrUnknownMaterial)
	}
	return &Zigzag{mat: opts.Material}, nil
}

// BlockSize 单谷模式数
func (z *Zigzag) BlockSize() int { return 4 }

// Prefactor 电流前置系数 I0 = 1/ħ
func (z *Zigzag) Prefactor() complex128 { return complex(1/HBar, 0) }

// KNorm 波矢归一化系数
func (z *Zigzag) KNorm() float64 { return z.mat.KNorm }

// Material 材料参数
func (z *Zigzag) Material() Material { return z.mat }

func (z *Zigzag) warp() float64 {
	if z.mat.VF == 0 {
		return 0
	}
	return z.mat.VF3 / z.mat.VF
}

// Current 电流算符 J = ∂H/∂ky。线性模型中与 kx、ky 无关，
// 局域与区间耦合形式相同。
func (z *Zigzag) Current(kx float64, ky1, ky2 complex128, local bool) maths.Matrix[complex128] {
	c := complex(HBar*z.mat.VF*z.mat.KNorm, 0)
	w := complex(z.warp(), 0)
	return maths.NewDenseMatrixFromRows([][]complex128{
		{0, -1i * c, 0, 1i * w * c},
		{1i * c, 0, 0, 0},
		{0, 0, 0, -1i * c},
		{-1i * w * c, 0, 1i * c, 0},
	})
}

// Bulk 体哈密顿量（gap 单位 meV）
func (z *Zigzag) Bulk(gap, kx, ky float64) maths.Matrix[complex128] {
	d := complex(gap*1e-3*Q/2, 0)
	pi := complex(HBar*z.mat.VF*z.mat.KNorm, 0) * complex(kx, ky)
	piC := complex(real(pi), -imag(pi))
	w := complex(z.warp(), 0)
	r1 := complex(z.mat.R1, 0)
	return maths.NewDenseMatrixFromRows([][]complex128{
		{d, piC, 0, w * pi},
		{pi, d, r1, 0},
		{0, r1, -d, piC},
		{w * piC, 0, pi, -d},
	})
}

func init() {
	RegisterFamily("Zigzag", NewZigzag)
}
