// Package fermi 费米占据权重：以漂移后的体哈密顿量第三低能级作为参考能量。
package fermi

import (
	"fmt"
	"math"

	"twodct/material"
	"twodct/types"
)

// refBand 参考能级在升序本征值中的位置
const refBand = 2

// Evaluator 费米分布求值器
type Evaluator struct {
	Ham   material.Hamiltonian
	Temp  float64 // 温度 (K)
	Ef    float64 // 费米能 (meV)
	DkAmp float64 // 漂移波矢幅度
	DkAng float64 // 漂移方向 (度)
}

// Drift 漂移波矢分量 (δkx, δky)
func (e *Evaluator) Drift() (float64, float64) {
	rad := e.DkAng * math.Pi / 180
	return e.DkAmp * math.Cos(rad), e.DkAmp * math.Sin(rad)
}

// Reference 漂移后 (kx-δkx, ky-δky) 处体哈密顿量的第三低本征值 (J)
func (e *Evaluator) Reference(gap, kx, ky float64) (float64, error) {
	dkx, dky := e.Drift()
	energies, err := material.BandEnergies(e.Ham.Bulk(gap, kx-dkx, ky-dky))
	if err != nil {
		return 0, err
	}
	if len(energies) <= refBand {
		return 0, fmt.Errorf("fermi: %d bands, need more than %d", len(energies), refBand)
	}
	return energies[refBand], nil
}

// Weight 占据权重 f ∈ [0,1]（gap、v 单位 meV）
func (e *Evaluator) Weight(gap, v, kx, ky float64) (float64, error) {
	ref, err := e.Reference(gap, kx, ky)
	if err != nil {
		return 0, err
	}
	return Occupation(ref, e.Ef, v, e.Temp), nil
}

// Occupation 参考能量 eRef (J) 相对 (ef+v) meV 的占据。
// 温度不高于阈值时取零温阶跃。
func Occupation(eRef, ef, v, temp float64) float64 {
	mu := (ef + v) * 1e-3 * material.Q
	if temp > types.FermiStepTemperature {
		return 1 / (1 + math.Exp((eRef-mu)/(material.KB*temp)))
	}
	if eRef <= mu {
		return 1
	}
	return 0
}
