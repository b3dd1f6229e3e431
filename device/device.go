// Package device 器件网格：扫描网格与分层势能剖面
package device

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// 错误定义
var (
	ErrGrid     = errors.New("device: invalid sweep grid")
	ErrEmptyJob = errors.New("device: job has no regions")
	ErrMesh     = errors.New("device: invalid region mesh")
)

// Arange [start, stop) 步长 step 的等差序列
func Arange(start, stop, step float64) ([]float64, error) {
	if step <= 0 || math.IsNaN(step) {
		return nil, fmt.Errorf("step %g: %w", step, ErrGrid)
	}
	n := int(math.Ceil((stop - start) / step))
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out, nil
}

// KxGrid 纵向动量网格；step 为 0 时只取 start
func KxGrid(start, stop, step float64) ([]float64, error) {
	if step == 0 {
		return []float64{start}, nil
	}
	return Arange(start, stop, step)
}

// Region 作业文件中的区域
type Region struct {
	Gap    float64 // 带隙 (meV)
	Length float64 // 长度 (nm)
	Mesh   int     // 细分层数
}

// Job 作业：自入射区到出射区的区域序列
type Job struct {
	Name    string
	Regions []Region
}

// Layer 网格化后的单层
type Layer struct {
	Gap    float64 // 带隙 (meV)
	Length float64 // 长度 (nm)
	V      float64 // 电势 (meV)
}

// Device 网格化的器件
type Device struct {
	Name   string
	Layers []Layer
}

// Build 将每个区域细分为 Mesh 层并叠加电势降 v。
// leads 为真时首尾区域为无电势降的引线，内部每层降 v/(内部层数+1)；
// 否则每层降 v/(总层数+1)。电势为逐层累加。
func Build(job Job, v float64, leads bool) (*Device, error) {
	if len(job.Regions) == 0 {
		return nil, fmt.Errorf("job %q: %w", job.Name, ErrEmptyJob)
	}
	if leads && len(job.Regions) < 2 {
		return nil, fmt.Errorf("job %q: leads need at least two regions: %w", job.Name, ErrMesh)
	}
	d := &Device{Name: job.Name}
	for i, r := range job.Regions {
		if r.Mesh < 1 {
			return nil, fmt.Errorf("job %q region %d: mesh %d: %w", job.Name, i, r.Mesh, ErrMesh)
		}
		for k := 0; k < r.Mesh; k++ {
			d.Layers = append(d.Layers, Layer{Gap: r.Gap, Length: r.Length / float64(r.Mesh)})
		}
	}

	drops := make([]float64, len(d.Layers))
	if leads {
		in, out := job.Regions[0].Mesh, job.Regions[len(job.Regions)-1].Mesh
		inner := len(d.Layers) - in - out
		for i := in; i < in+inner; i++ {
			drops[i] = v / float64(inner+1)
		}
	} else {
		for i := range drops {
			drops[i] = v / float64(len(d.Layers)+1)
		}
	}
	pot := floats.CumSum(make([]float64, len(drops)), drops)
	for i := range d.Layers {
		d.Layers[i].V = pot[i]
	}
	return d, nil
}

// Lengths 各层长度 (nm)
func (d *Device) Lengths() []float64 {
	out := make([]float64, len(d.Layers))
	for i, l := range d.Layers {
		out[i] = l.Length
	}
	return out
}

// Incident 入射层
func (d *Device) Incident() Layer { return d.Layers[0] }

// TotalLength 器件总长 (nm)
func (d *Device) TotalLength() float64 { return floats.Sum(d.Lengths()) }
