package report

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"twodct/types"
)

// xys 去掉 NaN 点
func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(x))
	for i := range x {
		if math.IsNaN(y[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: x[i], Y: y[i]})
	}
	return pts
}

// PTRPlot T、R、P 随能量变化曲线
func (rec *Record) PTRPlot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s kx=%g", rec.Job, rec.Kx)
	p.X.Label.Text = "E (meV)"
	p.Y.Label.Text = "T, R, P"
	p.Legend.Top = true

	var lines []any
	add := func(name string, y []float64) {
		if pts := xys(rec.Energy, y); len(pts) > 0 {
			lines = append(lines, name, pts)
		}
	}
	for _, v := range types.Valleys {
		add("T"+v.String(), rec.T[v])
	}
	for _, v := range types.Valleys {
		add("R"+v.String(), rec.R[v])
	}
	add("P", rec.P)
	if err := plotutil.AddLines(p, lines...); err != nil {
		return nil, err
	}
	return p, nil
}

// SavePTR 保存为图片（格式由扩展名决定）
func (rec *Record) SavePTR(path string) error {
	p, err := rec.PTRPlot()
	if err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
