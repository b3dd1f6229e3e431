package report

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	ttypes "twodct/types"
)

// Charts 透射/反射/极化曲线页面
type Charts struct {
	*Record
}

func newLine(title, subtitle string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:        "E (meV)",
			SplitNumber: 20,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
	)
	return line
}

// lineData NaN 记为缺失点
func lineData(values []float64) []opts.LineData {
	items := make([]opts.LineData, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			items[i].Value = "-"
			continue
		}
		items[i].Value = v
	}
	return items
}

// Render 输出 HTML 页面
func (c *Charts) Render(w io.Writer) error {
	sub := fmt.Sprintf("%s @ kx=%g", c.Job, c.Kx)
	lineT := newLine("透射", sub)
	lineR := newLine("反射", sub)
	lineP := newLine("谷极化", sub)
	for _, l := range []*charts.Line{lineT, lineR, lineP} {
		l.SetXAxis(c.Energy)
	}
	for _, v := range ttypes.Valleys {
		lineT.AddSeries("T"+v.String(), lineData(c.T[v]))
		lineR.AddSeries("R"+v.String(), lineData(c.R[v]))
	}
	lineP.AddSeries("P", lineData(c.P))

	page := components.NewPage()
	page.AddCharts(lineT, lineR, lineP)
	return page.Render(w)
}
