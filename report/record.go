// Package report 输出每个 kx 的透射/反射/极化结果（CSV、JSON、PNG、HTML）
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"twodct/band"
	"twodct/sweep"
	"twodct/transport"
	"twodct/types"
)

// Record 单个作业、单个 kx 的能量扫描结果
type Record struct {
	Job    string                      `json:"job"`
	Kx     float64                     `json:"kx"`
	Energy []float64                   `json:"energy"`
	T      [types.NumValleys][]float64 `json:"-"` // 求解失败为 NaN
	R      [types.NumValleys][]float64 `json:"-"`
	Status [types.NumValleys][]string  `json:"status"`
	P      []float64                   `json:"-"` // 未定义为 NaN
	Errors map[int]string              `json:"errors,omitempty"`
}

// NewRecord 由扫描结果构造记录，逐能量计算极化 (T+K - T-K)/(T+K + T-K)。
// 求解失败的谷 T、R 记为 NaN，该能量点的极化也记为 NaN。
func NewRecord(job string, kx float64, results []transport.PointResult) *Record {
	n := len(results)
	rec := &Record{Job: job, Kx: kx, Energy: make([]float64, n), P: make([]float64, n)}
	for _, v := range types.Valleys {
		rec.T[v] = make([]float64, n)
		rec.R[v] = make([]float64, n)
		rec.Status[v] = make([]string, n)
	}
	for i, res := range results {
		rec.Energy[i] = res.Energy
		failed := false
		for _, v := range types.Valleys {
			rec.T[v][i], rec.R[v][i] = res.T[v], res.R[v]
			if res.Status[v] == transport.StatusFailed {
				rec.T[v][i], rec.R[v][i] = math.NaN(), math.NaN()
				failed = true
			}
			rec.Status[v][i] = res.Status[v].String()
		}
		rec.P[i] = math.NaN()
		if !failed {
			rec.P[i], _ = sweep.Polarization(res.T[types.ValleyKp], res.T[types.ValleyKn])
		}
		if res.Err != nil {
			if rec.Errors == nil {
				rec.Errors = map[int]string{}
			}
			rec.Errors[i] = res.Err.Error()
		}
	}
	return rec
}

// nullable NaN 输出为 null
func nullable(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		if !math.IsNaN(values[i]) {
			out[i] = &values[i]
		}
	}
	return out
}

// Render JSON 格式输出（失败或未定义的值为 null）
func (rec *Record) Render(w io.Writer) error {
	var t, r [types.NumValleys][]*float64
	for _, v := range types.Valleys {
		t[v], r[v] = nullable(rec.T[v]), nullable(rec.R[v])
	}
	return json.NewEncoder(w).Encode(struct {
		*Record
		T [types.NumValleys][]*float64 `json:"t"`
		R [types.NumValleys][]*float64 `json:"r"`
		P []*float64                   `json:"p"`
	}{rec, t, r, nullable(rec.P)})
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV 列 E, T+K, T-K, R+K, R-K, P；P 未定义时留空
func (rec *Record) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{"E"}
	for _, prefix := range []string{"T", "R"} {
		for _, v := range types.Valleys {
			header = append(header, prefix+v.String())
		}
	}
	header = append(header, "P")
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, e := range rec.Energy {
		row := []string{formatFloat(e)}
		for _, col := range [][types.NumValleys][]float64{rec.T, rec.R} {
			for _, v := range types.Valleys {
				row = append(row, formatFloat(col[v][i]))
			}
		}
		row = append(row, formatFloat(rec.P[i]))
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteBandCSV 单层的能带：E, Re(+K)…, Im(+K)…, Re(-K)…, Im(-K)…
func WriteBandCSV(w io.Writer, energies []float64, data *band.Data, layer int) error {
	if layer < 0 || layer >= data.NumLayers() {
		return fmt.Errorf("band csv: layer %d of %d", layer, data.NumLayers())
	}
	cw := csv.NewWriter(w)
	for e, energy := range energies {
		row := []string{formatFloat(energy)}
		for _, v := range types.Valleys {
			vals := data.At(layer, e, v).Val
			for _, val := range vals {
				row = append(row, formatFloat(real(val)))
			}
			for _, val := range vals {
				row = append(row, formatFloat(imag(val)))
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
