package report

import (
	"os"
	"path/filepath"
	"strconv"

	"twodct/band"
)

// Writer 输出目录 <Root>/<job>V=<bias>/{PTR,band}/
type Writer struct {
	Root   string
	Charts bool // 额外输出 HTML 曲线
	Plots  bool // 额外输出 PNG 曲线
}

// JobDir 作业输出目录
func (w *Writer) JobDir(job string, bias float64) string {
	return filepath.Join(w.Root, job+"V="+strconv.FormatFloat(bias, 'g', -1, 64))
}

// BaseName 单个 kx 的文件名前缀
func BaseName(job string, kx float64) string {
	return job + "_kx=" + strconv.FormatFloat(kx, 'g', -1, 64)
}

func writeFile(path string, render func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SavePTR 写出 PTR 目录下的 CSV（以及可选的 PNG、HTML）
func (w *Writer) SavePTR(rec *Record, bias float64) (string, error) {
	dir := filepath.Join(w.JobDir(rec.Job, bias), "PTR")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	base := filepath.Join(dir, BaseName(rec.Job, rec.Kx))
	if err := writeFile(base+".csv", func(f *os.File) error { return rec.WriteCSV(f) }); err != nil {
		return "", err
	}
	if w.Plots {
		if err := rec.SavePTR(base + ".png"); err != nil {
			return "", err
		}
	}
	if w.Charts {
		c := &Charts{Record: rec}
		if err := writeFile(base+".html", func(f *os.File) error { return c.Render(f) }); err != nil {
			return "", err
		}
	}
	return base + ".csv", nil
}

// SaveBands 写出每层能带 CSV：band/<job>_kx=<kx>_z<layer>.csv
func (w *Writer) SaveBands(job string, bias float64, energies []float64, data *band.Data) error {
	dir := filepath.Join(w.JobDir(job, bias), "band")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for l := 0; l < data.NumLayers(); l++ {
		name := BaseName(job, data.Kx) + "_z" + strconv.Itoa(l) + ".csv"
		err := writeFile(filepath.Join(dir, name), func(f *os.File) error {
			return WriteBandCSV(f, energies, data, l)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
