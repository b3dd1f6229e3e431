package band

import (
	"context"
	"fmt"
	"io"
	"math/cmplx"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"twodct/maths"
	"twodct/types"
)

// Source 外部能带求解器的模式数据来源
type Source interface {
	Modes(ctx context.Context, job string, kx float64) (*Data, error)
}

// FileSource 从目录读取 <job>_kx=<kx>.yaml（JSON 亦可）
type FileSource struct {
	Dir string
}

// FileName 模式数据文件名
func FileName(job string, kx float64) string {
	return job + "_kx=" + strconv.FormatFloat(kx, 'g', -1, 64) + ".yaml"
}

// Modes 读取并解析模式数据
func (s FileSource) Modes(ctx context.Context, job string, kx float64) (*Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(filepath.Join(s.Dir, FileName(job, kx)))
}

// LoadFile 从文件加载模式数据
func LoadFile(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// complexValue 复数，格式 [re, im] 或实数标量
type complexValue complex128

func (c *complexValue) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		var re float64
		if err := n.Decode(&re); err != nil {
			return err
		}
		*c = complexValue(complex(re, 0))
		return nil
	}
	var pair []float64
	if err := n.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("line %d: complex value needs [re, im], got %d numbers", n.Line, len(pair))
	}
	*c = complexValue(complex(pair[0], pair[1]))
	return nil
}

type modeSetFile struct {
	Val      []complexValue   `yaml:"val"`
	Vec      [][]complexValue `yaml:"vec"`
	VecConj  [][]complexValue `yaml:"vec_conj"`
	Velocity []float64        `yaml:"velocity"`
}

type pointFile struct {
	Kp *modeSetFile `yaml:"+K"`
	Kn *modeSetFile `yaml:"-K"`
}

type dataFile struct {
	Kx     float64       `yaml:"kx"`
	Layers [][]pointFile `yaml:"layers"`
}

// Load 解析模式数据。vec_conj 缺省时取 vec 的逐元素共轭。
func Load(r io.Reader) (*Data, error) {
	var raw dataFile
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode mode data: %w", err)
	}
	d := &Data{Kx: raw.Kx, Layers: make([][]Point, len(raw.Layers))}
	for l, layer := range raw.Layers {
		d.Layers[l] = make([]Point, len(layer))
		for e, p := range layer {
			files := [types.NumValleys]*modeSetFile{types.ValleyKp: p.Kp, types.ValleyKn: p.Kn}
			for _, v := range types.Valleys {
				ms := files[v]
				if ms == nil {
					return nil, fmt.Errorf("layer %d energy %d: missing valley %s: %w", l, e, v, ErrModeShape)
				}
				set, err := ms.modeSet()
				if err != nil {
					return nil, fmt.Errorf("layer %d energy %d valley %s: %w", l, e, v, err)
				}
				d.Layers[l][e][v] = set
			}
		}
	}
	return d, nil
}

func (ms *modeSetFile) modeSet() (*ModeSet, error) {
	set := &ModeSet{
		Val:      make([]complex128, len(ms.Val)),
		Velocity: ms.Velocity,
	}
	for i, v := range ms.Val {
		set.Val[i] = complex128(v)
	}
	var err error
	if set.Vec, err = toMatrix(ms.Vec, false); err != nil {
		return nil, err
	}
	if len(ms.VecConj) == 0 {
		set.VecConj, err = toMatrix(ms.Vec, true)
	} else {
		set.VecConj, err = toMatrix(ms.VecConj, false)
	}
	if err != nil {
		return nil, err
	}
	return set, nil
}

func toMatrix(rows [][]complexValue, conj bool) (maths.Matrix[complex128], error) {
	n := len(rows)
	m := maths.NewDenseMatrix[complex128](n, n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d entries, want %d: %w", i, len(row), n, ErrModeShape)
		}
		for j, v := range row {
			c := complex128(v)
			if conj {
				c = cmplx.Conj(c)
			}
			m.Set(i, j, c)
		}
	}
	return m, nil
}
