package material

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
)

// 物理常量（SI）
const (
	Q    = 1.602176634e-19 // 元电荷 (C)
	HBar = 1.054571817e-34 // 约化普朗克常量 (J·s)
	KB   = 1.380649e-23    // 玻尔兹曼常量 (J/K)
)

// Material 材料参数
type Material struct {
	Name  string  // 材料名称
	Acc   float64 // 碳-碳键长 (m)
	R0    float64 // 层内最近邻跃迁 γ0 (J)
	R1    float64 // 层间耦合 γ1 (J)
	R3    float64 // 三角翘曲耦合 γ3 (J)
	VF    float64 // 费米速度 (m/s)
	VF3   float64 // 三角翘曲速度 (m/s)
	KNorm float64 // 波矢归一化系数 (1/m)
}

// NewHoneycomb 由键长与跃迁能（eV）构造蜂窝晶格材料
func NewHoneycomb(name string, acc, r0eV, r1eV, r3eV float64) Material {
	r0, r1, r3 := r0eV*Q, r1eV*Q, r3eV*Q
	return Material{
		Name:  name,
		Acc:   acc,
		R0:    r0,
		R1:    r1,
		R3:    r3,
		VF:    3 * acc * r0 / (2 * HBar),
		VF3:   3 * acc * r3 / (2 * HBar),
		KNorm: 4 * math.Pi / (3 * math.Sqrt(3) * acc),
	}
}

// WithoutWarp 关闭三角翘曲（r3 = vF3 = 0）
func (m Material) WithoutWarp() Material {
	m.R3 = 0
	m.VF3 = 0
	return m
}

var (
	mu        sync.RWMutex
	materials = map[string]Material{}
)

// Register 注册材料（名称不区分大小写）
func Register(m Material) {
	mu.Lock()
	defer mu.Unlock()
	materials[strings.ToLower(m.Name)] = m
}

// Lookup 通过名称获取材料
func Lookup(name string) (Material, error) {
	mu.RLock()
	defer mu.RUnlock()
	m, ok := materials[strings.ToLower(name)]
	if !ok {
		return Material{}, fmt.Errorf("material %q (known: %s): %w", name, strings.Join(namesLocked(), ", "), ErrUnknownMaterial)
	}
	return m, nil
}

// Names 已注册材料名称（排序）
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(materials))
	for n := range materials {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(NewHoneycomb("Graphene", 1.42e-10, 2.7, 0.39, 0.315))
}
