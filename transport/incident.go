package transport

import (
	"math"

	"twodct/types"
)

// IncidentMask 入射通道标记（0/1），按 (+K, -K) 堆叠
type IncidentMask []float64

// ClassifyIncident 奇数位置且虚部近零的模式标记为传播通道
func ClassifyIncident(vals []complex128) IncidentMask {
	mask := make(IncidentMask, len(vals))
	for i, v := range vals {
		if i%2 == 1 && math.Abs(imag(v)) <= types.IncidentTolerance {
			mask[i] = 1
		}
	}
	return mask
}

// Valley 谷块切片
func (m IncidentMask) Valley(v types.Valley, block int) IncidentMask {
	off := v.Offset(block)
	return m[off : off+block]
}

// Channels 被标记的块内索引
func (m IncidentMask) Channels() []int {
	var idx []int
	for i, s := range m {
		if s != 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

// WellDefined 谷内恰有两个传播通道
func (m IncidentMask) WellDefined(v types.Valley, block int) bool {
	return len(m.Valley(v, block).Channels()) == 2
}
