package types

// Valley 谷索引（+K 在前，-K 在后，按块堆叠）
type Valley int

// 谷常量定义
const (
	ValleyKp Valley = iota // +K 谷
	ValleyKn               // -K 谷
)

// Valleys 全部谷（堆叠顺序）
var Valleys = [...]Valley{ValleyKp, ValleyKn}

// NumValleys 谷数量
const NumValleys = len(Valleys)

// String 返回谷名称
func (v Valley) String() string {
	switch v {
	case ValleyKp:
		return "+K"
	case ValleyKn:
		return "-K"
	}
	return "Unknown"
}

// Offset 谷块在堆叠向量中的起始索引
func (v Valley) Offset(block int) int {
	return int(v) * block
}
