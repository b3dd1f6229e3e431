package maths

import "fmt"

// denseVector 稠密向量实现
type denseVector[T Number] struct {
	data []T
}

// NewDenseVector 创建新的稠密向量
func NewDenseVector[T Number](length int) Vector[T] {
	return &denseVector[T]{data: make([]T, length)}
}

// UnitVector 创建第 k 个分量为 1 的单位向量
func UnitVector[T Number](n, k int) Vector[T] {
	v := NewDenseVector[T](n)
	v.Set(k, 1)
	return v
}

// Length 向量长度
func (v *denseVector[T]) Length() int { return len(v.data) }

// Get 获取元素
func (v *denseVector[T]) Get(index int) T { return v.data[index] }

// Set 设置元素
func (v *denseVector[T]) Set(index int, value T) { v.data[index] = value }

// Zero 清零
func (v *denseVector[T]) Zero() {
	clear(v.data)
}

// DotProduct 点积（不取共轭，与 numpy.dot 一致）
func (v *denseVector[T]) DotProduct(other Vector[T]) T {
	if other.Length() != v.Length() {
		panic(fmt.Sprintf("vector dimension mismatch: %d vs %d", v.Length(), other.Length()))
	}
	var sum T
	for i, x := range v.data {
		sum += x * other.Get(i)
	}
	return sum
}

// MaxAbs 最大模长
func (v *denseVector[T]) MaxAbs() float64 {
	maxVal := 0.0
	for _, x := range v.data {
		if a := abs(x); a > maxVal {
			maxVal = a
		}
	}
	return maxVal
}
