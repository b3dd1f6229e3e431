package maths

import (
	"math/cmplx"
	"math/rand"
	"testing"
)

// vectorOf 以给定分量构造向量
func vectorOf[T Number](data []T) Vector[T] {
	v := NewDenseVector[T](len(data))
	for i, x := range data {
		v.Set(i, x)
	}
	return v
}

// TestDenseVectorOperations 函数测试密集向量 (denseVector) 的基本操作，
// 包括创建、设置/获取元素、点积与最大模长。
func TestDenseVectorOperations(t *testing.T) {
	v1 := vectorOf([]float64{1, 2, 3})

	if v1.Length() != 3 {
		t.Errorf("Expected length 3, got %d", v1.Length())
	}
	if v1.Get(1) != 2 {
		t.Errorf("Expected Get(1) to be 2, got %f", v1.Get(1))
	}

	v2 := vectorOf([]float64{4, 5, 6})

	dot := v1.DotProduct(v2)
	expectedDot := 1.0*4.0 + 2.0*5.0 + 3.0*6.0
	if dot != expectedDot {
		t.Errorf("Expected dot product %f, got %f", expectedDot, dot)
	}

	v1.Set(2, -18)
	if v1.MaxAbs() != 18 {
		t.Errorf("Expected MaxAbs 18, got %f", v1.MaxAbs())
	}
}

// TestComplexDotNoConjugate 点积不取共轭，Conj 显式共轭
func TestComplexDotNoConjugate(t *testing.T) {
	v := vectorOf([]complex128{1i, 2})
	if got := v.DotProduct(v); got != 3 {
		t.Errorf("Expected 1i*1i+4 = 3, got %v", got)
	}
	if got := Conj(v).DotProduct(v); got != 5 {
		t.Errorf("Expected |v|^2 = 5, got %v", got)
	}
	if cmplx.Abs(UnitVector[complex128](3, 2).Get(2)-1) != 0 {
		t.Errorf("UnitVector component incorrect")
	}
}

// BenchmarkDenseVectorSet 测试密集向量 Set 操作的性能。
func BenchmarkDenseVectorSet(b *testing.B) {
	size := 1000
	v := NewDenseVector[float64](size)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v.Set(i%size, rand.Float64())
	}
}
