package maths

import (
	"testing"
)

// TestMulIdentity 乘单位矩阵结果不变
func TestMulIdentity(t *testing.T) {
	a := NewDenseMatrixFromRows([][]complex128{
		{1 + 1i, 2},
		{0, 3 - 2i},
	})
	c, err := Mul(a, Identity[complex128](2))
	if err != nil {
		t.Fatalf("Mul failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if c.Get(i, j) != a.Get(i, j) {
				t.Errorf("希望 (%d,%d)=%v, 得到 %v", i, j, a.Get(i, j), c.Get(i, j))
			}
		}
	}
	if _, err := Mul(a, NewDenseMatrix[complex128](3, 1)); err == nil {
		t.Errorf("Mul 2x2 by 3x1 should fail")
	}
}

// TestCopyAndZero 复制后清零不影响副本
func TestCopyAndZero(t *testing.T) {
	m := NewDenseMatrixFromRows([][]complex128{{1, 2i}, {3, 4}})
	c := Clone(m)
	m.Zero()
	if c.Get(0, 1) != 2i || c.Get(1, 0) != 3 {
		t.Errorf("Clone 应独立于原始矩阵:\n%s", c.String())
	}
	if m.MaxAbs() != 0 {
		t.Errorf("Zero 后希望全零, 得到\n%s", m.String())
	}
}

// TestSwapRows 交换行
func TestSwapRows(t *testing.T) {
	m := NewDenseMatrixFromRows([][]float64{{1, 2}, {3, 4}})
	m.SwapRows(0, 1)
	if m.Get(0, 0) != 3 || m.Get(1, 1) != 2 {
		t.Errorf("SwapRows 结果错误:\n%s", m.String())
	}
}

// TestLeftDivide A*(A^-1 B) = B
func TestLeftDivide(t *testing.T) {
	a := NewDenseMatrixFromRows([][]complex128{
		{2, 1i},
		{-1i, 3},
	})
	b := NewDenseMatrixFromRows([][]complex128{
		{1, 2},
		{1i, 0},
	})
	x, err := LeftDivide(a, b)
	if err != nil {
		t.Fatalf("LeftDivide failed: %v", err)
	}
	p, _ := Mul(a, x)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if abs(p.Get(i, j)-b.Get(i, j)) > 1e-12 {
				t.Errorf("(A*X)[%d][%d] = %v, 希望 %v", i, j, p.Get(i, j), b.Get(i, j))
			}
		}
	}
	if _, err := LeftDivide(NewDenseMatrix[complex128](2, 2), b); err == nil {
		t.Errorf("zero matrix should be singular")
	}
}
