package maths

import (
	"fmt"
	"math/cmplx"
)

// Clone 深拷贝为稠密矩阵
func Clone[T Number](a Matrix[T]) Matrix[T] {
	c := NewDenseMatrix[T](a.Rows(), a.Cols())
	a.Copy(c)
	return c
}

// Mul 矩阵乘法 C = A*B（返回新矩阵）
func Mul[T Number](a, b Matrix[T]) (Matrix[T], error) {
	if a.Cols() != b.Rows() {
		return nil, fmt.Errorf("mul %dx%d by %dx%d: %w", a.Rows(), a.Cols(), b.Rows(), b.Cols(), ErrDimension)
	}
	c := NewDenseMatrix[T](a.Rows(), b.Cols())
	for i := 0; i < a.Rows(); i++ {
		for k := 0; k < a.Cols(); k++ {
			aik := a.Get(i, k)
			if aik == 0 {
				continue
			}
			for j := 0; j < b.Cols(); j++ {
				c.Increment(i, j, aik*b.Get(k, j))
			}
		}
	}
	return c, nil
}

// Column 取矩阵第 j 列（副本）
func Column[T Number](a Matrix[T], j int) Vector[T] {
	v := NewDenseVector[T](a.Rows())
	for i := 0; i < a.Rows(); i++ {
		v.Set(i, a.Get(i, j))
	}
	return v
}

// Conj 复向量逐元素共轭（返回新向量）
func Conj(v Vector[complex128]) Vector[complex128] {
	c := NewDenseVector[complex128](v.Length())
	for i := 0; i < v.Length(); i++ {
		c.Set(i, cmplx.Conj(v.Get(i)))
	}
	return c
}

// LeftDivide 求 A⁻¹B（A 分解一次，逐列求解 A x = b_j）
func LeftDivide[T Number](a, b Matrix[T]) (Matrix[T], error) {
	if a.Rows() != b.Rows() {
		return nil, fmt.Errorf("left divide %dx%d by %dx%d: %w", b.Rows(), b.Cols(), a.Rows(), a.Cols(), ErrDimension)
	}
	n := a.Rows()
	lu, err := NewLU[T](n)
	if err != nil {
		return nil, err
	}
	if err := lu.Decompose(a); err != nil {
		return nil, err
	}
	out := NewDenseMatrix[T](n, b.Cols())
	x := NewDenseVector[T](n)
	for j := 0; j < b.Cols(); j++ {
		if err := lu.SolveReuse(Column(b, j), x); err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			out.Set(i, j, x.Get(i))
		}
	}
	return out, nil
}
