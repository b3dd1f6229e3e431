package maths

import (
	"fmt"
	"strings"
)

// denseMatrix 稠密矩阵实现（行优先存储全部元素）
type denseMatrix[T Number] struct {
	data       []T // 底层数据（行优先）
	rows, cols int // 行列数
}

// NewDenseMatrix 创建指定维度的空稠密矩阵
func NewDenseMatrix[T Number](rows, cols int) Matrix[T] {
	if rows < 0 || cols < 0 {
		panic("invalid matrix dimensions: cannot be negative")
	}
	return &denseMatrix[T]{
		data: make([]T, rows*cols),
		rows: rows,
		cols: cols,
	}
}

// NewDenseMatrixFromRows 从二维切片构建稠密矩阵（复制数据）
func NewDenseMatrixFromRows[T Number](dense [][]T) Matrix[T] {
	rows := len(dense)
	cols := 0
	if rows > 0 {
		cols = len(dense[0])
	}
	m := NewDenseMatrix[T](rows, cols)
	for i, row := range dense {
		if len(row) != cols {
			panic(fmt.Sprintf("ragged rows: row %d has %d cols, want %d", i, len(row), cols))
		}
		for j, v := range row {
			m.Set(i, j, v)
		}
	}
	return m
}

// Identity 单位矩阵
func Identity[T Number](n int) Matrix[T] {
	m := NewDenseMatrix[T](n, n)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// Rows 返回矩阵行数
func (m *denseMatrix[T]) Rows() int {
	return m.rows
}

// Cols 返回矩阵列数
func (m *denseMatrix[T]) Cols() int {
	return m.cols
}

// Zero 清零
func (m *denseMatrix[T]) Zero() {
	clear(m.data)
}

// IsSquare 判断是否为方阵
func (m *denseMatrix[T]) IsSquare() bool {
	return m.rows == m.cols
}

func (m *denseMatrix[T]) index(row, col int) int {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("matrix index out of range: (%d, %d) with size %dx%d", row, col, m.rows, m.cols))
	}
	return row*m.cols + col
}

// Get 获取指定行列元素值（越界panic）
func (m *denseMatrix[T]) Get(row, col int) T {
	return m.data[m.index(row, col)]
}

// Set 设置指定行列元素值（越界panic）
func (m *denseMatrix[T]) Set(row, col int, value T) {
	m.data[m.index(row, col)] = value
}

// Increment 增量更新矩阵元素
func (m *denseMatrix[T]) Increment(row, col int, value T) {
	m.data[m.index(row, col)] += value
}

// Copy 复制自身数据到目标矩阵
func (m *denseMatrix[T]) Copy(a Matrix[T]) {
	if a.Rows() != m.rows || a.Cols() != m.cols {
		panic(fmt.Sprintf("dimension mismatch: source %dx%d, target %dx%d", m.rows, m.cols, a.Rows(), a.Cols()))
	}
	switch target := a.(type) {
	case *denseMatrix[T]:
		// 同类型直接复制（高效）
		copy(target.data, m.data)
	default:
		for i := 0; i < m.rows; i++ {
			for j := 0; j < m.cols; j++ {
				target.Set(i, j, m.Get(i, j))
			}
		}
	}
}

// SwapRows 交换两行
func (m *denseMatrix[T]) SwapRows(row1, row2 int) {
	if row1 == row2 {
		return
	}
	data := m.data
	r1, r2 := m.index(row1, 0), m.index(row2, 0)
	for j := 0; j < m.cols; j++ {
		data[r1+j], data[r2+j] = data[r2+j], data[r1+j]
	}
}

// MatrixVectorMultiply 矩阵向量乘法（A*x，返回新向量）
func (m *denseMatrix[T]) MatrixVectorMultiply(x Vector[T]) Vector[T] {
	if x.Length() != m.cols {
		panic(fmt.Sprintf("vector dimension mismatch: x length=%d, matrix cols=%d", x.Length(), m.cols))
	}
	result := NewDenseVector[T](m.rows)
	for i := 0; i < m.rows; i++ {
		var sum T
		for j := 0; j < m.cols; j++ {
			sum += m.Get(i, j) * x.Get(j)
		}
		result.Set(i, sum)
	}
	return result
}

// MaxAbs 最大模长
func (m *denseMatrix[T]) MaxAbs() float64 {
	maxVal := 0.0
	for _, x := range m.data {
		if a := abs(x); a > maxVal {
			maxVal = a
		}
	}
	return maxVal
}

// String 格式化输出矩阵（每行一行）
func (m *denseMatrix[T]) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%v", m.Get(i, j))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
