package maths

import (
	"fmt"
)

// NewLU 创建稠密矩阵LU分解器（输入矩阵维度n）
// 参数:
//
//	n - 矩阵维度（必须为正整数）
//
// 返回:
//
//	LU接口实例，错误信息
func NewLU[T Number](n int) (LU[T], error) {
	if n < 1 {
		return nil, fmt.Errorf("lu dimension must be positive, got %d: %w", n, ErrDimension)
	}
	return &luDense[T]{
		n:        n,
		L:        NewDenseMatrix[T](n, n),
		U:        NewDenseMatrix[T](n, n),
		Y:        NewDenseVector[T](n),
		P:        make([]int, n),
		pinverse: make([]int, n),
	}, nil
}

// luDense 稠密矩阵LU分解实现（PA = LU，带部分主元）
//
//	P - 置换矩阵（用向量表示）
//	L - 单位下三角矩阵（对角线为1）
//	U - 上三角矩阵
type luDense[T Number] struct {
	n        int       // 矩阵维度（方阵n×n）
	L        Matrix[T] // 下三角矩阵L（L[i][i]=1，严格下三角存储消元因子）
	U        Matrix[T] // 上三角矩阵U（存储消元后上三角元素）
	Y        Vector[T] // 中间变量：存储前向替换结果Ly=Pb
	P        []int     // 置换向量：P[i] = 分解后第i行对应的原始矩阵行索引
	pinverse []int     // 逆置换向量：pinverse[i] = 原始第i行对应的分解后行索引
}

// init 初始化置换向量和L矩阵的对角线
func (lu *luDense[T]) init(matrix Matrix[T]) {
	lu.L.Zero()
	lu.U.Zero()
	matrix.Copy(lu.U) // 将A拷贝到U，后续在U上进行原位消元
	for i := 0; i < lu.n; i++ {
		lu.P[i] = i
		lu.pinverse[i] = i
		lu.L.Set(i, i, 1)
	}
}

// updatePermutation 交换置换向量并同步更新逆置换
func (lu *luDense[T]) updatePermutation(k, maxRow int) {
	lu.P[k], lu.P[maxRow] = lu.P[maxRow], lu.P[k]
	lu.pinverse[lu.P[k]] = k
	lu.pinverse[lu.P[maxRow]] = maxRow
}

// Decompose 执行稠密矩阵LU分解（高斯消元+部分主元）
// 参数:
//
//	matrix - 输入矩阵A（必须为方阵）
//
// 返回:
//
//	错误信息（矩阵奇异返回 ErrSingular，维度不符返回 ErrDimension）
//
// 奇异判定使用相对阈值：主元模长 <= Epsilon * max|A|。
func (lu *luDense[T]) Decompose(matrix Matrix[T]) error {
	if !matrix.IsSquare() || matrix.Rows() != lu.n {
		return fmt.Errorf("lu dense decompose: %dx%d input for dimension %d: %w",
			matrix.Rows(), matrix.Cols(), lu.n, ErrDimension)
	}
	lu.init(matrix)
	scale := matrix.MaxAbs()
	if scale == 0 {
		return fmt.Errorf("lu dense decompose: zero matrix: %w", ErrSingular)
	}
	threshold := Epsilon * scale

	for k := 0; k < lu.n; k++ {
		// 部分主元选择
		maxRow := k
		maxAbsVal := abs(lu.U.Get(k, k))
		for i := k + 1; i < lu.n; i++ {
			if v := abs(lu.U.Get(i, k)); v > maxAbsVal {
				maxAbsVal = v
				maxRow = i
			}
		}
		if maxAbsVal <= threshold {
			return fmt.Errorf("lu dense decompose: pivot %d (|%g| <= %g): %w", k, maxAbsVal, threshold, ErrSingular)
		}

		// 行交换（L 只交换已填充的前k列）
		if maxRow != k {
			lu.U.SwapRows(k, maxRow)
			for j := 0; j < k; j++ {
				val1 := lu.L.Get(k, j)
				val2 := lu.L.Get(maxRow, j)
				lu.L.Set(k, j, val2)
				lu.L.Set(maxRow, j, val1)
			}
			lu.updatePermutation(k, maxRow)
		}

		// 高斯消元
		pivotVal := lu.U.Get(k, k)
		for i := k + 1; i < lu.n; i++ {
			factor := lu.U.Get(i, k) / pivotVal
			lu.L.Set(i, k, factor)
			lu.U.Set(i, k, 0)
			for j := k + 1; j < lu.n; j++ {
				lu.U.Set(i, j, lu.U.Get(i, j)-factor*lu.U.Get(k, j))
			}
		}
	}
	return nil
}

// SolveReuse 利用分解结果求解Ax=b（重用预分配向量）
//  1. 前向替换：求解Ly = Pb
//  2. 后向替换：求解Ux = y
func (lu *luDense[T]) SolveReuse(b, x Vector[T]) error {
	if b.Length() != lu.n || x.Length() != lu.n {
		return fmt.Errorf("lu dense solve: vector length %d/%d for dimension %d: %w",
			b.Length(), x.Length(), lu.n, ErrDimension)
	}

	lu.Y.Zero()
	for i := 0; i < lu.n; i++ {
		sum := b.Get(lu.P[i])
		for j := 0; j < i; j++ {
			sum -= lu.L.Get(i, j) * lu.Y.Get(j)
		}
		lu.Y.Set(i, sum)
	}

	x.Zero()
	for i := lu.n - 1; i >= 0; i-- {
		sum := lu.Y.Get(i)
		for j := i + 1; j < lu.n; j++ {
			sum -= lu.U.Get(i, j) * x.Get(j)
		}
		diagVal := lu.U.Get(i, i)
		if diagVal == 0 {
			return fmt.Errorf("lu dense solve: zero diagonal at %d: %w", i, ErrSingular)
		}
		x.Set(i, sum/diagVal)
	}
	return nil
}
