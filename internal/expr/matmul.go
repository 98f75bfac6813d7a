package expr

import (
	"github.com/born-ml/lazy/internal/gemm"
	"github.com/born-ml/lazy/internal/tensor"
)

// MatMul multiplies lhs by rhs on the process-wide pool.
//
//	matrix [m, n] x matrix [n, k] -> matrix [m, k]
//	matrix [m, n] x vector [n]    -> vector [m]
//	vector [n]    x matrix [n, k] -> vector [k]
func MatMul[T tensor.Numeric](lhs, rhs Expr[T]) *Smart[T] {
	return MatMulWith(DefaultConfig(), lhs, rhs)
}

// MatMulWith is MatMul with an explicit configuration; the large kernel
// splits its output columns across cfg.Pool.
func MatMulWith[T tensor.Numeric](cfg Config, lhs, rhs Expr[T]) *Smart[T] {
	var m, n, k int
	var shape tensor.Shape
	switch {
	case lhs.Rank() == 2 && rhs.Rank() == 2:
		if lhs.Columns() != rhs.Rows() {
			panicShapeMismatch("matmul: lhs %s columns do not match rhs %s rows", lhs.Shape(), rhs.Shape())
		}
		m, n, k = lhs.Rows(), lhs.Columns(), rhs.Columns()
		shape = tensor.Shape{m, k}
	case lhs.Rank() == 2 && rhs.Rank() == 1:
		if lhs.Columns() != rhs.Rows() {
			panicShapeMismatch("matmul: lhs %s columns do not match rhs %s length", lhs.Shape(), rhs.Shape())
		}
		m, n, k = lhs.Rows(), lhs.Columns(), 1
		shape = tensor.Shape{m}
	case lhs.Rank() == 1 && rhs.Rank() == 2:
		if lhs.Rows() != rhs.Rows() {
			panicShapeMismatch("matmul: lhs %s length does not match rhs %s rows", lhs.Shape(), rhs.Shape())
		}
		m, n, k = 1, lhs.Rows(), rhs.Columns()
		shape = tensor.Shape{k}
	default:
		panicUnsupportedRank("matmul: %s x %s, want matrix x matrix, matrix x vector or vector x matrix",
			lhs.Shape(), rhs.Shape())
	}

	a := toData(cfg, lhs)
	b := toData(cfg, rhs)
	var kernel gemm.Kernel
	s := newSmart(KindMatMul, shape, func(cache []T) {
		kernel = gemm.Multiply(cfg.Pool, cache, a, b, m, n, k)
	})
	s.kernel = kernel
	return s
}
