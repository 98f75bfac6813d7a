package expr

import (
	"github.com/born-ml/lazy/internal/gemm"
	"github.com/born-ml/lazy/internal/tensor"
)

// Outer computes the batched outer product of lhs [b, m] and rhs [b, n]:
// the [m, n] sum over the batch of the outer products of matching rows.
// Vectors [m] and [n] are a batch of one.
func Outer[T tensor.Numeric](lhs, rhs Expr[T]) *Smart[T] {
	if lhs.Rank() != rhs.Rank() || lhs.Rank() < 1 || lhs.Rank() > 2 {
		panicShapeMismatch("outer: operands %s and %s must both be vectors or both matrices",
			lhs.Shape(), rhs.Shape())
	}
	batch, m, n := 1, lhs.Size(), rhs.Size()
	if lhs.Rank() == 2 {
		if lhs.Rows() != rhs.Rows() {
			panicShapeMismatch("outer: batch of lhs %s does not match batch of rhs %s", lhs.Shape(), rhs.Shape())
		}
		batch, m, n = lhs.Rows(), lhs.Columns(), rhs.Columns()
	}

	cfg := DefaultConfig()
	a := toData(cfg, lhs)
	b := toData(cfg, rhs)
	var kernel gemm.Kernel
	s := newSmart(KindOuter, tensor.Shape{m, n}, func(cache []T) {
		// lhs^T [m, batch] x rhs [batch, n].
		lhsT := make([]T, m*batch)
		transposeInto(lhsT, a, batch, m)
		kernel = gemm.Multiply(cfg.Pool, cache, lhsT, b, m, batch, n)
	})
	s.kernel = kernel
	return s
}
