package expr

import (
	"github.com/born-ml/lazy/internal/parallel"
	"github.com/born-ml/lazy/internal/tensor"
)

// BiasAdd adds the vector bias to every row of matrix.
// The bias length must equal the matrix column count.
func BiasAdd[T tensor.Numeric](matrix, bias Expr[T]) *Smart[T] {
	if matrix.Rank() != 2 {
		panicUnsupportedRank("bias_add: rank %d operand %s, want a matrix", matrix.Rank(), matrix.Shape())
	}
	rows, cols := matrix.Rows(), matrix.Columns()
	if bias.Rank() != 1 || bias.Size() != cols {
		panicShapeMismatch("bias_add: bias %s does not match the %d columns of matrix %s",
			bias.Shape(), cols, matrix.Shape())
	}

	cfg := DefaultConfig()
	m := toData(cfg, matrix)
	b := toData(cfg, bias)
	return newSmart(KindBiasAdd, tensor.Shape{rows, cols}, func(cache []T) {
		parallel.For(rows, func(r int) {
			out := cache[r*cols : (r+1)*cols]
			for c, v := range m[r*cols : (r+1)*cols] {
				out[c] = v + b[c]
			}
		}, parallel.DefaultConfig())
	})
}
