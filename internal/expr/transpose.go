package expr

import "github.com/born-ml/lazy/internal/tensor"

// Transpose swaps the rows and columns of a matrix.
func Transpose[T tensor.Numeric](matrix Expr[T]) *Smart[T] {
	if matrix.Rank() != 2 {
		panicUnsupportedRank("transpose: rank %d operand %s, want a matrix", matrix.Rank(), matrix.Shape())
	}
	rows, cols := matrix.Rows(), matrix.Columns()
	m := toData(DefaultConfig(), matrix)
	return newSmart(KindTranspose, tensor.Shape{cols, rows}, func(cache []T) {
		transposeInto(cache, m, rows, cols)
	})
}

// transposeInto writes the transpose of the rows x cols matrix src into dst.
func transposeInto[T tensor.Numeric](dst, src []T, rows, cols int) {
	const block = 32
	for r0 := 0; r0 < rows; r0 += block {
		r1 := min(r0+block, rows)
		for c0 := 0; c0 < cols; c0 += block {
			c1 := min(c0+block, cols)
			for r := r0; r < r1; r++ {
				for c := c0; c < c1; c++ {
					dst[c*rows+r] = src[r*cols+c]
				}
			}
		}
	}
}
