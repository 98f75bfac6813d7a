package expr

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/born-ml/lazy/internal/parallel"
	"github.com/born-ml/lazy/internal/tensor"
)

// Softmax computes exp(x) / sum(exp(x)) over a vector, or over every row of a matrix.
func Softmax[T constraints.Float](x Expr[T]) *Smart[T] {
	return softmax(KindSoftmax, x)
}

// StableSoftmax is Softmax with the row maximum subtracted before
// exponentiation, so large inputs do not overflow.
func StableSoftmax[T constraints.Float](x Expr[T]) *Smart[T] {
	return softmax(KindStableSoftmax, x)
}

func softmax[T constraints.Float](kind SmartKind, x Expr[T]) *Smart[T] {
	var rows, cols int
	switch x.Rank() {
	case 1:
		rows, cols = 1, x.Size()
	case 2:
		rows, cols = x.Rows(), x.Columns()
	default:
		panicUnsupportedRank("%s: rank %d operand %s, want a vector or a matrix", kind, x.Rank(), x.Shape())
	}
	if cols == 0 && rows > 0 {
		panicEmptyInput("%s: operand %s has no columns", kind, x.Shape())
	}

	data := toData(DefaultConfig(), x)
	return newSmart(kind, x.Shape().Clone(), func(cache []T) {
		parallel.For(rows, func(r int) {
			softmaxRow(kind, cache[r*cols:(r+1)*cols], data[r*cols:(r+1)*cols])
		}, parallel.DefaultConfig())
	})
}

// softmaxRow writes the softmax of in to out, accumulating in float64.
func softmaxRow[T constraints.Float](kind SmartKind, out, in []T) {
	var shift float64
	if kind == KindStableSoftmax {
		shift = math.Inf(-1)
		for _, v := range in {
			shift = math.Max(shift, float64(v))
		}
	}
	var sum float64
	for c, v := range in {
		e := math.Exp(float64(v) - shift)
		out[c] = T(e)
		sum += e
	}
	for c := range out {
		out[c] = T(float64(out[c]) / sum)
	}
}
