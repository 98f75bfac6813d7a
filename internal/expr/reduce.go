package expr

import "github.com/born-ml/lazy/internal/tensor"

// Sum returns the sum of the logical elements of x.
func Sum[T tensor.Numeric](x Expr[T]) T {
	var sum T
	for v := range x.IterRange(0, x.Size()) {
		sum += v
	}
	return sum
}

// Mean returns the average of the logical elements of x.
// It panics with ErrEmptyInput when x has no elements.
func Mean[T tensor.Numeric](x Expr[T]) T {
	n := x.Size()
	if n == 0 {
		panicEmptyInput("mean of %s", x.Shape())
	}
	return Sum(x) / T(n)
}

// Max returns the largest logical element of x.
// It panics with ErrEmptyInput when x has no elements.
func Max[T tensor.Numeric](x Expr[T]) T {
	v, _ := extreme(x, "max", func(a, b T) bool { return a > b })
	return v
}

// Min returns the smallest logical element of x.
// It panics with ErrEmptyInput when x has no elements.
func Min[T tensor.Numeric](x Expr[T]) T {
	v, _ := extreme(x, "min", func(a, b T) bool { return a < b })
	return v
}

// ArgMax returns the flat index of the first largest logical element of x.
// It panics with ErrEmptyInput when x has no elements.
func ArgMax[T tensor.Numeric](x Expr[T]) int {
	_, idx := extreme(x, "argmax", func(a, b T) bool { return a > b })
	return idx
}

// extreme returns the first element no later element is better than, and its index.
func extreme[T tensor.Numeric](x Expr[T], name string, better func(a, b T) bool) (best T, bestIdx int) {
	if x.Size() == 0 {
		panicEmptyInput("%s of %s", name, x.Shape())
	}
	i := 0
	for v := range x.IterRange(0, x.Size()) {
		if i == 0 || better(v, best) {
			best, bestIdx = v, i
		}
		i++
	}
	return
}
