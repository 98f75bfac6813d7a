package expr

import (
	"fmt"
	"iter"

	"github.com/born-ml/lazy/internal/tensor"
)

// Combine is how an assignment merges the source into the destination.
type Combine int

// Combine operators.
const (
	CombineReplace Combine = iota // dst = src
	CombineAdd                    // dst += src
	CombineSub                    // dst -= src
	CombineScale                  // dst *= src, elementwise
	CombineDiv                    // dst /= src, elementwise
)

// String returns the assignment operator.
func (op Combine) String() string {
	switch op {
	case CombineReplace:
		return "="
	case CombineAdd:
		return "+="
	case CombineSub:
		return "-="
	case CombineScale:
		return "*="
	case CombineDiv:
		return "/="
	default:
		return fmt.Sprintf("Combine(%d)", int(op))
	}
}

// combineSlice merges src into dst, which must have the same length.
func combineSlice[T tensor.Numeric](op Combine, dst, src []T) {
	src = src[:len(dst)]
	switch op {
	case CombineReplace:
		copy(dst, src)
	case CombineAdd:
		for i, v := range src {
			dst[i] += v
		}
	case CombineSub:
		for i, v := range src {
			dst[i] -= v
		}
	case CombineScale:
		for i, v := range src {
			dst[i] *= v
		}
	case CombineDiv:
		for i, v := range src {
			dst[i] /= v
		}
	}
}

// combineScalar merges the constant v into every element of dst.
func combineScalar[T tensor.Numeric](op Combine, dst []T, v T) {
	switch op {
	case CombineReplace:
		for i := range dst {
			dst[i] = v
		}
	case CombineAdd:
		for i := range dst {
			dst[i] += v
		}
	case CombineSub:
		for i := range dst {
			dst[i] -= v
		}
	case CombineScale:
		for i := range dst {
			dst[i] *= v
		}
	case CombineDiv:
		for i := range dst {
			dst[i] /= v
		}
	}
}

// combineSeq zips dst with seq, which must yield at least len(dst) values.
func combineSeq[T tensor.Numeric](op Combine, dst []T, seq iter.Seq[T]) {
	i := 0
	switch op {
	case CombineReplace:
		for v := range seq {
			if i == len(dst) {
				return
			}
			dst[i] = v
			i++
		}
	case CombineAdd:
		for v := range seq {
			if i == len(dst) {
				return
			}
			dst[i] += v
			i++
		}
	case CombineSub:
		for v := range seq {
			if i == len(dst) {
				return
			}
			dst[i] -= v
			i++
		}
	case CombineScale:
		for v := range seq {
			if i == len(dst) {
				return
			}
			dst[i] *= v
			i++
		}
	case CombineDiv:
		for v := range seq {
			if i == len(dst) {
				return
			}
			dst[i] /= v
			i++
		}
	}
}

// combineRange merges src's flat elements [lo, lo+len(dst)) into dst.
func combineRange[T tensor.Numeric](op Combine, dst []T, src Expr[T], lo int) {
	switch n := src.(type) {
	case *Leaf[T]:
		combineSlice(op, dst, n.data[lo:])
	case *Smart[T]:
		combineSlice(op, dst, n.cache[lo:])
	case Const[T]:
		combineScalar(op, dst, n.v)
	default:
		combineSeq(op, dst, src.IterRange(lo, lo+len(dst)))
	}
}
