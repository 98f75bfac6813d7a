package expr

import (
	"fmt"
	"iter"

	"github.com/born-ml/lazy/internal/gemm"
	"github.com/born-ml/lazy/internal/tensor"
)

// SmartKind identifies the operation a Smart node cached.
type SmartKind int

// Smart node kinds.
const (
	KindBiasAdd SmartKind = iota
	KindOuter
	KindSoftmax
	KindStableSoftmax
	KindMatMul
	KindTranspose
)

// String returns the operation name.
func (k SmartKind) String() string {
	switch k {
	case KindBiasAdd:
		return "bias_add"
	case KindOuter:
		return "outer"
	case KindSoftmax:
		return "softmax"
	case KindStableSoftmax:
		return "stable_softmax"
	case KindMatMul:
		return "matmul"
	case KindTranspose:
		return "transpose"
	default:
		return fmt.Sprintf("SmartKind(%d)", int(k))
	}
}

// Smart is a node whose result cannot be composed element by element.
// It validates its operands and computes its whole result into a padded
// cache when it is built; every read and every assignment afterwards is
// served from the cache.
type Smart[T tensor.Numeric] struct {
	dims
	kind   SmartKind
	cache  []T
	cached bool
	kernel gemm.Kernel
}

// newSmart allocates the cache for shape and runs fill on it once.
func newSmart[T tensor.Numeric](kind SmartKind, shape tensor.Shape, fill func(cache []T)) *Smart[T] {
	s := &Smart[T]{
		dims:  dims{shape: shape},
		kind:  kind,
		cache: make([]T, tensor.PaddedLen(shape.NumElements())),
	}
	fill(s.cache)
	s.cached = true
	return s
}

// Kind returns the cached operation.
func (s *Smart[T]) Kind() SmartKind { return s.kind }

// Cached reports whether the cache has been filled. It is true for every
// node returned by a constructor.
func (s *Smart[T]) Cached() bool { return s.cached }

// Kernel returns the GEMM kernel that filled the cache of a KindMatMul or
// KindOuter node.
func (s *Smart[T]) Kernel() gemm.Kernel { return s.kernel }

// Values returns the logical cached values. The slice must not be modified.
func (s *Smart[T]) Values() []T { return s.cache[:s.Size()] }

func (s *Smart[T]) Class() Class     { return ClassSmart }
func (s *Smart[T]) ThreadSafe() bool { return true }
func (s *Smart[T]) At(i int) T       { return s.cache[i] }

func (s *Smart[T]) At2(r, c int) T {
	s.checkAt2()
	return s.cache[r*s.shape.Columns()+c]
}

func (s *Smart[T]) Iter() iter.Seq[T] {
	return seqSlice(s.cache)
}

func (s *Smart[T]) IterRange(lo, hi int) iter.Seq[T] {
	return seqSlice(s.cache[lo:hi])
}

func (s *Smart[T]) sealed() {}

// ValidateAssign panics with ErrShapeMismatch if dst cannot receive the node:
// its rank must be the node's output rank and its shape must match.
func (s *Smart[T]) ValidateAssign(dst tensor.Buffer[T]) {
	if dst.Rank() != s.Rank() {
		panicShapeMismatch("%s: rank %d destination %s for a rank %d result %s",
			s.kind, dst.Rank(), dst.Shape(), s.Rank(), s.shape)
	}
	if !dst.Shape().Equal(s.shape) {
		panicShapeMismatch("%s: destination %s does not match result %s", s.kind, dst.Shape(), s.shape)
	}
}

// ComputeInto copies the cache into dst.
func (s *Smart[T]) ComputeInto(dst tensor.Buffer[T]) {
	s.ValidateAssign(dst)
	s.computeInto(CombineReplace, dst)
}

// ComputeIntoAdd adds the cache into dst.
func (s *Smart[T]) ComputeIntoAdd(dst tensor.Buffer[T]) {
	s.ValidateAssign(dst)
	s.computeInto(CombineAdd, dst)
}

// ComputeIntoSub subtracts the cache from dst.
func (s *Smart[T]) ComputeIntoSub(dst tensor.Buffer[T]) {
	s.ValidateAssign(dst)
	s.computeInto(CombineSub, dst)
}

// ComputeIntoScale multiplies dst by the cache elementwise.
func (s *Smart[T]) ComputeIntoScale(dst tensor.Buffer[T]) {
	s.ValidateAssign(dst)
	s.computeInto(CombineScale, dst)
}

// ComputeIntoDiv divides dst by the cache elementwise, over the logical size only.
func (s *Smart[T]) ComputeIntoDiv(dst tensor.Buffer[T]) {
	s.ValidateAssign(dst)
	s.computeInto(CombineDiv, dst)
}

// computeInto bulk-combines the cache into an already validated dst.
func (s *Smart[T]) computeInto(op Combine, dst tensor.Buffer[T]) {
	data := dst.Data()
	n := len(s.cache)
	if op == CombineDiv {
		n = s.Size()
	}
	combineSlice(op, data[:n], s.cache[:n])
}
