package expr

import (
	"k8s.io/klog/v2"

	"github.com/born-ml/lazy/internal/parallel"
	"github.com/born-ml/lazy/internal/tensor"
)

// DefaultParallelThreshold is the number of elements above which a
// thread-safe assignment is split across the worker pool.
const DefaultParallelThreshold = 256 << 10

// Config controls how assignments and multiplies are executed.
type Config struct {
	// ParallelThreshold is the operative length above which thread-safe
	// sources are evaluated on Pool.
	ParallelThreshold int
	// Pool runs the parallel blocks. A nil pool disables parallelism.
	Pool *parallel.Pool
}

// DefaultConfig uses the process-wide pool and DefaultParallelThreshold.
func DefaultConfig() Config {
	return Config{
		ParallelThreshold: DefaultParallelThreshold,
		Pool:              parallel.Default(),
	}
}

// Assign evaluates src into dst (dst = src).
func Assign[T tensor.Numeric](dst tensor.Buffer[T], src Expr[T]) {
	AssignWith(DefaultConfig(), CombineReplace, dst, src)
}

// AddInto accumulates src into dst (dst += src).
func AddInto[T tensor.Numeric](dst tensor.Buffer[T], src Expr[T]) {
	AssignWith(DefaultConfig(), CombineAdd, dst, src)
}

// SubInto subtracts src from dst (dst -= src).
func SubInto[T tensor.Numeric](dst tensor.Buffer[T], src Expr[T]) {
	AssignWith(DefaultConfig(), CombineSub, dst, src)
}

// ScaleInto multiplies dst by src elementwise (dst *= src).
func ScaleInto[T tensor.Numeric](dst tensor.Buffer[T], src Expr[T]) {
	AssignWith(DefaultConfig(), CombineScale, dst, src)
}

// DivInto divides dst by src elementwise (dst /= src).
func DivInto[T tensor.Numeric](dst tensor.Buffer[T], src Expr[T]) {
	AssignWith(DefaultConfig(), CombineDiv, dst, src)
}

// AssignWith runs the assignment op of src into dst with cfg.
//
// Smart sources combine their cache into dst. Other sources are streamed
// element by element: over len(dst.Data()) for scalars, over the logical
// size for Unaligned sources and for divisions, over the padded size
// otherwise. Thread-safe sources longer than cfg.ParallelThreshold are split
// into contiguous blocks run on cfg.Pool; the call returns when all blocks
// are done.
func AssignWith[T tensor.Numeric](cfg Config, op Combine, dst tensor.Buffer[T], src Expr[T]) {
	if s, ok := src.(*Smart[T]); ok {
		s.ValidateAssign(dst)
		s.computeInto(op, dst)
		return
	}

	if src.Rank() != 0 && !dst.Shape().Equal(src.Shape()) {
		panicShapeMismatch("assign %s: destination %s, expression %s", op, dst.Shape(), src.Shape())
	}

	data := dst.Data()
	var n int
	switch {
	case op == CombineDiv:
		n = dst.Size()
	case src.Rank() == 0:
		n = len(data)
	default:
		n = evalLen(src)
	}
	assignSlice(cfg, op, data[:n], src)
}

// assignSlice combines src's flat elements [0, len(dst)) into dst.
func assignSlice[T tensor.Numeric](cfg Config, op Combine, dst []T, src Expr[T]) {
	n := len(dst)
	if src.ThreadSafe() && n > cfg.ParallelThreshold && cfg.Pool != nil && cfg.Pool.NumWorkers() > 1 {
		klog.V(3).Infof("assign %s: %d elements of a %s node split across %d workers",
			op, n, src.Class(), cfg.Pool.NumWorkers())
		cfg.Pool.ParallelFor(n, func(start, end int) {
			combineRange(op, dst[start:end], src, start)
		})
		return
	}
	combineRange(op, dst, src, 0)
}

// toData returns the row-major values of e, at least e.Size() long.
// Leaves lend their storage and Smart nodes their cache; any other node is
// evaluated into a fresh padded buffer.
func toData[T tensor.Numeric](cfg Config, e Expr[T]) []T {
	switch n := e.(type) {
	case *Leaf[T]:
		return n.data
	case *Smart[T]:
		return n.cache
	}
	data := make([]T, e.PaddedSize())
	assignSlice(cfg, CombineReplace, data[:evalLen(e)], e)
	return data
}
