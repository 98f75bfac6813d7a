// Package expr implements lazy elementwise and algebraic expressions over
// dense containers, and the assignment engine that materializes them.
package expr

import (
	"iter"

	"github.com/born-ml/lazy/internal/tensor"
)

// Expr is the protocol every node of an expression tree implements.
//
// The set of implementations is closed: *Leaf, Const, *Unary, *Binary,
// *Mask and *Smart. Evaluation code dispatches on them with type switches.
//
// At(i) is valid for 0 <= i < Size(). For nodes that are not Unaligned it is
// also valid on the padding, up to PaddedSize().
type Expr[T tensor.Numeric] interface {
	// Rank is 0 for scalars, 1 for vectors, 2 for matrices, 3 and 4 for
	// higher-rank buffers.
	Rank() int
	Class() Class
	// ThreadSafe reports whether elements may be read concurrently.
	ThreadSafe() bool

	Shape() tensor.Shape
	Size() int
	PaddedSize() int
	Rows() int
	// Columns panics with ErrUnsupportedRank below rank 2.
	Columns() int

	At(i int) T
	// At2 panics with ErrUnsupportedRank below rank 2.
	At2(r, c int) T

	// Iter yields the node's values in flat order: over the padded size, or
	// over the logical size for Unaligned nodes.
	Iter() iter.Seq[T]
	// IterRange yields the values for the flat indices [lo, hi).
	IterRange(lo, hi int) iter.Seq[T]

	sealed()
}

// dims holds the shape of a node.
type dims struct {
	shape tensor.Shape
}

func (d dims) Rank() int           { return len(d.shape) }
func (d dims) Shape() tensor.Shape { return d.shape }
func (d dims) Size() int           { return d.shape.NumElements() }
func (d dims) PaddedSize() int     { return tensor.PaddedLen(d.Size()) }
func (d dims) Rows() int           { return d.shape.Rows() }

func (d dims) Columns() int {
	if len(d.shape) < 2 {
		panicUnsupportedRank("columns of a rank %d node %s", len(d.shape), d.shape)
	}
	return d.shape.Columns()
}

func (d dims) checkAt2() {
	if len(d.shape) < 2 {
		panicUnsupportedRank("At2 on a rank %d node %s", len(d.shape), d.shape)
	}
}

// evalLen is the number of elements a sequential walk over e covers.
func evalLen[T tensor.Numeric](e Expr[T]) int {
	if e.Class() == ClassUnaligned {
		return e.Size()
	}
	return e.PaddedSize()
}

// seqRange yields at(i) for i in [lo, hi).
func seqRange[T tensor.Numeric](at func(int) T, lo, hi int) iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := lo; i < hi; i++ {
			if !yield(at(i)) {
				return
			}
		}
	}
}

// seqSlice yields the elements of s.
func seqSlice[T tensor.Numeric](s []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s {
			if !yield(v) {
				return
			}
		}
	}
}

// Const is a rank-0 node returning the same value for every index.
type Const[T tensor.Numeric] struct {
	v T
}

// Scalar creates a constant node.
func Scalar[T tensor.Numeric](v T) Const[T] {
	return Const[T]{v: v}
}

// Value returns the constant.
func (c Const[T]) Value() T { return c.v }

func (c Const[T]) Rank() int           { return 0 }
func (c Const[T]) Class() Class        { return ClassSimple }
func (c Const[T]) ThreadSafe() bool    { return true }
func (c Const[T]) Shape() tensor.Shape { return nil }
func (c Const[T]) Size() int           { return 1 }
func (c Const[T]) PaddedSize() int     { return tensor.Lanes }
func (c Const[T]) Rows() int           { return 1 }
func (c Const[T]) Columns() int {
	panicUnsupportedRank("columns of a scalar")
	return 0
}
func (c Const[T]) At(int) T       { return c.v }
func (c Const[T]) At2(_, _ int) T { return c.v }
func (c Const[T]) Iter() iter.Seq[T] {
	return c.IterRange(0, tensor.Lanes)
}
func (c Const[T]) IterRange(lo, hi int) iter.Seq[T] {
	return seqRange(c.At, lo, hi)
}
func (c Const[T]) sealed() {}

// Leaf is a Value node over a container owned by user code.
type Leaf[T tensor.Numeric] struct {
	dims
	buf  tensor.Buffer[T]
	data []T
}

// Of wraps a container (vector, matrix, rank 3 or 4 buffer) as a leaf.
// The leaf borrows the container: no data is copied.
func Of[T tensor.Numeric](buf tensor.Buffer[T]) *Leaf[T] {
	return &Leaf[T]{
		dims: dims{shape: buf.Shape()},
		buf:  buf,
		data: buf.Data(),
	}
}

// Vec wraps a vector as a leaf.
func Vec[T tensor.Numeric](v *tensor.Vector[T]) *Leaf[T] { return Of[T](v) }

// Mat wraps a matrix as a leaf.
func Mat[T tensor.Numeric](m *tensor.Matrix[T]) *Leaf[T] { return Of[T](m) }

// Buffer returns the wrapped container.
func (l *Leaf[T]) Buffer() tensor.Buffer[T] { return l.buf }

// Data returns the padded backing storage of the container.
func (l *Leaf[T]) Data() []T { return l.data }

func (l *Leaf[T]) Class() Class     { return ClassValue }
func (l *Leaf[T]) ThreadSafe() bool { return true }
func (l *Leaf[T]) At(i int) T       { return l.data[i] }

func (l *Leaf[T]) At2(r, c int) T {
	l.checkAt2()
	return l.data[r*l.shape.Columns()+c]
}

func (l *Leaf[T]) Iter() iter.Seq[T] {
	return seqSlice(l.data[:l.PaddedSize()])
}

func (l *Leaf[T]) IterRange(lo, hi int) iter.Seq[T] {
	return seqSlice(l.data[lo:hi])
}

func (l *Leaf[T]) sealed() {}
