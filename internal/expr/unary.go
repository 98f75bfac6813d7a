package expr

import (
	"iter"

	"github.com/born-ml/lazy/internal/tensor"
)

// Unary applies a scalar function to every element of its child.
//
// It is a pass-through for classification: the node is Unaligned when the
// child is, Simple otherwise.
type Unary[T tensor.Numeric] struct {
	dims
	name string
	fn   func(T) T
	x    Operand[T]
}

// Map creates a unary node applying fn to every element of x.
// name is used in error messages and String.
func Map[T tensor.Numeric](name string, x Expr[T], fn func(T) T) *Unary[T] {
	return &Unary[T]{
		dims: dims{shape: x.Shape()},
		name: name,
		fn:   fn,
		x:    operandOf(x),
	}
}

// Name returns the operator name.
func (u *Unary[T]) Name() string { return u.name }

// Operand returns the child slot.
func (u *Unary[T]) Operand() Operand[T] { return u.x }

func (u *Unary[T]) Class() Class     { return unaryClass(u.x.node.Class()) }
func (u *Unary[T]) ThreadSafe() bool { return u.x.node.ThreadSafe() }
func (u *Unary[T]) At(i int) T       { return u.fn(u.x.node.At(i)) }

func (u *Unary[T]) At2(r, c int) T {
	u.checkAt2()
	return u.fn(u.x.node.At2(r, c))
}

func (u *Unary[T]) Iter() iter.Seq[T] {
	return u.IterRange(0, evalLen[T](u))
}

func (u *Unary[T]) IterRange(lo, hi int) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range u.x.node.IterRange(lo, hi) {
			if !yield(u.fn(v)) {
				return
			}
		}
	}
}

func (u *Unary[T]) sealed() {}
