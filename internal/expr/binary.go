package expr

import (
	"fmt"
	"iter"

	"github.com/born-ml/lazy/internal/tensor"
)

// BinaryOp is the scalar operator of a Binary node.
type BinaryOp int

// Binary operators.
const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
)

// String returns the operator symbol.
func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return fmt.Sprintf("BinaryOp(%d)", int(op))
	}
}

func apply[T tensor.Numeric](op BinaryOp, a, b T) T {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	default:
		return a / b
	}
}

// Binary combines two children elementwise.
//
// Its shape is the shape of whichever child has a nonzero rank; when both
// do, the shapes must be equal.
type Binary[T tensor.Numeric] struct {
	dims
	op       BinaryOp
	lhs, rhs Operand[T]
}

func newBinary[T tensor.Numeric](op BinaryOp, lhs, rhs Expr[T]) *Binary[T] {
	shape := lhs.Shape()
	switch {
	case lhs.Rank() == 0:
		shape = rhs.Shape()
	case rhs.Rank() != 0 && !lhs.Shape().Equal(rhs.Shape()):
		panicShapeMismatch("%s %s %s", lhs.Shape(), op, rhs.Shape())
	}
	return &Binary[T]{
		dims: dims{shape: shape},
		op:   op,
		lhs:  operandOf(lhs),
		rhs:  operandOf(rhs),
	}
}

// Op returns the operator.
func (b *Binary[T]) Op() BinaryOp { return b.op }

// Lhs returns the left child slot.
func (b *Binary[T]) Lhs() Operand[T] { return b.lhs }

// Rhs returns the right child slot.
func (b *Binary[T]) Rhs() Operand[T] { return b.rhs }

func (b *Binary[T]) Class() Class {
	return binaryClass(b.op, b.lhs.node.Class(), b.rhs.node.Class())
}

func (b *Binary[T]) ThreadSafe() bool {
	return b.lhs.node.ThreadSafe() && b.rhs.node.ThreadSafe()
}

func (b *Binary[T]) At(i int) T {
	return apply(b.op, b.lhs.node.At(i), b.rhs.node.At(i))
}

func (b *Binary[T]) At2(r, c int) T {
	b.checkAt2()
	return apply(b.op, b.lhs.node.At2(r, c), b.rhs.node.At2(r, c))
}

func (b *Binary[T]) Iter() iter.Seq[T] {
	return b.IterRange(0, evalLen[T](b))
}

func (b *Binary[T]) IterRange(lo, hi int) iter.Seq[T] {
	return seqRange(b.At, lo, hi)
}

func (b *Binary[T]) sealed() {}
