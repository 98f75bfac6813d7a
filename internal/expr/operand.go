package expr

import "github.com/born-ml/lazy/internal/tensor"

// Operand is a child slot of a combinator. It records whether the
// combinator owns the child node (it was built by value as part of the same
// expression) or borrows it (a leaf over a container owned by user code).
//
// Every node lives at most as long as the statement that built it, so no
// reference counting is involved.
type Operand[T tensor.Numeric] struct {
	node  Expr[T]
	owned bool
}

// Owned returns an operand that owns node.
func Owned[T tensor.Numeric](node Expr[T]) Operand[T] {
	return Operand[T]{node: node, owned: true}
}

// Borrowed returns an operand that borrows node for the combinator's lifetime.
func Borrowed[T tensor.Numeric](node Expr[T]) Operand[T] {
	return Operand[T]{node: node}
}

// operandOf borrows leaves and owns everything else.
func operandOf[T tensor.Numeric](node Expr[T]) Operand[T] {
	if _, ok := node.(*Leaf[T]); ok {
		return Borrowed(node)
	}
	return Owned(node)
}

// Node returns the wrapped node.
func (o Operand[T]) Node() Expr[T] { return o.node }

// Owns reports whether the operand owns its node.
func (o Operand[T]) Owns() bool { return o.owned }
