package expr

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/born-ml/lazy/internal/tensor"
)

// Add returns lhs + rhs elementwise.
func Add[T tensor.Numeric](lhs, rhs Expr[T]) *Binary[T] { return newBinary(OpAdd, lhs, rhs) }

// Sub returns lhs - rhs elementwise.
func Sub[T tensor.Numeric](lhs, rhs Expr[T]) *Binary[T] { return newBinary(OpSub, lhs, rhs) }

// Mul returns lhs * rhs elementwise.
func Mul[T tensor.Numeric](lhs, rhs Expr[T]) *Binary[T] { return newBinary(OpMul, lhs, rhs) }

// Div returns lhs / rhs elementwise. The node is Unaligned: it is never
// evaluated on the padding, where rhs would be zero.
func Div[T tensor.Numeric](lhs, rhs Expr[T]) *Binary[T] { return newBinary(OpDiv, lhs, rhs) }

// Scale returns x * s.
func Scale[T tensor.Numeric](x Expr[T], s T) *Binary[T] { return newBinary(OpMul, x, Scalar(s)) }

// AddScalar returns x + s.
func AddScalar[T tensor.Numeric](x Expr[T], s T) *Binary[T] { return newBinary(OpAdd, x, Scalar(s)) }

// Neg returns -x.
func Neg[T tensor.Numeric](x Expr[T]) *Unary[T] {
	return Map("neg", x, func(v T) T { return -v })
}

// Abs returns |x|.
func Abs[T tensor.Numeric](x Expr[T]) *Unary[T] {
	return Map("abs", x, func(v T) T {
		if v < 0 {
			return -v
		}
		return v
	})
}

// ReLU returns max(x, 0).
func ReLU[T tensor.Numeric](x Expr[T]) *Unary[T] {
	return Map("relu", x, func(v T) T { return max(v, 0) })
}

// Exp returns e^x.
func Exp[T constraints.Float](x Expr[T]) *Unary[T] {
	return Map("exp", x, func(v T) T { return T(math.Exp(float64(v))) })
}

// Log returns the natural logarithm of x.
func Log[T constraints.Float](x Expr[T]) *Unary[T] {
	return Map("log", x, func(v T) T { return T(math.Log(float64(v))) })
}

// Sqrt returns the square root of x.
func Sqrt[T constraints.Float](x Expr[T]) *Unary[T] {
	return Map("sqrt", x, func(v T) T { return T(math.Sqrt(float64(v))) })
}

// Sigmoid returns 1 / (1 + e^-x).
func Sigmoid[T constraints.Float](x Expr[T]) *Unary[T] {
	return Map("sigmoid", x, func(v T) T { return T(1 / (1 + math.Exp(-float64(v)))) })
}
