// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package lazy

import (
	"math/rand"

	"golang.org/x/exp/constraints"

	"github.com/born-ml/lazy/internal/expr"
	"github.com/born-ml/lazy/internal/gemm"
	"github.com/born-ml/lazy/internal/parallel"
)

// Expr is a node of an expression tree.
type Expr[T Numeric] = expr.Expr[T]

// Leaf is a node over a container owned by the caller.
type Leaf[T Numeric] = expr.Leaf[T]

// Smart is a node holding a computed result (matmul, outer, softmax, ...).
type Smart[T Numeric] = expr.Smart[T]

// Class tells the assignment engine how a node is evaluated.
type Class = expr.Class

// Node classes.
const (
	ClassValue     = expr.ClassValue
	ClassSimple    = expr.ClassSimple
	ClassUnaligned = expr.ClassUnaligned
	ClassSmart     = expr.ClassSmart
)

// Combine is how an assignment merges the source into the destination.
type Combine = expr.Combine

// Combine operators.
const (
	CombineReplace = expr.CombineReplace
	CombineAdd     = expr.CombineAdd
	CombineSub     = expr.CombineSub
	CombineScale   = expr.CombineScale
	CombineDiv     = expr.CombineDiv
)

// Kernel identifies the GEMM regime that computed a product.
type Kernel = gemm.Kernel

// GEMM regimes.
const (
	KernelSmall  = gemm.KernelSmall
	KernelMedium = gemm.KernelMedium
	KernelLarge  = gemm.KernelLarge
)

// Config selects the worker pool and the parallel threshold of an assignment.
type Config = expr.Config

// Pool is a persistent fork-join worker pool.
type Pool = parallel.Pool

// DefaultParallelThreshold is the length above which assignments run in parallel.
const DefaultParallelThreshold = expr.DefaultParallelThreshold

// Errors raised by expression construction and assignment.
var (
	ErrShapeMismatch   = expr.ErrShapeMismatch
	ErrUnsupportedRank = expr.ErrUnsupportedRank
	ErrEmptyInput      = expr.ErrEmptyInput
)

// Try runs fn and returns the error it panicked with, or nil.
func Try(fn func()) error { return expr.Try(fn) }

// DefaultConfig uses the process-wide pool.
func DefaultConfig() Config { return expr.DefaultConfig() }

// NewPool starts a pool of numWorkers goroutines. Close it when done.
func NewPool(numWorkers int) *Pool { return parallel.New(numWorkers) }

// Leaves

// Of wraps any container as a leaf.
func Of[T Numeric](buf Buffer[T]) *Leaf[T] { return expr.Of(buf) }

// Vec wraps a vector as a leaf.
func Vec[T Numeric](v *Vector[T]) *Leaf[T] { return expr.Vec(v) }

// Mat wraps a matrix as a leaf.
func Mat[T Numeric](m *Matrix[T]) *Leaf[T] { return expr.Mat(m) }

// Scalar creates a constant node.
func Scalar[T Numeric](v T) Expr[T] { return expr.Scalar(v) }

// Elementwise combinators

// Add returns lhs + rhs.
func Add[T Numeric](lhs, rhs Expr[T]) Expr[T] { return expr.Add(lhs, rhs) }

// Sub returns lhs - rhs.
func Sub[T Numeric](lhs, rhs Expr[T]) Expr[T] { return expr.Sub(lhs, rhs) }

// Mul returns the elementwise product of lhs and rhs.
func Mul[T Numeric](lhs, rhs Expr[T]) Expr[T] { return expr.Mul(lhs, rhs) }

// Div returns the elementwise quotient of lhs and rhs.
func Div[T Numeric](lhs, rhs Expr[T]) Expr[T] { return expr.Div(lhs, rhs) }

// Scale returns x * s.
func Scale[T Numeric](x Expr[T], s T) Expr[T] { return expr.Scale(x, s) }

// AddScalar returns x + s.
func AddScalar[T Numeric](x Expr[T], s T) Expr[T] { return expr.AddScalar(x, s) }

// Neg returns -x.
func Neg[T Numeric](x Expr[T]) Expr[T] { return expr.Neg(x) }

// Abs returns |x|.
func Abs[T Numeric](x Expr[T]) Expr[T] { return expr.Abs(x) }

// ReLU returns max(x, 0).
func ReLU[T Numeric](x Expr[T]) Expr[T] { return expr.ReLU(x) }

// Exp returns e^x.
func Exp[T constraints.Float](x Expr[T]) Expr[T] { return expr.Exp(x) }

// Log returns the natural logarithm of x.
func Log[T constraints.Float](x Expr[T]) Expr[T] { return expr.Log(x) }

// Sqrt returns the square root of x.
func Sqrt[T constraints.Float](x Expr[T]) Expr[T] { return expr.Sqrt(x) }

// Sigmoid returns 1 / (1 + e^-x).
func Sigmoid[T constraints.Float](x Expr[T]) Expr[T] { return expr.Sigmoid(x) }

// Map applies fn to every element of x.
func Map[T Numeric](name string, x Expr[T], fn func(T) T) Expr[T] { return expr.Map(name, x, fn) }

// DropoutMask returns an inverse-dropout mask of the given shape.
// Values are drawn from rng as the mask is evaluated, which is always sequential.
func DropoutMask[T constraints.Float](shape Shape, p float64, rng *rand.Rand) Expr[T] {
	return expr.DropoutMask[T](shape, p, rng)
}

// Smart nodes

// MatMul multiplies matrices and vectors: [m,n]x[n,k], [m,n]x[n] or [n]x[n,k].
func MatMul[T Numeric](lhs, rhs Expr[T]) *Smart[T] { return expr.MatMul(lhs, rhs) }

// MatMulWith is MatMul running the large kernel on cfg.Pool.
func MatMulWith[T Numeric](cfg Config, lhs, rhs Expr[T]) *Smart[T] {
	return expr.MatMulWith(cfg, lhs, rhs)
}

// Outer returns the outer product of two vectors, or the batch sum of the
// row outer products of two matrices.
func Outer[T Numeric](lhs, rhs Expr[T]) *Smart[T] { return expr.Outer(lhs, rhs) }

// Transpose swaps the rows and columns of a matrix.
func Transpose[T Numeric](m Expr[T]) *Smart[T] { return expr.Transpose(m) }

// BiasAdd adds bias to every row of m.
func BiasAdd[T Numeric](m, bias Expr[T]) *Smart[T] { return expr.BiasAdd(m, bias) }

// Softmax normalizes a vector, or every row of a matrix.
func Softmax[T constraints.Float](x Expr[T]) *Smart[T] { return expr.Softmax(x) }

// StableSoftmax is Softmax with the row maximum subtracted first.
func StableSoftmax[T constraints.Float](x Expr[T]) *Smart[T] { return expr.StableSoftmax(x) }

// Assignment

// Assign evaluates src into dst.
func Assign[T Numeric](dst Buffer[T], src Expr[T]) { expr.Assign(dst, src) }

// AddInto computes dst += src.
func AddInto[T Numeric](dst Buffer[T], src Expr[T]) { expr.AddInto(dst, src) }

// SubInto computes dst -= src.
func SubInto[T Numeric](dst Buffer[T], src Expr[T]) { expr.SubInto(dst, src) }

// ScaleInto computes dst *= src elementwise.
func ScaleInto[T Numeric](dst Buffer[T], src Expr[T]) { expr.ScaleInto(dst, src) }

// DivInto computes dst /= src elementwise.
func DivInto[T Numeric](dst Buffer[T], src Expr[T]) { expr.DivInto(dst, src) }

// AssignWith runs the assignment op with an explicit configuration.
func AssignWith[T Numeric](cfg Config, op Combine, dst Buffer[T], src Expr[T]) {
	expr.AssignWith(cfg, op, dst, src)
}

// Reductions

// Sum returns the sum of the elements of x.
func Sum[T Numeric](x Expr[T]) T { return expr.Sum(x) }

// Mean returns the average of the elements of x.
func Mean[T Numeric](x Expr[T]) T { return expr.Mean(x) }

// Max returns the largest element of x.
func Max[T Numeric](x Expr[T]) T { return expr.Max(x) }

// Min returns the smallest element of x.
func Min[T Numeric](x Expr[T]) T { return expr.Min(x) }

// ArgMax returns the flat index of the first largest element of x.
func ArgMax[T Numeric](x Expr[T]) int { return expr.ArgMax(x) }
