// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package lazy provides lazy numeric expressions over dense vectors and matrices.
//
// # Overview
//
// Arithmetic on containers does not compute anything: it builds a small
// expression tree. The tree is evaluated element by element only when it is
// assigned into a destination container, in a single pass and without
// temporaries:
//   - Leaves wrap containers (Vec, Mat, Of) and constants (Scalar)
//   - Elementwise combinators (Add, Sub, Mul, Div, Scale, Abs, Exp, ...)
//   - Smart nodes that compute their result once into a cache
//     (MatMul, Outer, Transpose, BiasAdd, Softmax, StableSoftmax)
//
// # Basic Usage
//
//	import "github.com/born-ml/lazy/lazy"
//
//	func main() {
//	    a, _ := lazy.MatrixFromSlice([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
//	    b, _ := lazy.MatrixFromSlice([]float32{7, 8, 9, 10, 11, 12}, 3, 2)
//	    c, _ := lazy.NewMatrix[float32](2, 2)
//
//	    // c = a*b + 1, one pass over c.
//	    lazy.Assign(c, lazy.AddScalar(lazy.MatMul(lazy.Mat(a), lazy.Mat(b)), 1))
//	}
//
// # Padding
//
// Every container is padded to a multiple of Lanes elements. Elementwise
// evaluation runs over the padded length, so kernels never need a scalar
// tail; divisions and anything built on them (Unaligned nodes) stop at the
// logical size.
//
// # Errors
//
// Shape and rank errors are raised as panics carrying an error wrapping
// ErrShapeMismatch, ErrUnsupportedRank or ErrEmptyInput. Use Try to turn
// them into a returned error:
//
//	err := lazy.Try(func() { lazy.BiasAdd(lazy.Mat(m), lazy.Vec(bias)) })
//	if errors.Is(err, lazy.ErrShapeMismatch) { ... }
//
// # Parallelism
//
// Assignments of thread-safe expressions longer than DefaultParallelThreshold
// elements are split across a persistent worker pool. Use AssignWith and a
// Config to choose the pool and the threshold.
package lazy
