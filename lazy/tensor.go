// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package lazy

import (
	"github.com/born-ml/lazy/internal/tensor"
)

// Type aliases for public API

// Numeric is the constraint for element types: floats and signed integers.
type Numeric = tensor.Numeric

// Shape represents the dimensions of a container.
// Example: Shape{2, 3} is a matrix with 2 rows and 3 columns.
type Shape = tensor.Shape

// DataType is the runtime name of an element type.
type DataType = tensor.DataType

// Lanes is the lane width every container is padded to.
const Lanes = tensor.Lanes

// ErrInvalidShape is returned by container constructors.
var ErrInvalidShape = tensor.ErrInvalidShape

// Buffer is the view of a container an assignment writes into.
type Buffer[T Numeric] = tensor.Buffer[T]

// Vector is a padded dense rank-1 container.
type Vector[T Numeric] = tensor.Vector[T]

// Matrix is a padded dense row-major rank-2 container.
type Matrix[T Numeric] = tensor.Matrix[T]

// Tensor3 is a padded dense rank-3 container.
type Tensor3[T Numeric] = tensor.Tensor3[T]

// Tensor4 is a padded dense rank-4 container.
type Tensor4[T Numeric] = tensor.Tensor4[T]

// Creation functions

// NewVector creates a zeroed vector of length n.
func NewVector[T Numeric](n int) (*Vector[T], error) {
	return tensor.NewVector[T](n)
}

// VectorFromSlice creates a vector holding a copy of values.
func VectorFromSlice[T Numeric](values []T) *Vector[T] {
	return tensor.VectorFromSlice(values)
}

// NewMatrix creates a zeroed rows x cols matrix.
func NewMatrix[T Numeric](rows, cols int) (*Matrix[T], error) {
	return tensor.NewMatrix[T](rows, cols)
}

// MatrixFromSlice creates a matrix from row-major values.
//
// Example:
//
//	m, err := lazy.MatrixFromSlice([]float64{1, 2, 3, 4, 5, 6}, 3, 2)
func MatrixFromSlice[T Numeric](values []T, rows, cols int) (*Matrix[T], error) {
	return tensor.MatrixFromSlice(values, rows, cols)
}

// NewTensor3 creates a zeroed rank-3 container.
func NewTensor3[T Numeric](d0, d1, d2 int) (*Tensor3[T], error) {
	return tensor.NewTensor3[T](d0, d1, d2)
}

// NewTensor4 creates a zeroed rank-4 container.
func NewTensor4[T Numeric](d0, d1, d2, d3 int) (*Tensor4[T], error) {
	return tensor.NewTensor4[T](d0, d1, d2, d3)
}

// New creates a zeroed container of rank 1 to 4 for shape.
func New[T Numeric](shape Shape) (Buffer[T], error) {
	return tensor.New[T](shape)
}
