package tensor

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidShape is returned when a container is built with a negative dimension
// or with data whose length does not match the shape.
var ErrInvalidShape = errors.New("invalid shape")

// Shape represents the dimensions of a container.
// An empty Shape is a scalar.
type Shape []int

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// NumElements returns the total number of elements.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that every dimension is >= 0.
// Zero-sized dimensions are allowed, so that empty vectors can be built.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return errors.Wrapf(ErrInvalidShape, "dimension at index %d is %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// Rows returns the number of rows the expression engine sees:
// the length for rank 1, the product of the leading dimensions for rank >= 2.
func (s Shape) Rows() int {
	switch len(s) {
	case 0:
		return 1
	case 1:
		return s[0]
	default:
		return Shape(s[:len(s)-1]).NumElements()
	}
}

// Columns returns the last dimension. Only meaningful for rank >= 2.
func (s Shape) Columns() int {
	if len(s) < 2 {
		return 1
	}
	return s[len(s)-1]
}

// String implements fmt.Stringer, e.g. "(3, 2)".
func (s Shape) String() string {
	switch len(s) {
	case 0:
		return "()"
	case 1:
		return fmt.Sprintf("(%d)", s[0])
	}
	str := "("
	for i, dim := range s {
		if i > 0 {
			str += ", "
		}
		str += fmt.Sprint(dim)
	}
	return str + ")"
}
