package tensor

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/pkg/errors"
)

// Buffer is the view of a dense container the expression engine works with.
//
// Data returns the padded backing storage: len(Data()) == PaddedLen(Size()),
// and the pad is only touched by bulk operations.
type Buffer[T Numeric] interface {
	Rank() int
	Shape() Shape
	Rows() int
	Columns() int
	Size() int
	Data() []T
}

// dense is the padded row-major storage shared by all containers.
type dense[T Numeric] struct {
	shape  Shape
	stride []int
	data   []T
}

func newDense[T Numeric](shape Shape) (dense[T], error) {
	if err := shape.Validate(); err != nil {
		return dense[T]{}, err
	}
	return dense[T]{
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		data:   make([]T, PaddedLen(shape.NumElements())),
	}, nil
}

func denseFromSlice[T Numeric](values []T, shape Shape) (dense[T], error) {
	if shape.NumElements() != len(values) {
		return dense[T]{}, errors.Wrapf(ErrInvalidShape, "shape %s requires %d elements, but got %d",
			shape, shape.NumElements(), len(values))
	}
	d, err := newDense[T](shape)
	if err != nil {
		return d, err
	}
	copy(d.data, values)
	return d, nil
}

// Rank returns the number of dimensions.
func (d *dense[T]) Rank() int { return len(d.shape) }

// Shape returns the container's shape.
func (d *dense[T]) Shape() Shape { return d.shape }

// Rows returns the length for rank 1, or the product of the leading dimensions.
func (d *dense[T]) Rows() int { return d.shape.Rows() }

// Columns returns the last dimension for rank >= 2, 1 for vectors.
func (d *dense[T]) Columns() int { return d.shape.Columns() }

// Size returns the logical number of elements.
func (d *dense[T]) Size() int { return d.shape.NumElements() }

// Data returns the padded backing storage.
//
// WARNING: Modifications to the returned slice will modify the container.
func (d *dense[T]) Data() []T { return d.data }

// Values returns the logical (unpadded) elements.
func (d *dense[T]) Values() []T { return d.data[:d.Size()] }

// Fill sets every logical element to v. The pad stays zero.
func (d *dense[T]) Fill(v T) {
	values := d.Values()
	for i := range values {
		values[i] = v
	}
}

// RandomFill sets every logical element to a uniform value in [lo, hi).
func (d *dense[T]) RandomFill(rng *rand.Rand, lo, hi T) {
	span := float64(hi - lo)
	values := d.Values()
	for i := range values {
		values[i] = lo + T(rng.Float64()*span)
	}
}

func (d *dense[T]) offset(indices ...int) int {
	if len(indices) != len(d.shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(d.shape), len(indices)))
	}
	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= d.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, d.shape[i]))
		}
		offset += idx * d.stride[i]
	}
	return offset
}

func (d *dense[T]) format(kind string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s[%s]%s", kind, DataTypeOf[T](), d.shape)
	cols := d.Columns()
	if len(d.shape) < 2 {
		cols = d.Size()
	}
	if cols == 0 {
		return sb.String()
	}
	values := d.Values()
	for start := 0; start < len(values); start += cols {
		sb.WriteString("\n")
		fmt.Fprint(&sb, values[start:start+cols])
	}
	return sb.String()
}

// Vector is a dense rank-1 container.
type Vector[T Numeric] struct {
	dense[T]
}

// NewVector creates a zeroed vector of length n.
func NewVector[T Numeric](n int) (*Vector[T], error) {
	d, err := newDense[T](Shape{n})
	if err != nil {
		return nil, err
	}
	return &Vector[T]{d}, nil
}

// VectorFromSlice creates a vector holding a copy of values.
func VectorFromSlice[T Numeric](values []T) *Vector[T] {
	d, _ := denseFromSlice(values, Shape{len(values)})
	return &Vector[T]{d}
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return v.Size() }

// At returns element i.
func (v *Vector[T]) At(i int) T { return v.data[v.offset(i)] }

// Set sets element i.
func (v *Vector[T]) Set(i int, value T) { v.data[v.offset(i)] = value }

// String returns a human-readable representation of the vector.
func (v *Vector[T]) String() string { return v.format("Vector") }

// Matrix is a dense row-major rank-2 container.
type Matrix[T Numeric] struct {
	dense[T]
}

// NewMatrix creates a zeroed rows x cols matrix.
func NewMatrix[T Numeric](rows, cols int) (*Matrix[T], error) {
	d, err := newDense[T](Shape{rows, cols})
	if err != nil {
		return nil, err
	}
	return &Matrix[T]{d}, nil
}

// MatrixFromSlice creates a rows x cols matrix holding a copy of the row-major values.
func MatrixFromSlice[T Numeric](values []T, rows, cols int) (*Matrix[T], error) {
	d, err := denseFromSlice(values, Shape{rows, cols})
	if err != nil {
		return nil, err
	}
	return &Matrix[T]{d}, nil
}

// At returns element (r, c).
func (m *Matrix[T]) At(r, c int) T { return m.data[m.offset(r, c)] }

// Set sets element (r, c).
func (m *Matrix[T]) Set(r, c int, value T) { m.data[m.offset(r, c)] = value }

// Row returns the logical elements of row r (shares storage).
func (m *Matrix[T]) Row(r int) []T {
	cols := m.shape[1]
	start := m.offset(r, 0)
	return m.data[start : start+cols]
}

// String returns a human-readable representation of the matrix.
func (m *Matrix[T]) String() string { return m.format("Matrix") }

// Tensor3 is a dense rank-3 container.
type Tensor3[T Numeric] struct {
	dense[T]
}

// NewTensor3 creates a zeroed d0 x d1 x d2 container.
func NewTensor3[T Numeric](d0, d1, d2 int) (*Tensor3[T], error) {
	d, err := newDense[T](Shape{d0, d1, d2})
	if err != nil {
		return nil, err
	}
	return &Tensor3[T]{d}, nil
}

// At returns element (i, j, k).
func (t *Tensor3[T]) At(i, j, k int) T { return t.data[t.offset(i, j, k)] }

// Set sets element (i, j, k).
func (t *Tensor3[T]) Set(i, j, k int, value T) { t.data[t.offset(i, j, k)] = value }

// String returns a human-readable representation of the container.
func (t *Tensor3[T]) String() string { return t.format("Tensor3") }

// Tensor4 is a dense rank-4 container.
type Tensor4[T Numeric] struct {
	dense[T]
}

// NewTensor4 creates a zeroed d0 x d1 x d2 x d3 container.
func NewTensor4[T Numeric](d0, d1, d2, d3 int) (*Tensor4[T], error) {
	d, err := newDense[T](Shape{d0, d1, d2, d3})
	if err != nil {
		return nil, err
	}
	return &Tensor4[T]{d}, nil
}

// At returns element (i, j, k, l).
func (t *Tensor4[T]) At(i, j, k, l int) T { return t.data[t.offset(i, j, k, l)] }

// Set sets element (i, j, k, l).
func (t *Tensor4[T]) Set(i, j, k, l int, value T) { t.data[t.offset(i, j, k, l)] = value }

// String returns a human-readable representation of the container.
func (t *Tensor4[T]) String() string { return t.format("Tensor4") }

// New creates a zeroed container for shape, choosing the concrete type by rank.
// Rank 0 and rank > 4 are not supported.
func New[T Numeric](shape Shape) (Buffer[T], error) {
	if len(shape) < 1 || len(shape) > 4 {
		return nil, errors.Wrapf(ErrInvalidShape, "rank %d containers are not supported", len(shape))
	}
	d, err := newDense[T](shape)
	if err != nil {
		return nil, err
	}
	switch len(shape) {
	case 1:
		return &Vector[T]{d}, nil
	case 2:
		return &Matrix[T]{d}, nil
	case 3:
		return &Tensor3[T]{d}, nil
	default:
		return &Tensor4[T]{d}, nil
	}
}
