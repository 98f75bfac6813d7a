package tensor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector(t *testing.T) {
	v, err := NewVector[float32](5)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Rank())
	assert.Equal(t, 5, v.Len())
	assert.Equal(t, 5, v.Rows())
	assert.Equal(t, 1, v.Columns())
	assert.Len(t, v.Data(), 8)

	v.Set(3, 2.5)
	assert.Equal(t, float32(2.5), v.At(3))
	assert.Equal(t, []float32{0, 0, 0, 2.5, 0}, v.Values())

	assert.Panics(t, func() { v.At(5) }, "index past the logical size")

	_, err = NewVector[float32](-1)
	require.ErrorIs(t, err, ErrInvalidShape)
}

func TestVectorFromSlice(t *testing.T) {
	values := []int32{1, 2, 3}
	v := VectorFromSlice(values)
	values[0] = 99
	assert.Equal(t, []int32{1, 2, 3}, v.Values(), "values are copied")
	assert.Equal(t, []int32{1, 2, 3, 0, 0, 0, 0, 0}, v.Data())
}

func TestMatrix(t *testing.T) {
	m, err := MatrixFromSlice([]float64{1, 2, 3, 4, 5, 6}, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 2}, m.Shape())
	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, 2, m.Columns())
	assert.Equal(t, 6, m.Size())
	assert.Len(t, m.Data(), 8)

	assert.Equal(t, 4.0, m.At(1, 1))
	m.Set(2, 0, -5)
	assert.Equal(t, []float64{-5, 6}, m.Row(2))

	_, err = MatrixFromSlice([]float64{1, 2, 3}, 2, 2)
	require.ErrorIs(t, err, ErrInvalidShape)
}

func TestHigherRank(t *testing.T) {
	t3, err := NewTensor3[float64](2, 3, 4)
	require.NoError(t, err)
	t3.Set(1, 2, 3, 7)
	assert.Equal(t, 7.0, t3.At(1, 2, 3))
	assert.Equal(t, 7.0, t3.Data()[1*12+2*4+3])
	assert.Equal(t, 6, t3.Rows())
	assert.Equal(t, 4, t3.Columns())
	assert.Len(t, t3.Data(), 24)

	t4, err := NewTensor4[int64](2, 1, 3, 3)
	require.NoError(t, err)
	t4.Set(1, 0, 2, 1, 5)
	assert.Equal(t, int64(5), t4.Data()[9+2*3+1])
	assert.Len(t, t4.Data(), 24)
}

func TestNew(t *testing.T) {
	tests := []struct {
		shape Shape
		check func(Buffer[float32]) bool
	}{
		{Shape{4}, func(b Buffer[float32]) bool { _, ok := b.(*Vector[float32]); return ok }},
		{Shape{2, 2}, func(b Buffer[float32]) bool { _, ok := b.(*Matrix[float32]); return ok }},
		{Shape{1, 2, 3}, func(b Buffer[float32]) bool { _, ok := b.(*Tensor3[float32]); return ok }},
		{Shape{1, 2, 3, 4}, func(b Buffer[float32]) bool { _, ok := b.(*Tensor4[float32]); return ok }},
	}
	for _, tt := range tests {
		buf, err := New[float32](tt.shape)
		require.NoError(t, err)
		assert.True(t, tt.check(buf), "%s", tt.shape)
		assert.Equal(t, tt.shape, buf.Shape())
		assert.Len(t, buf.Data(), PaddedLen(tt.shape.NumElements()))
	}

	for _, shape := range []Shape{{}, {1, 2, 3, 4, 5}, {2, -1}} {
		buf, err := New[float32](shape)
		require.ErrorIs(t, err, ErrInvalidShape, "%s", shape)
		assert.Nil(t, buf)
	}
}

func TestFill(t *testing.T) {
	m, err := NewMatrix[int32](3, 3)
	require.NoError(t, err)
	m.Fill(4)
	assert.Equal(t, []int32{4, 4, 4, 4, 4, 4, 4, 4, 4}, m.Values())
	for _, v := range m.Data()[9:] {
		assert.Zero(t, v, "padding stays zero")
	}

	m.RandomFill(rand.New(rand.NewSource(1)), -3, 3)
	for _, v := range m.Values() {
		assert.GreaterOrEqual(t, v, int32(-3))
		assert.Less(t, v, int32(3))
	}
	for _, v := range m.Data()[9:] {
		assert.Zero(t, v)
	}
}

func TestString(t *testing.T) {
	m, err := MatrixFromSlice([]float32{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, "Matrix[float32](2, 2)\n[1 2]\n[3 4]", m.String())

	v := VectorFromSlice([]int32{5, 6})
	assert.Equal(t, "Vector[int32](2)\n[5 6]", v.String())
}
