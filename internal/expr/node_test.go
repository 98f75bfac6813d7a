package expr

import (
	"math/rand"
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/lazy/internal/tensor"
)

func randomVector(rng *rand.Rand, n int) *tensor.Vector[float64] {
	v := must.M1(tensor.NewVector[float64](n))
	v.RandomFill(rng, -1, 1)
	return v
}

func randomMatrix(rng *rand.Rand, rows, cols int) *tensor.Matrix[float64] {
	m := must.M1(tensor.NewMatrix[float64](rows, cols))
	m.RandomFill(rng, -1, 1)
	return m
}

func TestComposition_AtMatchesChildren(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a, b, c := randomVector(rng, 13), randomVector(rng, 13), randomVector(rng, 13)

	sum := Add(Add(Vec(a), Vec(b)), Vec(c))
	for i := 0; i < a.Len(); i++ {
		assert.Equal(t, a.At(i)+b.At(i)+c.At(i), sum.At(i))
	}

	nested := Mul(Sub(Vec(a), Vec(b)), Add(Vec(c), Scalar(2.0)))
	for i := 0; i < a.Len(); i++ {
		assert.Equal(t, (a.At(i)-b.At(i))*(c.At(i)+2), nested.At(i))
	}
}

func TestComposition_At2(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	a, b := randomMatrix(rng, 3, 5), randomMatrix(rng, 3, 5)

	e := Sub(Mat(a), Scale(Mat(b), 3))
	for r := 0; r < 3; r++ {
		for c := 0; c < 5; c++ {
			assert.Equal(t, a.At(r, c)-b.At(r, c)*3, e.At2(r, c))
			assert.Equal(t, e.At(r*5+c), e.At2(r, c))
		}
	}
}

func TestAbs_ConcreteScenario(t *testing.T) {
	a := tensor.VectorFromSlice([]float32{1, 2, 3, 4, -5})
	e := Abs(Vec(a))
	assert.Equal(t, float32(2), e.At(1))
	assert.Equal(t, float32(5), e.At(4))
}

func TestUnaryWrappers(t *testing.T) {
	x := tensor.VectorFromSlice([]float64{-2, 0, 1, 4})
	assert.Equal(t, 4.0, ReLU(Vec(x)).At(3))
	assert.Equal(t, 0.0, ReLU(Vec(x)).At(0))
	assert.Equal(t, 2.0, Neg(Vec(x)).At(0))
	assert.Equal(t, 2.0, Sqrt(Vec(x)).At(3))
	assert.InDelta(t, 2.718281828, Exp(Vec(x)).At(2), 1e-9)
	assert.InDelta(t, 0.0, Log(Vec(x)).At(2), 1e-12)
	assert.InDelta(t, 0.5, Sigmoid(Vec(x)).At(1), 1e-12)
	assert.Equal(t, "sigmoid", Sigmoid(Vec(x)).Name())

	ints := tensor.VectorFromSlice([]int32{-3, 7})
	assert.Equal(t, int32(3), Abs(Vec(ints)).At(0))
	assert.Equal(t, int32(0), ReLU(Vec(ints)).At(0))
}

func TestClassification(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a, b := randomMatrix(rng, 4, 4), randomMatrix(rng, 4, 4)

	tests := []struct {
		name string
		node Expr[float64]
		want Class
	}{
		{"leaf", Mat(a), ClassValue},
		{"add", Add(Mat(a), Mat(b)), ClassSimple},
		{"scale", Scale(Mat(a), 2), ClassSimple},
		{"div", Div(Mat(a), Mat(b)), ClassUnaligned},
		{"unary_of_div", Exp(Div(Mat(a), Mat(b))), ClassUnaligned},
		{"add_of_div", Add(Div(Mat(a), Mat(b)), Mat(a)), ClassUnaligned},
		{"unary_of_add", Abs(Add(Mat(a), Mat(b))), ClassSimple},
		{"matmul", MatMul(Mat(a), Mat(b)), ClassSmart},
		{"add_of_smart", Add(Transpose(Mat(a)), Mat(b)), ClassSimple},
		{"constant", Scalar(1.0), ClassSimple},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.node.Class(), tt.name)
	}
}

func TestThreadSafety(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	a := randomMatrix(rng, 2, 3)

	assert.True(t, Add(Mat(a), Mat(a)).ThreadSafe())
	mask := DropoutMask[float64](tensor.Shape{2, 3}, 0.5, rng)
	assert.False(t, mask.ThreadSafe())
	assert.False(t, Mul(Mat(a), mask).ThreadSafe())
	assert.False(t, Abs(Mul(Mat(a), mask)).ThreadSafe())
}

func TestShapeOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	m := randomMatrix(rng, 3, 5)
	v := randomVector(rng, 7)

	e := Add(Scalar(1.0), Mat(m))
	assert.Equal(t, 2, e.Rank())
	assert.Equal(t, 3, e.Rows())
	assert.Equal(t, 5, e.Columns())
	assert.Equal(t, 15, e.Size())
	assert.Equal(t, 16, e.PaddedSize())

	ve := Neg(Vec(v))
	assert.Equal(t, 1, ve.Rank())
	assert.Equal(t, 7, ve.Rows())
	assert.Equal(t, 8, ve.PaddedSize())

	assert.Equal(t, 0, Scalar(2.0).Rank())
}

func TestUnsupportedRank(t *testing.T) {
	v := tensor.VectorFromSlice([]float64{1, 2, 3})

	err := Try(func() { Vec(v).Columns() })
	require.ErrorIs(t, err, ErrUnsupportedRank)

	err = Try(func() { Abs(Vec(v)).At2(0, 0) })
	require.ErrorIs(t, err, ErrUnsupportedRank)

	err = Try(func() { Scalar(1.0).Columns() })
	require.ErrorIs(t, err, ErrUnsupportedRank)

	err = Try(func() { Transpose(Vec(v)) })
	require.ErrorIs(t, err, ErrUnsupportedRank)
}

func TestBinaryShapeMismatch(t *testing.T) {
	a := tensor.VectorFromSlice([]float64{1, 2, 3})
	b := tensor.VectorFromSlice([]float64{1, 2})

	err := Try(func() { Add(Vec(a), Vec(b)) })
	require.ErrorIs(t, err, ErrShapeMismatch)
	assert.Contains(t, err.Error(), "(3) + (2)")
}

func TestTry_NonErrorPanicsPropagate(t *testing.T) {
	assert.Panics(t, func() {
		_ = Try(func() { panic("not an error") })
	})
	assert.NoError(t, Try(func() {}))
}

func TestOperandOwnership(t *testing.T) {
	a := tensor.VectorFromSlice([]float64{1, 2})
	b := tensor.VectorFromSlice([]float64{3, 4})

	e := Add(Vec(a), Scale(Vec(b), 2))
	assert.False(t, e.Lhs().Owns(), "leaves are borrowed")
	assert.True(t, e.Rhs().Owns(), "combinators are owned")
	assert.Same(t, a, e.Lhs().Node().(*Leaf[float64]).Buffer())

	u := Neg(e)
	assert.True(t, u.Operand().Owns())

	assert.True(t, Owned[float64](Vec(a)).Owns())
	assert.False(t, Borrowed[float64](Vec(a)).Owns())
}

func TestIter_MatchesAt(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	a, b := randomVector(rng, 11), randomVector(rng, 11)

	nodes := map[string]Expr[float64]{
		"leaf":   Vec(a),
		"binary": Add(Vec(a), Vec(b)),
		"unary":  Abs(Vec(a)),
		"div":    Div(Vec(a), Vec(b)),
		"smart":  Softmax(Vec(a)),
	}
	for name, node := range nodes {
		var got []float64
		for v := range node.Iter() {
			got = append(got, v)
		}
		require.Len(t, got, evalLen(node), name)
		for i, v := range got {
			assert.Equal(t, node.At(i), v, "%s[%d]", name, i)
		}

		var part []float64
		for v := range node.IterRange(2, 6) {
			part = append(part, v)
		}
		assert.Equal(t, got[2:6], part, name)
	}
	assert.Equal(t, 11, evalLen[float64](Div(Vec(a), Vec(b))))
	assert.Equal(t, 16, evalLen[float64](Add(Vec(a), Vec(b))))
}

func TestDropoutMask(t *testing.T) {
	mask := DropoutMask[float32](tensor.Shape{4, 5}, 0.25, rand.New(rand.NewSource(9)))
	keep := float32(1 / 0.75)
	var zeros int
	for v := range mask.IterRange(0, mask.Size()) {
		if v == 0 {
			zeros++
			continue
		}
		assert.Equal(t, keep, v)
	}
	assert.Equal(t, 20, mask.Drawn())
	assert.Less(t, zeros, 20)

	err := Try(func() { DropoutMask[float32](tensor.Shape{2}, 1, rand.New(rand.NewSource(1))) })
	require.Error(t, err)
}
