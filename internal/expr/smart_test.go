package expr

import (
	"math"
	"math/rand"
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/lazy/internal/gemm"
	"github.com/born-ml/lazy/internal/parallel"
	"github.com/born-ml/lazy/internal/tensor"
)

func TestMatMul_ConcreteScenario(t *testing.T) {
	a := must.M1(tensor.MatrixFromSlice([]float32{1, 2, 3, 4, 5, 6}, 2, 3))
	b := must.M1(tensor.MatrixFromSlice([]float32{7, 8, 9, 10, 11, 12}, 3, 2))

	s := MatMul(Mat(a), Mat(b))
	assert.Equal(t, KindMatMul, s.Kind())
	assert.Equal(t, gemm.KernelSmall, s.Kernel())
	assert.Equal(t, tensor.Shape{2, 2}, s.Shape())

	dst := must.M1(tensor.NewMatrix[float32](2, 2))
	Assign(dst, s)
	assert.Equal(t, []float32{58, 64, 139, 154}, dst.Values())
}

func TestMatMul_Vectors(t *testing.T) {
	m := must.M1(tensor.MatrixFromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, 3))
	v3 := tensor.VectorFromSlice([]float64{1, 0, 2})
	v2 := tensor.VectorFromSlice([]float64{1, -1})

	mv := MatMul(Mat(m), Vec(v3))
	assert.Equal(t, 1, mv.Rank())
	assert.Equal(t, []float64{7, 16}, mv.Values())

	vm := MatMul(Vec(v2), Mat(m))
	assert.Equal(t, 1, vm.Rank())
	assert.Equal(t, []float64{-3, -3, -3}, vm.Values())

	err := Try(func() { MatMul(Mat(m), Vec(v2)) })
	require.ErrorIs(t, err, ErrShapeMismatch)
	err = Try(func() { MatMul(Vec(v3), Mat(m)) })
	require.ErrorIs(t, err, ErrShapeMismatch)
	err = Try(func() { MatMul(Mat(m), Mat(m)) })
	require.ErrorIs(t, err, ErrShapeMismatch)
	err = Try(func() { MatMul(Vec(v2), Vec(v2)) })
	require.ErrorIs(t, err, ErrUnsupportedRank)
}

func TestMatMul_Regimes(t *testing.T) {
	pool := parallel.New(3)
	defer pool.Close()
	cfg := Config{ParallelThreshold: DefaultParallelThreshold, Pool: pool}

	tests := []struct {
		m, n, k int
		want    gemm.Kernel
	}{
		{7, 5, 3, gemm.KernelSmall},
		{150, 100, 33, gemm.KernelMedium},
		{210, 200, 19, gemm.KernelLarge},
	}
	for _, tt := range tests {
		rng := rand.New(rand.NewSource(int64(tt.m)))
		a := must.M1(tensor.NewMatrix[int32](tt.m, tt.n))
		b := must.M1(tensor.NewMatrix[int32](tt.n, tt.k))
		a.RandomFill(rng, -4, 4)
		b.RandomFill(rng, -4, 4)

		s := MatMulWith(cfg, Mat(a), Mat(b))
		assert.Equal(t, tt.want, s.Kernel())

		want := make([]int32, tt.m*tt.k)
		gemm.Naive(want, a.Values(), b.Values(), tt.m, tt.n, tt.k)
		assert.Equal(t, want, s.Values(), "%s kernel", tt.want)
	}
}

func TestMatMul_OfExpressions(t *testing.T) {
	a := must.M1(tensor.MatrixFromSlice([]float64{1, 2, 3, 4}, 2, 2))
	id := must.M1(tensor.MatrixFromSlice([]float64{1, 0, 0, 1}, 2, 2))

	// (2a) * I + 1
	e := AddScalar(MatMul(Scale(Mat(a), 2), Mat(id)), 1)
	assert.Equal(t, ClassSimple, e.Class())
	dst := must.M1(tensor.NewMatrix[float64](2, 2))
	Assign(dst, e)
	assert.Equal(t, []float64{3, 5, 7, 9}, dst.Values())
}

func TestSmart_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(20))
	a, b := randomMatrix(rng, 9, 6), randomMatrix(rng, 6, 4)

	s := MatMul(Mat(a), Mat(b))
	require.True(t, s.Cached())
	first := append([]float64(nil), s.Values()...)

	for i := s.Size() - 1; i >= 0; i-- {
		assert.Equal(t, first[i], s.At(i))
	}
	for r := 0; r < 9; r++ {
		for c := 0; c < 4; c++ {
			assert.Equal(t, first[r*4+c], s.At2(r, c))
		}
	}

	d1 := must.M1(tensor.NewMatrix[float64](9, 4))
	d2 := must.M1(tensor.NewMatrix[float64](9, 4))
	Assign(d1, s)
	Assign(d2, s)
	assert.Equal(t, first, d1.Values())
	assert.Equal(t, d1.Data(), d2.Data())

	// Changing the operands after construction does not change the cache.
	a.Fill(0)
	assert.Equal(t, first, s.Values())
}

func TestSoftmax_ConcreteScenario(t *testing.T) {
	x := tensor.VectorFromSlice([]float64{1, 2, 3, 4, 5})
	want := []float64{0.011656, 0.031684, 0.086128, 0.234121, 0.636408}

	for _, s := range []*Smart[float64]{Softmax(Vec(x)), StableSoftmax(Vec(x))} {
		require.Equal(t, tensor.Shape{5}, s.Shape())
		assert.InDeltaSlice(t, want, s.Values(), 1e-6, s.Kind().String())
		assert.InDelta(t, 1.0, Sum[float64](s), 1e-12)
	}
}

func TestSoftmax_Rows(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	x := must.M1(tensor.NewMatrix[float32](4, 6))
	x.RandomFill(rng, -3, 3)

	s := StableSoftmax(Mat(x))
	assert.Equal(t, tensor.Shape{4, 6}, s.Shape())
	for r := 0; r < 4; r++ {
		var sum float32
		for c := 0; c < 6; c++ {
			sum += s.At2(r, c)
		}
		assert.InDelta(t, 1.0, sum, 1e-5, "row %d", r)
	}
}

func TestSoftmax_StableHandlesLargeInputs(t *testing.T) {
	x := tensor.VectorFromSlice([]float64{1000, 1001})
	s := StableSoftmax(Vec(x))
	assert.InDelta(t, 0.268941, s.At(0), 1e-6)
	assert.InDelta(t, 0.731059, s.At(1), 1e-6)

	naive := Softmax(Vec(x))
	assert.True(t, math.IsNaN(naive.At(0)), "exp overflows without the max shift")
}

func TestSoftmax_Errors(t *testing.T) {
	err := Try(func() { Softmax[float64](Scalar(1.0)) })
	require.ErrorIs(t, err, ErrUnsupportedRank)

	empty := must.M1(tensor.NewMatrix[float64](2, 0))
	err = Try(func() { StableSoftmax(Mat(empty)) })
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestBiasAdd_ConcreteScenario(t *testing.T) {
	m := must.M1(tensor.MatrixFromSlice([]float64{1, 2, 3, 4, 5, 6}, 3, 2))
	bias := tensor.VectorFromSlice([]float64{7, 8})

	dst := must.M1(tensor.NewMatrix[float64](3, 2))
	Assign(dst, BiasAdd(Mat(m), Vec(bias)))
	assert.Equal(t, []float64{8, 10, 10, 12, 12, 14}, dst.Values())
}

func TestBiasAdd_Errors(t *testing.T) {
	m := must.M1(tensor.MatrixFromSlice([]float64{1, 2, 3, 4, 5, 6}, 3, 2))
	bias := tensor.VectorFromSlice([]float64{7, 8, 9})

	err := Try(func() { BiasAdd(Mat(m), Vec(bias)) })
	require.ErrorIs(t, err, ErrShapeMismatch)
	assert.Contains(t, err.Error(), "bias_add")

	err = Try(func() { BiasAdd(Vec(bias), Vec(bias)) })
	require.ErrorIs(t, err, ErrUnsupportedRank)
}

func TestOuter(t *testing.T) {
	u := tensor.VectorFromSlice([]float64{1, 2})
	v := tensor.VectorFromSlice([]float64{3, 4, 5})
	s := Outer(Vec(u), Vec(v))
	assert.Equal(t, tensor.Shape{2, 3}, s.Shape())
	assert.Equal(t, []float64{3, 4, 5, 6, 8, 10}, s.Values())

	lhs := must.M1(tensor.MatrixFromSlice([]float64{1, 2, 3, 4}, 2, 2))
	rhs := must.M1(tensor.MatrixFromSlice([]float64{1, 0, 1, 0, 1, 0}, 2, 3))
	batched := Outer(Mat(lhs), Mat(rhs))
	assert.Equal(t, KindOuter, batched.Kind())
	assert.Equal(t, []float64{1, 3, 1, 2, 4, 2}, batched.Values())

	err := Try(func() { Outer(Vec(u), Mat(rhs)) })
	require.ErrorIs(t, err, ErrShapeMismatch)
	short := must.M1(tensor.MatrixFromSlice([]float64{1, 2, 3}, 1, 3))
	err = Try(func() { Outer(Mat(lhs), Mat(short)) })
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestTranspose(t *testing.T) {
	rng := rand.New(rand.NewSource(22))
	m := randomMatrix(rng, 37, 45)

	s := Transpose(Mat(m))
	assert.Equal(t, tensor.Shape{45, 37}, s.Shape())
	for r := 0; r < 37; r++ {
		for c := 0; c < 45; c++ {
			assert.Equal(t, m.At(r, c), s.At2(c, r))
		}
	}
}

func TestSmartKindString(t *testing.T) {
	assert.Equal(t, "stable_softmax", KindStableSoftmax.String())
	assert.Equal(t, "SmartKind(42)", SmartKind(42).String())
	assert.Equal(t, "/=", CombineDiv.String())
	assert.Equal(t, "Unaligned", ClassUnaligned.String())
}
