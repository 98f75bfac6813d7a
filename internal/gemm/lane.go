package gemm

import "github.com/born-ml/lazy/internal/tensor"

// lane is one SIMD-width register worth of values. Operations on it are
// written lane-wise so the compiler can keep the accumulators in registers.
type lane[T tensor.Numeric] [tensor.Lanes]T

func loadLane[T tensor.Numeric](src []T) (v lane[T]) {
	_ = src[tensor.Lanes-1]
	v[0], v[1], v[2], v[3] = src[0], src[1], src[2], src[3]
	v[4], v[5], v[6], v[7] = src[4], src[5], src[6], src[7]
	return
}

func (v *lane[T]) store(dst []T) {
	_ = dst[tensor.Lanes-1]
	dst[0], dst[1], dst[2], dst[3] = v[0], v[1], v[2], v[3]
	dst[4], dst[5], dst[6], dst[7] = v[4], v[5], v[6], v[7]
}

// mulAddScalar computes v += s * x lane-wise.
func (v *lane[T]) mulAddScalar(s T, x *lane[T]) {
	v[0] += s * x[0]
	v[1] += s * x[1]
	v[2] += s * x[2]
	v[3] += s * x[3]
	v[4] += s * x[4]
	v[5] += s * x[5]
	v[6] += s * x[6]
	v[7] += s * x[7]
}

// mulAdd computes v += x * y lane-wise.
func (v *lane[T]) mulAdd(x, y *lane[T]) {
	v[0] += x[0] * y[0]
	v[1] += x[1] * y[1]
	v[2] += x[2] * y[2]
	v[3] += x[3] * y[3]
	v[4] += x[4] * y[4]
	v[5] += x[5] * y[5]
	v[6] += x[6] * y[6]
	v[7] += x[7] * y[7]
}

// reduceSum sums the 8 lanes pairwise into a scalar.
func (v *lane[T]) reduceSum() T {
	return ((v[0] + v[4]) + (v[1] + v[5])) + ((v[2] + v[6]) + (v[3] + v[7]))
}
