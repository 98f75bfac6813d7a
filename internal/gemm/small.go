package gemm

import "github.com/born-ml/lazy/internal/tensor"

// Small computes out[m,k] += lhs[m,n] * rhs[n,k] without blocking.
//
// It vectorizes over the output columns, two lanes and two rows at a time,
// with one-lane, one-row and scalar remainders.
func Small[T tensor.Numeric](out, lhs, rhs []T, m, n, k int) {
	checkSizes(out, lhs, rhs, m, n, k)
	accumulateBlock(out, lhs, rhs, n, k, 0, m, 0, k, 0, n)
}

// accumulateBlock adds lhs[i0:i1, p0:p1] * rhs[p0:p1, j0:j1] into out[i0:i1, j0:j1].
// lhs has row stride n, rhs and out have row stride k.
func accumulateBlock[T tensor.Numeric](out, lhs, rhs []T, n, k, i0, i1, j0, j1, p0, p1 int) {
	const w = tensor.Lanes
	i := i0
	for ; i+2 <= i1; i += 2 {
		a0 := lhs[i*n : (i+1)*n]
		a1 := lhs[(i+1)*n : (i+2)*n]
		o0 := out[i*k : (i+1)*k]
		o1 := out[(i+1)*k : (i+2)*k]

		j := j0
		for ; j+2*w <= j1; j += 2 * w {
			c00, c01 := loadLane(o0[j:]), loadLane(o0[j+w:])
			c10, c11 := loadLane(o1[j:]), loadLane(o1[j+w:])
			for p := p0; p < p1; p++ {
				b := rhs[p*k+j:]
				b0, b1 := loadLane(b), loadLane(b[w:])
				s0, s1 := a0[p], a1[p]
				c00.mulAddScalar(s0, &b0)
				c01.mulAddScalar(s0, &b1)
				c10.mulAddScalar(s1, &b0)
				c11.mulAddScalar(s1, &b1)
			}
			c00.store(o0[j:])
			c01.store(o0[j+w:])
			c10.store(o1[j:])
			c11.store(o1[j+w:])
		}
		for ; j+w <= j1; j += w {
			c0, c1 := loadLane(o0[j:]), loadLane(o1[j:])
			for p := p0; p < p1; p++ {
				b := loadLane(rhs[p*k+j:])
				c0.mulAddScalar(a0[p], &b)
				c1.mulAddScalar(a1[p], &b)
			}
			c0.store(o0[j:])
			c1.store(o1[j:])
		}
		for ; j < j1; j++ {
			var s0, s1 T
			for p := p0; p < p1; p++ {
				b := rhs[p*k+j]
				s0 += a0[p] * b
				s1 += a1[p] * b
			}
			o0[j] += s0
			o1[j] += s1
		}
	}

	for ; i < i1; i++ {
		a := lhs[i*n : (i+1)*n]
		o := out[i*k : (i+1)*k]
		j := j0
		for ; j+2*w <= j1; j += 2 * w {
			c0, c1 := loadLane(o[j:]), loadLane(o[j+w:])
			for p := p0; p < p1; p++ {
				b := rhs[p*k+j:]
				b0, b1 := loadLane(b), loadLane(b[w:])
				c0.mulAddScalar(a[p], &b0)
				c1.mulAddScalar(a[p], &b1)
			}
			c0.store(o[j:])
			c1.store(o[j+w:])
		}
		for ; j+w <= j1; j += w {
			c := loadLane(o[j:])
			for p := p0; p < p1; p++ {
				b := loadLane(rhs[p*k+j:])
				c.mulAddScalar(a[p], &b)
			}
			c.store(o[j:])
		}
		for ; j < j1; j++ {
			var s T
			for p := p0; p < p1; p++ {
				s += a[p] * rhs[p*k+j]
			}
			o[j] += s
		}
	}
}
