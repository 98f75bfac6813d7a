package gemm

import (
	"github.com/born-ml/lazy/internal/parallel"
	"github.com/born-ml/lazy/internal/tensor"
)

// Block sizes of the large kernel.
const (
	LargeInnerBlock = 448 // n, multiple of tensor.Lanes.
	LargeColBlock   = 96  // k
)

// Packed holds the operands of a large multiply laid out for lane-wise dot
// products: lhs rows and rhs columns are both contiguous and zero-padded to
// Stride, a multiple of tensor.Lanes.
//
// A Packed value is read-only once built and is shared by every worker of
// the same multiply.
type Packed[T tensor.Numeric] struct {
	M, N, K int
	Stride  int
	Lhs     []T // M rows of Stride.
	RhsT    []T // K rows of Stride: column j of rhs.
}

// Pack copies lhs[m,n] and the transpose of rhs[n,k] into lane-padded buffers.
func Pack[T tensor.Numeric](lhs, rhs []T, m, n, k int) *Packed[T] {
	stride := tensor.PaddedLen(n)
	p := &Packed[T]{
		M: m, N: n, K: k,
		Stride: stride,
		Lhs:    make([]T, m*stride),
		RhsT:   make([]T, k*stride),
	}
	for i := 0; i < m; i++ {
		copy(p.Lhs[i*stride:i*stride+n], lhs[i*n:(i+1)*n])
	}
	for q := 0; q < n; q++ {
		row := rhs[q*k : (q+1)*k]
		for j, v := range row {
			p.RhsT[j*stride+q] = v
		}
	}
	return p
}

// Large computes out[:, c0:c1] += lhs * rhs[:, c0:c1] from packed operands.
//
// The inner dimension is walked in blocks of LargeInnerBlock and the column
// range in blocks of LargeColBlock. Each output element is an 8-lane dot
// product reduced to a scalar, four rows by two columns at a time.
func Large[T tensor.Numeric](out []T, p *Packed[T], c0, c1 int) {
	const w = tensor.Lanes
	m, k, stride := p.M, p.K, p.Stride
	if len(out) < m*k {
		panic("gemm: output slice too short")
	}
	for p0 := 0; p0 < stride; p0 += LargeInnerBlock {
		p1 := min(p0+LargeInnerBlock, stride)
		for j0 := c0; j0 < c1; j0 += LargeColBlock {
			j1 := min(j0+LargeColBlock, c1)

			i := 0
			for ; i+4 <= m; i += 4 {
				a0 := p.Lhs[i*stride : (i+1)*stride]
				a1 := p.Lhs[(i+1)*stride : (i+2)*stride]
				a2 := p.Lhs[(i+2)*stride : (i+3)*stride]
				a3 := p.Lhs[(i+3)*stride : (i+4)*stride]
				j := j0
				for ; j+2 <= j1; j += 2 {
					b0 := p.RhsT[j*stride : (j+1)*stride]
					b1 := p.RhsT[(j+1)*stride : (j+2)*stride]
					var c00, c01, c10, c11, c20, c21, c30, c31 lane[T]
					for q := p0; q < p1; q += w {
						vb0, vb1 := loadLane(b0[q:]), loadLane(b1[q:])
						va := loadLane(a0[q:])
						c00.mulAdd(&va, &vb0)
						c01.mulAdd(&va, &vb1)
						va = loadLane(a1[q:])
						c10.mulAdd(&va, &vb0)
						c11.mulAdd(&va, &vb1)
						va = loadLane(a2[q:])
						c20.mulAdd(&va, &vb0)
						c21.mulAdd(&va, &vb1)
						va = loadLane(a3[q:])
						c30.mulAdd(&va, &vb0)
						c31.mulAdd(&va, &vb1)
					}
					out[i*k+j] += c00.reduceSum()
					out[i*k+j+1] += c01.reduceSum()
					out[(i+1)*k+j] += c10.reduceSum()
					out[(i+1)*k+j+1] += c11.reduceSum()
					out[(i+2)*k+j] += c20.reduceSum()
					out[(i+2)*k+j+1] += c21.reduceSum()
					out[(i+3)*k+j] += c30.reduceSum()
					out[(i+3)*k+j+1] += c31.reduceSum()
				}
				if j < j1 {
					b := p.RhsT[j*stride : (j+1)*stride]
					var c0, c1, c2, c3 lane[T]
					for q := p0; q < p1; q += w {
						vb := loadLane(b[q:])
						va := loadLane(a0[q:])
						c0.mulAdd(&va, &vb)
						va = loadLane(a1[q:])
						c1.mulAdd(&va, &vb)
						va = loadLane(a2[q:])
						c2.mulAdd(&va, &vb)
						va = loadLane(a3[q:])
						c3.mulAdd(&va, &vb)
					}
					out[i*k+j] += c0.reduceSum()
					out[(i+1)*k+j] += c1.reduceSum()
					out[(i+2)*k+j] += c2.reduceSum()
					out[(i+3)*k+j] += c3.reduceSum()
				}
			}

			for ; i < m; i++ {
				a := p.Lhs[i*stride : (i+1)*stride]
				for j := j0; j < j1; j++ {
					b := p.RhsT[j*stride : (j+1)*stride]
					var c lane[T]
					for q := p0; q < p1; q += w {
						va, vb := loadLane(a[q:]), loadLane(b[q:])
						c.mulAdd(&va, &vb)
					}
					out[i*k+j] += c.reduceSum()
				}
			}
		}
	}
}

// ParallelLarge runs Large with the output columns split across the pool.
// Every worker gets a disjoint contiguous column range and reads the same
// packed operands. A nil pool runs on the calling goroutine.
func ParallelLarge[T tensor.Numeric](pool *parallel.Pool, out []T, p *Packed[T]) {
	if pool == nil {
		Large(out, p, 0, p.K)
		return
	}
	pool.ParallelFor(p.K, func(c0, c1 int) {
		Large(out, p, c0, c1)
	})
}
