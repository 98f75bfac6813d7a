package gemm

import "github.com/born-ml/lazy/internal/tensor"

// Block sizes of the medium kernel.
const (
	MediumInnerBlock = 128 // n
	MediumRowBlock   = 64  // m
	MediumColBlock   = 128 // k
)

// Medium computes out[m,k] = lhs[m,n] * rhs[n,k] with three-level blocking.
//
// Every output block is zeroed and then accumulated across the inner
// dimension blocks, so out does not need to be zeroed by the caller (it
// usually is anyway).
func Medium[T tensor.Numeric](out, lhs, rhs []T, m, n, k int) {
	checkSizes(out, lhs, rhs, m, n, k)
	for i0 := 0; i0 < m; i0 += MediumRowBlock {
		i1 := min(i0+MediumRowBlock, m)
		for j0 := 0; j0 < k; j0 += MediumColBlock {
			j1 := min(j0+MediumColBlock, k)
			for i := i0; i < i1; i++ {
				clear(out[i*k+j0 : i*k+j1])
			}
			for p0 := 0; p0 < n; p0 += MediumInnerBlock {
				p1 := min(p0+MediumInnerBlock, n)
				accumulateBlock(out, lhs, rhs, n, k, i0, i1, j0, j1, p0, p1)
			}
		}
	}
}
