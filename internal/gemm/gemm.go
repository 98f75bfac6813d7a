// Package gemm implements the dense matrix multiplication kernels.
//
// All kernels compute out[m,k] += lhs[m,n] * rhs[n,k] over row-major,
// unpadded operands. Three regimes are picked by the size of lhs:
//
//	n*m <  100*100            Small: no blocking, 2 lanes x 2 rows unrolled.
//	n*m <  200*200            Medium: blocks of 128 (n) x 64 (m) x 128 (k).
//	n*m >= 200*200            Large: packed operands, 8-lane dot products,
//	                          4 rows x 2 columns unrolled, columns split
//	                          across the worker pool.
package gemm

import (
	"fmt"

	"k8s.io/klog/v2"

	"github.com/born-ml/lazy/internal/parallel"
	"github.com/born-ml/lazy/internal/tensor"
)

// Kernel identifies one of the GEMM regimes.
type Kernel int

// Kernel regimes.
const (
	KernelSmall Kernel = iota
	KernelMedium
	KernelLarge
)

// String returns the regime name.
func (k Kernel) String() string {
	switch k {
	case KernelSmall:
		return "small"
	case KernelMedium:
		return "medium"
	case KernelLarge:
		return "large"
	default:
		return fmt.Sprintf("Kernel(%d)", int(k))
	}
}

// Regime thresholds on n*m.
const (
	SmallLimit  = 100 * 100
	MediumLimit = 200 * 200
)

// Select picks the kernel for an lhs of m rows and n columns.
func Select(m, n int) Kernel {
	switch size := n * m; {
	case size < SmallLimit:
		return KernelSmall
	case size < MediumLimit:
		return KernelMedium
	default:
		return KernelLarge
	}
}

// Multiply computes out[m,k] += lhs[m,n] * rhs[n,k] with the kernel chosen by
// Select. The large kernel splits its columns across pool; pass nil to stay
// on the calling goroutine. out must be zeroed by the caller.
//
// It returns the kernel that ran.
func Multiply[T tensor.Numeric](pool *parallel.Pool, out, lhs, rhs []T, m, n, k int) Kernel {
	checkSizes(out, lhs, rhs, m, n, k)
	kernel := Select(m, n)
	klog.V(2).Infof("gemm: [%d, %d] x [%d, %d] using %s kernel", m, n, n, k, kernel)
	switch kernel {
	case KernelSmall:
		Small(out, lhs, rhs, m, n, k)
	case KernelMedium:
		Medium(out, lhs, rhs, m, n, k)
	default:
		ParallelLarge(pool, out, Pack(lhs, rhs, m, n, k))
	}
	return kernel
}

// Naive computes out[m,k] = lhs[m,n] * rhs[n,k] with the textbook triple loop.
// It is the reference the kernels are checked against.
func Naive[T tensor.Numeric](out, lhs, rhs []T, m, n, k int) {
	checkSizes(out, lhs, rhs, m, n, k)
	for i := 0; i < m; i++ {
		for j := 0; j < k; j++ {
			var sum T
			for p := 0; p < n; p++ {
				sum += lhs[i*n+p] * rhs[p*k+j]
			}
			out[i*k+j] = sum
		}
	}
}

func checkSizes[T tensor.Numeric](out, lhs, rhs []T, m, n, k int) {
	if len(lhs) < m*n {
		panic(fmt.Sprintf("gemm: lhs has %d elements, [%d, %d] needs %d", len(lhs), m, n, m*n))
	}
	if len(rhs) < n*k {
		panic(fmt.Sprintf("gemm: rhs has %d elements, [%d, %d] needs %d", len(rhs), n, k, n*k))
	}
	if len(out) < m*k {
		panic(fmt.Sprintf("gemm: out has %d elements, [%d, %d] needs %d", len(out), m, k, m*k))
	}
}
