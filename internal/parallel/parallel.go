// Package parallel provides the fork-join worker pool used by assignments and GEMM.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior of For.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.GOMAXPROCS(0)
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64, // Typical cache line aware chunk.
	}
}

// For executes f(i) for i in [0, n) on the default pool.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunkSize || cfg.NumWorkers <= 1 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunks := min(cfg.NumWorkers, (n+cfg.MinChunkSize-1)/cfg.MinChunkSize)
	Default().Split(n, chunks, func(start, end int) {
		for i := start; i < end; i++ {
			f(i)
		}
	})
}

var (
	defaultPool     *Pool
	defaultPoolOnce sync.Once
)

// Default returns the process-wide pool, sized to runtime.GOMAXPROCS(0).
// It is created on first use and never closed.
func Default() *Pool {
	defaultPoolOnce.Do(func() {
		defaultPool = New(0)
	})
	return defaultPool
}
