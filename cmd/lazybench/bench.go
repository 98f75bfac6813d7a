package main

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"

	"github.com/born-ml/lazy/internal/expr"
	"github.com/born-ml/lazy/internal/gemm"
	"github.com/born-ml/lazy/internal/parallel"
	"github.com/born-ml/lazy/internal/tensor"
)

type benchOptions struct {
	workers   int
	threshold int
	sizes     []int
	elements  int
	reps      int
}

func (o benchOptions) validate() error {
	switch {
	case o.workers < 1:
		return errors.Errorf("-workers must be at least 1, got %d", o.workers)
	case o.threshold < 0:
		return errors.Errorf("-threshold must not be negative, got %d", o.threshold)
	case o.elements < 1:
		return errors.Errorf("-elements must be at least 1, got %d", o.elements)
	case o.reps < 1:
		return errors.Errorf("-reps must be at least 1, got %d", o.reps)
	}
	return nil
}

// benchResult is one row of the results table.
type benchResult struct {
	name    string
	kernel  string
	size    string
	perOp   time.Duration
	rate    float64 // units per second
	unit    string
	maxDiff float64
}

// parseSizes parses a comma-separated list of positive matrix sizes.
func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.Wrapf(err, "size %q", part)
		}
		if n <= 0 {
			return nil, errors.Errorf("size %d must be positive", n)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, errors.New("no sizes given")
	}
	return sizes, nil
}

// runBench runs the matmul benchmark for every size, then the assignment
// benchmark sequentially and on the pool. Progress goes to progress.
func runBench(opts benchOptions, progress io.Writer) []benchResult {
	pool := parallel.New(opts.workers)
	defer pool.Close()
	cfg := expr.Config{ParallelThreshold: opts.threshold, Pool: pool}

	steps := opts.reps * (len(opts.sizes) + 2)
	bar := progressbar.NewOptions(steps,
		progressbar.OptionSetDescription("bench"),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("runs"),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionClearOnFinish(),
	)

	rng := rand.New(rand.NewSource(1))
	var results []benchResult
	for _, n := range opts.sizes {
		results = append(results, benchMatMul(cfg, rng, n, opts.reps, bar))
	}
	seq := expr.Config{ParallelThreshold: math.MaxInt}
	results = append(results,
		benchAssign("assign", seq, rng, opts.elements, opts.reps, bar),
		benchAssign(fmt.Sprintf("assign x%d", opts.workers), cfg, rng, opts.elements, opts.reps, bar))
	_ = bar.Finish()
	return results
}

func benchMatMul(cfg expr.Config, rng *rand.Rand, n, reps int, bar *progressbar.ProgressBar) benchResult {
	a := must.M1(tensor.NewMatrix[float32](n, n))
	b := must.M1(tensor.NewMatrix[float32](n, n))
	a.RandomFill(rng, -1, 1)
	b.RandomFill(rng, -1, 1)

	var s *expr.Smart[float32]
	start := time.Now()
	for range reps {
		s = expr.MatMulWith(cfg, expr.Mat(a), expr.Mat(b))
		_ = bar.Add(1)
	}
	elapsed := time.Since(start)

	want := make([]float32, n*n)
	gemm.Naive(want, a.Values(), b.Values(), n, n, n)
	var maxDiff float64
	for i, v := range s.Values() {
		maxDiff = math.Max(maxDiff, math.Abs(float64(v-want[i])))
	}

	perOp := elapsed / time.Duration(reps)
	klog.V(1).Infof("matmul %dx%d: %s per op with the %s kernel", n, n, perOp, s.Kernel())
	return benchResult{
		name:    "matmul",
		kernel:  s.Kernel().String(),
		size:    fmt.Sprintf("%dx%d", n, n),
		perOp:   perOp,
		rate:    2 * float64(n) * float64(n) * float64(n) / perOp.Seconds(),
		unit:    "FLOP/s",
		maxDiff: maxDiff,
	}
}

func benchAssign(name string, cfg expr.Config, rng *rand.Rand, n, reps int, bar *progressbar.ProgressBar) benchResult {
	a := must.M1(tensor.NewVector[float32](n))
	b := must.M1(tensor.NewVector[float32](n))
	dst := must.M1(tensor.NewVector[float32](n))
	a.RandomFill(rng, -1, 1)
	b.RandomFill(rng, -1, 1)

	start := time.Now()
	for range reps {
		// dst = a*b + a - 0.5
		expr.AssignWith(cfg, expr.CombineReplace, dst,
			expr.AddScalar(expr.Add(expr.Mul(expr.Vec(a), expr.Vec(b)), expr.Vec(a)), -0.5))
		_ = bar.Add(1)
	}
	elapsed := time.Since(start)

	var maxDiff float64
	for i, v := range dst.Values() {
		want := a.At(i)*b.At(i) + a.At(i) - 0.5
		maxDiff = math.Max(maxDiff, math.Abs(float64(v-want)))
	}

	perOp := elapsed / time.Duration(reps)
	return benchResult{
		name:    name,
		kernel:  "-",
		size:    humanize.Comma(int64(n)),
		perOp:   perOp,
		rate:    float64(n) / perOp.Seconds(),
		unit:    "elem/s",
		maxDiff: maxDiff,
	}
}

func printResults(w io.Writer, results []benchResult) {
	t := newTable().Headers("benchmark", "kernel", "size", "time/op", "rate", "max |diff|")
	for _, r := range results {
		t.Row(r.name, r.kernel, r.size, r.perOp.String(), humanize.SIWithDigits(r.rate, 2, r.unit),
			strconv.FormatFloat(r.maxDiff, 'g', 3, 64))
	}
	fmt.Fprintln(w, t.String())
}
