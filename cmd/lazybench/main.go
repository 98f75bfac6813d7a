// Package main provides the lazybench CLI: host information and benchmarks of
// the GEMM kernels and of parallel assignment.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"k8s.io/klog/v2"

	"github.com/born-ml/lazy/internal/expr"
)

const version = "v0.1.0-dev"

var (
	flagWorkers   = flag.Int("workers", runtime.GOMAXPROCS(0), "Number of worker goroutines in the pool.")
	flagThreshold = flag.Int("threshold", expr.DefaultParallelThreshold, "Elements above which an assignment runs in parallel.")
	flagSizes     = flag.String("sizes", "64,160,320", "Comma-separated sizes of the square matrices multiplied by bench.")
	flagElements  = flag.Int("elements", 4<<20, "Length of the vectors used by the assignment benchmark.")
	flagReps      = flag.Int("reps", 5, "Repetitions of every benchmark.")
)

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "lazybench %s - lazy expression engine benchmarks\n\n", version)
	fmt.Fprintln(out, "Usage: lazybench [flags] <command>")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  version    Show version")
	fmt.Fprintln(out, "  info       Show worker pool, padding and CPU features")
	fmt.Fprintln(out, "  bench      Run GEMM and assignment benchmarks")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Flags:")
	flag.PrintDefaults()
}

func main() {
	klog.InitFlags(nil)
	flag.Usage = usage
	flag.Parse()
	defer klog.Flush()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	switch flag.Arg(0) {
	case "version":
		fmt.Printf("lazybench %s\n", version)
	case "info":
		printInfo(os.Stdout)
	case "bench":
		sizes, err := parseSizes(*flagSizes)
		if err != nil {
			klog.Fatalf("invalid -sizes: %+v", err)
		}
		opts := benchOptions{
			workers:   *flagWorkers,
			threshold: *flagThreshold,
			sizes:     sizes,
			elements:  *flagElements,
			reps:      *flagReps,
		}
		if err := opts.validate(); err != nil {
			klog.Fatalf("%+v", err)
		}
		printResults(os.Stdout, runBench(opts, os.Stderr))
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}
}
