package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"golang.org/x/sys/cpu"

	"github.com/born-ml/lazy/internal/gemm"
	"github.com/born-ml/lazy/internal/tensor"
)

var (
	normalStyle       = lipgloss.NewStyle().Padding(0, 1)
	rightAlignedStyle = lipgloss.NewStyle().Align(lipgloss.Right).Padding(0, 1)
	headerStyle       = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableBorderColor  = "#705090"
)

// newTable returns a table in the lazybench style: first column right aligned.
func newTable() *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(tableBorderColor))).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == lgtable.HeaderRow:
				return headerStyle
			case col == 0:
				return rightAlignedStyle
			default:
				return normalStyle
			}
		})
}

// cpuFeatures lists the SIMD features relevant to the kernels.
func cpuFeatures() []string {
	var features []string
	add := func(name string, has bool) {
		if has {
			features = append(features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add("sse4.1", cpu.X86.HasSSE41)
		add("avx", cpu.X86.HasAVX)
		add("avx2", cpu.X86.HasAVX2)
		add("fma", cpu.X86.HasFMA)
		add("avx512f", cpu.X86.HasAVX512F)
	case "arm64":
		add("asimd", cpu.ARM64.HasASIMD)
		add("fphp", cpu.ARM64.HasFPHP)
		add("sve", cpu.ARM64.HasSVE)
	}
	if len(features) == 0 {
		features = append(features, "none detected")
	}
	return features
}

func printInfo(w io.Writer) {
	t := newTable()
	t.Row("Version", version)
	t.Row("Go", runtime.Version())
	t.Row("Platform", runtime.GOOS+"/"+runtime.GOARCH)
	t.Row("CPUs", fmt.Sprint(runtime.NumCPU()))
	t.Row("Workers", fmt.Sprint(*flagWorkers))
	t.Row("Parallel threshold", humanize.Comma(int64(*flagThreshold))+" elements")
	t.Row("Lane width", fmt.Sprintf("%d elements (%s of float32)", tensor.Lanes,
		humanize.Bytes(uint64(tensor.Lanes*tensor.Float32.Size()))))
	t.Row("GEMM small", fmt.Sprintf("lhs rows*cols < %s", humanize.Comma(gemm.SmallLimit)))
	t.Row("GEMM medium", fmt.Sprintf("lhs rows*cols < %s", humanize.Comma(gemm.MediumLimit)))
	t.Row("CPU features", fmt.Sprint(cpuFeatures()))
	fmt.Fprintln(w, t.String())
}
