package main

import (
	"fmt"
	"runtime"
	"text/tabwriter"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-mmcc/internal/fftplan"
)

func newInfoCmd(a *app) *cobra.Command {
	var sizes []int

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show SIMD features and FFT backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printInfo(a, sizes)
		},
	}
	cmd.Flags().IntSliceVar(&sizes, "sizes", []int{512, 1000, 8002}, "FFT lengths to report")
	return cmd
}

func printInfo(a *app, sizes []int) error {
	f := cpu.DetectFeatures()

	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Architecture\t%s\n", runtime.GOARCH)
	fmt.Fprintf(tw, "SSE2\t%v\n", f.HasSSE2)
	fmt.Fprintf(tw, "AVX\t%v\n", f.HasAVX)
	fmt.Fprintf(tw, "AVX2\t%v\n", f.HasAVX2)
	fmt.Fprintf(tw, "AVX-512\t%v\n", f.HasAVX512)
	fmt.Fprintf(tw, "NEON\t%v\n", f.HasNEON)
	fmt.Fprintf(tw, "Workers\t%d\n", runtime.GOMAXPROCS(0))
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "FFT length\tBackend")
	for _, n := range sizes {
		p, err := fftplan.New(n)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%d\t%s\n", n, p.Backend())
	}
	return tw.Flush()
}
