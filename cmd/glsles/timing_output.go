package main

import (
	"fmt"
	"io"

	"glsles/internal/observ"
)

func printTimings(out io.Writer, report observ.Report) {
	if out == nil || len(report.Phases) == 0 {
		return
	}
	fmt.Fprintln(out, "timings:") //nolint:errcheck
	for _, p := range report.Phases {
		fmt.Fprintf(out, "  %-12s %8.2f ms\n", p.Name, p.DurationMS) //nolint:errcheck
	}
	fmt.Fprintf(out, "  %-12s %8.2f ms\n", "total", report.TotalMS) //nolint:errcheck
}
