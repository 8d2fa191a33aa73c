package main

import (
	"fmt"
	"io"
	"time"

	"rillint/internal/pipeline"
)

// printStageTimings prints one "<stage> <ms> ms" line per stage that ran.
func printStageTimings(out io.Writer, timings pipeline.Timings) {
	timings.Each(func(stage pipeline.Stage, dur time.Duration) {
		fmt.Fprintf(out, "%s %.1f ms\n", stage, float64(dur)/float64(time.Millisecond))
	})
}
