package main

import (
	"fmt"
	"os"
	"time"
)

// RenderStats tracks build and render performance metrics
type RenderStats struct {
	// Timing
	BuildTime  time.Duration
	RenderTime time.Duration

	// Scene stats
	Primitives int
	Instances  int
	BvhNodes   int
	TlasNodes  int

	// Render stats
	SamplesDone int
	Workers     int
}

// Print writes a summary to standard error
func (s *RenderStats) Print() {
	fmt.Fprintf(os.Stderr, "Build time:  %v\n", s.BuildTime)
	fmt.Fprintf(os.Stderr, "Render time: %v\n", s.RenderTime)
	if s.Primitives > 0 {
		fmt.Fprintf(os.Stderr, "Primitives:  %d (%d BVH nodes)\n", s.Primitives, s.BvhNodes)
	}
	if s.Instances > 0 {
		fmt.Fprintf(os.Stderr, "Instances:   %d (%d TLAS nodes)\n", s.Instances, s.TlasNodes)
	}
	fmt.Fprintf(os.Stderr, "Samples:     %d across %d workers\n", s.SamplesDone, s.Workers)
}
