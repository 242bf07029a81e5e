package utils

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Verbose controls whether timing statistics are printed.
var Verbose = true

// Output is the writer where timing statistics are printed.
var Output io.Writer = os.Stdout

// TimingStats accumulates the duration of training runs.
type TimingStats struct {
	Runs       int
	Epochs     int
	Steps      int
	TotalTime  time.Duration
	LastTime   time.Duration
	LongestRun time.Duration
}

// Record adds one training run of epochs passes over samples samples.
func (s *TimingStats) Record(epochs, samples int, took time.Duration) {
	s.Runs++
	s.Epochs += epochs
	s.Steps += epochs * samples
	s.TotalTime += took
	s.LastTime = took
	if took > s.LongestRun {
		s.LongestRun = took
	}
}

// AverageRun is zero before the first Record.
func (s *TimingStats) AverageRun() time.Duration {
	if s.Runs == 0 {
		return 0
	}
	return s.TotalTime / time.Duration(s.Runs)
}

// PerStep is the average time of one back-propagation step.
func (s *TimingStats) PerStep() time.Duration {
	if s.Steps == 0 {
		return 0
	}
	return s.TotalTime / time.Duration(s.Steps)
}

// PrintTimingStats does nothing when Verbose is false.
func PrintTimingStats(stats *TimingStats) {
	if !Verbose {
		return
	}
	fmt.Fprintln(Output, "\n=== TIMING STATISTICS ===")
	fmt.Fprintf(Output, "Training runs: %d\n", stats.Runs)
	fmt.Fprintf(Output, "Total training time: %v\n", stats.TotalTime)
	fmt.Fprintf(Output, "Last run: %v\n", stats.LastTime)
	fmt.Fprintf(Output, "Average run: %v\n", stats.AverageRun())
	fmt.Fprintf(Output, "Longest run: %v\n", stats.LongestRun)
	fmt.Fprintf(Output, "Average step: %.3fµs\n", DurationUS(stats.PerStep()))
}

// DurationUS converts any time.Duration to micro-seconds as float64
func DurationUS(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1_000.0
}
