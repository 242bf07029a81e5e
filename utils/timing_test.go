package utils

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationUS(t *testing.T) {
	d := 1234*time.Microsecond + 567*time.Nanosecond
	got := DurationUS(d)
	if math.Abs(got-1234.567) > 0.001 {
		t.Fatalf("want 1234.567µs, got %.3f", got)
	}
}

func TestTimingStatsRecord(t *testing.T) {
	var stats TimingStats
	assert.Zero(t, stats.AverageRun())
	assert.Zero(t, stats.PerStep())

	stats.Record(100, 24, 2*time.Second)
	stats.Record(100, 1, 400*time.Millisecond)

	assert.Equal(t, 2, stats.Runs)
	assert.Equal(t, 200, stats.Epochs)
	assert.Equal(t, 2500, stats.Steps)
	assert.Equal(t, 2400*time.Millisecond, stats.TotalTime)
	assert.Equal(t, 400*time.Millisecond, stats.LastTime)
	assert.Equal(t, 2*time.Second, stats.LongestRun)
	assert.Equal(t, 1200*time.Millisecond, stats.AverageRun())
	assert.Equal(t, 960*time.Microsecond, stats.PerStep())
}

func TestPrintTimingStats(t *testing.T) {
	oldOut, oldVerbose := Output, Verbose
	defer func() { Output, Verbose = oldOut, oldVerbose }()

	buf := &bytes.Buffer{}
	Output = buf
	stats := &TimingStats{}
	stats.Record(10, 1, time.Millisecond)

	Verbose = false
	PrintTimingStats(stats)
	assert.Empty(t, buf.String())

	Verbose = true
	PrintTimingStats(stats)
	assert.Contains(t, buf.String(), "Training runs: 1")
	assert.Contains(t, buf.String(), "Average step: 100.000µs")
}
