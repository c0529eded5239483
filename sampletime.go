package discrepancy

import (
	"math"
	"sync"
)

const iterationsForCalibration = 1_000_000

var (
	precisionOnce sync.Once
	precision     int64
)

// GetSampleTimePrecision returns the smallest non-zero difference between two consecutive
// SampleTime() calls in nanoseconds. It is measured once and cached.
// Typical values are 100ns on Windows and 20ns to 100ns on Linux and macOS.
func GetSampleTimePrecision() int64 {
	precisionOnce.Do(func() { precision = calcMinTimeSample() })
	return precision
}

func calcMinTimeSample() int64 {
	minDiff := int64(math.MaxInt64)
	for range iterationsForCalibration {
		t1 := SampleTime()
		t2 := SampleTime()
		if diff := DiffTimeStamps(t1, t2); diff > 0 && diff < minDiff {
			minDiff = diff
		}
	}
	return minDiff
}

// MeasureNanos runs fn once and returns its wall-clock duration in nanoseconds.
func MeasureNanos(fn func()) int64 {
	t1 := SampleTime()
	fn()
	t2 := SampleTime()
	return DiffTimeStamps(t1, t2)
}
