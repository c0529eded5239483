//go:build !windows

package discrepancy

import "time"

// TimeStamp is a relative timestamp with the highest precision available on the runtime system.
// Values are only comparable within one run of a program on one machine.
type TimeStamp = time.Time

// SampleTime returns the current TimeStamp. time.Now carries a monotonic reading.
func SampleTime() TimeStamp {
	return time.Now()
}

// DiffTimeStamps returns t_later - t_earlier in nanoseconds (negative if the order is reversed).
func DiffTimeStamps(t_earlier, t_later TimeStamp) int64 {
	return t_later.Sub(t_earlier).Nanoseconds()
}
