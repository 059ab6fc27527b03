// Package timex holds time helpers shared by firmware and host code.
package timex

import "time"

// NowMs returns Unix milliseconds, the timestamp unit on the bus.
func NowMs() int64 { return time.Now().UnixMilli() }

// PeriodFromHz returns the nanosecond period of freqHz, rounded to the
// nearest nanosecond. Zero is treated as 1 Hz.
func PeriodFromHz(freqHz uint32) uint64 {
	if freqHz == 0 {
		freqHz = 1
	}
	hz := uint64(freqHz)
	return (uint64(time.Second) + hz/2) / hz
}
