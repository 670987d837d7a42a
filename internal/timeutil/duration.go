package timeutil

import (
	"fmt"
	"math"
	"time"
)

// Largest microsecond counts a time.Duration can hold, about 106 days.
const (
	MaxMicros = int64(math.MaxInt64 / int64(time.Microsecond))
	MinMicros = int64(math.MinInt64 / int64(time.Microsecond))
)

// MicrosToDuration converts a microsecond count to a time.Duration.
// The conversion is exact within [MinMicros, MaxMicros]:
// DurationToMicros(MicrosToDuration(v)) == v. Counts outside that range
// saturate to the largest or smallest Duration.
func MicrosToDuration(micros int64) time.Duration {
	switch {
	case micros > MaxMicros:
		return time.Duration(math.MaxInt64)
	case micros < MinMicros:
		return time.Duration(math.MinInt64)
	}
	return time.Duration(micros) * time.Microsecond
}

// DurationToMicros converts d to whole microseconds, truncating toward zero.
func DurationToMicros(d time.Duration) int64 {
	return int64(d / time.Microsecond)
}

// FormatDuration renders d for humans.
//
// The thresholds are evaluated top to bottom:
//
//	d >= 1h   -> "1h 2m 3s"
//	d >= 1m   -> "2m 3s"
//	d >= 10s  -> "15s"
//	otherwise -> "9999ms"
//
// Durations between one and ten seconds are intentionally rendered in
// milliseconds.
func FormatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		return fmt.Sprintf("%dh %dm %ds", int64(d/time.Hour), minutesPart(d), secondsPart(d))
	case d >= time.Minute:
		return fmt.Sprintf("%dm %ds", int64(d/time.Minute), secondsPart(d))
	case d >= 10*time.Second:
		return fmt.Sprintf("%ds", int64(d/time.Second))
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}

func minutesPart(d time.Duration) int64 {
	return int64(d/time.Minute) % 60
}

func secondsPart(d time.Duration) int64 {
	return int64(d/time.Second) % 60
}

// PercentOf returns 100 * partial / base.
//
// A zero base is a caller bug and panics.
func PercentOf(partial, base time.Duration) float64 {
	if base == 0 {
		panic("timeutil: PercentOf called with zero base duration")
	}
	return 100 * float64(partial) / float64(base)
}
