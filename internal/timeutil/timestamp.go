package timeutil

import (
	"fmt"
	"time"
)

// Timestamp is a signed count of microseconds relative to the trace origin.
type Timestamp int64

// FromMicros creates a Timestamp from a microsecond offset.
func FromMicros(micros int64) Timestamp {
	return Timestamp(micros)
}

// Micros returns the microsecond offset from the trace origin.
func (t Timestamp) Micros() int64 {
	return int64(t)
}

// Add returns t shifted by d. Sub-microsecond parts of d are truncated.
func (t Timestamp) Add(d time.Duration) Timestamp {
	return t + Timestamp(DurationToMicros(d))
}

// Sub returns the duration t-u.
func (t Timestamp) Sub(u Timestamp) time.Duration {
	return MicrosToDuration(int64(t - u))
}

// Before reports whether t is strictly before u.
func (t Timestamp) Before(u Timestamp) bool {
	return t < u
}

// After reports whether t is strictly after u.
func (t Timestamp) After(u Timestamp) bool {
	return t > u
}

// Compare returns -1, 0 or +1 depending on whether t is before, equal to or
// after u. Suitable for slices.SortFunc.
func (t Timestamp) Compare(u Timestamp) int {
	switch {
	case t < u:
		return -1
	case t > u:
		return 1
	default:
		return 0
	}
}

// AlmostEquals reports whether t and u are at most Tolerance apart.
func (t Timestamp) AlmostEquals(u Timestamp) bool {
	diff := t - u
	if diff < 0 {
		diff = -diff
	}
	return int64(diff) <= DurationToMicros(Tolerance)
}

// String renders the timestamp as a signed microsecond offset, e.g. "-1500us".
func (t Timestamp) String() string {
	return fmt.Sprintf("%dus", int64(t))
}

// Min returns the earlier of t and u.
func Min(t, u Timestamp) Timestamp {
	if u < t {
		return u
	}
	return t
}

// Max returns the later of t and u.
func Max(t, u Timestamp) Timestamp {
	if u > t {
		return u
	}
	return t
}
