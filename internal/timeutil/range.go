package timeutil

import (
	"fmt"
	"time"
)

// Tolerance is the margin applied to both bounds of a Range when testing
// containment.
const Tolerance = time.Millisecond

// Range is a closed interval [Start, End] of trace timestamps.
type Range struct {
	Start Timestamp
	End   Timestamp
}

// NewRange creates a Range. Bounds are stored as given; an inverted range
// contains only timestamps within Tolerance of both bounds.
func NewRange(start, end Timestamp) Range {
	return Range{Start: start, End: end}
}

// Contains reports whether t lies in [Start-Tolerance, End+Tolerance].
func (r Range) Contains(t Timestamp) bool {
	tol := Timestamp(DurationToMicros(Tolerance))
	return t >= r.Start-tol && t <= r.End+tol
}

// ContainsRange reports whether both bounds of other are contained in r.
func (r Range) ContainsRange(other Range) bool {
	return r.Contains(other.Start) && r.Contains(other.End)
}

// Duration returns End-Start.
func (r Range) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Intersect returns the overlap of r and other and whether it is non-empty.
// Tolerance is not applied.
func (r Range) Intersect(other Range) (Range, bool) {
	start := Max(r.Start, other.Start)
	end := Min(r.End, other.End)
	if start > end {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s]", r.Start, r.End)
}
