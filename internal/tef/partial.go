package tef

import (
	"fmt"
	"time"

	"github.com/roach88/buildlens/internal/timeutil"
)

// PartialCompleteEvent is a read-only view of a CompleteEvent cropped to a
// sub-interval of its own bounds.
type PartialCompleteEvent struct {
	event CompleteEvent
	start timeutil.Timestamp
	end   timeutil.Timestamp
}

// NewPartialCompleteEvent crops event to [start, end].
//
// The crop must lie within the event: start >= event.Start, end <= event.End()
// and start <= end. Violations are programming errors and panic.
func NewPartialCompleteEvent(event CompleteEvent, start, end timeutil.Timestamp) PartialCompleteEvent {
	if start < event.Start || end > event.End() || start > end {
		panic(fmt.Sprintf("tef: crop %s exceeds event %q %s",
			timeutil.NewRange(start, end), event.Name, event.Range()))
	}
	return PartialCompleteEvent{event: event, start: start, end: end}
}

// CropTo intersects event with window. It returns false when they do not
// overlap.
func CropTo(event CompleteEvent, window timeutil.Range) (PartialCompleteEvent, bool) {
	overlap, ok := event.Range().Intersect(window)
	if !ok {
		return PartialCompleteEvent{}, false
	}
	return NewPartialCompleteEvent(event, overlap.Start, overlap.End), true
}

// Event returns the source event.
func (p PartialCompleteEvent) Event() CompleteEvent { return p.event }

// Start returns the cropped start.
func (p PartialCompleteEvent) Start() timeutil.Timestamp { return p.start }

// End returns the cropped end.
func (p PartialCompleteEvent) End() timeutil.Timestamp { return p.end }

// Duration returns the cropped duration.
func (p PartialCompleteEvent) Duration() time.Duration { return p.end.Sub(p.start) }

// IsCropped reports whether either bound differs from the source event.
func (p PartialCompleteEvent) IsCropped() bool {
	return p.start != p.event.Start || p.end != p.event.End()
}
