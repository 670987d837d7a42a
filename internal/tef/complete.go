package tef

import (
	"maps"
	"time"

	"github.com/roach88/buildlens/internal/timeutil"
)

const kindComplete = "complete event"

// CompleteEvent is an interval on a single thread ("ph":"X").
//
// Name and Category are optional and empty when absent. Args holds every
// argument rendered as a string.
type CompleteEvent struct {
	Name      string
	Category  string
	Start     timeutil.Timestamp
	Duration  time.Duration
	ThreadID  int
	ProcessID int
	Args      map[string]string
}

// ParseCompleteEvent builds a CompleteEvent from a raw record.
// Required fields: ts, dur, tid, pid.
func ParseCompleteEvent(r Raw) (CompleteEvent, error) {
	if missing := r.require(FieldTimestamp, FieldDuration, FieldThreadID, FieldProcessID); len(missing) > 0 {
		return CompleteEvent{}, missingFields(kindComplete, missing)
	}

	ts, err := r.int64Field(kindComplete, FieldTimestamp)
	if err != nil {
		return CompleteEvent{}, err
	}
	dur, err := r.int64Field(kindComplete, FieldDuration)
	if err != nil {
		return CompleteEvent{}, err
	}
	if dur < 0 {
		return CompleteEvent{}, invalidField(kindComplete, FieldDuration, "negative duration %d", dur)
	}
	tid, err := r.int64Field(kindComplete, FieldThreadID)
	if err != nil {
		return CompleteEvent{}, err
	}
	pid, err := r.int64Field(kindComplete, FieldProcessID)
	if err != nil {
		return CompleteEvent{}, err
	}

	return CompleteEvent{
		Name:      r.String(FieldName),
		Category:  r.String(FieldCategory),
		Start:     timeutil.FromMicros(ts),
		Duration:  timeutil.MicrosToDuration(dur),
		ThreadID:  int(tid),
		ProcessID: int(pid),
		Args:      stringArgs(r),
	}, nil
}

// End returns Start + Duration.
func (e CompleteEvent) End() timeutil.Timestamp {
	return e.Start.Add(e.Duration)
}

// Range returns [Start, End].
func (e CompleteEvent) Range() timeutil.Range {
	return timeutil.NewRange(e.Start, e.End())
}

// Arg returns the named argument and whether it was present.
func (e CompleteEvent) Arg(key string) (string, bool) {
	v, ok := e.Args[key]
	return v, ok
}

// CloneArgs returns a copy of the argument map that callers may modify.
func (e CompleteEvent) CloneArgs() map[string]string {
	return maps.Clone(e.Args)
}
