package tef

import (
	"github.com/roach88/buildlens/internal/timeutil"
)

const kindInstant = "instant event"

// InstantEvent is a zero-duration marker ("ph":"i" or "I").
type InstantEvent struct {
	Category  string
	Name      string
	Timestamp timeutil.Timestamp
}

// ParseInstantEvent builds an InstantEvent from a raw record.
// Required fields: cat, name, ts.
func ParseInstantEvent(r Raw) (InstantEvent, error) {
	if missing := r.require(FieldCategory, FieldName, FieldTimestamp); len(missing) > 0 {
		return InstantEvent{}, missingFields(kindInstant, missing)
	}

	ts, err := r.int64Field(kindInstant, FieldTimestamp)
	if err != nil {
		return InstantEvent{}, err
	}

	return InstantEvent{
		Category:  r.String(FieldCategory),
		Name:      r.String(FieldName),
		Timestamp: timeutil.FromMicros(ts),
	}, nil
}
