package tef

import (
	"github.com/roach88/buildlens/internal/timeutil"
)

const kindCounter = "counter event"

// CounterEvent is one sample of a counter series ("ph":"C").
//
// A counter record may carry several named values in its args. They are
// summed into the single Value; per-key breakdowns are not retained.
type CounterEvent struct {
	Name      string
	Timestamp timeutil.Timestamp
	Value     float64
}

// ParseCounterEvent builds a CounterEvent from a raw record.
// Required fields: name, ts, args.
func ParseCounterEvent(r Raw) (CounterEvent, error) {
	if missing := r.require(FieldName, FieldTimestamp, FieldArgs); len(missing) > 0 {
		return CounterEvent{}, missingFields(kindCounter, missing)
	}

	ts, err := r.int64Field(kindCounter, FieldTimestamp)
	if err != nil {
		return CounterEvent{}, err
	}

	args, ok := r[FieldArgs].(map[string]any)
	if !ok {
		return CounterEvent{}, invalidField(kindCounter, FieldArgs, "not an object")
	}

	var sum float64
	for k, v := range args {
		f, err := toFloat(v)
		if err != nil {
			return CounterEvent{}, invalidField(kindCounter, FieldArgs+"."+k, "%v", err)
		}
		sum += f
	}

	return CounterEvent{
		Name:      r.String(FieldName),
		Timestamp: timeutil.FromMicros(ts),
		Value:     sum,
	}, nil
}
