package tef

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/buildlens/internal/timeutil"
)

func TestParseCompleteEvent(t *testing.T) {
	raw := Raw{
		"name": "Compiling foo.cc",
		"cat":  "action processing",
		"ph":   "X",
		"ts":   json.Number("1500"),
		"dur":  json.Number("2500"),
		"tid":  json.Number("7"),
		"pid":  json.Number("1"),
		"args": map[string]any{"target": "//foo:bar", "retries": json.Number("2")},
	}

	ev, err := ParseCompleteEvent(raw)
	require.NoError(t, err)

	assert.Equal(t, "Compiling foo.cc", ev.Name)
	assert.Equal(t, "action processing", ev.Category)
	assert.Equal(t, timeutil.FromMicros(1500), ev.Start)
	assert.Equal(t, 2500*time.Microsecond, ev.Duration)
	assert.Equal(t, timeutil.FromMicros(4000), ev.End())
	assert.Equal(t, 7, ev.ThreadID)
	assert.Equal(t, 1, ev.ProcessID)
	assert.Equal(t, map[string]string{"target": "//foo:bar", "retries": "2"}, ev.Args)
}

func TestParseCompleteEvent_OptionalFieldsDefault(t *testing.T) {
	ev, err := ParseCompleteEvent(Raw{"ts": 10.0, "dur": 5.0, "tid": 1.0, "pid": 2.0})
	require.NoError(t, err)

	assert.Empty(t, ev.Name)
	assert.Empty(t, ev.Category)
	assert.Empty(t, ev.Args)
	assert.NotNil(t, ev.Args)
}

func TestParseCompleteEvent_ListsEveryMissingField(t *testing.T) {
	_, err := ParseCompleteEvent(Raw{"name": "x", "tid": 1.0, "pid": 1.0})
	require.Error(t, err)

	assert.True(t, IsInvalidInput(err))
	assert.Contains(t, err.Error(), FieldTimestamp)
	assert.Contains(t, err.Error(), FieldDuration)

	var ie *InvalidInputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, []string{FieldTimestamp, FieldDuration}, ie.Missing)
}

func TestParseCompleteEvent_AllRequiredMissing(t *testing.T) {
	_, err := ParseCompleteEvent(Raw{})

	var ie *InvalidInputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, []string{"ts", "dur", "tid", "pid"}, ie.Missing)
}

func TestParseCompleteEvent_NumericStrings(t *testing.T) {
	ev, err := ParseCompleteEvent(Raw{"ts": "100", "dur": "5", "tid": "1", "pid": "2"})
	require.NoError(t, err)
	assert.Equal(t, timeutil.FromMicros(100), ev.Start)
	assert.Equal(t, 5*time.Microsecond, ev.Duration)
	assert.Equal(t, 1, ev.ThreadID)
	assert.Equal(t, 2, ev.ProcessID)

	ev, err = ParseCompleteEvent(Raw{"ts": "-2.75", "dur": "10.9", "tid": 1.0, "pid": 1.0})
	require.NoError(t, err)
	assert.Equal(t, timeutil.FromMicros(-2), ev.Start)
	assert.Equal(t, 10*time.Microsecond, ev.Duration)

	inst, err := ParseInstantEvent(Raw{"cat": "c", "name": "n", "ts": "42"})
	require.NoError(t, err)
	assert.Equal(t, timeutil.FromMicros(42), inst.Timestamp)
}

func TestParseCompleteEvent_BadValues(t *testing.T) {
	tests := []struct {
		name  string
		raw   Raw
		field string
	}{
		{"string timestamp", Raw{"ts": "soon", "dur": 1.0, "tid": 1.0, "pid": 1.0}, FieldTimestamp},
		{"negative duration", Raw{"ts": 1.0, "dur": -1.0, "tid": 1.0, "pid": 1.0}, FieldDuration},
		{"object thread id", Raw{"ts": 1.0, "dur": 1.0, "tid": map[string]any{}, "pid": 1.0}, FieldThreadID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCompleteEvent(tt.raw)
			var ie *InvalidInputError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tt.field, ie.Field)
			assert.Empty(t, ie.Missing)
		})
	}
}

func TestParseCounterEvent_SumsArguments(t *testing.T) {
	ev, err := ParseCounterEvent(Raw{
		"name": "CPU usage (Bazel)",
		"ph":   "C",
		"ts":   json.Number("-200"),
		"args": map[string]any{"cpu": json.Number("1.5"), "system": 2.0, "other": "0.25"},
	})
	require.NoError(t, err)

	assert.Equal(t, "CPU usage (Bazel)", ev.Name)
	assert.Equal(t, timeutil.FromMicros(-200), ev.Timestamp)
	assert.InDelta(t, 3.75, ev.Value, 1e-9)
}

func TestParseCounterEvent_Errors(t *testing.T) {
	_, err := ParseCounterEvent(Raw{"ph": "C"})
	var ie *InvalidInputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, []string{"name", "ts", "args"}, ie.Missing)

	_, err = ParseCounterEvent(Raw{"name": "c", "ts": 1.0, "args": map[string]any{"x": "abc"}})
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "args.x", ie.Field)
}

func TestParseInstantEvent(t *testing.T) {
	ev, err := ParseInstantEvent(Raw{"cat": "build phase marker", "name": "Build artifacts", "ts": json.Number("42")})
	require.NoError(t, err)
	assert.Equal(t, InstantEvent{Category: "build phase marker", Name: "Build artifacts", Timestamp: 42}, ev)

	_, err = ParseInstantEvent(Raw{"name": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cat")
	assert.Contains(t, err.Error(), "ts")
}

func TestPhase_IsInstant(t *testing.T) {
	assert.True(t, PhaseInstant.IsInstant())
	assert.True(t, PhaseInstantLegacy.IsInstant())
	assert.False(t, PhaseComplete.IsInstant())
}

func TestRaw_Int(t *testing.T) {
	r := Raw{"a": json.Number("12"), "b": "7", "c": "x", "d": 3.9}

	v, ok := r.Int("a")
	assert.True(t, ok)
	assert.Equal(t, int64(12), v)

	v, ok = r.Int("b")
	assert.True(t, ok)
	assert.Equal(t, int64(7), v)

	_, ok = r.Int("c")
	assert.False(t, ok)

	v, ok = r.Int("d")
	assert.True(t, ok)
	assert.Equal(t, int64(3), v)

	_, ok = r.Int("missing")
	assert.False(t, ok)
}
