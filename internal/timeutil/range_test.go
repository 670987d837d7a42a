package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRange_Contains(t *testing.T) {
	r := NewRange(FromMicros(10_000), FromMicros(20_000))

	tests := []struct {
		name string
		ts   Timestamp
		want bool
	}{
		{"inside", 15_000, true},
		{"at start", 10_000, true},
		{"at end", 20_000, true},
		{"0.9ms before start", 9_100, true},
		{"0.9ms after end", 20_900, true},
		{"exactly tolerance before start", 9_000, true},
		{"exactly tolerance after end", 21_000, true},
		{"1.1ms before start", 8_900, false},
		{"1.1ms after end", 21_100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.ts))
		})
	}
}

func TestRange_NegativeTimestamps(t *testing.T) {
	r := NewRange(FromMicros(-5_000), FromMicros(-1_000))

	assert.True(t, r.Contains(-5_900))
	assert.True(t, r.Contains(-100))
	assert.False(t, r.Contains(100))
	assert.Equal(t, 4*time.Millisecond, r.Duration())
}

func TestRange_ContainsRange(t *testing.T) {
	r := NewRange(1_000, 5_000)

	assert.True(t, r.ContainsRange(NewRange(500, 5_800)))
	assert.False(t, r.ContainsRange(NewRange(500, 6_500)))
}

func TestRange_Intersect(t *testing.T) {
	a := NewRange(0, 10)
	b := NewRange(5, 20)

	got, ok := a.Intersect(b)
	assert.True(t, ok)
	assert.Equal(t, NewRange(5, 10), got)

	_, ok = a.Intersect(NewRange(11, 12))
	assert.False(t, ok)
}

func TestTimestamp_Arithmetic(t *testing.T) {
	ts := FromMicros(-1_500)

	assert.Equal(t, int64(-1_500), ts.Micros())
	assert.Equal(t, FromMicros(500), ts.Add(2*time.Millisecond))
	assert.Equal(t, 2*time.Millisecond, FromMicros(500).Sub(ts))
	assert.True(t, ts.Before(0))
	assert.True(t, FromMicros(1).After(ts))
	assert.Equal(t, -1, ts.Compare(0))
	assert.Equal(t, 0, ts.Compare(ts))
	assert.Equal(t, "-1500us", ts.String())
}

func TestTimestamp_AlmostEquals(t *testing.T) {
	assert.True(t, FromMicros(1_000).AlmostEquals(1_900))
	assert.True(t, FromMicros(1_000).AlmostEquals(0))
	assert.False(t, FromMicros(1_000).AlmostEquals(2_100))
}
