package tef

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/buildlens/internal/timeutil"
)

func sampleEvent() CompleteEvent {
	return CompleteEvent{Name: "action", Start: 1_000, Duration: 9 * time.Millisecond, ThreadID: 3, ProcessID: 1}
}

func TestNewPartialCompleteEvent(t *testing.T) {
	ev := sampleEvent()

	p := NewPartialCompleteEvent(ev, 2_000, 5_000)
	assert.Equal(t, timeutil.Timestamp(2_000), p.Start())
	assert.Equal(t, timeutil.Timestamp(5_000), p.End())
	assert.Equal(t, 3*time.Millisecond, p.Duration())
	assert.True(t, p.IsCropped())
	assert.Equal(t, ev.Name, p.Event().Name)

	whole := NewPartialCompleteEvent(ev, ev.Start, ev.End())
	assert.False(t, whole.IsCropped())
}

func TestNewPartialCompleteEvent_OutsideBoundsPanics(t *testing.T) {
	ev := sampleEvent()

	assert.Panics(t, func() { NewPartialCompleteEvent(ev, 999, 5_000) })
	assert.Panics(t, func() { NewPartialCompleteEvent(ev, 2_000, 10_001) })
	assert.Panics(t, func() { NewPartialCompleteEvent(ev, 5_000, 2_000) })
}

func TestCropTo(t *testing.T) {
	ev := sampleEvent()

	p, ok := CropTo(ev, timeutil.NewRange(0, 4_000))
	assert.True(t, ok)
	assert.Equal(t, ev.Start, p.Start())
	assert.Equal(t, timeutil.Timestamp(4_000), p.End())
	assert.True(t, p.IsCropped())

	p, ok = CropTo(ev, timeutil.NewRange(-5_000, 50_000))
	assert.True(t, ok)
	assert.False(t, p.IsCropped())

	_, ok = CropTo(ev, timeutil.NewRange(20_000, 30_000))
	assert.False(t, ok)
}
