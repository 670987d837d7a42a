package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/buildlens/internal/datum"
	"github.com/roach88/buildlens/internal/tef"
	"github.com/roach88/buildlens/internal/testutil"
	"github.com/roach88/buildlens/internal/timeutil"
)

func TestFromTrace_SampleBuild(t *testing.T) {
	p, err := FromTrace(testutil.SampleBuild().Build())
	require.NoError(t, err)

	threads := p.Threads()
	require.Len(t, threads, 7)
	assert.Equal(t, "Main Thread", threads[0].Name)
	assert.Equal(t, "Critical Path", threads[1].Name)
	assert.Equal(t, "Garbage Collector", threads[2].Name)
	assert.Equal(t, "skyframe-evaluator-0", threads[3].Name)

	main, ok := p.ThreadNamed("Main Thread")
	require.True(t, ok)
	assert.Len(t, main.Instants, 7)
	assert.Len(t, main.CompleteEvents, 1)
	assert.Len(t, main.Counters["CPU usage (Bazel)"], 2)

	assert.Len(t, p.ThreadsWithPrefix("skyframe-evaluator"), 4)

	span, ok := p.Span()
	require.True(t, ok)
	assert.Equal(t, timeutil.NewRange(-2_000_000, 66_000_000), span)

	v, ok := p.OtherData(OtherDataBazelVersion)
	assert.True(t, ok)
	assert.Equal(t, "release 7.1.0", v)

	assert.False(t, p.IsEmpty())
	assert.Equal(t, "7 threads, 24 events", p.Summary())
}

func TestFromTrace_SortsEventsPerThread(t *testing.T) {
	tr := testutil.NewTrace().
		Complete(1, 5, "c", "late", 300, 10).
		Complete(1, 5, "c", "early", 100, 10).
		Instant(1, 5, "c", "second", 50).
		Instant(1, 5, "c", "first", -50).
		Build()

	p, err := FromTrace(tr)
	require.NoError(t, err)

	th, ok := p.Thread(ThreadID{PID: 1, TID: 5})
	require.True(t, ok)
	assert.Equal(t, "early", th.CompleteEvents[0].Name)
	assert.Equal(t, "first", th.Instants[0].Name)
	assert.Equal(t, "thread 1:5", th.DisplayName())
}

func TestFromTrace_IgnoresUnknownPhases(t *testing.T) {
	tr := testutil.NewTrace().
		Raw(tef.Raw{"ph": "B", "name": "begin"}).
		Raw(tef.Raw{"ph": "s", "id": "flow"}).
		Build()

	p, err := FromTrace(tr)
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())
	assert.Equal(t, 0, p.EventCount())
}

func TestFromTrace_InvalidEventFails(t *testing.T) {
	tr := testutil.NewTrace().
		Complete(1, 1, "c", "ok", 0, 1).
		Raw(tef.Raw{"ph": "X", "name": "broken", "tid": 1, "pid": 1}).
		Build()

	_, err := FromTrace(tr)
	require.Error(t, err)
	assert.True(t, tef.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "trace event 1")
	assert.Contains(t, err.Error(), "ts, dur")
}

func TestProvider_ExposesProfile(t *testing.T) {
	r := datum.NewRegistry()
	require.NoError(t, r.Register(NewProvider(testutil.SampleBuild().Build())))

	first, err := datum.Get[*BazelProfile](r)
	require.NoError(t, err)
	second, err := datum.Get[*BazelProfile](r)
	require.NoError(t, err)

	assert.Same(t, first, second)
}
