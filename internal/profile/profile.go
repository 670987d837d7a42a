package profile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/buildlens/internal/tef"
	"github.com/roach88/buildlens/internal/timeutil"
)

// Well-known otherData keys.
const (
	OtherDataBazelVersion = "bazel_version"
	OtherDataBuildID      = "build_id"
	OtherDataOutputBase   = "output_base"
	OtherDataDate         = "date"
)

// ThreadID identifies a thread within a trace.
type ThreadID struct {
	PID int
	TID int
}

func (id ThreadID) String() string {
	return fmt.Sprintf("%d:%d", id.PID, id.TID)
}

// Thread holds everything one thread recorded.
type Thread struct {
	ID        ThreadID
	Name      string
	SortIndex int

	// CompleteEvents are sorted by start time.
	CompleteEvents []tef.CompleteEvent

	// Counters maps a counter series name to its samples in time order.
	Counters map[string][]tef.CounterEvent

	// Instants are sorted by timestamp.
	Instants []tef.InstantEvent
}

// DisplayName returns Name, or the thread id when the trace did not name it.
func (t *Thread) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return "thread " + t.ID.String()
}

// EventCount returns the number of events recorded on the thread.
func (t *Thread) EventCount() int {
	n := len(t.CompleteEvents) + len(t.Instants)
	for _, c := range t.Counters {
		n += len(c)
	}
	return n
}

// BazelProfile is the parsed profile.
type BazelProfile struct {
	otherData map[string]string
	threads   map[ThreadID]*Thread
	order     []ThreadID
	span      timeutil.Range
	hasEvents bool
}

// FromTrace builds a BazelProfile from a decoded trace.
//
// Complete, counter and instant records are parsed strictly; the first
// malformed record fails the whole profile. Metadata records name threads.
// Records of any other phase are ignored.
func FromTrace(tr tef.Trace) (*BazelProfile, error) {
	p := &BazelProfile{
		otherData: make(map[string]string, len(tr.OtherData)),
		threads:   make(map[ThreadID]*Thread),
	}
	for k := range tr.OtherData {
		v, _ := tr.OtherDataString(k)
		p.otherData[k] = v
	}

	for i, raw := range tr.Events {
		if err := p.add(raw); err != nil {
			return nil, fmt.Errorf("trace event %d: %w", i, err)
		}
	}

	for _, th := range p.threads {
		slices.SortStableFunc(th.CompleteEvents, func(a, b tef.CompleteEvent) int {
			return a.Start.Compare(b.Start)
		})
		slices.SortStableFunc(th.Instants, func(a, b tef.InstantEvent) int {
			return a.Timestamp.Compare(b.Timestamp)
		})
		for _, series := range th.Counters {
			slices.SortStableFunc(series, func(a, b tef.CounterEvent) int {
				return a.Timestamp.Compare(b.Timestamp)
			})
		}
		p.order = append(p.order, th.ID)
	}
	slices.SortFunc(p.order, func(a, b ThreadID) int {
		ta, tb := p.threads[a], p.threads[b]
		if ta.SortIndex != tb.SortIndex {
			return ta.SortIndex - tb.SortIndex
		}
		if a.PID != b.PID {
			return a.PID - b.PID
		}
		return a.TID - b.TID
	})

	return p, nil
}

func (p *BazelProfile) add(raw tef.Raw) error {
	switch ph := raw.Phase(); {
	case ph == tef.PhaseComplete:
		ev, err := tef.ParseCompleteEvent(raw)
		if err != nil {
			return err
		}
		th := p.thread(ThreadID{PID: ev.ProcessID, TID: ev.ThreadID})
		th.CompleteEvents = append(th.CompleteEvents, ev)
		p.extend(ev.Start, ev.End())

	case ph == tef.PhaseCounter:
		ev, err := tef.ParseCounterEvent(raw)
		if err != nil {
			return err
		}
		th := p.thread(looseThreadID(raw))
		th.Counters[ev.Name] = append(th.Counters[ev.Name], ev)
		p.extend(ev.Timestamp, ev.Timestamp)

	case ph.IsInstant():
		ev, err := tef.ParseInstantEvent(raw)
		if err != nil {
			return err
		}
		th := p.thread(looseThreadID(raw))
		th.Instants = append(th.Instants, ev)
		p.extend(ev.Timestamp, ev.Timestamp)

	case ph == tef.PhaseMetadata:
		p.applyMetadata(raw)
	}
	return nil
}

func (p *BazelProfile) applyMetadata(raw tef.Raw) {
	args := tef.Raw(raw.Args())
	th := p.thread(looseThreadID(raw))
	switch raw.String(tef.FieldName) {
	case tef.MetadataThreadName:
		th.Name = args.String(tef.ArgName)
	case tef.MetadataThreadSortIndex:
		if idx, ok := args.Int(tef.ArgSortIndex); ok {
			th.SortIndex = int(idx)
		}
	}
}

func looseThreadID(raw tef.Raw) ThreadID {
	pid, _ := raw.Int(tef.FieldProcessID)
	tid, _ := raw.Int(tef.FieldThreadID)
	return ThreadID{PID: int(pid), TID: int(tid)}
}

func (p *BazelProfile) thread(id ThreadID) *Thread {
	th, ok := p.threads[id]
	if !ok {
		th = &Thread{ID: id, Counters: make(map[string][]tef.CounterEvent)}
		p.threads[id] = th
	}
	return th
}

func (p *BazelProfile) extend(start, end timeutil.Timestamp) {
	if !p.hasEvents {
		p.span = timeutil.NewRange(start, end)
		p.hasEvents = true
		return
	}
	p.span.Start = timeutil.Min(p.span.Start, start)
	p.span.End = timeutil.Max(p.span.End, end)
}

// Threads returns all threads ordered by sort index, then process and thread
// id.
func (p *BazelProfile) Threads() []*Thread {
	out := make([]*Thread, len(p.order))
	for i, id := range p.order {
		out[i] = p.threads[id]
	}
	return out
}

// Thread returns the thread with the given id.
func (p *BazelProfile) Thread(id ThreadID) (*Thread, bool) {
	th, ok := p.threads[id]
	return th, ok
}

// ThreadNamed returns the first thread whose name equals name.
func (p *BazelProfile) ThreadNamed(name string) (*Thread, bool) {
	for _, th := range p.Threads() {
		if th.Name == name {
			return th, true
		}
	}
	return nil, false
}

// ThreadsWithPrefix returns every thread whose name starts with prefix.
func (p *BazelProfile) ThreadsWithPrefix(prefix string) []*Thread {
	var out []*Thread
	for _, th := range p.Threads() {
		if strings.HasPrefix(th.Name, prefix) {
			out = append(out, th)
		}
	}
	return out
}

// OtherData returns an otherData value and whether it was present.
func (p *BazelProfile) OtherData(key string) (string, bool) {
	v, ok := p.otherData[key]
	return v, ok
}

// Span returns the range from the earliest to the latest recorded event, and
// false when the profile holds no timed events.
func (p *BazelProfile) Span() (timeutil.Range, bool) {
	return p.span, p.hasEvents
}

// EventCount returns the number of timed events in the profile.
func (p *BazelProfile) EventCount() int {
	n := 0
	for _, th := range p.threads {
		n += th.EventCount()
	}
	return n
}

// Description implements datum.Datum.
func (p *BazelProfile) Description() string {
	return "The parsed Bazel profile, grouped by thread."
}

// Summary implements datum.Datum.
func (p *BazelProfile) Summary() string {
	return fmt.Sprintf("%d threads, %d events", len(p.threads), p.EventCount())
}

// IsEmpty implements datum.Emptiable.
func (p *BazelProfile) IsEmpty() bool {
	return !p.hasEvents
}

// EmptyReason implements datum.Emptiable.
func (p *BazelProfile) EmptyReason() string {
	return "The profile contains no timed events."
}
