// Package testutil builds trace fixtures for tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/roach88/buildlens/internal/tef"
)

// TraceBuilder assembles raw trace records the way encoding/json with
// UseNumber would decode them.
type TraceBuilder struct {
	otherData map[string]any
	events    []tef.Raw
}

// NewTrace creates an empty builder.
func NewTrace() *TraceBuilder {
	return &TraceBuilder{otherData: map[string]any{}}
}

func num(v int64) json.Number {
	return json.Number(strconv.FormatInt(v, 10))
}

// OtherData sets an otherData entry.
func (b *TraceBuilder) OtherData(key, value string) *TraceBuilder {
	b.otherData[key] = value
	return b
}

// ThreadName adds a thread_name metadata record.
func (b *TraceBuilder) ThreadName(pid, tid int, name string) *TraceBuilder {
	return b.Raw(tef.Raw{
		"name": tef.MetadataThreadName,
		"ph":   string(tef.PhaseMetadata),
		"pid":  num(int64(pid)),
		"tid":  num(int64(tid)),
		"args": map[string]any{"name": name},
	})
}

// SortIndex adds a thread_sort_index metadata record.
func (b *TraceBuilder) SortIndex(pid, tid, index int) *TraceBuilder {
	return b.Raw(tef.Raw{
		"name": tef.MetadataThreadSortIndex,
		"ph":   string(tef.PhaseMetadata),
		"pid":  num(int64(pid)),
		"tid":  num(int64(tid)),
		"args": map[string]any{"sort_index": num(int64(index))},
	})
}

// Complete adds an "X" record. Times are in microseconds.
func (b *TraceBuilder) Complete(pid, tid int, cat, name string, start, dur int64) *TraceBuilder {
	return b.Raw(tef.Raw{
		"name": name,
		"cat":  cat,
		"ph":   string(tef.PhaseComplete),
		"ts":   num(start),
		"dur":  num(dur),
		"pid":  num(int64(pid)),
		"tid":  num(int64(tid)),
	})
}

// Instant adds an "i" record.
func (b *TraceBuilder) Instant(pid, tid int, cat, name string, ts int64) *TraceBuilder {
	return b.Raw(tef.Raw{
		"name": name,
		"cat":  cat,
		"ph":   string(tef.PhaseInstant),
		"ts":   num(ts),
		"pid":  num(int64(pid)),
		"tid":  num(int64(tid)),
	})
}

// Counter adds a "C" record with a single argument.
func (b *TraceBuilder) Counter(pid int, name, key string, ts int64, value float64) *TraceBuilder {
	return b.Raw(tef.Raw{
		"name": name,
		"ph":   string(tef.PhaseCounter),
		"ts":   num(ts),
		"pid":  num(int64(pid)),
		"args": map[string]any{key: json.Number(strconv.FormatFloat(value, 'f', -1, 64))},
	})
}

// Raw appends an arbitrary record.
func (b *TraceBuilder) Raw(r tef.Raw) *TraceBuilder {
	b.events = append(b.events, r)
	return b
}

// Build returns the trace.
func (b *TraceBuilder) Build() tef.Trace {
	other := make(map[string]any, len(b.otherData))
	for k, v := range b.otherData {
		other[k] = v
	}
	events := make([]tef.Raw, len(b.events))
	copy(events, b.events)
	return tef.Trace{OtherData: other, Events: events}
}

// JSON renders the trace as a profile document.
func (b *TraceBuilder) JSON(t testing.TB) []byte {
	t.Helper()
	data, err := json.Marshal(map[string]any{
		tef.SectionOtherData:   b.otherData,
		tef.SectionTraceEvents: b.events,
	})
	require.NoError(t, err)
	return data
}

// WriteFile writes the profile document into dir and returns its path. Names
// ending in ".gz" are gzip-compressed.
func (b *TraceBuilder) WriteFile(t testing.TB, dir, name string) string {
	t.Helper()
	data := b.JSON(t)
	if filepath.Ext(name) == ".gz" {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, err := zw.Write(data)
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		data = buf.Bytes()
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
