package tef

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Trace is a decoded profile document.
type Trace struct {
	// OtherData holds the free-form "otherData" section (Bazel writes its
	// version, build id and output base there).
	OtherData map[string]any

	// Events holds every record of "traceEvents" in file order.
	Events []Raw
}

type traceDocument struct {
	OtherData   map[string]any `json:"otherData"`
	TraceEvents []Raw          `json:"traceEvents"`
}

// Decode reads a Trace from r. Both the object form
// {"traceEvents": [...], "otherData": {...}} and a bare array of events are
// accepted. Numbers are preserved as json.Number.
func Decode(r io.Reader) (Trace, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Trace{}, fmt.Errorf("read trace: %w", err)
	}
	var t Trace
	if err := t.UnmarshalJSON(data); err != nil {
		return Trace{}, err
	}
	return t, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Trace) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("decode trace: empty document")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	if trimmed[0] == '[' {
		var events []Raw
		if err := dec.Decode(&events); err != nil {
			return fmt.Errorf("decode trace events: %w", err)
		}
		t.Events = events
		t.OtherData = map[string]any{}
		return nil
	}

	var doc traceDocument
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decode trace: %w", err)
	}
	if doc.TraceEvents == nil {
		return &InvalidInputError{Kind: "trace", Missing: []string{SectionTraceEvents}}
	}
	t.Events = doc.TraceEvents
	t.OtherData = doc.OtherData
	if t.OtherData == nil {
		t.OtherData = map[string]any{}
	}
	return nil
}

// OtherDataString returns otherData[key] rendered as a string, and whether it
// was present.
func (t Trace) OtherDataString(key string) (string, bool) {
	v, ok := t.OtherData[key]
	if !ok || v == nil {
		return "", false
	}
	return stringify(v), true
}
