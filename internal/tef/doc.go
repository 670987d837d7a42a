// Package tef models the Chrome Trace Event Format as written by Bazel's
// --profile flag.
//
// A profile is a JSON document with a "traceEvents" array and an optional
// "otherData" object. Each event is a flat object whose "ph" field selects its
// shape. This package understands the shapes the analyzer needs:
//
//   - "X" complete events: a named interval on one thread (CompleteEvent)
//   - "C" counter events: sampled scalar values (CounterEvent)
//   - "i"/"I" instant events: zero-duration markers (InstantEvent)
//   - "M" metadata events: thread names and sort indices
//
// Parsing is strict. Every required field of a shape is checked, and a record
// missing one or more of them is rejected with a single InvalidInputError that
// lists every missing field.
//
// PartialCompleteEvent is a cropped view of a CompleteEvent used when an event
// is intersected with a phase window. Its bounds never exceed the source event;
// constructing one that would is a programming error and panics.
package tef
