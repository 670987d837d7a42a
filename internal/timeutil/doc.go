// Package timeutil provides the temporal primitives shared by the trace model
// and the fact providers.
//
// Trace timestamps are signed microsecond offsets from a trace-defined origin,
// conventionally the start of Bazel's "Initialize command" phase. Events that
// happen before that origin (the client launch, for example) carry negative
// timestamps. A Timestamp is only meaningful relative to other timestamps from
// the same trace.
//
// Durations use time.Duration so they interoperate with the rest of Go. The
// conversion helpers are exact at microsecond granularity for any value whose
// nanosecond representation fits in an int64 (roughly +/-106 days).
//
// Range matches events recorded independently by different subsystems. Their
// boundaries rarely agree to the microsecond, so containment is tested with a
// fixed symmetric Tolerance on both bounds.
package timeutil
