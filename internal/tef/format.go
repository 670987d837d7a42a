package tef

// Section names of the top-level profile document.
const (
	SectionTraceEvents = "traceEvents"
	SectionOtherData   = "otherData"
)

// Field names of a single trace event record.
const (
	FieldArgs      = "args"
	FieldCategory  = "cat"
	FieldDuration  = "dur"
	FieldName      = "name"
	FieldPhase     = "ph"
	FieldProcessID = "pid"
	FieldThreadID  = "tid"
	FieldTimestamp = "ts"
)

// Metadata event names and their argument keys.
const (
	MetadataThreadName      = "thread_name"
	MetadataThreadSortIndex = "thread_sort_index"
	MetadataProcessName     = "process_name"

	ArgName      = "name"
	ArgSortIndex = "sort_index"
)

// Phase is the "ph" discriminator of a trace event.
type Phase string

const (
	PhaseComplete      Phase = "X"
	PhaseCounter       Phase = "C"
	PhaseInstant       Phase = "i"
	PhaseInstantLegacy Phase = "I"
	PhaseMetadata      Phase = "M"
	PhaseDurationBegin Phase = "B"
	PhaseDurationEnd   Phase = "E"
)

// IsInstant reports whether p is either spelling of the instant phase.
func (p Phase) IsInstant() bool {
	return p == PhaseInstant || p == PhaseInstantLegacy
}
