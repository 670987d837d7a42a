package datum

import (
	"reflect"
)

// Datum is a single computed or extracted fact.
type Datum interface {
	// Description describes the kind of fact, independent of its value.
	Description() string

	// Summary renders the value for display.
	Summary() string
}

// Emptiable is implemented by facts that can be present but not applicable,
// e.g. a critical path for a profile that recorded none. An empty fact still
// satisfies a request; only its presentation differs.
type Emptiable interface {
	Datum
	IsEmpty() bool
	EmptyReason() string
}

// Emptiness reports whether d declares itself empty, and why.
func Emptiness(d Datum) (bool, string) {
	e, ok := d.(Emptiable)
	if !ok || !e.IsEmpty() {
		return false, ""
	}
	return true, e.EmptyReason()
}

// Type identifies a fact by its concrete Go type.
type Type struct {
	rt reflect.Type
}

// TypeOf returns the Type token for T. T must be a concrete type, normally a
// pointer to a struct.
func TypeOf[T Datum]() Type {
	return Type{rt: reflect.TypeOf((*T)(nil)).Elem()}
}

// typeOfValue returns the Type token of d's dynamic type.
func typeOfValue(d Datum) Type {
	return Type{rt: reflect.TypeOf(d)}
}

// String returns the Go type name, e.g. "*providers.BazelPhases".
func (t Type) String() string {
	if t.rt == nil {
		return "<nil>"
	}
	return t.rt.String()
}

// Name returns the type name without package qualifier or pointer marker.
func (t Type) Name() string {
	if t.rt == nil {
		return ""
	}
	rt := t.rt
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return rt.Name()
}

// isNil reports whether v is nil or a nil pointer, map, slice, func or
// interface stored in a non-nil interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
