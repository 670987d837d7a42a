package datum

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Registry resolves fact requests to the providers that bound them.
//
// It keeps two views of the same bindings: every registered binding, and the
// bindings whose fact has been retrieved successfully at least once.
//
// Thread-safety: Register must only be called during single-goroutine setup.
// Get, AllByProvider and UsedByProvider are safe for concurrent use after
// setup.
type Registry struct {
	bindings map[Type]registration
	order    []Type

	mu   sync.Mutex
	used map[Type]struct{}
}

type registration struct {
	provider Provider
	supply   func() (Datum, error)
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[Type]registration),
		used:     make(map[Type]struct{}),
	}
}

// Register attaches p to r and binds each of its declared fact types.
//
// Registration is fail-fast, not atomic: if a binding conflicts with an
// existing one, Register returns a duplicate-provider error and the bindings
// of p inserted before the conflict stay registered.
//
// A provider can be registered only once; registering it again panics.
func (r *Registry) Register(p Provider) error {
	p.attach(r)

	for _, b := range p.Bindings() {
		if existing, ok := r.bindings[b.Type]; ok {
			return NewDuplicateProviderError(b.Type, existing.provider.Name(), p.Name())
		}
		r.bindings[b.Type] = registration{provider: p, supply: b.Supply}
		r.order = append(r.order, b.Type)
		slog.Debug("datum: bound fact", "type", b.Type.String(), "provider", p.Name())
	}
	return nil
}

// Get resolves a fact of type T.
func Get[T Datum](r *Registry) (T, error) {
	var zero T
	d, err := r.Fetch(TypeOf[T]())
	if err != nil {
		return zero, err
	}
	return d.(T), nil
}

// MustGet is Get for callers that have already established the fact exists,
// such as tests. It panics on error.
func MustGet[T Datum](r *Registry) T {
	v, err := Get[T](r)
	if err != nil {
		panic(err)
	}
	return v
}

// Fetch resolves the fact bound to t by running its binding.
//
// Errors returned by the binding are passed through unchanged. A binding that
// returns nil yields a null-datum error. A binding that returns a value of a
// different type than it declared panics.
func (r *Registry) Fetch(t Type) (Datum, error) {
	return r.resolve(t, true)
}

func (r *Registry) resolve(t Type, markUsed bool) (Datum, error) {
	reg, ok := r.bindings[t]
	if !ok {
		return nil, NewMissingInputError(t)
	}

	d, err := reg.supply()
	if err != nil {
		return nil, err
	}
	if isNil(d) {
		return nil, NewNullDatumError(t, reg.provider.Name())
	}
	if got := typeOfValue(d); got != t {
		panic(fmt.Sprintf("datum: provider %q declared %s but produced %s",
			reg.provider.Name(), t, got))
	}

	if markUsed {
		r.mu.Lock()
		r.used[t] = struct{}{}
		r.mu.Unlock()
	}
	return d, nil
}

// Has reports whether a binding exists for t.
func (r *Registry) Has(t Type) bool {
	_, ok := r.bindings[t]
	return ok
}

// ProviderOf returns the name of the provider bound to t.
func (r *Registry) ProviderOf(t Type) (string, bool) {
	reg, ok := r.bindings[t]
	if !ok {
		return "", false
	}
	return reg.provider.Name(), true
}

// Types returns every bound type in registration order.
func (r *Registry) Types() []Type {
	out := make([]Type, len(r.order))
	copy(out, r.order)
	return out
}

// UsedTypes returns the types retrieved successfully so far, sorted by name.
func (r *Registry) UsedTypes() []Type {
	r.mu.Lock()
	out := make([]Type, 0, len(r.used))
	for t := range r.used {
		out = append(out, t)
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// AllByProvider evaluates every binding and groups the results by provider
// name. Bindings that fail are left out; this method never returns an error.
// Evaluating a binding here does not mark it as used.
func (r *Registry) AllByProvider() map[string]map[Type]Datum {
	return r.collect(r.Types())
}

// UsedByProvider is AllByProvider restricted to bindings that have been
// retrieved successfully at least once.
func (r *Registry) UsedByProvider() map[string]map[Type]Datum {
	return r.collect(r.UsedTypes())
}

// ByProvider is AllByProvider restricted to types. Types without a binding
// are skipped.
func (r *Registry) ByProvider(types []Type) map[string]map[Type]Datum {
	return r.collect(types)
}

func (r *Registry) collect(types []Type) map[string]map[Type]Datum {
	out := make(map[string]map[Type]Datum)
	for _, t := range types {
		if !r.Has(t) {
			continue
		}
		d, err := r.resolve(t, false)
		if err != nil {
			slog.Debug("datum: fact unavailable", "type", t.String(), "error", err)
			continue
		}
		name := r.bindings[t].provider.Name()
		if out[name] == nil {
			out[name] = make(map[Type]Datum)
		}
		out[name][t] = d
	}
	return out
}
