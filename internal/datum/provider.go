package datum

import "fmt"

// Provider is a named unit that declares fact bindings.
//
// Implementations embed Base, which supplies Name, Registry and the
// registration hook:
//
//	type PhasesProvider struct {
//		datum.Base
//	}
//
//	func NewPhasesProvider() *PhasesProvider {
//		return &PhasesProvider{Base: datum.NewBase("BazelPhasesProvider")}
//	}
//
//	func (p *PhasesProvider) Bindings() []datum.Binding {
//		return []datum.Binding{datum.BindMemoized(p.phases)}
//	}
type Provider interface {
	// Name identifies the provider in errors and grouped results.
	Name() string

	// Bindings lists the facts this provider produces. It is called once,
	// during registration.
	Bindings() []Binding

	attach(r *Registry)
}

// Base holds a provider's name and the registry it was registered with.
type Base struct {
	name     string
	registry *Registry
}

// NewBase creates a Base for a provider called name.
func NewBase(name string) Base {
	return Base{name: name}
}

// Name returns the provider name.
func (b *Base) Name() string {
	return b.name
}

// Registry returns the registry the provider was registered with. Calling it
// before registration panics.
func (b *Base) Registry() *Registry {
	if b.registry == nil {
		panic(fmt.Sprintf("datum: provider %q used before registration", b.name))
	}
	return b.registry
}

// Registered reports whether the provider has been registered.
func (b *Base) Registered() bool {
	return b.registry != nil
}

func (b *Base) attach(r *Registry) {
	if b.registry != nil {
		panic(fmt.Sprintf("datum: provider %q registered twice", b.name))
	}
	b.registry = r
}
