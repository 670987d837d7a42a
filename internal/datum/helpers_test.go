package datum

import (
	"errors"
	"fmt"
)

// Fact types used across the registry tests.

type alpha struct{ n int }

func (*alpha) Description() string { return "alpha fact" }
func (a *alpha) Summary() string   { return fmt.Sprintf("alpha=%d", a.n) }

type beta struct{ sum int }

func (*beta) Description() string { return "beta fact" }
func (b *beta) Summary() string   { return fmt.Sprintf("beta=%d", b.sum) }

type gamma struct {
	reason string
}

func (*gamma) Description() string   { return "gamma fact" }
func (*gamma) Summary() string       { return "gamma" }
func (g *gamma) IsEmpty() bool       { return g.reason != "" }
func (g *gamma) EmptyReason() string { return g.reason }

var errBoom = errors.New("boom")

// funcProvider binds whatever bindings its constructor is given.
type funcProvider struct {
	Base
	bindings func(p *funcProvider) []Binding
}

func newFuncProvider(name string, bindings func(p *funcProvider) []Binding) *funcProvider {
	return &funcProvider{Base: NewBase(name), bindings: bindings}
}

func (p *funcProvider) Bindings() []Binding {
	return p.bindings(p)
}

func alphaProvider(name string, n int) *funcProvider {
	return newFuncProvider(name, func(*funcProvider) []Binding {
		return []Binding{BindMemoized(func() (*alpha, error) { return &alpha{n: n}, nil })}
	})
}
