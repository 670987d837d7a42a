package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/buildlens/internal/datum"
)

// ErrUnknownFact is returned by Collect when a requested fact type is not
// bound in the registry.
var ErrUnknownFact = errors.New("unknown fact")

// Options controls which facts are collected.
type Options struct {
	// Concurrency bounds the number of facts requested in parallel.
	Concurrency int

	// UsedOnly limits the report to facts retrieved during collection,
	// including the facts those depended on.
	UsedOnly bool

	// Facts names the fact types to request, e.g. "BazelPhases". Empty
	// requests every bound type.
	Facts []string
}

// Report is the outcome of one collection.
type Report struct {
	Providers []ProviderFacts
	Errors    []FactError
}

// ProviderFacts groups the facts of one provider, sorted by type name.
type ProviderFacts struct {
	Name  string
	Facts []Fact
}

// Fact is one resolved fact.
type Fact struct {
	Type        string
	Description string
	Summary     string
	Empty       bool
	EmptyReason string
	Datum       datum.Datum
}

// FactError records a fact that could not be produced.
type FactError struct {
	Type     string
	Provider string
	Err      error

	typ datum.Type
}

// Collect requests the selected facts from reg and builds a report.
//
// A fact that fails is recorded in Errors and does not stop the others.
// Collect returns an error only if opts names an unknown fact or ctx is
// canceled.
func Collect(ctx context.Context, reg *datum.Registry, opts Options) (*Report, error) {
	types, err := selectTypes(reg, opts.Facts)
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		failed []FactError
	)

	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for _, t := range types {
		t := t
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, err := reg.Fetch(t); err != nil {
				provider, _ := reg.ProviderOf(t)
				slog.Debug("report: fact failed", "type", t.String(), "provider", provider, "error", err)
				mu.Lock()
				failed = append(failed, FactError{Type: t.Name(), Provider: provider, Err: err, typ: t})
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("report: collect: %w", err)
	}

	// Bindings that already failed are not evaluated a second time.
	viewTypes := reg.Types()
	if opts.UsedOnly {
		viewTypes = reg.UsedTypes()
	}
	viewTypes = slices.DeleteFunc(viewTypes, func(t datum.Type) bool {
		return slices.ContainsFunc(failed, func(e FactError) bool { return e.typ == t })
	})
	view := reg.ByProvider(viewTypes)

	sort.Slice(failed, func(i, j int) bool { return failed[i].Type < failed[j].Type })
	return &Report{Providers: group(view), Errors: failed}, nil
}

func selectTypes(reg *datum.Registry, names []string) ([]datum.Type, error) {
	all := reg.Types()
	if len(names) == 0 {
		return all, nil
	}

	var out []datum.Type
	for _, name := range names {
		i := slices.IndexFunc(all, func(t datum.Type) bool { return t.Name() == name })
		if i < 0 {
			return nil, fmt.Errorf("report: %w %q", ErrUnknownFact, name)
		}
		if !slices.Contains(out, all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func group(view map[string]map[datum.Type]datum.Datum) []ProviderFacts {
	out := make([]ProviderFacts, 0, len(view))
	for name, facts := range view {
		pf := ProviderFacts{Name: name}
		for t, d := range facts {
			empty, reason := datum.Emptiness(d)
			pf.Facts = append(pf.Facts, Fact{
				Type:        t.Name(),
				Description: d.Description(),
				Summary:     d.Summary(),
				Empty:       empty,
				EmptyReason: reason,
				Datum:       d,
			})
		}
		sort.Slice(pf.Facts, func(i, j int) bool { return pf.Facts[i].Type < pf.Facts[j].Type })
		out = append(out, pf)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FactCount returns the number of facts in the report and how many of them
// are empty.
func (r *Report) FactCount() (total, empty int) {
	for _, p := range r.Providers {
		for _, f := range p.Facts {
			total++
			if f.Empty {
				empty++
			}
		}
	}
	return total, empty
}

// Find returns the first fact of the named type.
func (r *Report) Find(typeName string) (Fact, bool) {
	for _, p := range r.Providers {
		for _, f := range p.Facts {
			if f.Type == typeName {
				return f, true
			}
		}
	}
	return Fact{}, false
}

// Lookup returns the datum of type T, if the report holds one.
func Lookup[T datum.Datum](r *Report) (T, bool) {
	var zero T
	for _, p := range r.Providers {
		for _, f := range p.Facts {
			if d, ok := f.Datum.(T); ok {
				return d, true
			}
		}
	}
	return zero, false
}

func (e FactError) String() string {
	var sb strings.Builder
	sb.WriteString(e.Type)
	if e.Provider != "" {
		fmt.Fprintf(&sb, " (%s)", e.Provider)
	}
	fmt.Fprintf(&sb, ": %v", e.Err)
	return sb.String()
}
