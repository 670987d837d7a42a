package providers

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/buildlens/internal/datum"
	"github.com/roach88/buildlens/internal/profile"
	"github.com/roach88/buildlens/internal/tef"
)

// Options tunes the default providers.
type Options struct {
	// CriticalPathMaxEntries caps the components listed in the critical path
	// summary. Zero lists all.
	CriticalPathMaxEntries int
}

// Default returns the standard provider set for tr, including the
// BazelProfile provider every other provider depends on.
func Default(tr tef.Trace, opts Options) []datum.Provider {
	return []datum.Provider{
		profile.NewProvider(tr),
		NewBazelVersionProvider(),
		NewBazelPhasesProvider(),
		NewEstimatedCoresProvider(),
		NewCriticalPathProvider(opts.CriticalPathMaxEntries),
		NewGarbageCollectionProvider(),
		NewActionStatsProvider(),
	}
}

// Names returns the names of the default providers.
func Names() []string {
	var names []string
	for _, p := range Default(tef.Trace{}, Options{}) {
		names = append(names, p.Name())
	}
	return names
}

// RegisterAll registers ps with r, skipping providers named in disabled.
// It stops at the first registration error.
func RegisterAll(r *datum.Registry, ps []datum.Provider, disabled []string) error {
	for _, p := range ps {
		if slices.Contains(disabled, p.Name()) {
			slog.Debug("providers: skipping disabled provider", "provider", p.Name())
			continue
		}
		if err := r.Register(p); err != nil {
			return fmt.Errorf("register %s: %w", p.Name(), err)
		}
	}
	return nil
}

// NewRegistry creates a registry holding the default providers for tr.
func NewRegistry(tr tef.Trace, opts Options, disabled []string) (*datum.Registry, error) {
	r := datum.NewRegistry()
	if err := RegisterAll(r, Default(tr, opts), disabled); err != nil {
		return nil, err
	}
	return r, nil
}
