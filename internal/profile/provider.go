package profile

import (
	"log/slog"

	"github.com/roach88/buildlens/internal/datum"
	"github.com/roach88/buildlens/internal/tef"
)

// ProviderName is the registered name of Provider.
const ProviderName = "BazelProfileProvider"

// Provider exposes a decoded trace as a *BazelProfile fact.
type Provider struct {
	datum.Base
	trace tef.Trace
}

// NewProvider creates a Provider for tr.
func NewProvider(tr tef.Trace) *Provider {
	return &Provider{Base: datum.NewBase(ProviderName), trace: tr}
}

// Bindings implements datum.Provider.
func (p *Provider) Bindings() []datum.Binding {
	return []datum.Binding{datum.BindMemoized(p.profile)}
}

func (p *Provider) profile() (*BazelProfile, error) {
	bp, err := FromTrace(p.trace)
	if err != nil {
		return nil, err
	}
	slog.Debug("profile: parsed", "threads", len(bp.threads), "events", bp.EventCount())
	return bp, nil
}
