package providers

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/roach88/buildlens/internal/datum"
	"github.com/roach88/buildlens/internal/profile"
	"github.com/roach88/buildlens/internal/timeutil"
)

// ActionStats counts executed actions and records counter peaks.
type ActionStats struct {
	Actions        int
	ActionDuration time.Duration

	// ByCategory counts complete events per category across all threads.
	ByCategory map[string]int

	// CounterPeaks holds the highest sample of each counter series.
	CounterPeaks map[string]float64
}

func (*ActionStats) Description() string {
	return "Executed actions, event categories and counter peaks."
}

func (a *ActionStats) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d actions, %s action time", a.Actions, timeutil.FormatDuration(a.ActionDuration))

	names := make([]string, 0, len(a.CounterPeaks))
	for name := range a.CounterPeaks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "; peak %s %g", name, a.CounterPeaks[name])
	}
	return sb.String()
}

func (a *ActionStats) IsEmpty() bool { return a.Actions == 0 }

func (*ActionStats) EmptyReason() string {
	return "The profile contains no action processing events."
}

// ActionStatsProvider aggregates action events and counter series.
type ActionStatsProvider struct {
	datum.Base
}

// NewActionStatsProvider creates an ActionStatsProvider.
func NewActionStatsProvider() *ActionStatsProvider {
	return &ActionStatsProvider{Base: datum.NewBase("ActionStatsProvider")}
}

func (p *ActionStatsProvider) Bindings() []datum.Binding {
	return []datum.Binding{datum.BindMemoized(p.stats)}
}

func (p *ActionStatsProvider) stats() (*ActionStats, error) {
	bp, err := datum.Get[*profile.BazelProfile](p.Registry())
	if err != nil {
		return nil, err
	}

	stats := &ActionStats{
		ByCategory:   make(map[string]int),
		CounterPeaks: make(map[string]float64),
	}
	for _, th := range bp.Threads() {
		if th.Name == CriticalPathThread {
			continue
		}
		for _, ev := range th.CompleteEvents {
			stats.ByCategory[ev.Category]++
			if ev.Category == CategoryAction {
				stats.Actions++
				stats.ActionDuration += ev.Duration
			}
		}
		for name, series := range th.Counters {
			for _, sample := range series {
				if peak, ok := stats.CounterPeaks[name]; !ok || sample.Value > peak {
					stats.CounterPeaks[name] = sample.Value
				}
			}
		}
	}
	return stats, nil
}
