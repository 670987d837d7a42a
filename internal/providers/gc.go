package providers

import (
	"fmt"
	"time"

	"github.com/roach88/buildlens/internal/datum"
	"github.com/roach88/buildlens/internal/profile"
	"github.com/roach88/buildlens/internal/tef"
	"github.com/roach88/buildlens/internal/timeutil"
)

const (
	// CategoryGC is the category of JVM garbage collection events.
	CategoryGC = "gc notification"

	// EventMajorGC names full (stop-the-world) collections.
	EventMajorGC = "major GC"
)

// GarbageCollectionStats summarizes major garbage collections.
type GarbageCollectionStats struct {
	MajorCount    int
	MajorDuration time.Duration

	// DuringExecution is the part of MajorDuration that overlapped the
	// execution phase. ExecutionDuration is zero when the profile has no
	// execution phase.
	DuringExecution   time.Duration
	ExecutionDuration time.Duration
}

func (*GarbageCollectionStats) Description() string {
	return "Major garbage collections of the Bazel server JVM."
}

func (g *GarbageCollectionStats) Summary() string {
	s := fmt.Sprintf("%d major GCs, %s total", g.MajorCount, timeutil.FormatDuration(g.MajorDuration))
	if g.ExecutionDuration > 0 {
		s += fmt.Sprintf(", %s during execution (%.1f%% of execution)",
			timeutil.FormatDuration(g.DuringExecution),
			timeutil.PercentOf(g.DuringExecution, g.ExecutionDuration))
	}
	return s
}

func (g *GarbageCollectionStats) IsEmpty() bool { return g.MajorCount == 0 }

func (*GarbageCollectionStats) EmptyReason() string {
	return "The profile contains no major garbage collection events."
}

// GarbageCollectionProvider totals major GC time and the share of it that
// fell into the execution phase.
type GarbageCollectionProvider struct {
	datum.Base
}

// NewGarbageCollectionProvider creates a GarbageCollectionProvider.
func NewGarbageCollectionProvider() *GarbageCollectionProvider {
	return &GarbageCollectionProvider{Base: datum.NewBase("GarbageCollectionProvider")}
}

func (p *GarbageCollectionProvider) Bindings() []datum.Binding {
	return []datum.Binding{datum.BindMemoized(p.stats)}
}

func (p *GarbageCollectionProvider) stats() (*GarbageCollectionStats, error) {
	bp, err := datum.Get[*profile.BazelProfile](p.Registry())
	if err != nil {
		return nil, err
	}
	phases, err := datum.Get[*BazelPhases](p.Registry())
	if err != nil {
		return nil, err
	}

	stats := &GarbageCollectionStats{}
	execution, hasExecution := phases.Phase(PhaseExecution)
	if hasExecution {
		stats.ExecutionDuration = execution.Duration()
	}

	for _, th := range bp.Threads() {
		for _, ev := range th.CompleteEvents {
			if ev.Category != CategoryGC || ev.Name != EventMajorGC {
				continue
			}
			stats.MajorCount++
			stats.MajorDuration += ev.Duration
			if !hasExecution {
				continue
			}
			if part, ok := tef.CropTo(ev, execution.Window); ok {
				stats.DuringExecution += part.Duration()
			}
		}
	}
	return stats, nil
}
