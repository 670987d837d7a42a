package providers

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/roach88/buildlens/internal/datum"
	"github.com/roach88/buildlens/internal/profile"
	"github.com/roach88/buildlens/internal/timeutil"
)

// CategoryPhaseMarker is the category of Bazel's phase marker instants.
const CategoryPhaseMarker = "build phase marker"

// BazelPhase is one of the phases of a Bazel invocation.
type BazelPhase string

const (
	PhaseLaunch      BazelPhase = "Launch"
	PhaseInit        BazelPhase = "Init"
	PhaseEvaluate    BazelPhase = "Target pattern evaluation"
	PhaseAnalysis    BazelPhase = "Analysis"
	PhaseLicenses    BazelPhase = "License checking"
	PhasePreparation BazelPhase = "Preparation"
	PhaseExecution   BazelPhase = "Execution"
	PhaseFinish      BazelPhase = "Finish"
)

// phaseMarkers maps marker names to phases, in invocation order.
var phaseMarkers = []struct {
	phase  BazelPhase
	marker string
}{
	{PhaseLaunch, "Launch Blaze"},
	{PhaseInit, "Initialize command"},
	{PhaseEvaluate, "Evaluate target patterns"},
	{PhaseAnalysis, "Load and analyze dependencies"},
	{PhaseLicenses, "Analyze licenses"},
	{PhasePreparation, "Prepare for build"},
	{PhaseExecution, "Build artifacts"},
	{PhaseFinish, "Complete build"},
}

// PhaseForMarker returns the phase started by the named marker.
func PhaseForMarker(marker string) (BazelPhase, bool) {
	for _, pm := range phaseMarkers {
		if pm.marker == marker {
			return pm.phase, true
		}
	}
	return "", false
}

// PhaseDescription is one observed phase and its time window.
type PhaseDescription struct {
	Phase  BazelPhase
	Window timeutil.Range
}

// Duration returns the phase's length.
func (d PhaseDescription) Duration() time.Duration {
	return d.Window.Duration()
}

// BazelPhases lists the phases found in the profile in chronological order.
type BazelPhases struct {
	Phases []PhaseDescription
}

// Phase returns the description of p, if it was observed.
func (b *BazelPhases) Phase(p BazelPhase) (PhaseDescription, bool) {
	for _, d := range b.Phases {
		if d.Phase == p {
			return d, true
		}
	}
	return PhaseDescription{}, false
}

// Total returns the time from the first phase's start to the last phase's end.
func (b *BazelPhases) Total() time.Duration {
	if len(b.Phases) == 0 {
		return 0
	}
	return b.Phases[len(b.Phases)-1].Window.End.Sub(b.Phases[0].Window.Start)
}

func (*BazelPhases) Description() string {
	return "The phases of the Bazel invocation and their durations."
}

func (b *BazelPhases) Summary() string {
	total := b.Total()
	parts := make([]string, 0, len(b.Phases)+1)
	parts = append(parts, "total "+timeutil.FormatDuration(total))
	for _, d := range b.Phases {
		s := fmt.Sprintf("%s %s", d.Phase, timeutil.FormatDuration(d.Duration()))
		if total > 0 {
			s += fmt.Sprintf(" (%.1f%%)", timeutil.PercentOf(d.Duration(), total))
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "; ")
}

func (b *BazelPhases) IsEmpty() bool { return len(b.Phases) == 0 }

func (*BazelPhases) EmptyReason() string {
	return "The profile contains no build phase markers."
}

// BazelPhasesProvider derives phase windows from the phase marker instants.
type BazelPhasesProvider struct {
	datum.Base
}

// NewBazelPhasesProvider creates a BazelPhasesProvider.
func NewBazelPhasesProvider() *BazelPhasesProvider {
	return &BazelPhasesProvider{Base: datum.NewBase("BazelPhasesProvider")}
}

func (p *BazelPhasesProvider) Bindings() []datum.Binding {
	return []datum.Binding{datum.BindMemoized(p.phases)}
}

type marker struct {
	phase BazelPhase
	at    timeutil.Timestamp
}

func (p *BazelPhasesProvider) phases() (*BazelPhases, error) {
	bp, err := datum.Get[*profile.BazelProfile](p.Registry())
	if err != nil {
		return nil, err
	}

	seen := make(map[BazelPhase]bool)
	var markers []marker
	for _, th := range bp.Threads() {
		for _, ev := range th.Instants {
			if ev.Category != CategoryPhaseMarker {
				continue
			}
			phase, ok := PhaseForMarker(ev.Name)
			if !ok || seen[phase] {
				continue
			}
			seen[phase] = true
			markers = append(markers, marker{phase: phase, at: ev.Timestamp})
		}
	}
	slices.SortStableFunc(markers, func(a, b marker) int { return a.at.Compare(b.at) })

	result := &BazelPhases{}
	if len(markers) == 0 {
		return result, nil
	}

	span, _ := bp.Span()
	for i, m := range markers {
		end := span.End
		if i+1 < len(markers) {
			end = markers[i+1].at
		}
		result.Phases = append(result.Phases, PhaseDescription{
			Phase:  m.phase,
			Window: timeutil.NewRange(m.at, timeutil.Max(m.at, end)),
		})
	}
	return result, nil
}
