package providers

import (
	"fmt"
	"strings"
	"time"

	"github.com/roach88/buildlens/internal/datum"
	"github.com/roach88/buildlens/internal/profile"
	"github.com/roach88/buildlens/internal/tef"
	"github.com/roach88/buildlens/internal/timeutil"
)

const (
	// CriticalPathThread is the name of the thread Bazel writes the critical
	// path summary to.
	CriticalPathThread = "Critical Path"

	// CategoryAction is the category of action execution events.
	CategoryAction = "action processing"
)

// CriticalPathComponent is one entry of the critical path.
type CriticalPathComponent struct {
	// Description is the component name without Bazel's "action '...'"
	// wrapper.
	Description string

	// Event is the critical path event itself.
	Event tef.CompleteEvent

	// Action is the action execution event the component was reconciled
	// with, if any.
	Action *tef.CompleteEvent

	// ActionThread is the thread Action ran on.
	ActionThread string
}

// Matched reports whether the component was reconciled with an action.
func (c CriticalPathComponent) Matched() bool {
	return c.Action != nil
}

// CriticalPath is the chain of actions that determined the build's length.
type CriticalPath struct {
	Components []CriticalPathComponent
	Duration   time.Duration

	maxListed int
}

// MatchedCount returns how many components were reconciled with an action.
func (c *CriticalPath) MatchedCount() int {
	n := 0
	for _, comp := range c.Components {
		if comp.Matched() {
			n++
		}
	}
	return n
}

func (*CriticalPath) Description() string {
	return "The critical path of the build, reconciled with executed actions."
}

func (c *CriticalPath) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d components, %s, %d matched to actions",
		len(c.Components), timeutil.FormatDuration(c.Duration), c.MatchedCount())

	listed := c.Components
	if c.maxListed > 0 && len(listed) > c.maxListed {
		listed = listed[:c.maxListed]
	}
	for _, comp := range listed {
		fmt.Fprintf(&sb, "\n%s %s", timeutil.FormatDuration(comp.Event.Duration), comp.Description)
		if comp.Matched() {
			fmt.Fprintf(&sb, " [%s]", comp.ActionThread)
		}
	}
	if hidden := len(c.Components) - len(listed); hidden > 0 {
		fmt.Fprintf(&sb, "\n... %d more", hidden)
	}
	return sb.String()
}

func (c *CriticalPath) IsEmpty() bool { return len(c.Components) == 0 }

func (*CriticalPath) EmptyReason() string {
	return "The profile does not contain a critical path."
}

// CriticalPathProvider builds the critical path from the "Critical Path"
// thread and matches each component to the action that produced it.
//
// Both are recorded independently, so their boundaries differ slightly. A
// component matches an action with the same description whose range contains
// the component's start and end within timeutil.Tolerance.
type CriticalPathProvider struct {
	datum.Base
	maxListed int
}

// NewCriticalPathProvider creates a CriticalPathProvider. maxListed caps the
// components listed in the summary; zero lists all.
func NewCriticalPathProvider(maxListed int) *CriticalPathProvider {
	return &CriticalPathProvider{Base: datum.NewBase("CriticalPathProvider"), maxListed: maxListed}
}

func (p *CriticalPathProvider) Bindings() []datum.Binding {
	return []datum.Binding{datum.BindMemoized(p.criticalPath)}
}

func (p *CriticalPathProvider) criticalPath() (*CriticalPath, error) {
	bp, err := datum.Get[*profile.BazelProfile](p.Registry())
	if err != nil {
		return nil, err
	}

	result := &CriticalPath{maxListed: p.maxListed}
	cpThread, ok := bp.ThreadNamed(CriticalPathThread)
	if !ok {
		return result, nil
	}

	actions := actionsByName(bp, cpThread.ID)
	for _, ev := range cpThread.CompleteEvents {
		comp := CriticalPathComponent{Description: componentDescription(ev.Name), Event: ev}
		for _, cand := range actions[comp.Description] {
			if cand.event.Range().ContainsRange(ev.Range()) {
				action := cand.event
				comp.Action = &action
				comp.ActionThread = cand.thread
				break
			}
		}
		result.Components = append(result.Components, comp)
		result.Duration += ev.Duration
	}
	return result, nil
}

type threadEvent struct {
	thread string
	event  tef.CompleteEvent
}

func actionsByName(bp *profile.BazelProfile, skip profile.ThreadID) map[string][]threadEvent {
	out := make(map[string][]threadEvent)
	for _, th := range bp.Threads() {
		if th.ID == skip {
			continue
		}
		for _, ev := range th.CompleteEvents {
			if ev.Category == CategoryAction {
				out[ev.Name] = append(out[ev.Name], threadEvent{thread: th.DisplayName(), event: ev})
			}
		}
	}
	return out
}

// componentDescription strips the "action '...'" wrapper Bazel puts around
// critical path component names.
func componentDescription(name string) string {
	const prefix = "action '"
	if len(name) > len(prefix) && strings.HasPrefix(name, prefix) && strings.HasSuffix(name, "'") {
		return name[len(prefix) : len(name)-1]
	}
	return name
}
