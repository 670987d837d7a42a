package providers

import (
	"fmt"

	"github.com/roach88/buildlens/internal/datum"
	"github.com/roach88/buildlens/internal/profile"
)

// EvaluatorThreadPrefix names Skyframe's worker threads. Bazel starts one
// per available core (or per --jobs), so their count estimates the
// parallelism the build had.
const EvaluatorThreadPrefix = "skyframe-evaluator"

// EstimatedCores is the number of Skyframe evaluator threads observed.
type EstimatedCores struct {
	Count int
}

func (*EstimatedCores) Description() string {
	return "The number of cores Bazel used, estimated from its evaluator threads."
}

func (c *EstimatedCores) Summary() string {
	return fmt.Sprintf("%d", c.Count)
}

func (c *EstimatedCores) IsEmpty() bool { return c.Count == 0 }

func (*EstimatedCores) EmptyReason() string {
	return "The profile contains no skyframe-evaluator threads."
}

// EstimatedCoresProvider counts evaluator threads.
type EstimatedCoresProvider struct {
	datum.Base
}

// NewEstimatedCoresProvider creates an EstimatedCoresProvider.
func NewEstimatedCoresProvider() *EstimatedCoresProvider {
	return &EstimatedCoresProvider{Base: datum.NewBase("EstimatedCoresProvider")}
}

func (p *EstimatedCoresProvider) Bindings() []datum.Binding {
	return []datum.Binding{datum.BindMemoized(p.cores)}
}

func (p *EstimatedCoresProvider) cores() (*EstimatedCores, error) {
	bp, err := datum.Get[*profile.BazelProfile](p.Registry())
	if err != nil {
		return nil, err
	}
	return &EstimatedCores{Count: len(bp.ThreadsWithPrefix(EvaluatorThreadPrefix))}, nil
}
