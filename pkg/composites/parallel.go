package composites

import "github.com/aretw0/canopy/pkg/core"

// Parallel executes every child on every tick and aggregates the results by
// counting. "Parallel" describes the aggregation, not the scheduling: the
// children still run sequentially, left to right, within one call.
//
// With S = SuccessThreshold and F = FailureThreshold, the result is SUCCESS
// when successCount >= S (checked first), else FAILURE when
// failureCount >= F, else RUNNING. Both thresholds default to 0, which is
// trivially satisfied; callers wanting useful behavior must supply sensible
// values (e.g. S = len(children)). This is deliberately not validated.
//
// Parallel never short-circuits and keeps no per-child memory: it has no
// notion of partial progress through the list, every child is re-ticked each
// cycle.
type Parallel struct {
	core.Composite
	successThreshold int
	failureThreshold int
}

// NewParallel creates a Parallel with explicit thresholds.
func NewParallel(failureThreshold, successThreshold int, children ...core.Node) *Parallel {
	return &Parallel{
		Composite:        core.NewComposite("Parallel", children...),
		successThreshold: successThreshold,
		failureThreshold: failureThreshold,
	}
}

// SuccessThreshold returns S.
func (p *Parallel) SuccessThreshold() int { return p.successThreshold }

// FailureThreshold returns F.
func (p *Parallel) FailureThreshold() int { return p.failureThreshold }

// Tick executes all children and applies the threshold rule.
func (p *Parallel) Tick(t *core.Tick) core.Status {
	var successes, failures int
	for _, child := range p.Children() {
		switch core.Execute(child, t) {
		case core.StatusSuccess:
			successes++
		case core.StatusFailure:
			failures++
		}
		// RUNNING and ERROR children count toward neither threshold.
	}

	if successes >= p.successThreshold {
		return core.StatusSuccess
	}
	if failures >= p.failureThreshold {
		return core.StatusFailure
	}
	return core.StatusRunning
}
