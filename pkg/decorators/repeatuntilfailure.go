package decorators

import "github.com/aretw0/canopy/pkg/core"

// KeyIterations is the blackboard key where repetition decorators count
// completed child activations within the current activation.
const KeyIterations = "iterations"

// RepeatUntilFailure re-runs its child until it fails. Each tick executes the
// child at most once: a child SUCCESS yields RUNNING (the child re-opens on
// the next tick), a child FAILURE ends the loop with SUCCESS, and RUNNING or
// ERROR pass through. MaxLoop, when positive, caps the number of successful
// child activations; reaching the cap also ends the loop with SUCCESS.
type RepeatUntilFailure struct {
	core.Decorator
	maxLoop int
}

// NewRepeatUntilFailure creates the decorator. maxLoop <= 0 means unbounded.
func NewRepeatUntilFailure(maxLoop int, child core.Node) *RepeatUntilFailure {
	return &RepeatUntilFailure{
		Decorator: core.NewDecorator("RepeatUntilFailure", child),
		maxLoop:   maxLoop,
	}
}

// MaxLoop returns the activation cap (<= 0 when unbounded).
func (d *RepeatUntilFailure) MaxLoop() int { return d.maxLoop }

// Open resets the iteration counter.
func (d *RepeatUntilFailure) Open(t *core.Tick) {
	t.Blackboard().Set(KeyIterations, 0, t.Tree().ID(), d.ID())
}

// Tick executes the child once and decides whether the loop continues.
func (d *RepeatUntilFailure) Tick(t *core.Tick) core.Status {
	child := d.Child()
	if child == nil {
		return core.StatusError
	}

	switch status := core.Execute(child, t); status {
	case core.StatusSuccess:
		bb := t.Blackboard()
		i := bb.GetInt(KeyIterations, t.Tree().ID(), d.ID()) + 1
		if d.maxLoop > 0 && i >= d.maxLoop {
			return core.StatusSuccess
		}
		bb.Set(KeyIterations, i, t.Tree().ID(), d.ID())
		return core.StatusRunning
	case core.StatusFailure:
		return core.StatusSuccess
	default:
		return status
	}
}

// Close releases the iteration counter.
func (d *RepeatUntilFailure) Close(t *core.Tick) {
	t.Blackboard().Remove(KeyIterations, t.Tree().ID(), d.ID())
}
