package decorators

import "github.com/aretw0/canopy/pkg/core"

// Limiter caps how many times its child may complete within one of the
// limiter's own activations. Once the child has reached MaxLoop terminal
// outcomes, further ticks report FAILURE without touching the child.
type Limiter struct {
	core.Decorator
	maxLoop int
}

// NewLimiter creates a Limiter allowing maxLoop child completions.
func NewLimiter(maxLoop int, child core.Node) *Limiter {
	return &Limiter{
		Decorator: core.NewDecorator("Limiter", child),
		maxLoop:   maxLoop,
	}
}

// MaxLoop returns the completion cap.
func (d *Limiter) MaxLoop() int { return d.maxLoop }

// Open resets the completion counter.
func (d *Limiter) Open(t *core.Tick) {
	t.Blackboard().Set(KeyIterations, 0, t.Tree().ID(), d.ID())
}

// Tick executes the child while the cap allows it.
func (d *Limiter) Tick(t *core.Tick) core.Status {
	child := d.Child()
	if child == nil {
		return core.StatusError
	}

	bb := t.Blackboard()
	i := bb.GetInt(KeyIterations, t.Tree().ID(), d.ID())
	if i >= d.maxLoop {
		return core.StatusFailure
	}

	status := core.Execute(child, t)
	if status == core.StatusSuccess || status == core.StatusFailure {
		bb.Set(KeyIterations, i+1, t.Tree().ID(), d.ID())
	}
	return status
}

// Close releases the completion counter.
func (d *Limiter) Close(t *core.Tick) {
	t.Blackboard().Remove(KeyIterations, t.Tree().ID(), d.ID())
}
