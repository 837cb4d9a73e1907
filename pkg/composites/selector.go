package composites

import "github.com/aretw0/canopy/pkg/core"

// Selector executes its children in order and succeeds on the first child
// that succeeds, short-circuiting the rest. Any status other than FAILURE
// (SUCCESS, RUNNING, ERROR) is returned as-is; FAILURE moves on to the next
// child. Like Sequence it keeps no memory between ticks.
//
// With zero children a Selector is vacuously FAILURE.
type Selector struct {
	core.Composite
}

// NewSelector creates a Selector over the given children.
func NewSelector(children ...core.Node) *Selector {
	return &Selector{Composite: core.NewComposite("Selector", children...)}
}

// Tick runs the children left to right, stopping at the first non-FAILURE.
func (s *Selector) Tick(t *core.Tick) core.Status {
	for _, child := range s.Children() {
		status := core.Execute(child, t)
		if status != core.StatusFailure {
			return status
		}
	}
	return core.StatusFailure
}
