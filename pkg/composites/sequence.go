package composites

import "github.com/aretw0/canopy/pkg/core"

// Sequence executes its children in order and succeeds only if all of them
// succeed. The first child that does not report SUCCESS short-circuits the
// traversal and its status is returned as-is. There is no memory: a RUNNING
// child makes the whole sequence RUNNING, and the next tick restarts from the
// first child.
//
// With zero children a Sequence is vacuously SUCCESS.
type Sequence struct {
	core.Composite
}

// NewSequence creates a Sequence over the given children.
func NewSequence(children ...core.Node) *Sequence {
	return &Sequence{Composite: core.NewComposite("Sequence", children...)}
}

// Tick runs the children left to right, stopping at the first non-SUCCESS.
func (s *Sequence) Tick(t *core.Tick) core.Status {
	for _, child := range s.Children() {
		status := core.Execute(child, t)
		if status != core.StatusSuccess {
			return status
		}
	}
	return core.StatusSuccess
}
