package composites

import "github.com/aretw0/canopy/pkg/core"

// KeyRunningChild is the blackboard key where memory composites persist the
// index of the child to resume on the next tick.
const KeyRunningChild = "runningChild"

// MemSequence is a Sequence that remembers which child was RUNNING and
// resumes from it on the next tick instead of restarting from the first
// child. The index lives in the agent's blackboard, scoped to this node, so
// different agents progress independently through the same definition.
type MemSequence struct {
	core.Composite
}

// NewMemSequence creates a MemSequence over the given children.
func NewMemSequence(children ...core.Node) *MemSequence {
	return &MemSequence{Composite: core.NewComposite("MemSequence", children...)}
}

// Open resets the resume index for a fresh activation.
func (s *MemSequence) Open(t *core.Tick) {
	t.Blackboard().Set(KeyRunningChild, 0, t.Tree().ID(), s.ID())
}

// Tick resumes from the remembered child and stops at the first non-SUCCESS.
func (s *MemSequence) Tick(t *core.Tick) core.Status {
	bb := t.Blackboard()
	children := s.Children()
	for i := bb.GetInt(KeyRunningChild, t.Tree().ID(), s.ID()); i < len(children); i++ {
		status := core.Execute(children[i], t)
		if status != core.StatusSuccess {
			if status == core.StatusRunning {
				bb.Set(KeyRunningChild, i, t.Tree().ID(), s.ID())
			}
			return status
		}
	}
	return core.StatusSuccess
}

// Close releases the resume index.
func (s *MemSequence) Close(t *core.Tick) {
	t.Blackboard().Remove(KeyRunningChild, t.Tree().ID(), s.ID())
}
