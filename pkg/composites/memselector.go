package composites

import "github.com/aretw0/canopy/pkg/core"

// MemSelector is a Selector that remembers which child was RUNNING and
// resumes from it on the next tick, skipping the children that already
// failed during this activation.
type MemSelector struct {
	core.Composite
}

// NewMemSelector creates a MemSelector over the given children.
func NewMemSelector(children ...core.Node) *MemSelector {
	return &MemSelector{Composite: core.NewComposite("MemSelector", children...)}
}

// Open resets the resume index for a fresh activation.
func (s *MemSelector) Open(t *core.Tick) {
	t.Blackboard().Set(KeyRunningChild, 0, t.Tree().ID(), s.ID())
}

// Tick resumes from the remembered child and stops at the first non-FAILURE.
func (s *MemSelector) Tick(t *core.Tick) core.Status {
	bb := t.Blackboard()
	children := s.Children()
	for i := bb.GetInt(KeyRunningChild, t.Tree().ID(), s.ID()); i < len(children); i++ {
		status := core.Execute(children[i], t)
		if status != core.StatusFailure {
			if status == core.StatusRunning {
				bb.Set(KeyRunningChild, i, t.Tree().ID(), s.ID())
			}
			return status
		}
	}
	return core.StatusFailure
}

// Close releases the resume index.
func (s *MemSelector) Close(t *core.Tick) {
	t.Blackboard().Remove(KeyRunningChild, t.Tree().ID(), s.ID())
}
