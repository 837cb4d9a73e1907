package leaves

import "github.com/aretw0/canopy/pkg/core"

// Action wraps a plain function as an ACTION leaf. The function must be a
// pure function of the tick and blackboard state: no hidden fields, so the
// same node can serve many agents.
type Action struct {
	core.BaseNode
	fn func(t *core.Tick) core.Status
}

// NewAction creates an ACTION leaf named name around fn.
func NewAction(name string, fn func(t *core.Tick) core.Status) *Action {
	return &Action{
		BaseNode: core.NewBaseNode(core.CategoryAction, name),
		fn:       fn,
	}
}

func (a *Action) Tick(t *core.Tick) core.Status {
	if a.fn == nil {
		return core.StatusError
	}
	return a.fn(t)
}

// Condition wraps a predicate as a CONDITION leaf, mapping true to SUCCESS
// and false to FAILURE.
type Condition struct {
	core.BaseNode
	fn func(t *core.Tick) bool
}

// NewCondition creates a CONDITION leaf named name around fn.
func NewCondition(name string, fn func(t *core.Tick) bool) *Condition {
	return &Condition{
		BaseNode: core.NewBaseNode(core.CategoryCondition, name),
		fn:       fn,
	}
}

func (c *Condition) Tick(t *core.Tick) core.Status {
	if c.fn == nil {
		return core.StatusError
	}
	if c.fn(t) {
		return core.StatusSuccess
	}
	return core.StatusFailure
}
