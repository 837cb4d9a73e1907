package testutils

import (
	"github.com/aretw0/canopy/pkg/core"
)

// Probe is a scripted ACTION leaf for lifecycle assertions: it replays a fixed
// status script (cycling when exhausted) and counts its Open/Tick/Close calls.
type Probe struct {
	core.BaseNode
	Script []core.Status
	Ticks  int
	Opens  int
	Closes int
}

// NewProbe creates a Probe replaying the given statuses.
func NewProbe(script ...core.Status) *Probe {
	return &Probe{
		BaseNode: core.NewBaseNode(core.CategoryAction, "Probe"),
		Script:   script,
	}
}

func (p *Probe) Open(t *core.Tick)  { p.Opens++ }
func (p *Probe) Close(t *core.Tick) { p.Closes++ }

func (p *Probe) Tick(t *core.Tick) core.Status {
	status := p.Script[p.Ticks%len(p.Script)]
	p.Ticks++
	return status
}

// Tree wraps a root node into a tree ready to tick.
func Tree(root core.Node) *core.BehaviorTree {
	bt := core.NewBehaviorTree()
	bt.SetRoot(root)
	return bt
}

// TickOnce runs a single tick against a fresh blackboard and returns both.
func TickOnce(root core.Node) (core.Status, *core.Blackboard) {
	bt := Tree(root)
	bb := core.NewBlackboard()
	return bt.Tick(nil, bb), bb
}
