package core

// Tick is the execution context that flows down a traversal. It binds the
// calling agent (target), its blackboard and the tree being evaluated, and
// records which nodes opened along the way so the tree can close abandoned
// activations on the next tick.
type Tick struct {
	target     any
	blackboard *Blackboard
	tree       *BehaviorTree
	hooks      Hooks

	openNodes []Node
	nodeCount int
}

// NewTick creates a context for one traversal of tree on behalf of target.
func NewTick(tree *BehaviorTree, target any, blackboard *Blackboard) *Tick {
	return &Tick{
		target:     target,
		blackboard: blackboard,
		tree:       tree,
	}
}

// Target returns the agent this tick acts for.
func (t *Tick) Target() any { return t.target }

// Blackboard returns the agent's blackboard.
func (t *Tick) Blackboard() *Blackboard { return t.blackboard }

// Tree returns the tree being ticked.
func (t *Tick) Tree() *BehaviorTree { return t.tree }

// OpenNodeCount reports how many nodes are currently open in this traversal.
func (t *Tick) OpenNodeCount() int { return len(t.openNodes) }

// NodeCount reports how many nodes this traversal has entered.
func (t *Tick) NodeCount() int { return t.nodeCount }

func (t *Tick) enterNode(n Node) {
	t.nodeCount++
	// Track every entered node, not just fresh opens: a node resumed from a
	// previous tick is still part of this traversal's open set.
	t.openNodes = append(t.openNodes, n)
	if t.hooks.OnNodeEnter != nil {
		t.hooks.OnNodeEnter(t, n)
	}
}

func (t *Tick) openNode(n Node) {
	if t.hooks.OnNodeOpen != nil {
		t.hooks.OnNodeOpen(t, n)
	}
}

func (t *Tick) closeNode(n Node) {
	// Stale closes (nodes abandoned by a previous traversal) are not on the
	// stack; execution-driven closes always unwind the tail.
	if l := len(t.openNodes); l > 0 && t.openNodes[l-1] == n {
		t.openNodes = t.openNodes[:l-1]
	}
	if t.hooks.OnNodeClose != nil {
		t.hooks.OnNodeClose(t, n)
	}
}

func (t *Tick) exitNode(n Node, status Status) {
	if t.hooks.OnNodeExit != nil {
		t.hooks.OnNodeExit(t, n, status)
	}
}
