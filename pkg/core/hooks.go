package core

// Hooks defines callbacks for execution observability. All fields are
// optional; nil hooks are skipped. Hooks run synchronously on the ticking
// goroutine and must not block.
type Hooks struct {
	// OnTreeTick fires after a full tree tick, with the aggregate status.
	OnTreeTick func(tree *BehaviorTree, status Status)
	// OnNodeEnter fires when a traversal reaches a node.
	OnNodeEnter func(t *Tick, n Node)
	// OnNodeOpen fires when a node starts a new activation.
	OnNodeOpen func(t *Tick, n Node)
	// OnNodeClose fires when a node's activation ends, including aborts.
	OnNodeClose func(t *Tick, n Node)
	// OnNodeExit fires when a traversal leaves a node, with its status.
	OnNodeExit func(t *Tick, n Node, status Status)
}
