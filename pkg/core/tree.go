package core

// Reserved tree-scope blackboard keys.
const (
	// KeyNodeCount records how many nodes the last tick entered.
	KeyNodeCount = "nodeCount"
)

// BehaviorTree is the aggregate root: identity, metadata and a single root
// node. The node graph is immutable after load and may be shared read-only by
// any number of agents; all execution state lives in each agent's Blackboard.
type BehaviorTree struct {
	id          string
	title       string
	description string
	properties  map[string]any
	root        Node
	hooks       Hooks
}

// NewBehaviorTree creates an empty tree with a generated ID.
func NewBehaviorTree() *BehaviorTree {
	return &BehaviorTree{
		id:         NewID(),
		title:      "behavior tree",
		properties: make(map[string]any),
	}
}

func (bt *BehaviorTree) ID() string                 { return bt.id }
func (bt *BehaviorTree) Title() string              { return bt.title }
func (bt *BehaviorTree) Description() string        { return bt.description }
func (bt *BehaviorTree) Properties() map[string]any { return bt.properties }

// Root returns the root node. It is never nil after a successful load.
func (bt *BehaviorTree) Root() Node { return bt.root }

// SetRoot assigns the root node.
func (bt *BehaviorTree) SetRoot(n Node) { bt.root = n }

// SetMeta overrides identity and presentation fields; empty values are kept.
func (bt *BehaviorTree) SetMeta(id, title, description string) {
	if id != "" {
		bt.id = id
	}
	if title != "" {
		bt.title = title
	}
	if description != "" {
		bt.description = description
	}
}

// SetProperties replaces the tree's property bag, keeping it non-nil.
func (bt *BehaviorTree) SetProperties(props map[string]any) {
	if props == nil {
		props = make(map[string]any)
	}
	bt.properties = props
}

// SetHooks installs observability callbacks used by every subsequent tick.
func (bt *BehaviorTree) SetHooks(hooks Hooks) { bt.hooks = hooks }

// Tick evaluates the tree once for one agent. The traversal is synchronous
// and single-threaded; RUNNING only means "resume here on the next call".
//
// After the traversal, any node the previous tick left open that this tick
// did not reach again is closed, youngest first, so an aborted RUNNING branch
// always releases its blackboard entries.
func (bt *BehaviorTree) Tick(target any, blackboard *Blackboard) Status {
	if bt.root == nil {
		return StatusError
	}

	t := NewTick(bt, target, blackboard)
	t.hooks = bt.hooks

	status := Execute(bt.root, t)

	last := blackboard.openNodes(bt.id)
	curr := make([]Node, len(t.openNodes))
	copy(curr, t.openNodes)

	// Close the abandoned tail: everything after the longest common prefix
	// that the traversal did not already close itself.
	prefix := 0
	for prefix < len(last) && prefix < len(curr) && last[prefix] == curr[prefix] {
		prefix++
	}
	for i := len(last) - 1; i >= prefix; i-- {
		if blackboard.GetBool(KeyIsOpen, bt.id, last[i].ID()) {
			closeNode(last[i], t)
		}
	}

	blackboard.setOpenNodes(bt.id, curr)
	blackboard.Set(KeyNodeCount, t.nodeCount, bt.id, "")

	if bt.hooks.OnTreeTick != nil {
		bt.hooks.OnTreeTick(bt, status)
	}
	return status
}
