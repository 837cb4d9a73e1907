package core

import "encoding/json"

// Blackboard is the externalized memory of one agent. A single immutable tree
// definition can be ticked by many agents as long as each supplies its own
// Blackboard; no cross-tick state is ever kept on the nodes themselves.
//
// Entries live in three scopes:
//   - base scope: agent-global values (treeID == "" and nodeID == "")
//   - tree scope: values private to one tree (nodeID == "")
//   - node scope: values private to one node of one tree
//
// A Blackboard is not safe for concurrent use. Agents own their Blackboard
// exclusively; callers ticking one agent from multiple goroutines must
// serialize those ticks.
type Blackboard struct {
	base  map[string]any
	trees map[string]*treeMemory
}

type treeMemory struct {
	mem   map[string]any
	nodes map[string]map[string]any

	// open tracks nodes left in RUNNING activations between ticks. It holds
	// live Node references and is deliberately excluded from snapshots.
	open []Node
}

// NewBlackboard creates an empty blackboard.
func NewBlackboard() *Blackboard {
	return &Blackboard{
		base:  make(map[string]any),
		trees: make(map[string]*treeMemory),
	}
}

func (b *Blackboard) tree(treeID string) *treeMemory {
	tm, ok := b.trees[treeID]
	if !ok {
		tm = &treeMemory{
			mem:   make(map[string]any),
			nodes: make(map[string]map[string]any),
		}
		b.trees[treeID] = tm
	}
	return tm
}

func (b *Blackboard) memory(treeID, nodeID string) map[string]any {
	if treeID == "" {
		return b.base
	}
	tm := b.tree(treeID)
	if nodeID == "" {
		return tm.mem
	}
	nm := tm.nodes[nodeID]
	if nm == nil {
		nm = make(map[string]any)
		tm.nodes[nodeID] = nm
	}
	return nm
}

// Set stores a value. Pass empty treeID/nodeID to widen the scope.
func (b *Blackboard) Set(key string, value any, treeID, nodeID string) {
	b.memory(treeID, nodeID)[key] = value
}

// Get retrieves a value, reporting whether it was present.
func (b *Blackboard) Get(key, treeID, nodeID string) (any, bool) {
	v, ok := b.memory(treeID, nodeID)[key]
	return v, ok
}

// Remove deletes an entry. Nodes call this from Close to release their
// per-activation state.
func (b *Blackboard) Remove(key, treeID, nodeID string) {
	delete(b.memory(treeID, nodeID), key)
}

// GetBool reads a boolean entry, returning false when absent or mistyped.
func (b *Blackboard) GetBool(key, treeID, nodeID string) bool {
	v, ok := b.Get(key, treeID, nodeID)
	if !ok {
		return false
	}
	bv, _ := v.(bool)
	return bv
}

// GetInt reads an integer entry, tolerating the numeric widenings produced by
// JSON round-trips (float64, json.Number). Returns 0 when absent.
func (b *Blackboard) GetInt(key, treeID, nodeID string) int {
	v, ok := b.Get(key, treeID, nodeID)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0
		}
		return int(i)
	default:
		return 0
	}
}

func (b *Blackboard) openNodes(treeID string) []Node {
	return b.tree(treeID).open
}

func (b *Blackboard) setOpenNodes(treeID string, nodes []Node) {
	b.tree(treeID).open = nodes
}

// Snapshot captures the durable contents of the blackboard for persistence.
// Values are copied shallowly; the open-node bookkeeping is volatile and not
// included (a restored agent resumes activations via the per-node open flags).
type Snapshot struct {
	Base  map[string]any          `json:"base,omitempty"`
	Trees map[string]TreeSnapshot `json:"trees,omitempty"`
}

// TreeSnapshot holds one tree's slice of a Snapshot.
type TreeSnapshot struct {
	Mem   map[string]any            `json:"mem,omitempty"`
	Nodes map[string]map[string]any `json:"nodes,omitempty"`
}

// Snapshot returns a copy of the blackboard's durable state.
func (b *Blackboard) Snapshot() *Snapshot {
	s := &Snapshot{
		Base:  copyMap(b.base),
		Trees: make(map[string]TreeSnapshot, len(b.trees)),
	}
	for id, tm := range b.trees {
		ts := TreeSnapshot{
			Mem:   copyMap(tm.mem),
			Nodes: make(map[string]map[string]any, len(tm.nodes)),
		}
		for nodeID, nm := range tm.nodes {
			ts.Nodes[nodeID] = copyMap(nm)
		}
		s.Trees[id] = ts
	}
	return s
}

// FromSnapshot rebuilds a blackboard from a persisted snapshot.
func FromSnapshot(s *Snapshot) *Blackboard {
	b := NewBlackboard()
	if s == nil {
		return b
	}
	for k, v := range s.Base {
		b.base[k] = v
	}
	for id, ts := range s.Trees {
		tm := b.tree(id)
		for k, v := range ts.Mem {
			tm.mem[k] = v
		}
		for nodeID, nm := range ts.Nodes {
			tm.nodes[nodeID] = copyMap(nm)
		}
	}
	return b
}

func copyMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
