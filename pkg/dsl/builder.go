package dsl

import (
	"fmt"
	"time"

	"github.com/aretw0/canopy/pkg/loader"
)

// Tree accumulates a single tree definition.
type Tree struct {
	id          string
	title       string
	description string
	properties  map[string]any
	root        *Node
}

// NewTree starts a tree with the given ID.
func NewTree(id string) *Tree {
	return &Tree{id: id}
}

// Title sets the tree title.
func (t *Tree) Title(title string) *Tree {
	t.title = title
	return t
}

// Description sets the tree description.
func (t *Tree) Description(description string) *Tree {
	t.description = description
	return t
}

// Properties sets the tree property bag.
func (t *Tree) Properties(props map[string]any) *Tree {
	t.properties = props
	return t
}

// Root designates the root node.
func (t *Tree) Root(n *Node) *Tree {
	t.root = n
	return t
}

// Build compiles the tree into a specification, assigning sequential local
// node IDs in depth-first order.
func (t *Tree) Build() (*loader.TreeSpec, error) {
	if t.root == nil {
		return nil, fmt.Errorf("tree %q has no root", t.id)
	}

	spec := &loader.TreeSpec{
		ID:          t.id,
		Title:       t.title,
		Description: t.description,
		Properties:  t.properties,
		Nodes:       make(map[string]loader.NodeSpec),
	}

	ids := make(map[*Node]string)
	assign(t.root, spec.Nodes, ids)
	spec.Root = ids[t.root]
	return spec, nil
}

func assign(n *Node, table map[string]loader.NodeSpec, ids map[*Node]string) string {
	if id, ok := ids[n]; ok {
		// A node used twice in one tree keeps a single identity.
		return id
	}
	id := fmt.Sprintf("n%d", len(ids)+1)
	ids[n] = id

	ns := loader.NodeSpec{
		Name:        n.name,
		Title:       n.title,
		Description: n.description,
		Properties:  n.properties,
	}
	// Reserve the ID before descending so children number after parents.
	table[id] = ns

	for _, child := range n.children {
		ns.Children = append(ns.Children, assign(child, table, ids))
	}
	if n.child != nil {
		ns.Child = assign(n.child, table, ids)
	}
	table[id] = ns
	return id
}

// Project compiles several trees into one project specification. Trees may
// reference each other through SubTree nodes.
func Project(trees ...*Tree) (*loader.Project, error) {
	p := &loader.Project{}
	for _, t := range trees {
		spec, err := t.Build()
		if err != nil {
			return nil, err
		}
		p.Trees = append(p.Trees, *spec)
	}
	return p, nil
}

// Node is a declarative node under construction.
type Node struct {
	name        string
	title       string
	description string
	properties  map[string]any
	children    []*Node
	child       *Node
}

// Title sets the node title.
func (n *Node) Title(title string) *Node {
	n.title = title
	return n
}

// Description sets the node description.
func (n *Node) Description(description string) *Node {
	n.description = description
	return n
}

// Sequence declares a Sequence over children.
func Sequence(children ...*Node) *Node {
	return &Node{name: "Sequence", children: children}
}

// Selector declares a Selector over children.
func Selector(children ...*Node) *Node {
	return &Node{name: "Selector", children: children}
}

// MemSequence declares a memory-preserving Sequence.
func MemSequence(children ...*Node) *Node {
	return &Node{name: "MemSequence", children: children}
}

// MemSelector declares a memory-preserving Selector.
func MemSelector(children ...*Node) *Node {
	return &Node{name: "MemSelector", children: children}
}

// Parallel declares a threshold-aggregating Parallel.
func Parallel(failureThreshold, successThreshold int, children ...*Node) *Node {
	return &Node{
		name: "Parallel",
		properties: map[string]any{
			"failureThreshold": failureThreshold,
			"successThreshold": successThreshold,
		},
		children: children,
	}
}

// Inverter declares an Inverter around child.
func Inverter(child *Node) *Node {
	return &Node{name: "Inverter", child: child}
}

// RepeatUntilFailure declares a repeat loop around child.
func RepeatUntilFailure(maxLoop int, child *Node) *Node {
	return &Node{
		name:       "RepeatUntilFailure",
		properties: map[string]any{"maxLoop": maxLoop},
		child:      child,
	}
}

// Limiter declares an activation cap around child.
func Limiter(maxLoop int, child *Node) *Node {
	return &Node{
		name:       "Limiter",
		properties: map[string]any{"maxLoop": maxLoop},
		child:      child,
	}
}

// Succeeder declares a Succeeder around child.
func Succeeder(child *Node) *Node {
	return &Node{name: "Succeeder", child: child}
}

// Failer declares a Failer around child.
func Failer(child *Node) *Node {
	return &Node{name: "Failer", child: child}
}

// Wait declares a Wait action.
func Wait(d time.Duration) *Node {
	return &Node{
		name:       "Wait",
		properties: map[string]any{"milliseconds": int(d.Milliseconds())},
	}
}

// Leaf declares a leaf by its registered node-type name.
func Leaf(name string, properties map[string]any) *Node {
	return &Node{name: name, properties: properties}
}

// SubTree declares a reference to another tree in the same project.
func SubTree(treeID string) *Node {
	return &Node{name: treeID}
}
