package loader

import "github.com/aretw0/canopy/pkg/core"

// Describe re-derives a tree specification from a live graph: the node table
// of everything reachable from the root, with category-appropriate wiring.
// Loading a project and describing the result reproduces the original node
// count, categories and child wiring.
//
// Shared sub-tree roots reachable from this tree are inlined into the node
// table; Describe has no project context to emit them as references.
func Describe(bt *core.BehaviorTree) *TreeSpec {
	spec := &TreeSpec{
		ID:          bt.ID(),
		Title:       bt.Title(),
		Description: bt.Description(),
		Properties:  bt.Properties(),
		Nodes:       make(map[string]NodeSpec),
	}
	root := bt.Root()
	if root == nil {
		return spec
	}
	spec.Root = root.ID()
	describeNode(root, spec.Nodes)
	return spec
}

func describeNode(n core.Node, table map[string]NodeSpec) {
	if _, seen := table[n.ID()]; seen {
		// DAGs with shared sub-trees visit a node more than once.
		return
	}

	ns := NodeSpec{
		Name:        n.Name(),
		Title:       n.Title(),
		Description: n.Description(),
		Properties:  n.Properties(),
	}

	switch wired := n.(type) {
	case core.ContainerNode:
		for _, child := range wired.Children() {
			ns.Children = append(ns.Children, child.ID())
		}
		table[n.ID()] = ns
		for _, child := range wired.Children() {
			describeNode(child, table)
		}
	case core.WrapperNode:
		if child := wired.Child(); child != nil {
			ns.Child = child.ID()
			table[n.ID()] = ns
			describeNode(child, table)
			return
		}
		table[n.ID()] = ns
	default:
		table[n.ID()] = ns
	}
}
