package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/canopy/pkg/core"
)

// GenerateMermaid produces a Mermaid flowchart for a wired tree.
// It applies semantic shapes per category:
//   - Composite: [[Subroutine]]
//   - Decorator: ([Stadium])
//   - Condition: [/Parallelogram/]
//   - Action (and anything else): [Rectangle]
//
// Shared sub-tree roots render once; extra parents just add edges.
func GenerateMermaid(bt *core.BehaviorTree) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	root := bt.Root()
	if root == nil {
		return sb.String()
	}

	visited := make(map[string]bool)
	writeNode(&sb, root, visited)
	return sb.String()
}

func writeNode(sb *strings.Builder, n core.Node, visited map[string]bool) {
	if visited[n.ID()] {
		return
	}
	visited[n.ID()] = true

	opener, closer := "[", "]"
	switch n.Category() {
	case core.CategoryComposite:
		opener, closer = "[[", "]]"
	case core.CategoryDecorator:
		opener, closer = "([", "])"
	case core.CategoryCondition:
		opener, closer = "[/", "/]"
	}

	label := n.Title()
	if label == "" {
		label = n.Name()
	}
	label = strings.ReplaceAll(label, "\"", "'")
	fmt.Fprintf(sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(n.ID()), opener, label, closer)

	switch wired := n.(type) {
	case core.ContainerNode:
		for _, child := range wired.Children() {
			fmt.Fprintf(sb, "    %s --> %s\n", sanitizeMermaidID(n.ID()), sanitizeMermaidID(child.ID()))
		}
		for _, child := range wired.Children() {
			writeNode(sb, child, visited)
		}
	case core.WrapperNode:
		if child := wired.Child(); child != nil {
			fmt.Fprintf(sb, "    %s --> %s\n", sanitizeMermaidID(n.ID()), sanitizeMermaidID(child.ID()))
			writeNode(sb, child, visited)
		}
	}
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
