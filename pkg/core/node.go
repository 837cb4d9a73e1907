package core

import "github.com/google/uuid"

// NewID yields a unique identifier for trees and nodes that were not given an
// explicit one. It is an opaque collaborator; tests may swap it for a
// deterministic generator.
var NewID = uuid.NewString

// Reserved per-node blackboard keys managed by the execution protocol.
const (
	// KeyIsOpen marks a node as being inside an activation (opened, not yet
	// closed). Execute maintains it; nodes never write it directly.
	KeyIsOpen = "isOpen"
)

// Node is the unit of control flow. Implementations embed BaseNode (or
// Composite/Decorator for the branching categories) and override the
// lifecycle methods they need.
//
// The lifecycle contract: Open runs exactly once before the first Tick of an
// activation, Tick runs on every traversal that reaches the node, and Close
// runs exactly once when the activation ends, whether the node finished or a
// parent abandoned it mid-RUNNING. Callers never invoke these directly; they
// go through Execute, which keeps open/close balanced.
type Node interface {
	ID() string
	Name() string
	Title() string
	Description() string
	Category() Category
	Properties() map[string]any

	// SetMeta overrides identity and presentation fields. Empty arguments
	// leave the current values in place.
	SetMeta(id, title, description string)

	Open(t *Tick)
	Tick(t *Tick) Status
	Close(t *Tick)
}

// ContainerNode is the wiring surface of COMPOSITE nodes.
type ContainerNode interface {
	Node
	AddChild(n Node)
	Children() []Node
}

// WrapperNode is the wiring surface of DECORATOR nodes.
type WrapperNode interface {
	Node
	SetChild(n Node)
	Child() Node
}

// BaseNode carries the identity, category and property bag shared by every
// node kind. Open and Close default to no-ops.
type BaseNode struct {
	id          string
	name        string
	title       string
	description string
	category    Category
	properties  map[string]any
}

// NewBaseNode creates a base with a fresh ID. The name is the registered
// node-type name (e.g. "Sequence"); the title defaults to it.
func NewBaseNode(category Category, name string) BaseNode {
	return BaseNode{
		id:         NewID(),
		name:       name,
		title:      name,
		category:   category,
		properties: make(map[string]any),
	}
}

func (b *BaseNode) ID() string                 { return b.id }
func (b *BaseNode) Name() string               { return b.name }
func (b *BaseNode) Title() string              { return b.title }
func (b *BaseNode) Description() string        { return b.description }
func (b *BaseNode) Category() Category         { return b.category }
func (b *BaseNode) Properties() map[string]any { return b.properties }

// SetMeta overrides identity and presentation fields; empty values are kept.
func (b *BaseNode) SetMeta(id, title, description string) {
	if id != "" {
		b.id = id
	}
	if title != "" {
		b.title = title
	}
	if description != "" {
		b.description = description
	}
}

// SetProperties replaces the property bag, keeping it non-nil.
func (b *BaseNode) SetProperties(props map[string]any) {
	if props == nil {
		props = make(map[string]any)
	}
	b.properties = props
}

// Open is a no-op by default.
func (b *BaseNode) Open(t *Tick) {}

// Close is a no-op by default.
func (b *BaseNode) Close(t *Tick) {}

// Composite is the base for nodes owning an ordered list of children. The
// list is fixed at load time and never mutated afterwards.
type Composite struct {
	BaseNode
	children []Node
}

// NewComposite creates a composite base with the given children.
func NewComposite(name string, children ...Node) Composite {
	return Composite{
		BaseNode: NewBaseNode(CategoryComposite, name),
		children: children,
	}
}

// AddChild appends a child, preserving order.
func (c *Composite) AddChild(n Node) {
	c.children = append(c.children, n)
}

// Children returns the ordered child list.
func (c *Composite) Children() []Node { return c.children }

// Decorator is the base for nodes owning exactly one child.
type Decorator struct {
	BaseNode
	child Node
}

// NewDecorator creates a decorator base wrapping child (may be nil until wiring).
func NewDecorator(name string, child Node) Decorator {
	return Decorator{
		BaseNode: NewBaseNode(CategoryDecorator, name),
		child:    child,
	}
}

// SetChild assigns the wrapped child.
func (d *Decorator) SetChild(n Node) { d.child = n }

// Child returns the wrapped child.
func (d *Decorator) Child() Node { return d.child }

// Execute drives one traversal of n: it opens the node if a previous tick did
// not leave it open, ticks it, and closes it again unless it reported
// RUNNING. Composites and decorators must call Execute on their children,
// never Tick, so that every child's open/close stays balanced.
func Execute(n Node, t *Tick) Status {
	t.enterNode(n)

	treeID := t.tree.ID()
	if !t.blackboard.GetBool(KeyIsOpen, treeID, n.ID()) {
		t.openNode(n)
		t.blackboard.Set(KeyIsOpen, true, treeID, n.ID())
		n.Open(t)
	}

	status := n.Tick(t)

	if status != StatusRunning {
		closeNode(n, t)
	}
	t.exitNode(n, status)
	return status
}

// closeNode ends n's activation: it clears the open flag, lets the node
// release its blackboard entries, and unwinds the tick's open-node stack.
func closeNode(n Node, t *Tick) {
	t.closeNode(n)
	t.blackboard.Set(KeyIsOpen, false, t.tree.ID(), n.ID())
	n.Close(t)
}
