package loader

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/canopy/internal/logging"
	"github.com/aretw0/canopy/pkg/core"
	"github.com/aretw0/canopy/pkg/registry"
)

// Loader turns tree specifications into live, wired node graphs. The
// definitions it produces are immutable afterwards and safe to share across
// agents.
type Loader struct {
	registry *registry.Registry
	logger   *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithRegistry sets the node-type registry used for name resolution.
func WithRegistry(r *registry.Registry) Option {
	return func(l *Loader) {
		l.registry = r
	}
}

// WithLogger sets a structured logger for load diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a Loader. Without options it resolves against the built-in
// registry and logs nowhere.
func New(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	if l.registry == nil {
		l.registry = registry.Default()
	}
	if l.logger == nil {
		l.logger = logging.NewNop()
	}
	return l
}

// Registry returns the registry used for name resolution.
func (l *Loader) Registry() *registry.Registry { return l.registry }

// LoadFile reads and loads a project document from disk.
func (l *Loader) LoadFile(path string) (map[string]*core.BehaviorTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return l.LoadProject(p)
}

// LoadTree loads a single tree specification with no sub-tree references.
func (l *Loader) LoadTree(spec *TreeSpec) (*core.BehaviorTree, error) {
	trees, err := l.LoadProject(&Project{Trees: []TreeSpec{*spec}})
	if err != nil {
		return nil, err
	}
	for _, bt := range trees {
		return bt, nil
	}
	return nil, fmt.Errorf("empty project")
}

// LoadProject builds every tree in the project and returns them keyed by
// tree ID. Loading is all-or-nothing: a single unresolvable node-type name
// aborts the whole project with an error identifying that name.
//
// The work happens in two project-wide passes. First every tree shell and
// every node instance is created (sub-tree references bind to the referenced
// tree's root instance, shared, never copied). Only then are children wired,
// so trees may reference each other in any order.
func (l *Loader) LoadProject(p *Project) (map[string]*core.BehaviorTree, error) {
	if p == nil {
		return nil, fmt.Errorf("nil project")
	}

	trees := make(map[string]*core.BehaviorTree, len(p.Trees))
	specs := make(map[string]*TreeSpec, len(p.Trees))

	// Pass 1a: tree shells. IDs default to fresh UUIDs.
	for i := range p.Trees {
		spec := &p.Trees[i]
		bt := core.NewBehaviorTree()
		bt.SetMeta(spec.ID, spec.Title, spec.Description)
		bt.SetProperties(spec.Properties)
		if _, dup := trees[bt.ID()]; dup {
			return nil, fmt.Errorf("duplicate tree id %q", bt.ID())
		}
		trees[bt.ID()] = bt
		specs[bt.ID()] = spec
	}

	// Pass 1b: node instances. Sub-tree references are recorded and resolved
	// below, once every tree's node table exists.
	instances := make(map[string]map[string]core.Node, len(p.Trees))
	refs := make(map[string]map[string]string)
	for treeID, spec := range specs {
		instances[treeID] = make(map[string]core.Node, len(spec.Nodes))
		for localID, ns := range spec.Nodes {
			if ns.Name == "" {
				return nil, fmt.Errorf("tree %q: node %q has no name", treeID, localID)
			}
			if _, isTree := specs[ns.Name]; isTree && ns.Name != treeID {
				if refs[treeID] == nil {
					refs[treeID] = make(map[string]string)
				}
				refs[treeID][localID] = ns.Name
				continue
			}
			n, err := l.registry.Build(ns.Name, ns.Properties)
			if err != nil {
				return nil, fmt.Errorf("tree %q: node %q: %w", treeID, localID, err)
			}
			n.SetMeta(localID, ns.Title, ns.Description)
			instances[treeID][localID] = n
			l.logger.Debug("instantiated node", "tree", treeID, "node", localID, "type", ns.Name)
		}
	}

	// Resolve sub-tree references to the referenced tree's root instance.
	for treeID, local := range refs {
		for localID, refTreeID := range local {
			root, err := resolveRoot(refTreeID, specs, instances, refs, nil)
			if err != nil {
				return nil, fmt.Errorf("tree %q: node %q: %w", treeID, localID, err)
			}
			instances[treeID][localID] = root
			l.logger.Debug("bound sub-tree", "tree", treeID, "node", localID, "subtree", refTreeID)
		}
	}

	// Pass 2: wiring, in specification order.
	for treeID, spec := range specs {
		bt := trees[treeID]
		for localID, ns := range spec.Nodes {
			if _, isRef := refs[treeID][localID]; isRef {
				// Shared roots are wired by their owning tree.
				continue
			}
			n := instances[treeID][localID]
			switch wired := n.(type) {
			case core.ContainerNode:
				for _, childID := range ns.Children {
					child, ok := instances[treeID][childID]
					if !ok {
						return nil, fmt.Errorf("tree %q: node %q references unknown child %q", treeID, localID, childID)
					}
					wired.AddChild(child)
				}
			case core.WrapperNode:
				if ns.Child != "" {
					child, ok := instances[treeID][ns.Child]
					if !ok {
						return nil, fmt.Errorf("tree %q: node %q references unknown child %q", treeID, localID, ns.Child)
					}
					wired.SetChild(child)
				}
			}
		}

		root, ok := instances[treeID][spec.Root]
		if !ok {
			return nil, fmt.Errorf("tree %q: %w: %q", treeID, core.ErrMissingRoot, spec.Root)
		}
		bt.SetRoot(root)
		l.logger.Debug("loaded tree", "tree", treeID, "nodes", len(spec.Nodes))
	}

	return trees, nil
}

// resolveRoot returns the root node instance of a tree, following chains of
// trees whose own root entry is a sub-tree reference.
func resolveRoot(treeID string, specs map[string]*TreeSpec, instances map[string]map[string]core.Node, refs map[string]map[string]string, visiting map[string]bool) (core.Node, error) {
	if visiting[treeID] {
		return nil, fmt.Errorf("sub-tree reference cycle through %q", treeID)
	}
	spec, ok := specs[treeID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrTreeNotFound, treeID)
	}
	if n, ok := instances[treeID][spec.Root]; ok {
		return n, nil
	}
	next, ok := refs[treeID][spec.Root]
	if !ok {
		return nil, fmt.Errorf("tree %q: %w: %q", treeID, core.ErrMissingRoot, spec.Root)
	}
	if visiting == nil {
		visiting = make(map[string]bool)
	}
	visiting[treeID] = true
	return resolveRoot(next, specs, instances, refs, visiting)
}
