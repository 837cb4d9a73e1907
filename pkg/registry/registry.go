package registry

import (
	"fmt"
	"sync"

	"github.com/aretw0/canopy/pkg/core"
)

// Factory builds a node from a spec's property bag. The category of the
// resulting node is fixed by its type, not by the properties.
type Factory func(properties map[string]any) (core.Node, error)

// UnknownNodeError reports a node-type name that matched neither tier.
type UnknownNodeError struct {
	Name string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("node type not registered: %q", e.Name)
}

// Registry resolves node-type names against two tiers of factories:
// caller-supplied custom nodes first, then built-ins. Lookup misses are an
// explicit result, never an implicit zero value.
type Registry struct {
	mu      sync.RWMutex
	custom  map[string]Factory
	builtin map[string]Factory
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		custom:  make(map[string]Factory),
		builtin: make(map[string]Factory),
	}
}

// Register adds a factory to the custom tier. An existing entry with the
// same name is overwritten; custom entries shadow built-ins.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.custom[name] = f
}

// RegisterBuiltin adds a factory to the built-in tier.
func (r *Registry) RegisterBuiltin(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builtin[name] = f
}

// Resolve looks a name up, custom tier first.
func (r *Registry) Resolve(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.custom[name]; ok {
		return f, true
	}
	f, ok := r.builtin[name]
	return f, ok
}

// Build resolves name and constructs a node from properties.
// Returns *UnknownNodeError when the name matches neither tier.
func (r *Registry) Build(name string, properties map[string]any) (core.Node, error) {
	f, ok := r.Resolve(name)
	if !ok {
		return nil, &UnknownNodeError{Name: name}
	}
	n, err := f(properties)
	if err != nil {
		return nil, fmt.Errorf("failed to construct node %q: %w", name, err)
	}
	return n, nil
}

// Names returns every registered name across both tiers, deduplicated.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{}, len(r.custom)+len(r.builtin))
	var names []string
	for n := range r.builtin {
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			names = append(names, n)
		}
	}
	for n := range r.custom {
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			names = append(names, n)
		}
	}
	return names
}
