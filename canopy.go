package canopy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/canopy/internal/logging"
	"github.com/aretw0/canopy/pkg/core"
	"github.com/aretw0/canopy/pkg/loader"
	"github.com/aretw0/canopy/pkg/ports"
	"github.com/aretw0/canopy/pkg/registry"
)

// Engine is the high-level entry point for the Canopy library. It hosts a
// loaded project of behavior trees and the per-agent blackboards that tick
// against them, optionally persisting agent state through a BlackboardStore.
type Engine struct {
	registry *registry.Registry
	loader   *loader.Loader
	store    ports.BlackboardStore
	locker   ports.DistributedLocker
	hooks    core.Hooks
	logger   *slog.Logger
	Name     string

	mu     sync.Mutex
	trees  map[string]*core.BehaviorTree
	agents map[string]*core.Blackboard
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithRegistry injects a node-type registry, typically registry.Default()
// extended with the application's custom leaves.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithBlackboardStore enables durable agents: blackboards are loaded from the
// store before a tick and saved back after it.
func WithBlackboardStore(store ports.BlackboardStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker serializes ticks per agent across engine replicas that share a
// BlackboardStore. While a locker is configured the store is authoritative
// and agent blackboards are restored fresh for every tick.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithHooks registers observability hooks installed on every loaded tree.
func WithHooks(hooks core.Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes an Engine. Trees are added afterwards with LoadFile or
// LoadProject.
func New(opts ...Option) *Engine {
	e := &Engine{
		trees:  make(map[string]*core.BehaviorTree),
		agents: make(map[string]*core.Blackboard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = registry.Default()
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	e.loader = loader.New(
		loader.WithRegistry(e.registry),
		loader.WithLogger(e.logger),
	)
	return e
}

// Registry returns the node-type registry used for loading.
func (e *Engine) Registry() *registry.Registry { return e.registry }

// LoadFile loads a project document from disk and hosts its trees. The
// engine takes its name from the file when it has none yet.
func (e *Engine) LoadFile(path string) error {
	trees, err := e.loader.LoadFile(path)
	if err != nil {
		return err
	}
	if e.Name == "" {
		e.Name = filepath.Base(path)
	}
	e.adopt(trees)
	return nil
}

// LoadSource loads a project document from a ProjectSource and hosts its
// trees.
func (e *Engine) LoadSource(ctx context.Context, src ports.ProjectSource) error {
	data, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to read project source: %w", err)
	}
	p, err := loader.Parse(data)
	if err != nil {
		return err
	}
	return e.LoadProject(p)
}

// LoadProject hosts every tree of an in-memory project specification.
func (e *Engine) LoadProject(p *loader.Project) error {
	trees, err := e.loader.LoadProject(p)
	if err != nil {
		return err
	}
	e.adopt(trees)
	return nil
}

func (e *Engine) adopt(trees map[string]*core.BehaviorTree) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for id, bt := range trees {
		bt.SetHooks(e.hooks)
		e.trees[id] = bt
		e.logger.Info("hosting tree", "tree", id, "title", bt.Title())
	}
}

// Tree returns a hosted tree by ID.
func (e *Engine) Tree(id string) (*core.BehaviorTree, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	bt, ok := e.trees[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrTreeNotFound, id)
	}
	return bt, nil
}

// Trees returns all hosted trees, sorted by ID.
func (e *Engine) Trees() []*core.BehaviorTree {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*core.BehaviorTree, 0, len(e.trees))
	for _, bt := range e.trees {
		out = append(out, bt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Describe re-derives the TreeSpec of a hosted tree.
func (e *Engine) Describe(treeID string) (*loader.TreeSpec, error) {
	bt, err := e.Tree(treeID)
	if err != nil {
		return nil, err
	}
	return loader.Describe(bt), nil
}

// agentLockTTL bounds how long a crashed replica can hold an agent's lock.
const agentLockTTL = 30 * time.Second

// Tick evaluates one tree once on behalf of one agent. The agent's
// blackboard is created on first use; with a BlackboardStore configured it is
// restored from and saved back to the store around the tick.
//
// Ticks for different agents may run concurrently (tree definitions are
// immutable); ticks for the same agent must be serialized by the caller or,
// across replicas, by a configured DistributedLocker.
func (e *Engine) Tick(ctx context.Context, treeID, agentID string, target any) (core.Status, error) {
	bt, err := e.Tree(treeID)
	if err != nil {
		return core.StatusError, err
	}

	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, agentID, agentLockTTL)
		if err != nil {
			return core.StatusError, fmt.Errorf("failed to lock agent %q: %w", agentID, err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				e.logger.Warn("failed to unlock agent", "agent", agentID, "error", err)
			}
		}()
	}

	bb, err := e.blackboard(ctx, agentID)
	if err != nil {
		return core.StatusError, err
	}

	status := bt.Tick(target, bb)
	e.logger.Debug("ticked tree", "tree", treeID, "agent", agentID, "status", status.String())

	if e.store != nil {
		if err := e.store.Save(ctx, agentID, bb.Snapshot()); err != nil {
			return status, fmt.Errorf("failed to persist agent %q: %w", agentID, err)
		}
	}
	return status, nil
}

func (e *Engine) blackboard(ctx context.Context, agentID string) (*core.Blackboard, error) {
	// With a locker the store is authoritative; a cached blackboard would go
	// stale as soon as another replica ticks the agent.
	if e.locker == nil {
		e.mu.Lock()
		bb, ok := e.agents[agentID]
		e.mu.Unlock()
		if ok {
			return bb, nil
		}
	}

	var bb *core.Blackboard
	if e.store != nil {
		snapshot, err := e.store.Load(ctx, agentID)
		switch {
		case err == nil:
			bb = core.FromSnapshot(snapshot)
		case errors.Is(err, core.ErrAgentNotFound):
			bb = core.NewBlackboard()
		default:
			return nil, fmt.Errorf("failed to restore agent %q: %w", agentID, err)
		}
	} else {
		bb = core.NewBlackboard()
	}

	if e.locker == nil {
		e.mu.Lock()
		// Another goroutine may have raced us here; keep the first blackboard.
		if existing, ok := e.agents[agentID]; ok {
			bb = existing
		} else {
			e.agents[agentID] = bb
		}
		e.mu.Unlock()
	}
	return bb, nil
}

// Blackboard returns the in-memory blackboard of an agent, creating it (and
// restoring it from the store, if any) on first use.
func (e *Engine) Blackboard(ctx context.Context, agentID string) (*core.Blackboard, error) {
	return e.blackboard(ctx, agentID)
}

// Forget drops an agent's blackboard from memory and from the store.
func (e *Engine) Forget(ctx context.Context, agentID string) error {
	e.mu.Lock()
	delete(e.agents, agentID)
	e.mu.Unlock()

	if e.store != nil {
		if err := e.store.Delete(ctx, agentID); err != nil {
			return fmt.Errorf("failed to delete agent %q: %w", agentID, err)
		}
	}
	return nil
}
