package ports

import (
	"context"

	"github.com/aretw0/canopy/pkg/core"
)

// BlackboardStore persists agent blackboard snapshots, enabling durable
// agents whose cross-tick state survives process restarts.
type BlackboardStore interface {
	// Save persists the snapshot for a given agent ID.
	Save(ctx context.Context, agentID string, snapshot *core.Snapshot) error

	// Load retrieves the snapshot for a given agent ID.
	// Returns core.ErrAgentNotFound if the agent has no saved state.
	Load(ctx context.Context, agentID string) (*core.Snapshot, error)

	// Delete removes the snapshot for a given agent ID.
	Delete(ctx context.Context, agentID string) error

	// List returns the IDs of agents with saved state.
	List(ctx context.Context) ([]string, error)
}
