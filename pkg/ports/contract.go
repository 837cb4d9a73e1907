package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/canopy/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunBlackboardStoreContract verifies that a BlackboardStore implementation
// adheres to the interface contract. Adapter test packages call it against
// their concrete store.
func RunBlackboardStoreContract(t *testing.T, store BlackboardStore) {
	ctx := context.Background()
	agentID := "contract-agent-" + time.Now().Format("20060102150405")

	snapshot := func() *core.Snapshot {
		bb := core.NewBlackboard()
		bb.Set("mood", "alert", "", "")
		bb.Set("visits", 3, "patrol", "waypoint")
		return bb.Snapshot()
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, agentID, snapshot())
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, agentID)
		require.NoError(t, err, "Load should not return error")

		bb := core.FromSnapshot(loaded)
		mood, ok := bb.Get("mood", "", "")
		assert.True(t, ok)
		assert.Equal(t, "alert", mood)
		// JSON persistence may widen ints; GetInt tolerates that.
		assert.Equal(t, 3, bb.GetInt("visits", "patrol", "waypoint"))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+agentID)
		assert.ErrorIs(t, err, core.ErrAgentNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, agentID, snapshot()))

		require.NoError(t, store.Delete(ctx, agentID))

		_, err := store.Load(ctx, agentID)
		assert.ErrorIs(t, err, core.ErrAgentNotFound, "Load after Delete should return ErrAgentNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := agentID + "-1"
		id2 := agentID + "-2"
		_ = store.Save(ctx, id1, snapshot())
		_ = store.Save(ctx, id2, snapshot())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		agents, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, agents, id1)
		assert.Contains(t, agents, id2)
	})
}
