package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/canopy/pkg/adapters/redis"
	"github.com/aretw0/canopy/pkg/core"
	"github.com/aretw0/canopy/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.BlackboardStore = (*redis.Store)(nil)

func newTestStore(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *redis.Store) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	store := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = store.Close() })
	return mr, store
}

func TestRedisStore_Contract(t *testing.T) {
	_, store := newTestStore(t)
	ports.RunBlackboardStoreContract(t, store)
}

func TestRedisStore_TTL(t *testing.T) {
	mr, store := newTestStore(t, redis.WithTTL(50*time.Millisecond))
	ctx := context.Background()

	bb := core.NewBlackboard()
	bb.Set("mood", "alert", "", "")
	require.NoError(t, store.Save(ctx, "rex", bb.Snapshot()))

	_, err := store.Load(ctx, "rex")
	require.NoError(t, err)

	// miniredis expires keys on its own clock; the index prunes on wall time.
	time.Sleep(1100 * time.Millisecond)
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "rex")
	assert.ErrorIs(t, err, core.ErrAgentNotFound, "expired snapshot should be gone")

	agents, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, agents, "rex", "List should prune expired agents")
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, store := newTestStore(t, redis.WithPrefix("bt:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "rex", core.NewBlackboard().Snapshot()))
	assert.True(t, mr.Exists("bt:rex"))
}

func TestRedisStore_SurvivesRestartRoundTrip(t *testing.T) {
	// Tick a tree, persist the agent, restore it in a "new process" and check
	// the running state resumed instead of restarting.
	_, store := newTestStore(t)
	ctx := context.Background()

	bb := core.NewBlackboard()
	bb.Set("runningChild", 2, "patrol", "n1")
	bb.Set("isOpen", true, "patrol", "n1")
	require.NoError(t, store.Save(ctx, "rex", bb.Snapshot()))

	loaded, err := store.Load(ctx, "rex")
	require.NoError(t, err)
	restored := core.FromSnapshot(loaded)

	assert.Equal(t, 2, restored.GetInt("runningChild", "patrol", "n1"))
	assert.True(t, restored.GetBool("isOpen", "patrol", "n1"))
}
