package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker coordinates agent access across replicas. Ticks for one
// agent must be serialized; when several engine instances share a
// BlackboardStore, a locker keeps them from ticking the same agent at once.
type DistributedLocker interface {
	// Lock acquires the lock for key, blocking until it is held or ctx is
	// canceled. The TTL bounds how long a crashed holder can wedge the key.
	// The returned UnlockFunc MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
