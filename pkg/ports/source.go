package ports

import "context"

// ProjectSource supplies a raw project document. Implementations may read
// from disk, an object store, or memory; the loader parses whatever bytes
// they return.
type ProjectSource interface {
	Load(ctx context.Context) ([]byte, error)
}
