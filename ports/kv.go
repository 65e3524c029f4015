package ports

import (
	"context"
)

// KV is the persistence substrate for the two collection blobs: any engine
// offering synchronous get/set/remove by string key conforms. Each
// collection lives whole under one fixed key as a JSON-serialized array.
type KV interface {
	// Get returns the blob stored under key. The bool is false when the key
	// is absent; absence is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set overwrites the blob under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key entirely. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}
