// Package kv defines the opaque key-value engine contract the thought
// store persists through, plus an in-memory implementation. Engines store
// strings under string keys and know nothing about what the values mean.
package kv

import "context"

// Pair is one key's result in a batch operation. Missing keys come back
// with Found false and an empty Value, one pair per requested key, in
// request order.
type Pair struct {
	Key   string
	Value string
	Found bool
}

// Engine is the storage contract. All operations are point operations over
// full values; there are no partial updates. Implementations may suspend
// (every call takes a context) but need not support cancellation mid-write.
type Engine interface {
	// Get fetches one value. The second return is false when the key is
	// absent; absence is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any existing value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes a key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Keys lists every stored key, in no particular order.
	Keys(ctx context.Context) ([]string, error)

	// MultiGet fetches many keys in one call.
	MultiGet(ctx context.Context, keys []string) ([]Pair, error)

	// MultiSet stores many pairs in one call.
	MultiSet(ctx context.Context, pairs []Pair) error

	// MultiRemove deletes many keys in one call.
	MultiRemove(ctx context.Context, keys []string) error
}
