// Package kvstore provides the durable key-to-JSON-document primitive the
// repository layer is built on: a flat namespace of string keys, each holding
// one serialized collection, replaced wholesale on every write.
package kvstore

import "context"

// KV is the storage adapter contract.
//
// Load returns the raw bytes stored under key, or nil with a nil error if the
// key has never been written — a missing key is an empty collection, not a
// failure, and implementations must never surface it as one. Save replaces
// the full value under key; there are no partial or merge semantics. Remove
// deletes the key so that a subsequent Load returns nil.
//
// Any underlying I/O failure propagates to the caller unretried.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Remove(ctx context.Context, key string) error
}
