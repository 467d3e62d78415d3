// Package knowledge implements the persisted knowledge base and character
// cache consumed by the Outcome Learner and Execution Manager. The core
// planner and execution manager never talk to Redis or disk directly; they
// go through the typed accessors in store.go, which sit on top of the
// generic key/value Backend defined here — mirroring the separation the
// teacher framework draws between its generic Memory interface and the
// domain-specific data layered on top of it.
package knowledge

import (
	"context"
	"time"
)

// Backend is the generic key/value contract. JSON-encoded values, optional
// per-key TTL. Two implementations: RedisBackend (distributed, durable) and
// InMemoryBackend (single-process, used in tests and standalone runs).
type Backend interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, out interface{}) (bool, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// Keys returns every unexpired key matching prefix, unprefixed by
	// namespace so callers can feed them straight back into Get. Used to
	// enumerate discovered locations (workshop:*, explored_tile:*) the way
	// the knowledge-based planner's action factory needs to.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// ErrNotFound-free design: Get reports presence via its bool return rather
// than a sentinel error, since "key absent" is an expected, common outcome
// for a knowledge base query (e.g. "do we know this recipe yet?") and not
// exceptional.
