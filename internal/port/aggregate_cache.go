package port

import (
	"context"
	"time"
)

// AggregateCache stores serialized aggregate results keyed by their criteria.
// Invalidate drops every entry and advances the version; it is called after
// each successful write.
//
// Get reports the version current at read time, hit or miss. Set stores under
// that version, so a value computed before an Invalidate is never served.
type AggregateCache interface {
	Get(ctx context.Context, key string) (value []byte, version int64, ok bool, err error)
	Set(ctx context.Context, key string, version int64, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}
