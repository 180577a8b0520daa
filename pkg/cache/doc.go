// Package cache provides a generic key-value Cache with in-memory and Redis
// backends.
//
// The service uses it to replay deliverables for repeated requests carrying
// the same Idempotency-Key. Memory serves single instances; Redis shares
// replays between instances:
//
//	replays := cache.NewMemory[deliverable.Deliverable](
//		cache.WithDefaultTTL(24*time.Hour),
//		cache.WithMaxEntries(10_000),
//	)
//	defer replays.Close()
//
//	d, hit, err := cache.Once(ctx, replays, key, 0, func(ctx context.Context) (deliverable.Deliverable, error) {
//		return create(ctx)
//	})
//
// Once runs fn at most once per key across concurrent callers and stores
// only successful results.
//
// # TTL
//
// A positive TTL expires the entry after that duration. Zero uses the
// backend default (1 hour unless configured). A negative TTL never expires.
package cache
