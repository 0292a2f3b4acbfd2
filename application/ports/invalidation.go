package ports

import "context"

// InvalidationFlags describes what a completed write touched. Each flag
// is a coarse tag mapping to a fixed set of cache keys; the identifiers
// narrow the per-entity keys.
type InvalidationFlags struct {
	Product bool
	Order   bool
	Admin   bool

	UserID     string
	OrderID    string
	ProductIDs []string
}

// CacheInvalidator translates write tags into cache deletions. It is
// the only contract the CRUD layer must honor toward the cache: every
// mutation invokes Invalidate with the correct tag set after its store
// write commits. Invalidation cannot fail.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, flags InvalidationFlags)
}
