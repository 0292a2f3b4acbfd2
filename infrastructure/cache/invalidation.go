package cache

import (
	"context"

	"storefront-backend/application/ports"

	"go.uber.org/zap"
)

// Invalidator translates write tags into cache deletions. Invalidation
// is deliberately coarse: a product change drops every product listing
// rather than tracking fine-grained dependencies, trading extra
// recomputation for the absence of stale reads.
type Invalidator struct {
	cache  ports.Cache
	logger *zap.Logger
}

// NewInvalidator creates an invalidator over the given cache.
func NewInvalidator(cache ports.Cache, logger *zap.Logger) *Invalidator {
	return &Invalidator{
		cache:  cache,
		logger: logger,
	}
}

// Invalidate deletes every cache key affected by the flagged tags. It
// cannot fail: deleting an absent key is a no-op, and the keys built
// from empty identifiers were never populated in the first place.
func (i *Invalidator) Invalidate(ctx context.Context, flags ports.InvalidationFlags) {
	var keys []string

	if flags.Product {
		keys = append(keys, ports.LatestProductsKey(), ports.CategoriesKey(), ports.AllProductsKey())
		for _, id := range flags.ProductIDs {
			keys = append(keys, ports.ProductKey(id))
		}
	}

	if flags.Order {
		keys = append(keys, ports.AllOrdersKey(), ports.MyOrdersKey(flags.UserID), ports.OrderKey(flags.OrderID))
	}

	if flags.Admin {
		// Admin dashboards are always invalidated as a unit; their
		// aggregates are cheap to recompute relative to tracking
		// per-dashboard dependencies.
		keys = append(keys, ports.AdminStatsKey(), ports.AdminPieKey(), ports.AdminBarKey(), ports.AdminLineKey())
	}

	if len(keys) == 0 {
		return
	}

	i.cache.DeleteMany(ctx, keys...)
	i.logger.Debug("Cache invalidated",
		zap.Bool("product", flags.Product),
		zap.Bool("order", flags.Order),
		zap.Bool("admin", flags.Admin),
		zap.Int("keys", len(keys)),
	)
}
