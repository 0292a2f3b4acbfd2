package cache

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("get returns stored value", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set(ctx, "latest-product", `[{"name":"Keyboard"}]`)

		value, ok := c.Get(ctx, "latest-product")
		assert.True(t, ok)
		assert.Equal(t, `[{"name":"Keyboard"}]`, value)
	})

	t.Run("get on missing key", func(t *testing.T) {
		c := NewMemoryCache()

		value, ok := c.Get(ctx, "all-products")
		assert.False(t, ok)
		assert.Empty(t, value)
	})

	t.Run("set overwrites unconditionally", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set(ctx, "categories", `["laptop"]`)
		c.Set(ctx, "categories", `["laptop","mouse"]`)

		value, _ := c.Get(ctx, "categories")
		assert.Equal(t, `["laptop","mouse"]`, value)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("has reflects presence", func(t *testing.T) {
		c := NewMemoryCache()
		assert.False(t, c.Has(ctx, "admin-stats"))

		c.Set(ctx, "admin-stats", "{}")
		assert.True(t, c.Has(ctx, "admin-stats"))
	})

	t.Run("delete many removes present keys and skips absent ones", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set(ctx, "all-orders", "[]")
		c.Set(ctx, "order-1", "{}")

		c.DeleteMany(ctx, "all-orders", "order-1", "order-never-cached")

		assert.False(t, c.Has(ctx, "all-orders"))
		assert.False(t, c.Has(ctx, "order-1"))
		assert.Equal(t, 0, c.Len())
	})

	t.Run("delete many with no keys is a no-op", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set(ctx, "product-1", "{}")

		c.DeleteMany(ctx)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("concurrent access", func(t *testing.T) {
		c := NewMemoryCache()
		var wg sync.WaitGroup

		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func(n int) {
				defer wg.Done()
				c.Set(ctx, "product-"+strconv.Itoa(n), "{}")
			}(i)
			go func(n int) {
				defer wg.Done()
				c.Get(ctx, "product-"+strconv.Itoa(n))
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 50, c.Len())
	})
}
