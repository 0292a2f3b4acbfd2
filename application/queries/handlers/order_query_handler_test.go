package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-backend/application/ports"
	"storefront-backend/application/queries"
	"storefront-backend/domain/core/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func orderBookFixture() *fakeOrderRepo {
	base := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
	return &fakeOrderRepo{orders: []*entities.Order{
		{ID: "o1", UserID: "u1", Status: entities.StatusProcessing, Total: 300, CreatedAt: base},
		{ID: "o2", UserID: "u1", Status: entities.StatusShipped, Total: 100, CreatedAt: base.Add(time.Hour)},
		{ID: "o3", UserID: "u2", Status: entities.StatusDelivered, Total: 50, CreatedAt: base.Add(2 * time.Hour)},
	}}
}

func TestOrderQueries(t *testing.T) {
	ctx := context.Background()

	newHandler := func(repo *fakeOrderRepo) (*OrderQueryHandler, *fakeCache, *fakeMetrics) {
		cache := newFakeCache()
		metrics := &fakeMetrics{}
		return NewOrderQueryHandler(repo, cache, metrics, zap.NewNop()), cache, metrics
	}

	t.Run("my orders returns only the caller's orders", func(t *testing.T) {
		h, cache, _ := newHandler(orderBookFixture())

		views, err := h.HandleMyOrders(ctx, queries.MyOrdersQuery{UserID: "u1"})
		require.NoError(t, err)

		require.Len(t, views, 2)
		for _, v := range views {
			assert.Equal(t, "u1", v.UserID)
		}
		assert.True(t, cache.Has(ctx, ports.MyOrdersKey("u1")))
		assert.False(t, cache.Has(ctx, ports.MyOrdersKey("u2")))
	})

	t.Run("my orders is cached per user", func(t *testing.T) {
		repo := orderBookFixture()
		h, _, metrics := newHandler(repo)

		_, err := h.HandleMyOrders(ctx, queries.MyOrdersQuery{UserID: "u1"})
		require.NoError(t, err)

		// u1 is served from cache even with the store down; u2 is not.
		repo.err = errors.New("down")
		views, err := h.HandleMyOrders(ctx, queries.MyOrdersQuery{UserID: "u1"})
		require.NoError(t, err)
		assert.Len(t, views, 2)
		assert.Equal(t, []string{ports.MyOrdersKey("u1")}, metrics.hits)

		_, err = h.HandleMyOrders(ctx, queries.MyOrdersQuery{UserID: "u2"})
		require.Error(t, err)
	})

	t.Run("all orders lists everything and caches it", func(t *testing.T) {
		h, cache, _ := newHandler(orderBookFixture())

		views, err := h.HandleAllOrders(ctx, queries.AllOrdersQuery{})
		require.NoError(t, err)
		assert.Len(t, views, 3)
		assert.True(t, cache.Has(ctx, ports.AllOrdersKey()))
	})

	t.Run("order by id is cached per id", func(t *testing.T) {
		h, cache, _ := newHandler(orderBookFixture())

		view, err := h.HandleOrderByID(ctx, queries.OrderByIDQuery{OrderID: "o2"})
		require.NoError(t, err)
		assert.Equal(t, string(entities.StatusShipped), view.Status)
		assert.Equal(t, float64(100), view.Total)
		assert.True(t, cache.Has(ctx, ports.OrderKey("o2")))
		assert.False(t, cache.Has(ctx, ports.OrderKey("o1")))
	})

	t.Run("unknown order id is a not found error", func(t *testing.T) {
		h, cache, _ := newHandler(orderBookFixture())

		_, err := h.HandleOrderByID(ctx, queries.OrderByIDQuery{OrderID: "nope"})
		require.Error(t, err)
		assert.False(t, cache.Has(ctx, ports.OrderKey("nope")))
	})

	t.Run("store failure on a cold listing surfaces the error", func(t *testing.T) {
		repo := orderBookFixture()
		repo.err = errors.New("down")
		h, cache, _ := newHandler(repo)

		_, err := h.HandleAllOrders(ctx, queries.AllOrdersQuery{})
		require.Error(t, err)
		assert.False(t, cache.Has(ctx, ports.AllOrdersKey()))
	})
}
