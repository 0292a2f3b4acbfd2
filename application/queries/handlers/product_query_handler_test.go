package handlers

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"storefront-backend/application/ports"
	"storefront-backend/application/queries"
	"storefront-backend/domain/core/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func catalogFixture() *fakeProductRepo {
	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeProductRepo{}
	for i := 0; i < 7; i++ {
		repo.products = append(repo.products, &entities.Product{
			ID:        fmt.Sprintf("p%d", i+1),
			Name:      fmt.Sprintf("Laptop %d", i+1),
			Category:  "laptop",
			Price:     float64(100 * (i + 1)),
			Stock:     i, // p1 is out of stock
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	repo.products = append(repo.products, &entities.Product{
		ID: "p8", Name: "Mouse", Category: "mouse", Price: 40, Stock: 10,
		CreatedAt: base.Add(8 * time.Hour),
	})
	return repo
}

func TestProductQueries(t *testing.T) {
	ctx := context.Background()

	newHandler := func(repo *fakeProductRepo) (*ProductQueryHandler, *fakeCache, *fakeMetrics) {
		cache := newFakeCache()
		metrics := &fakeMetrics{}
		return NewProductQueryHandler(repo, cache, metrics, zap.NewNop(), 3), cache, metrics
	}

	t.Run("latest returns five newest products", func(t *testing.T) {
		h, _, _ := newHandler(catalogFixture())

		products, err := h.HandleLatest(ctx, queries.LatestProductsQuery{})
		require.NoError(t, err)

		require.Len(t, products, 5)
		assert.Equal(t, "p8", products[0].ID)
		assert.Equal(t, "p7", products[1].ID)
	})

	t.Run("latest is cached after the first call", func(t *testing.T) {
		repo := catalogFixture()
		h, cache, metrics := newHandler(repo)

		_, err := h.HandleLatest(ctx, queries.LatestProductsQuery{})
		require.NoError(t, err)
		assert.True(t, cache.Has(ctx, ports.LatestProductsKey()))

		// A store outage is invisible while the entry is cached.
		repo.err = errors.New("down")
		products, err := h.HandleLatest(ctx, queries.LatestProductsQuery{})
		require.NoError(t, err)
		assert.Len(t, products, 5)
		assert.Equal(t, []string{ports.LatestProductsKey()}, metrics.hits)
	})

	t.Run("categories are distinct and cached", func(t *testing.T) {
		h, cache, _ := newHandler(catalogFixture())

		categories, err := h.HandleCategories(ctx, queries.CategoriesQuery{})
		require.NoError(t, err)
		assert.Equal(t, []string{"laptop", "mouse"}, categories)
		assert.True(t, cache.Has(ctx, ports.CategoriesKey()))
	})

	t.Run("product by id is cached per id", func(t *testing.T) {
		h, cache, _ := newHandler(catalogFixture())

		view, err := h.HandleProductByID(ctx, queries.ProductByIDQuery{ProductID: "p8"})
		require.NoError(t, err)
		assert.Equal(t, "Mouse", view.Name)
		assert.True(t, cache.Has(ctx, ports.ProductKey("p8")))
		assert.False(t, cache.Has(ctx, ports.ProductKey("p1")))
	})

	t.Run("unknown product id is a not found error", func(t *testing.T) {
		h, cache, _ := newHandler(catalogFixture())

		_, err := h.HandleProductByID(ctx, queries.ProductByIDQuery{ProductID: "nope"})
		require.Error(t, err)
		assert.False(t, cache.Has(ctx, ports.ProductKey("nope")))
	})

	t.Run("search paginates and reports the page count", func(t *testing.T) {
		h, cache, _ := newHandler(catalogFixture())

		result, err := h.HandleSearch(ctx, queries.SearchProductsQuery{Category: "laptop", Page: 1})
		require.NoError(t, err)
		assert.Len(t, result.Products, 3)
		assert.Equal(t, 3, result.TotalPage) // 7 laptops, 3 per page

		last, err := h.HandleSearch(ctx, queries.SearchProductsQuery{Category: "laptop", Page: 3})
		require.NoError(t, err)
		assert.Len(t, last.Products, 1)

		// Search results never enter the cache
		assert.False(t, cache.Has(ctx, ports.AllProductsKey()))
	})

	t.Run("search sorts by price", func(t *testing.T) {
		h, _, _ := newHandler(catalogFixture())

		result, err := h.HandleSearch(ctx, queries.SearchProductsQuery{Sort: "desc", Page: 1})
		require.NoError(t, err)
		require.NotEmpty(t, result.Products)
		assert.Equal(t, float64(700), result.Products[0].Price)
	})

	t.Run("search clamps page to one", func(t *testing.T) {
		h, _, _ := newHandler(catalogFixture())

		result, err := h.HandleSearch(ctx, queries.SearchProductsQuery{Page: 0})
		require.NoError(t, err)
		assert.Len(t, result.Products, 3)
	})

	t.Run("search respects max price", func(t *testing.T) {
		h, _, _ := newHandler(catalogFixture())

		result, err := h.HandleSearch(ctx, queries.SearchProductsQuery{MaxPrice: 100, Page: 1})
		require.NoError(t, err)
		require.Len(t, result.Products, 2)
		for _, p := range result.Products {
			assert.LessOrEqual(t, p.Price, float64(100))
		}
	})
}
