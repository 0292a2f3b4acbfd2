package handlers

import (
	"context"
	"encoding/json"

	"storefront-backend/application/ports"
	"storefront-backend/application/queries"
	"storefront-backend/domain/core/entities"
	pkgerrors "storefront-backend/pkg/errors"
	"storefront-backend/pkg/utils"

	"go.uber.org/zap"
)

// latestProductsLimit caps the storefront landing-page listing.
const latestProductsLimit = 5

// ProductQueryHandler serves catalog reads. The fixed listings are
// cached under typed keys and repopulated on demand after a product
// invalidation; the search path goes straight to the store because its
// filter space is unbounded.
type ProductQueryHandler struct {
	products ports.ProductRepository
	cache    ports.Cache
	metrics  ports.MetricsRecorder
	logger   *zap.Logger
	perPage  int
}

// NewProductQueryHandler creates a new product query handler
func NewProductQueryHandler(
	products ports.ProductRepository,
	cache ports.Cache,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
	perPage int,
) *ProductQueryHandler {
	return &ProductQueryHandler{
		products: products,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		perPage:  perPage,
	}
}

// HandleLatest executes LatestProductsQuery
func (h *ProductQueryHandler) HandleLatest(ctx context.Context, _ queries.LatestProductsQuery) ([]queries.ProductView, error) {
	key := ports.LatestProductsKey()
	if cached, ok := h.cacheGet(ctx, key); ok {
		var views []queries.ProductView
		if err := json.Unmarshal([]byte(cached), &views); err == nil {
			return views, nil
		}
	}

	products, err := h.products.Latest(ctx, latestProductsLimit)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("latest products", err)
	}

	views := toProductViews(products)
	h.cacheSet(ctx, key, views)
	return views, nil
}

// HandleCategories executes CategoriesQuery
func (h *ProductQueryHandler) HandleCategories(ctx context.Context, _ queries.CategoriesQuery) ([]string, error) {
	key := ports.CategoriesKey()
	if cached, ok := h.cacheGet(ctx, key); ok {
		var categories []string
		if err := json.Unmarshal([]byte(cached), &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := h.products.Categories(ctx)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("product categories", err)
	}

	h.cacheSet(ctx, key, categories)
	return categories, nil
}

// HandleAdminProducts executes AdminProductsQuery
func (h *ProductQueryHandler) HandleAdminProducts(ctx context.Context, _ queries.AdminProductsQuery) ([]queries.ProductView, error) {
	key := ports.AllProductsKey()
	if cached, ok := h.cacheGet(ctx, key); ok {
		var views []queries.ProductView
		if err := json.Unmarshal([]byte(cached), &views); err == nil {
			return views, nil
		}
	}

	products, err := h.products.All(ctx)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("admin products", err)
	}

	views := toProductViews(products)
	h.cacheSet(ctx, key, views)
	return views, nil
}

// HandleProductByID executes ProductByIDQuery
func (h *ProductQueryHandler) HandleProductByID(ctx context.Context, query queries.ProductByIDQuery) (*queries.ProductView, error) {
	key := ports.ProductKey(query.ProductID)
	if cached, ok := h.cacheGet(ctx, key); ok {
		var view queries.ProductView
		if err := json.Unmarshal([]byte(cached), &view); err == nil {
			return &view, nil
		}
	}

	product, err := h.products.GetByID(ctx, query.ProductID)
	if err != nil {
		return nil, err
	}

	view := toProductView(product)
	h.cacheSet(ctx, key, view)
	return &view, nil
}

// HandleSearch executes SearchProductsQuery. Results are not cached.
func (h *ProductQueryHandler) HandleSearch(ctx context.Context, query queries.SearchProductsQuery) (*queries.SearchProductsResult, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}

	products, total, err := h.products.Search(ctx, ports.ProductSearch{
		Name:     query.Search,
		Category: query.Category,
		MaxPrice: query.MaxPrice,
		Sort:     query.Sort,
		Page:     page,
		PerPage:  h.perPage,
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("search products", err)
	}

	totalPage := (total + h.perPage - 1) / h.perPage
	return &queries.SearchProductsResult{
		Products:  toProductViews(products),
		TotalPage: totalPage,
	}, nil
}

func (h *ProductQueryHandler) cacheGet(ctx context.Context, key string) (string, bool) {
	value, ok := h.cache.Get(ctx, key)
	if ok {
		h.metrics.RecordCacheHit(ctx, key)
	} else {
		h.metrics.RecordCacheMiss(ctx, key)
	}
	return value, ok
}

func (h *ProductQueryHandler) cacheSet(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		h.logger.Warn("Failed to serialize view for cache", zap.String("key", key), zap.Error(err))
		return
	}
	h.cache.Set(ctx, key, string(data))
}

func toProductView(p *entities.Product) queries.ProductView {
	return queries.ProductView{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		Stock:     p.Stock,
		Photo:     p.Photo,
		CreatedAt: utils.FormatRFC3339(p.CreatedAt),
	}
}

func toProductViews(products []*entities.Product) []queries.ProductView {
	views := make([]queries.ProductView, len(products))
	for i, p := range products {
		views[i] = toProductView(p)
	}
	return views
}
