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

// OrderQueryHandler serves order reads through the cache. Listings are
// cached per audience: the admin listing under one key, each user's
// own orders under a per-user key, single orders per id.
type OrderQueryHandler struct {
	orders  ports.OrderRepository
	cache   ports.Cache
	metrics ports.MetricsRecorder
	logger  *zap.Logger
}

// NewOrderQueryHandler creates a new order query handler
func NewOrderQueryHandler(
	orders ports.OrderRepository,
	cache ports.Cache,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
) *OrderQueryHandler {
	return &OrderQueryHandler{
		orders:  orders,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

// HandleMyOrders executes MyOrdersQuery
func (h *OrderQueryHandler) HandleMyOrders(ctx context.Context, query queries.MyOrdersQuery) ([]queries.OrderView, error) {
	key := ports.MyOrdersKey(query.UserID)
	if cached, ok := h.cacheGet(ctx, key); ok {
		var views []queries.OrderView
		if err := json.Unmarshal([]byte(cached), &views); err == nil {
			return views, nil
		}
	}

	orders, err := h.orders.ByUser(ctx, query.UserID)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("my orders", err)
	}

	views := toOrderViews(orders)
	h.cacheSet(ctx, key, views)
	return views, nil
}

// HandleAllOrders executes AllOrdersQuery
func (h *OrderQueryHandler) HandleAllOrders(ctx context.Context, _ queries.AllOrdersQuery) ([]queries.OrderView, error) {
	key := ports.AllOrdersKey()
	if cached, ok := h.cacheGet(ctx, key); ok {
		var views []queries.OrderView
		if err := json.Unmarshal([]byte(cached), &views); err == nil {
			return views, nil
		}
	}

	orders, err := h.orders.All(ctx)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("all orders", err)
	}

	views := toOrderViews(orders)
	h.cacheSet(ctx, key, views)
	return views, nil
}

// HandleOrderByID executes OrderByIDQuery
func (h *OrderQueryHandler) HandleOrderByID(ctx context.Context, query queries.OrderByIDQuery) (*queries.OrderView, error) {
	key := ports.OrderKey(query.OrderID)
	if cached, ok := h.cacheGet(ctx, key); ok {
		var view queries.OrderView
		if err := json.Unmarshal([]byte(cached), &view); err == nil {
			return &view, nil
		}
	}

	order, err := h.orders.GetByID(ctx, query.OrderID)
	if err != nil {
		return nil, err
	}

	view := toOrderView(order)
	h.cacheSet(ctx, key, view)
	return &view, nil
}

func (h *OrderQueryHandler) cacheGet(ctx context.Context, key string) (string, bool) {
	value, ok := h.cache.Get(ctx, key)
	if ok {
		h.metrics.RecordCacheHit(ctx, key)
	} else {
		h.metrics.RecordCacheMiss(ctx, key)
	}
	return value, ok
}

func (h *OrderQueryHandler) cacheSet(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		h.logger.Warn("Failed to serialize view for cache", zap.String("key", key), zap.Error(err))
		return
	}
	h.cache.Set(ctx, key, string(data))
}

func toOrderView(o *entities.Order) queries.OrderView {
	return queries.OrderView{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		Items:           o.Items,
		Shipping:        o.Shipping,
		Subtotal:        o.Subtotal,
		Tax:             o.Tax,
		ShippingCharges: o.ShippingCharges,
		Discount:        o.Discount,
		Total:           o.Total,
		CreatedAt:       utils.FormatRFC3339(o.CreatedAt),
	}
}

func toOrderViews(orders []*entities.Order) []queries.OrderView {
	views := make([]queries.OrderView, len(orders))
	for i, o := range orders {
		views[i] = toOrderView(o)
	}
	return views
}
