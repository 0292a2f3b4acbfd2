package handlers

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"storefront-backend/application/analytics"
	"storefront-backend/application/ports"
	"storefront-backend/application/queries"
	pkgerrors "storefront-backend/pkg/errors"

	"go.uber.org/zap"
)

// marketingRate is the share of gross income modeled as marketing spend
// in the revenue-distribution breakdown.
const marketingRate = 0.30

// DashboardQueryHandler assembles the four admin dashboards. Each
// dashboard follows the same shape: probe the cache, and on a miss run
// the store aggregates, assemble the view, cache the serialized result
// and return it. Any store failure aborts the whole dashboard; a
// partial view is never assembled and never cached.
type DashboardQueryHandler struct {
	products ports.ProductRepository
	orders   ports.OrderRepository
	users    ports.UserRepository
	cache    ports.Cache
	metrics  ports.MetricsRecorder
	logger   *zap.Logger

	// now is swapped out in tests to pin the month buckets
	now func() time.Time
}

// NewDashboardQueryHandler creates a new dashboard query handler
func NewDashboardQueryHandler(
	products ports.ProductRepository,
	orders ports.OrderRepository,
	users ports.UserRepository,
	cache ports.Cache,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
) *DashboardQueryHandler {
	return &DashboardQueryHandler{
		products: products,
		orders:   orders,
		users:    users,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// HandleStats executes DashboardStatsQuery
func (h *DashboardQueryHandler) HandleStats(ctx context.Context, _ queries.DashboardStatsQuery) (*queries.DashboardStats, error) {
	key := ports.AdminStatsKey()
	if cached, ok := h.cacheGet(ctx, key); ok {
		var stats queries.DashboardStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	start := h.now()
	defer func() { h.metrics.RecordLatency(ctx, "dashboard.stats", time.Since(start)) }()

	today := h.now()
	thisMonthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)
	lastMonthEnd := thisMonthStart.Add(-time.Nanosecond)
	sixMonthsAgo := today.AddDate(0, -6, 0)

	thisMonthProducts, err := h.products.CreatedBetween(ctx, thisMonthStart, today)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard stats", err)
	}
	lastMonthProducts, err := h.products.CreatedBetween(ctx, lastMonthStart, lastMonthEnd)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard stats", err)
	}
	thisMonthUsers, err := h.users.CreatedBetween(ctx, thisMonthStart, today)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard stats", err)
	}
	lastMonthUsers, err := h.users.CreatedBetween(ctx, lastMonthStart, lastMonthEnd)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard stats", err)
	}
	thisMonthOrders, err := h.orders.CreatedBetween(ctx, thisMonthStart, today)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard stats", err)
	}
	lastMonthOrders, err := h.orders.CreatedBetween(ctx, lastMonthStart, lastMonthEnd)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard stats", err)
	}
	sixMonthOrders, err := h.orders.CreatedBetween(ctx, sixMonthsAgo, today)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard stats", err)
	}

	allOrders, err := h.orders.All(ctx)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard stats", err)
	}
	productCount, err := h.products.CountAll(ctx)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard stats", err)
	}
	userCount, err := h.users.CountAll(ctx)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard stats", err)
	}

	categoryCount, err := h.categoryShares(ctx, productCount)
	if err != nil {
		return nil, err
	}

	maleCount, err := h.users.CountByGender(ctx, "Male")
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard stats", err)
	}
	femaleCount, err := h.users.CountByGender(ctx, "Female")
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard stats", err)
	}

	latestOrders, err := h.orders.Latest(ctx, 4)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard stats", err)
	}

	var totalRevenue, thisMonthRevenue, lastMonthRevenue float64
	for _, o := range allOrders {
		totalRevenue += o.Total
	}
	for _, o := range thisMonthOrders {
		thisMonthRevenue += o.Total
	}
	for _, o := range lastMonthOrders {
		lastMonthRevenue += o.Total
	}

	orderTimes := make([]time.Time, len(sixMonthOrders))
	revenuePoints := make([]analytics.TimePoint, len(sixMonthOrders))
	for i, o := range sixMonthOrders {
		orderTimes[i] = o.CreatedAt
		revenuePoints[i] = analytics.TimePoint{CreatedAt: o.CreatedAt, Value: o.Total}
	}

	latest := make([]queries.TransactionSummary, len(latestOrders))
	for i, o := range latestOrders {
		quantity := 0
		for _, item := range o.Items {
			quantity += item.Quantity
		}
		latest[i] = queries.TransactionSummary{
			ID:       o.ID,
			Discount: o.Discount,
			Amount:   o.Total,
			Quantity: quantity,
			Status:   string(o.Status),
		}
	}

	stats := &queries.DashboardStats{
		RevenueChangePercent: analytics.Percentage(thisMonthRevenue, lastMonthRevenue),
		ProductChangePercent: analytics.Percentage(float64(len(thisMonthProducts)), float64(len(lastMonthProducts))),
		UserChangePercent:    analytics.Percentage(float64(len(thisMonthUsers)), float64(len(lastMonthUsers))),
		OrderChangePercent:   analytics.Percentage(float64(len(thisMonthOrders)), float64(len(lastMonthOrders))),
		Count: queries.StatsCount{
			Revenue: totalRevenue,
			User:    userCount,
			Product: productCount,
			Order:   len(allOrders),
		},
		Chart: queries.StatsChart{
			Order:   analytics.CountSeries(orderTimes, 6, today),
			Revenue: analytics.MonthlySeries(revenuePoints, 6, today),
		},
		CategoryCount:     categoryCount,
		UserRatio:         queries.UserRatio{Male: maleCount, Female: femaleCount},
		LatestTransaction: latest,
	}

	h.cacheSet(ctx, key, stats)
	return stats, nil
}

// HandlePie executes PieChartsQuery
func (h *DashboardQueryHandler) HandlePie(ctx context.Context, _ queries.PieChartsQuery) (*queries.PieCharts, error) {
	key := ports.AdminPieKey()
	if cached, ok := h.cacheGet(ctx, key); ok {
		var charts queries.PieCharts
		if err := json.Unmarshal([]byte(cached), &charts); err == nil {
			return &charts, nil
		}
	}

	start := h.now()
	defer func() { h.metrics.RecordLatency(ctx, "dashboard.pie", time.Since(start)) }()

	processing, err := h.orders.CountByStatus(ctx, "Processing")
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard pie", err)
	}
	shipped, err := h.orders.CountByStatus(ctx, "Shipped")
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard pie", err)
	}
	delivered, err := h.orders.CountByStatus(ctx, "Delivered")
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard pie", err)
	}

	productCount, err := h.products.CountAll(ctx)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard pie", err)
	}
	outOfStock, err := h.products.CountOutOfStock(ctx)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard pie", err)
	}

	productCategories, err := h.categoryShares(ctx, productCount)
	if err != nil {
		return nil, err
	}

	allOrders, err := h.orders.All(ctx)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard pie", err)
	}
	var grossIncome, discount, productionCost, burnt float64
	for _, o := range allOrders {
		grossIncome += o.Total
		discount += o.Discount
		productionCost += o.ShippingCharges
		burnt += o.Tax
	}
	marketingCost := math.Round(grossIncome * marketingRate)
	netMargin := grossIncome - discount - productionCost - burnt - marketingCost

	allUsers, err := h.users.All(ctx)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard pie", err)
	}
	today := h.now()
	var ageGroup queries.UsersAgeGroup
	for _, u := range allUsers {
		switch age := u.AgeAt(today); {
		case age < 20:
			ageGroup.Teen++
		case age < 40:
			ageGroup.Adult++
		default:
			ageGroup.Old++
		}
	}

	adminCount, err := h.users.CountByRole(ctx, "admin")
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard pie", err)
	}
	customerCount, err := h.users.CountByRole(ctx, "user")
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard pie", err)
	}

	charts := &queries.PieCharts{
		OrderFulfillment: queries.OrderFulfillment{
			Processing: processing,
			Shipped:    shipped,
			Delivered:  delivered,
		},
		ProductCategories: productCategories,
		StockAvailability: queries.StockAvailability{
			InStock:    productCount - outOfStock,
			OutOfStock: outOfStock,
		},
		RevenueDistribution: queries.RevenueDistribution{
			NetMargin:      netMargin,
			Discount:       discount,
			ProductionCost: productionCost,
			Burnt:          burnt,
			MarketingCost:  marketingCost,
		},
		UsersAgeGroup: ageGroup,
		AdminCustomer: queries.AdminCustomer{
			Admin:    adminCount,
			Customer: customerCount,
		},
	}

	h.cacheSet(ctx, key, charts)
	return charts, nil
}

// HandleBar executes BarChartsQuery
func (h *DashboardQueryHandler) HandleBar(ctx context.Context, _ queries.BarChartsQuery) (*queries.BarCharts, error) {
	key := ports.AdminBarKey()
	if cached, ok := h.cacheGet(ctx, key); ok {
		var charts queries.BarCharts
		if err := json.Unmarshal([]byte(cached), &charts); err == nil {
			return &charts, nil
		}
	}

	start := h.now()
	defer func() { h.metrics.RecordLatency(ctx, "dashboard.bar", time.Since(start)) }()

	today := h.now()
	sixMonthsAgo := today.AddDate(0, -6, 0)
	twelveMonthsAgo := today.AddDate(0, -12, 0)

	products, err := h.products.CreatedBetween(ctx, sixMonthsAgo, today)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard bar", err)
	}
	users, err := h.users.CreatedBetween(ctx, sixMonthsAgo, today)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard bar", err)
	}
	orders, err := h.orders.CreatedBetween(ctx, twelveMonthsAgo, today)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard bar", err)
	}

	productTimes := make([]time.Time, len(products))
	for i, p := range products {
		productTimes[i] = p.CreatedAt
	}
	userTimes := make([]time.Time, len(users))
	for i, u := range users {
		userTimes[i] = u.CreatedAt
	}
	orderTimes := make([]time.Time, len(orders))
	for i, o := range orders {
		orderTimes[i] = o.CreatedAt
	}

	charts := &queries.BarCharts{
		ProductCounts: analytics.CountSeries(productTimes, 6, today),
		UserCounts:    analytics.CountSeries(userTimes, 6, today),
		OrderCounts:   analytics.CountSeries(orderTimes, 12, today),
	}

	h.cacheSet(ctx, key, charts)
	return charts, nil
}

// HandleLine executes LineChartsQuery
func (h *DashboardQueryHandler) HandleLine(ctx context.Context, _ queries.LineChartsQuery) (*queries.LineCharts, error) {
	key := ports.AdminLineKey()
	if cached, ok := h.cacheGet(ctx, key); ok {
		var charts queries.LineCharts
		if err := json.Unmarshal([]byte(cached), &charts); err == nil {
			return &charts, nil
		}
	}

	start := h.now()
	defer func() { h.metrics.RecordLatency(ctx, "dashboard.line", time.Since(start)) }()

	today := h.now()
	twelveMonthsAgo := today.AddDate(0, -12, 0)

	products, err := h.products.CreatedBetween(ctx, twelveMonthsAgo, today)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard line", err)
	}
	users, err := h.users.CreatedBetween(ctx, twelveMonthsAgo, today)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard line", err)
	}
	orders, err := h.orders.CreatedBetween(ctx, twelveMonthsAgo, today)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard line", err)
	}

	productTimes := make([]time.Time, len(products))
	for i, p := range products {
		productTimes[i] = p.CreatedAt
	}
	userTimes := make([]time.Time, len(users))
	for i, u := range users {
		userTimes[i] = u.CreatedAt
	}
	discountPoints := make([]analytics.TimePoint, len(orders))
	revenuePoints := make([]analytics.TimePoint, len(orders))
	for i, o := range orders {
		discountPoints[i] = analytics.TimePoint{CreatedAt: o.CreatedAt, Value: o.Discount}
		revenuePoints[i] = analytics.TimePoint{CreatedAt: o.CreatedAt, Value: o.Total}
	}

	charts := &queries.LineCharts{
		Users:    analytics.CountSeries(userTimes, 12, today),
		Product:  analytics.CountSeries(productTimes, 12, today),
		Discount: analytics.MonthlySeries(discountPoints, 12, today),
		Revenue:  analytics.MonthlySeries(revenuePoints, 12, today),
	}

	h.cacheSet(ctx, key, charts)
	return charts, nil
}

// categoryShares builds the per-category percentage table shared by the
// stats and pie dashboards.
func (h *DashboardQueryHandler) categoryShares(ctx context.Context, productCount int) ([]map[string]int, error) {
	categories, err := h.products.Categories(ctx)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("dashboard categories", err)
	}

	shares := make([]map[string]int, 0, len(categories))
	for _, category := range categories {
		count, err := h.products.CountByCategory(ctx, category)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("dashboard categories", err)
		}
		shares = append(shares, map[string]int{category: analytics.Share(count, productCount)})
	}
	return shares, nil
}

// cacheGet probes the cache and records the hit or miss.
func (h *DashboardQueryHandler) cacheGet(ctx context.Context, key string) (string, bool) {
	value, ok := h.cache.Get(ctx, key)
	if ok {
		h.metrics.RecordCacheHit(ctx, key)
	} else {
		h.metrics.RecordCacheMiss(ctx, key)
	}
	return value, ok
}

// cacheSet serializes and stores an assembled dashboard. Serialization
// of these value types cannot fail; a failure is logged and the result
// is simply served uncached.
func (h *DashboardQueryHandler) cacheSet(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		h.logger.Warn("Failed to serialize dashboard for cache", zap.String("key", key), zap.Error(err))
		return
	}
	h.cache.Set(ctx, key, string(data))
}
