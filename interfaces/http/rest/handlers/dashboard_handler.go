package handlers

import (
	"context"
	"net/http"

	"storefront-backend/application/queries"
	querybus "storefront-backend/application/queries/bus"
	pkgerrors "storefront-backend/pkg/errors"
	"storefront-backend/pkg/observability"

	"go.uber.org/zap"
)

// DashboardHandler serves the four admin dashboards
type DashboardHandler struct {
	queryBus *querybus.QueryBus
	tracer   *observability.Tracer
	errors   *pkgerrors.ErrorHandler
	logger   *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	queryBus *querybus.QueryBus,
	tracer *observability.Tracer,
	errors *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		queryBus: queryBus,
		tracer:   tracer,
		errors:   errors,
		logger:   logger,
	}
}

// Stats handles GET /dashboard/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var result interface{}
	err := h.tracer.TraceFunction(r.Context(), "dashboard.stats", func(ctx context.Context) error {
		var askErr error
		result, askErr = h.queryBus.Ask(ctx, queries.DashboardStatsQuery{})
		return askErr
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{"stats": result})
}

// Pie handles GET /dashboard/pie
func (h *DashboardHandler) Pie(w http.ResponseWriter, r *http.Request) {
	var result interface{}
	err := h.tracer.TraceFunction(r.Context(), "dashboard.pie", func(ctx context.Context) error {
		var askErr error
		result, askErr = h.queryBus.Ask(ctx, queries.PieChartsQuery{})
		return askErr
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{"charts": result})
}

// Bar handles GET /dashboard/bar
func (h *DashboardHandler) Bar(w http.ResponseWriter, r *http.Request) {
	var result interface{}
	err := h.tracer.TraceFunction(r.Context(), "dashboard.bar", func(ctx context.Context) error {
		var askErr error
		result, askErr = h.queryBus.Ask(ctx, queries.BarChartsQuery{})
		return askErr
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{"charts": result})
}

// Line handles GET /dashboard/line
func (h *DashboardHandler) Line(w http.ResponseWriter, r *http.Request) {
	var result interface{}
	err := h.tracer.TraceFunction(r.Context(), "dashboard.line", func(ctx context.Context) error {
		var askErr error
		result, askErr = h.queryBus.Ask(ctx, queries.LineChartsQuery{})
		return askErr
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{"charts": result})
}
