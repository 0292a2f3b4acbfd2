package handlers

import (
	"encoding/json"
	"net/http"

	"storefront-backend/application/commands"
	"storefront-backend/application/commands/bus"
	"storefront-backend/application/queries"
	querybus "storefront-backend/application/queries/bus"
	"storefront-backend/domain/core/entities"
	"storefront-backend/pkg/auth"
	pkgerrors "storefront-backend/pkg/errors"
	"storefront-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errors *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *OrderHandler {
	return &OrderHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errors,
		logger:     logger,
	}
}

// OrderItemRequest is one line of a new-order request
type OrderItemRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Photo     string  `json:"photo"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
}

// ShippingInfoRequest is the delivery address of a new-order request
type ShippingInfoRequest struct {
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Country string `json:"country" validate:"required"`
	PinCode string `json:"pinCode" validate:"required"`
}

// PlaceOrderRequest represents the request body for placing an order
type PlaceOrderRequest struct {
	Items           []OrderItemRequest  `json:"orderItems" validate:"required,min=1,dive"`
	Shipping        ShippingInfoRequest `json:"shippingInfo" validate:"required"`
	Subtotal        float64             `json:"subtotal" validate:"gte=0"`
	Tax             float64             `json:"tax" validate:"gte=0"`
	ShippingCharges float64             `json:"shippingCharges" validate:"gte=0"`
	Discount        float64             `json:"discount" validate:"gte=0"`
	Total           float64             `json:"total" validate:"required,gte=0"`
}

// PlaceOrder handles POST /order/new
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	items := make([]entities.OrderItem, len(req.Items))
	for i, line := range req.Items {
		items[i] = entities.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Photo:     line.Photo,
			Price:     line.Price,
			Quantity:  line.Quantity,
		}
	}

	cmd := commands.PlaceOrderCommand{
		UserID: userCtx.UserID,
		Items:  items,
		Shipping: entities.ShippingInfo{
			Address: req.Shipping.Address,
			City:    req.Shipping.City,
			State:   req.Shipping.State,
			Country: req.Shipping.Country,
			PinCode: req.Shipping.PinCode,
		},
		Subtotal:        req.Subtotal,
		Tax:             req.Tax,
		ShippingCharges: req.ShippingCharges,
		Discount:        req.Discount,
		Total:           req.Total,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, map[string]interface{}{
		"message": "Order placed successfully",
	})
}

// MyOrders handles GET /order/my
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.MyOrdersQuery{UserID: userCtx.UserID})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{"orders": result})
}

// AllOrders handles GET /order/all
func (h *OrderHandler) AllOrders(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.AllOrdersQuery{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{"orders": result})
}

// GetOrder handles GET /order/{orderID}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	result, err := h.queryBus.Ask(r.Context(), queries.OrderByIDQuery{OrderID: orderID})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{"order": result})
}

// ProcessOrder handles PUT /order/{orderID}: advances fulfillment
func (h *OrderHandler) ProcessOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	if err := h.commandBus.Send(r.Context(), commands.ProcessOrderCommand{OrderID: orderID}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Order processed successfully",
	})
}

// DeleteOrder handles DELETE /order/{orderID}
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	if err := h.commandBus.Send(r.Context(), commands.DeleteOrderCommand{OrderID: orderID}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Order deleted successfully",
	})
}
