package handlers

import (
	"encoding/json"
	"net/http"

	"storefront-backend/application/commands"
	"storefront-backend/application/commands/bus"
	"storefront-backend/application/ports"
	"storefront-backend/application/queries"
	querybus "storefront-backend/application/queries/bus"
	pkgerrors "storefront-backend/pkg/errors"
	"storefront-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PaymentHandler handles payment and coupon HTTP requests
type PaymentHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	gateway    ports.PaymentGateway
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	gateway ports.PaymentGateway,
	errors *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		gateway:    gateway,
		errors:     errors,
		logger:     logger,
	}
}

// CreatePaymentRequest represents the request body for a payment intent
type CreatePaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// VerifyPaymentRequest represents the gateway's success callback
type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId" validate:"required"`
	PaymentID string `json:"paymentId" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

// CreateCouponRequest represents the request body for creating a coupon
type CreateCouponRequest struct {
	Code   string  `json:"code" validate:"required,min=1,max=50"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// CreatePayment handles POST /payment/create
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	order, err := h.gateway.CreateOrder(r.Context(), req.Amount)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, map[string]interface{}{"order": order})
}

// VerifyPayment handles POST /payment/verify
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	if !h.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		h.logger.Warn("Payment signature verification failed",
			zap.String("orderID", req.OrderID),
			zap.String("paymentID", req.PaymentID),
		)
		h.errors.Handle(w, r, pkgerrors.NewValidationError("payment signature mismatch"))
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Payment verified",
	})
}

// ApplyDiscount handles GET /payment/discount?coupon=CODE
func (h *PaymentHandler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("coupon")

	result, err := h.queryBus.Ask(r.Context(), queries.ApplyDiscountQuery{Code: code})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{"discount": result})
}

// CreateCoupon handles POST /payment/coupon/new
func (h *PaymentHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req CreateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	cmd := commands.CreateCouponCommand{Code: req.Code, Amount: req.Amount}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, map[string]interface{}{
		"message": "Coupon " + req.Code + " created successfully",
	})
}

// AllCoupons handles GET /payment/coupon/all
func (h *PaymentHandler) AllCoupons(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.AllCouponsQuery{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{"coupons": result})
}

// DeleteCoupon handles DELETE /payment/coupon/{couponID}
func (h *PaymentHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	couponID := chi.URLParam(r, "couponID")

	if err := h.commandBus.Send(r.Context(), commands.DeleteCouponCommand{CouponID: couponID}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Coupon deleted successfully",
	})
}
