package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"storefront-backend/application/commands"
	"storefront-backend/application/commands/bus"
	"storefront-backend/application/queries"
	querybus "storefront-backend/application/queries/bus"
	pkgerrors "storefront-backend/pkg/errors"
	"storefront-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errors *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *ProductHandler {
	return &ProductHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errors,
		logger:     logger,
	}
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	Category string  `json:"category" validate:"required,min=1,max=100"`
	Price    float64 `json:"price" validate:"required,gte=0"`
	Stock    int     `json:"stock" validate:"gte=0"`
	Photo    string  `json:"photo" validate:"required"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Name     *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Category *string  `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	Price    *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Stock    *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Photo    *string  `json:"photo,omitempty"`
}

// GetLatest handles GET /product/latest
func (h *ProductHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.LatestProductsQuery{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{"products": result})
}

// GetCategories handles GET /product/categories
func (h *ProductHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.CategoriesQuery{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{"categories": result})
}

// GetAdminProducts handles GET /product/admin-products
func (h *ProductHandler) GetAdminProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.AdminProductsQuery{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{"products": result})
}

// Search handles GET /product/all with filter query parameters
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	maxPrice, _ := strconv.ParseFloat(r.URL.Query().Get("price"), 64)

	query := queries.SearchProductsQuery{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		MaxPrice: maxPrice,
		Sort:     r.URL.Query().Get("sort"),
		Page:     page,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	searched, ok := result.(*queries.SearchProductsResult)
	if !ok {
		h.errors.Handle(w, r, pkgerrors.NewInternalError("unexpected search result type"))
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"products":  searched.Products,
		"totalPage": searched.TotalPage,
	})
}

// GetProduct handles GET /product/{productID}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	result, err := h.queryBus.Ask(r.Context(), queries.ProductByIDQuery{ProductID: productID})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{"product": result})
}

// CreateProduct handles POST /product/new
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	cmd := commands.CreateProductCommand{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Stock:    req.Stock,
		Photo:    req.Photo,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, map[string]interface{}{
		"message": "Product created successfully",
	})
}

// UpdateProduct handles PUT /product/{productID}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	cmd := commands.UpdateProductCommand{
		ProductID: productID,
		Name:      req.Name,
		Category:  req.Category,
		Price:     req.Price,
		Stock:     req.Stock,
		Photo:     req.Photo,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Product updated successfully",
	})
}

// DeleteProduct handles DELETE /product/{productID}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	if err := h.commandBus.Send(r.Context(), commands.DeleteProductCommand{ProductID: productID}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Product deleted successfully",
	})
}
