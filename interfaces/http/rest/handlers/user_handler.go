package handlers

import (
	"encoding/json"
	"net/http"

	"storefront-backend/application/commands"
	"storefront-backend/application/commands/bus"
	"storefront-backend/application/queries"
	querybus "storefront-backend/application/queries/bus"
	"storefront-backend/pkg/auth"
	pkgerrors "storefront-backend/pkg/errors"
	"storefront-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserHandler handles user account HTTP requests. Account creation is
// an upsert: the identity provider owns the user id, and a repeat call
// for an existing id behaves as a login sync.
type UserHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errors *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *UserHandler {
	return &UserHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errors,
		logger:     logger,
	}
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	ID     string `json:"_id" validate:"required"`
	Name   string `json:"name" validate:"required,min=1,max=100"`
	Email  string `json:"email" validate:"required,email"`
	Photo  string `json:"photo"`
	Gender string `json:"gender" validate:"required,oneof=Male Female"`
	DOB    string `json:"dob" validate:"required"`
}

// CreateUser handles POST /user/new
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	dob, err := utils.ParseRFC3339(req.DOB)
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("dob must be an RFC 3339 timestamp"))
		return
	}

	cmd := commands.CreateUserCommand{
		UserID: req.ID,
		Name:   req.Name,
		Email:  req.Email,
		Photo:  req.Photo,
		Gender: req.Gender,
		DOB:    dob,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, map[string]interface{}{
		"message": "Welcome, " + req.Name,
	})
}

// AllUsers handles GET /user/all
func (h *UserHandler) AllUsers(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.AllUsersQuery{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{"users": result})
}

// GetUser handles GET /user/{userID}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	// Users may read their own account; admins may read any.
	caller, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if caller.UserID != userID && !caller.IsAdmin() {
		h.errors.HandleStatus(w, r, http.StatusForbidden, "Admin access required")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.UserByIDQuery{UserID: userID})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{"user": result})
}

// DeleteUser handles DELETE /user/{userID}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if err := h.commandBus.Send(r.Context(), commands.DeleteUserCommand{UserID: userID}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "User deleted successfully",
	})
}
