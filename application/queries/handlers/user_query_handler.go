package handlers

import (
	"context"

	"storefront-backend/application/ports"
	"storefront-backend/application/queries"
	"storefront-backend/domain/core/entities"
	pkgerrors "storefront-backend/pkg/errors"
	"storefront-backend/pkg/utils"
)

// UserQueryHandler serves user account reads. These go straight to the
// store; only the aggregate user counts feed the cached dashboards.
type UserQueryHandler struct {
	users ports.UserRepository
}

// NewUserQueryHandler creates a new user query handler
func NewUserQueryHandler(users ports.UserRepository) *UserQueryHandler {
	return &UserQueryHandler{users: users}
}

// HandleAllUsers executes AllUsersQuery
func (h *UserQueryHandler) HandleAllUsers(ctx context.Context, _ queries.AllUsersQuery) ([]queries.UserView, error) {
	users, err := h.users.All(ctx)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("all users", err)
	}

	views := make([]queries.UserView, len(users))
	for i, u := range users {
		views[i] = toUserView(u)
	}
	return views, nil
}

// HandleUserByID executes UserByIDQuery
func (h *UserQueryHandler) HandleUserByID(ctx context.Context, query queries.UserByIDQuery) (*queries.UserView, error) {
	user, err := h.users.GetByID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	view := toUserView(user)
	return &view, nil
}

func toUserView(u *entities.User) queries.UserView {
	return queries.UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Photo:     u.Photo,
		Role:      string(u.Role),
		Gender:    string(u.Gender),
		DOB:       utils.FormatRFC3339(u.DOB),
		Age:       u.Age(),
		CreatedAt: utils.FormatRFC3339(u.CreatedAt),
	}
}
