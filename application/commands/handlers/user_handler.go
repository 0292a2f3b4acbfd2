package handlers

import (
	"context"

	"storefront-backend/application/commands"
	"storefront-backend/application/ports"
	"storefront-backend/domain/core/entities"
	pkgerrors "storefront-backend/pkg/errors"

	"go.uber.org/zap"
)

// UserCommandHandler handles user account mutations. User counts feed
// the admin dashboards, so account changes fire the admin tag.
type UserCommandHandler struct {
	users       ports.UserRepository
	invalidator ports.CacheInvalidator
	logger      *zap.Logger
}

// NewUserCommandHandler creates a new user command handler
func NewUserCommandHandler(
	users ports.UserRepository,
	invalidator ports.CacheInvalidator,
	logger *zap.Logger,
) *UserCommandHandler {
	return &UserCommandHandler{
		users:       users,
		invalidator: invalidator,
		logger:      logger,
	}
}

// HandleCreate executes CreateUserCommand. Creating an already-known
// user id is an upsert: sign-in and sign-up share this path.
func (h *UserCommandHandler) HandleCreate(ctx context.Context, cmd commands.CreateUserCommand) error {
	user, err := entities.NewUser(cmd.UserID, cmd.Name, cmd.Email, cmd.Photo, entities.Gender(cmd.Gender), cmd.DOB)
	if err != nil {
		return err
	}

	if err := h.users.Save(ctx, user); err != nil {
		return pkgerrors.NewDatabaseError("create user", err)
	}

	h.invalidator.Invalidate(ctx, ports.InvalidationFlags{Admin: true})
	h.logger.Info("User created", zap.String("userID", user.ID))
	return nil
}

// HandleDelete executes DeleteUserCommand
func (h *UserCommandHandler) HandleDelete(ctx context.Context, cmd commands.DeleteUserCommand) error {
	user, err := h.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return err
	}

	if err := h.users.Delete(ctx, user.ID); err != nil {
		return pkgerrors.NewDatabaseError("delete user", err)
	}

	h.invalidator.Invalidate(ctx, ports.InvalidationFlags{Admin: true})
	return nil
}
