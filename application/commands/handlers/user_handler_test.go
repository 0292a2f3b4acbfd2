package handlers

import (
	"context"
	"testing"
	"time"

	"storefront-backend/application/commands"
	"storefront-backend/domain/core/entities"
	pkgerrors "storefront-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserCommands(t *testing.T) {
	ctx := context.Background()
	dob := time.Date(1995, time.May, 1, 0, 0, 0, 0, time.UTC)

	newHandler := func(repo *writeUserRepo) (*UserCommandHandler, *recordingInvalidator) {
		inv := &recordingInvalidator{}
		return NewUserCommandHandler(repo, inv, zap.NewNop()), inv
	}

	t.Run("create stores the account and refreshes the dashboards", func(t *testing.T) {
		repo := newWriteUserRepo()
		h, inv := newHandler(repo)

		err := h.HandleCreate(ctx, commands.CreateUserCommand{
			UserID: "u1", Name: "Asha", Email: "asha@example.com", Gender: "Female", DOB: dob,
		})
		require.NoError(t, err)

		u := repo.users["u1"]
		require.NotNil(t, u)
		assert.Equal(t, entities.RoleUser, u.Role)
		assert.Equal(t, entities.GenderFemale, u.Gender)

		require.Len(t, inv.flags, 1)
		assert.True(t, inv.flags[0].Admin)
		assert.False(t, inv.flags[0].Product)
		assert.False(t, inv.flags[0].Order)
	})

	t.Run("create is an upsert for a known id", func(t *testing.T) {
		repo := newWriteUserRepo(&entities.User{ID: "u1", Name: "Old Name", Email: "old@example.com"})
		h, _ := newHandler(repo)

		err := h.HandleCreate(ctx, commands.CreateUserCommand{
			UserID: "u1", Name: "New Name", Email: "new@example.com", Gender: "Female", DOB: dob,
		})
		require.NoError(t, err)

		require.Len(t, repo.users, 1)
		assert.Equal(t, "New Name", repo.users["u1"].Name)
	})

	t.Run("delete removes the account and refreshes the dashboards", func(t *testing.T) {
		repo := newWriteUserRepo(&entities.User{ID: "u1", Name: "Asha", Email: "asha@example.com"})
		h, inv := newHandler(repo)

		require.NoError(t, h.HandleDelete(ctx, commands.DeleteUserCommand{UserID: "u1"}))
		assert.Empty(t, repo.users)

		require.Len(t, inv.flags, 1)
		assert.True(t, inv.flags[0].Admin)
	})

	t.Run("delete of an unknown account is a not found error", func(t *testing.T) {
		h, inv := newHandler(newWriteUserRepo())

		err := h.HandleDelete(ctx, commands.DeleteUserCommand{UserID: "nope"})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsNotFound(err))
		assert.Empty(t, inv.flags)
	})
}
