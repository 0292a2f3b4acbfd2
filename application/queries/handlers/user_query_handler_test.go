package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-backend/application/queries"
	"storefront-backend/domain/core/entities"
	pkgerrors "storefront-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserQueries(t *testing.T) {
	ctx := context.Background()

	newHandler := func() (*UserQueryHandler, *fakeUserRepo) {
		repo := &fakeUserRepo{users: []*entities.User{
			{
				ID: "u1", Name: "Asha", Email: "asha@example.com",
				Role: entities.RoleAdmin, Gender: entities.GenderFemale,
				DOB:       time.Date(1990, time.March, 3, 0, 0, 0, 0, time.UTC),
				CreatedAt: time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
			},
			{
				ID: "u2", Name: "Ben", Email: "ben@example.com",
				Role: entities.RoleUser, Gender: entities.GenderMale,
				DOB:       time.Date(2005, time.July, 20, 0, 0, 0, 0, time.UTC),
				CreatedAt: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
			},
		}}
		return NewUserQueryHandler(repo), repo
	}

	t.Run("all users lists every account", func(t *testing.T) {
		h, _ := newHandler()

		views, err := h.HandleAllUsers(ctx, queries.AllUsersQuery{})
		require.NoError(t, err)

		require.Len(t, views, 2)
		assert.Equal(t, "Asha", views[0].Name)
		assert.Equal(t, string(entities.RoleAdmin), views[0].Role)
	})

	t.Run("user by id maps the account fields", func(t *testing.T) {
		h, _ := newHandler()

		view, err := h.HandleUserByID(ctx, queries.UserByIDQuery{UserID: "u2"})
		require.NoError(t, err)

		assert.Equal(t, "ben@example.com", view.Email)
		assert.Equal(t, string(entities.GenderMale), view.Gender)
		assert.Equal(t, "2005-07-20T00:00:00Z", view.DOB)
		assert.Positive(t, view.Age)
	})

	t.Run("unknown user id is a not found error", func(t *testing.T) {
		h, _ := newHandler()

		_, err := h.HandleUserByID(ctx, queries.UserByIDQuery{UserID: "nope"})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("store failure surfaces the error", func(t *testing.T) {
		h, repo := newHandler()
		repo.err = errors.New("down")

		_, err := h.HandleAllUsers(ctx, queries.AllUsersQuery{})
		require.Error(t, err)
	})
}
