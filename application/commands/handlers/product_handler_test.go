package handlers

import (
	"context"
	"testing"

	"storefront-backend/application/commands"
	"storefront-backend/domain/core/entities"
	pkgerrors "storefront-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProductCommands(t *testing.T) {
	ctx := context.Background()

	newHandler := func(repo *writeProductRepo) (*ProductCommandHandler, *recordingInvalidator, *recordingPublisher) {
		inv := &recordingInvalidator{}
		pub := &recordingPublisher{}
		return NewProductCommandHandler(repo, inv, pub, zap.NewNop()), inv, pub
	}

	t.Run("create stores the product and invalidates listings", func(t *testing.T) {
		repo := newWriteProductRepo()
		h, inv, pub := newHandler(repo)

		err := h.HandleCreate(ctx, commands.CreateProductCommand{
			Name: "Laptop", Category: "Laptop", Price: 999, Stock: 5,
		})
		require.NoError(t, err)

		require.Len(t, repo.products, 1)
		for _, p := range repo.products {
			assert.Equal(t, "laptop", p.Category)
			assert.NotEmpty(t, p.ID)
		}

		require.Len(t, inv.flags, 1)
		assert.True(t, inv.flags[0].Product)
		assert.True(t, inv.flags[0].Admin)
		assert.False(t, inv.flags[0].Order)

		require.Len(t, pub.events, 1)
		assert.Equal(t, "product.created", pub.events[0].GetEventType())
	})

	t.Run("create rejects an empty name before touching the store", func(t *testing.T) {
		repo := newWriteProductRepo()
		h, inv, _ := newHandler(repo)

		err := h.HandleCreate(ctx, commands.CreateProductCommand{Category: "laptop", Price: 10})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
		assert.Empty(t, repo.products)
		assert.Empty(t, inv.flags)
	})

	t.Run("update patches only the provided fields", func(t *testing.T) {
		repo := newWriteProductRepo(&entities.Product{
			ID: "p1", Name: "Laptop", Category: "laptop", Price: 999, Stock: 5,
		})
		h, inv, _ := newHandler(repo)

		price := 899.0
		category := "Refurbished"
		err := h.HandleUpdate(ctx, commands.UpdateProductCommand{
			ProductID: "p1", Price: &price, Category: &category,
		})
		require.NoError(t, err)

		p := repo.products["p1"]
		assert.Equal(t, 899.0, p.Price)
		assert.Equal(t, "refurbished", p.Category)
		assert.Equal(t, "Laptop", p.Name)
		assert.Equal(t, 5, p.Stock)

		require.Len(t, inv.flags, 1)
		assert.Equal(t, []string{"p1"}, inv.flags[0].ProductIDs)
	})

	t.Run("update of a missing product is a not found error", func(t *testing.T) {
		h, inv, _ := newHandler(newWriteProductRepo())

		name := "x"
		err := h.HandleUpdate(ctx, commands.UpdateProductCommand{ProductID: "nope", Name: &name})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsNotFound(err))
		assert.Empty(t, inv.flags)
	})

	t.Run("delete removes the product and invalidates its key", func(t *testing.T) {
		repo := newWriteProductRepo(&entities.Product{ID: "p1", Name: "Laptop", Category: "laptop"})
		h, inv, pub := newHandler(repo)

		require.NoError(t, h.HandleDelete(ctx, commands.DeleteProductCommand{ProductID: "p1"}))
		assert.Empty(t, repo.products)

		require.Len(t, inv.flags, 1)
		assert.Equal(t, []string{"p1"}, inv.flags[0].ProductIDs)
		require.Len(t, pub.events, 1)
		assert.Equal(t, "product.deleted", pub.events[0].GetEventType())
	})

	t.Run("store failure surfaces as a database error", func(t *testing.T) {
		repo := newWriteProductRepo()
		repo.saveErr = assert.AnError
		h, inv, _ := newHandler(repo)

		err := h.HandleCreate(ctx, commands.CreateProductCommand{
			Name: "Laptop", Category: "laptop", Price: 10, Stock: 1,
		})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeDatabase))
		assert.Empty(t, inv.flags)
	})
}
