package handlers

import (
	"context"
	"errors"
	"testing"

	"storefront-backend/application/queries"
	"storefront-backend/domain/core/entities"
	pkgerrors "storefront-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponQueries(t *testing.T) {
	ctx := context.Background()

	newHandler := func() (*CouponQueryHandler, *fakeCouponRepo) {
		repo := &fakeCouponRepo{coupons: []*entities.Coupon{
			{ID: "c1", Code: "SAVE10", Amount: 10},
			{ID: "c2", Code: "SAVE50", Amount: 50},
		}}
		return NewCouponQueryHandler(repo), repo
	}

	t.Run("all coupons lists every code", func(t *testing.T) {
		h, _ := newHandler()

		views, err := h.HandleAllCoupons(ctx, queries.AllCouponsQuery{})
		require.NoError(t, err)

		require.Len(t, views, 2)
		assert.Equal(t, "SAVE10", views[0].Code)
		assert.Equal(t, float64(50), views[1].Amount)
	})

	t.Run("apply discount resolves the code to its amount", func(t *testing.T) {
		h, _ := newHandler()

		amount, err := h.HandleApplyDiscount(ctx, queries.ApplyDiscountQuery{Code: "SAVE50"})
		require.NoError(t, err)
		assert.Equal(t, float64(50), amount)
	})

	t.Run("unknown code is a not found error", func(t *testing.T) {
		h, _ := newHandler()

		_, err := h.HandleApplyDiscount(ctx, queries.ApplyDiscountQuery{Code: "NOPE"})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("store failure surfaces the error", func(t *testing.T) {
		h, repo := newHandler()
		repo.err = errors.New("down")

		_, err := h.HandleAllCoupons(ctx, queries.AllCouponsQuery{})
		require.Error(t, err)
	})
}
