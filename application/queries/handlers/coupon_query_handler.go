package handlers

import (
	"context"

	"storefront-backend/application/ports"
	"storefront-backend/application/queries"
	pkgerrors "storefront-backend/pkg/errors"
)

// CouponQueryHandler serves coupon reads. Coupons bypass the cache:
// the discount lookup must always see the live coupon set.
type CouponQueryHandler struct {
	coupons ports.CouponRepository
}

// NewCouponQueryHandler creates a new coupon query handler
func NewCouponQueryHandler(coupons ports.CouponRepository) *CouponQueryHandler {
	return &CouponQueryHandler{coupons: coupons}
}

// HandleAllCoupons executes AllCouponsQuery
func (h *CouponQueryHandler) HandleAllCoupons(ctx context.Context, _ queries.AllCouponsQuery) ([]queries.CouponView, error) {
	coupons, err := h.coupons.All(ctx)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("all coupons", err)
	}

	views := make([]queries.CouponView, len(coupons))
	for i, c := range coupons {
		views[i] = queries.CouponView{ID: c.ID, Code: c.Code, Amount: c.Amount}
	}
	return views, nil
}

// HandleApplyDiscount executes ApplyDiscountQuery. An unknown code is a
// not-found error rather than a zero discount.
func (h *CouponQueryHandler) HandleApplyDiscount(ctx context.Context, query queries.ApplyDiscountQuery) (float64, error) {
	coupon, err := h.coupons.GetByCode(ctx, query.Code)
	if err != nil {
		return 0, err
	}
	return coupon.Amount, nil
}
