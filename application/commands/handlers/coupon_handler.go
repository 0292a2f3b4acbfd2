package handlers

import (
	"context"

	"storefront-backend/application/commands"
	"storefront-backend/application/ports"
	"storefront-backend/domain/core/entities"
	"storefront-backend/domain/events"
	pkgerrors "storefront-backend/pkg/errors"

	"go.uber.org/zap"
)

// CouponCommandHandler handles coupon mutations. Coupons are never
// cached, so no invalidation is needed here.
type CouponCommandHandler struct {
	coupons   ports.CouponRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewCouponCommandHandler creates a new coupon command handler
func NewCouponCommandHandler(
	coupons ports.CouponRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *CouponCommandHandler {
	return &CouponCommandHandler{
		coupons:   coupons,
		publisher: publisher,
		logger:    logger,
	}
}

// HandleCreate executes CreateCouponCommand
func (h *CouponCommandHandler) HandleCreate(ctx context.Context, cmd commands.CreateCouponCommand) error {
	coupon, err := entities.NewCoupon(cmd.Code, cmd.Amount)
	if err != nil {
		return err
	}

	if err := h.coupons.Save(ctx, coupon); err != nil {
		return pkgerrors.NewDatabaseError("create coupon", err)
	}

	if err := h.publisher.Publish(ctx, events.NewCouponCreated(coupon.ID, coupon.Code, coupon.Amount)); err != nil {
		h.logger.Warn("Failed to publish domain event", zap.Error(err))
	}
	return nil
}

// HandleDelete executes DeleteCouponCommand
func (h *CouponCommandHandler) HandleDelete(ctx context.Context, cmd commands.DeleteCouponCommand) error {
	coupon, err := h.coupons.GetByID(ctx, cmd.CouponID)
	if err != nil {
		return err
	}

	if err := h.coupons.Delete(ctx, coupon.ID); err != nil {
		return pkgerrors.NewDatabaseError("delete coupon", err)
	}

	if err := h.publisher.Publish(ctx, events.NewCouponDeleted(coupon.ID)); err != nil {
		h.logger.Warn("Failed to publish domain event", zap.Error(err))
	}
	return nil
}
