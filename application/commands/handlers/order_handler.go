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

// OrderCommandHandler handles order mutations. Placing an order reduces
// product stock, so both the order and product tags are invalidated
// along with the admin dashboards.
type OrderCommandHandler struct {
	orders      ports.OrderRepository
	products    ports.ProductRepository
	invalidator ports.CacheInvalidator
	publisher   ports.EventPublisher
	logger      *zap.Logger
}

// NewOrderCommandHandler creates a new order command handler
func NewOrderCommandHandler(
	orders ports.OrderRepository,
	products ports.ProductRepository,
	invalidator ports.CacheInvalidator,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *OrderCommandHandler {
	return &OrderCommandHandler{
		orders:      orders,
		products:    products,
		invalidator: invalidator,
		publisher:   publisher,
		logger:      logger,
	}
}

// HandlePlace executes PlaceOrderCommand
func (h *OrderCommandHandler) HandlePlace(ctx context.Context, cmd commands.PlaceOrderCommand) error {
	order, err := entities.NewOrder(
		cmd.UserID,
		cmd.Items,
		cmd.Shipping,
		cmd.Subtotal,
		cmd.Tax,
		cmd.ShippingCharges,
		cmd.Discount,
		cmd.Total,
	)
	if err != nil {
		return err
	}

	if err := h.orders.Save(ctx, order); err != nil {
		return pkgerrors.NewDatabaseError("place order", err)
	}

	if err := h.reduceStock(ctx, order.Items); err != nil {
		return err
	}

	h.invalidator.Invalidate(ctx, ports.InvalidationFlags{
		Product:    true,
		Order:      true,
		Admin:      true,
		UserID:     order.UserID,
		OrderID:    order.ID,
		ProductIDs: order.ProductIDs(),
	})
	h.publishEvent(ctx, events.NewOrderPlaced(order.ID, order.UserID, order.ProductIDs(), order.Total))

	h.logger.Info("Order placed",
		zap.String("orderID", order.ID),
		zap.String("userID", order.UserID),
		zap.Float64("total", order.Total),
	)
	return nil
}

// HandleProcess executes ProcessOrderCommand
func (h *OrderCommandHandler) HandleProcess(ctx context.Context, cmd commands.ProcessOrderCommand) error {
	order, err := h.orders.GetByID(ctx, cmd.OrderID)
	if err != nil {
		return err
	}

	order.Advance()
	if err := h.orders.Save(ctx, order); err != nil {
		return pkgerrors.NewDatabaseError("process order", err)
	}

	h.invalidator.Invalidate(ctx, ports.InvalidationFlags{
		Order:   true,
		Admin:   true,
		UserID:  order.UserID,
		OrderID: order.ID,
	})
	h.publishEvent(ctx, events.NewOrderStatusChanged(order.ID, order.UserID, string(order.Status)))

	return nil
}

// HandleDelete executes DeleteOrderCommand
func (h *OrderCommandHandler) HandleDelete(ctx context.Context, cmd commands.DeleteOrderCommand) error {
	order, err := h.orders.GetByID(ctx, cmd.OrderID)
	if err != nil {
		return err
	}

	if err := h.orders.Delete(ctx, order.ID); err != nil {
		return pkgerrors.NewDatabaseError("delete order", err)
	}

	h.invalidator.Invalidate(ctx, ports.InvalidationFlags{
		Order:   true,
		Admin:   true,
		UserID:  order.UserID,
		OrderID: order.ID,
	})
	h.publishEvent(ctx, events.NewOrderDeleted(order.ID, order.UserID))

	return nil
}

// reduceStock decrements stock for each order line. A missing product
// aborts the order with a not-found error.
func (h *OrderCommandHandler) reduceStock(ctx context.Context, items []entities.OrderItem) error {
	for _, item := range items {
		product, err := h.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if err := product.ReduceStock(item.Quantity); err != nil {
			return err
		}
		if err := h.products.Save(ctx, product); err != nil {
			return pkgerrors.NewDatabaseError("reduce stock", err)
		}
	}
	return nil
}

func (h *OrderCommandHandler) publishEvent(ctx context.Context, event events.DomainEvent) {
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("Failed to publish domain event",
			zap.String("eventType", event.GetEventType()),
			zap.Error(err),
		)
	}
}
