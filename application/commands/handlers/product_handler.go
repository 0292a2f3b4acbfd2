package handlers

import (
	"context"
	"strings"

	"storefront-backend/application/commands"
	"storefront-backend/application/ports"
	"storefront-backend/domain/core/entities"
	"storefront-backend/domain/events"
	pkgerrors "storefront-backend/pkg/errors"

	"go.uber.org/zap"
)

// ProductCommandHandler handles product mutations. Every write ends
// with a cache invalidation for the product and admin tags before the
// caller sees the result.
type ProductCommandHandler struct {
	products    ports.ProductRepository
	invalidator ports.CacheInvalidator
	publisher   ports.EventPublisher
	logger      *zap.Logger
}

// NewProductCommandHandler creates a new product command handler
func NewProductCommandHandler(
	products ports.ProductRepository,
	invalidator ports.CacheInvalidator,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *ProductCommandHandler {
	return &ProductCommandHandler{
		products:    products,
		invalidator: invalidator,
		publisher:   publisher,
		logger:      logger,
	}
}

// HandleCreate executes CreateProductCommand
func (h *ProductCommandHandler) HandleCreate(ctx context.Context, cmd commands.CreateProductCommand) error {
	product, err := entities.NewProduct(cmd.Name, cmd.Category, cmd.Price, cmd.Stock, cmd.Photo)
	if err != nil {
		return err
	}

	if err := h.products.Save(ctx, product); err != nil {
		return pkgerrors.NewDatabaseError("create product", err)
	}

	h.invalidator.Invalidate(ctx, ports.InvalidationFlags{Product: true, Admin: true})
	h.publishEvent(ctx, events.NewProductCreated(product.ID, product.Category))

	h.logger.Info("Product created",
		zap.String("productID", product.ID),
		zap.String("category", product.Category),
	)
	return nil
}

// HandleUpdate executes UpdateProductCommand
func (h *ProductCommandHandler) HandleUpdate(ctx context.Context, cmd commands.UpdateProductCommand) error {
	product, err := h.products.GetByID(ctx, cmd.ProductID)
	if err != nil {
		return err
	}

	if cmd.Name != nil {
		product.Name = *cmd.Name
	}
	if cmd.Category != nil {
		product.Category = strings.ToLower(*cmd.Category)
	}
	if cmd.Price != nil {
		product.Price = *cmd.Price
	}
	if cmd.Stock != nil {
		product.Stock = *cmd.Stock
	}
	if cmd.Photo != nil {
		product.Photo = *cmd.Photo
	}

	if err := h.products.Save(ctx, product); err != nil {
		return pkgerrors.NewDatabaseError("update product", err)
	}

	h.invalidator.Invalidate(ctx, ports.InvalidationFlags{
		Product:    true,
		Admin:      true,
		ProductIDs: []string{product.ID},
	})
	h.publishEvent(ctx, events.NewProductUpdated(product.ID))

	return nil
}

// HandleDelete executes DeleteProductCommand
func (h *ProductCommandHandler) HandleDelete(ctx context.Context, cmd commands.DeleteProductCommand) error {
	product, err := h.products.GetByID(ctx, cmd.ProductID)
	if err != nil {
		return err
	}

	if err := h.products.Delete(ctx, product.ID); err != nil {
		return pkgerrors.NewDatabaseError("delete product", err)
	}

	h.invalidator.Invalidate(ctx, ports.InvalidationFlags{
		Product:    true,
		Admin:      true,
		ProductIDs: []string{product.ID},
	})
	h.publishEvent(ctx, events.NewProductDeleted(product.ID))

	return nil
}

// publishEvent sends a domain event; delivery is best effort and never
// fails the write that produced it.
func (h *ProductCommandHandler) publishEvent(ctx context.Context, event events.DomainEvent) {
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("Failed to publish domain event",
			zap.String("eventType", event.GetEventType()),
			zap.Error(err),
		)
	}
}
