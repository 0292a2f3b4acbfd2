package di

import (
	"storefront-backend/application/commands/bus"
	"storefront-backend/application/ports"
	querybus "storefront-backend/application/queries/bus"
	"storefront-backend/infrastructure/config"
	"storefront-backend/pkg/auth"
	pkgerrors "storefront-backend/pkg/errors"
	"storefront-backend/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	ProductRepo    ports.ProductRepository
	OrderRepo      ports.OrderRepository
	UserRepo       ports.UserRepository
	CouponRepo     ports.CouponRepository
	Cache          ports.Cache
	Invalidator    ports.CacheInvalidator
	EventPublisher ports.EventPublisher
	PaymentGateway ports.PaymentGateway
	Metrics        *observability.Metrics
	Tracer         *observability.Tracer
	JWTService     *auth.JWTService
	ErrorHandler   *pkgerrors.ErrorHandler
	CommandBus     *bus.CommandBus
	QueryBus       *querybus.QueryBus
}
