package di

import (
	"context"
	"fmt"
	"time"

	"storefront-backend/application/commands"
	"storefront-backend/application/commands/bus"
	commands_handlers "storefront-backend/application/commands/handlers"
	"storefront-backend/application/ports"
	"storefront-backend/application/queries"
	querybus "storefront-backend/application/queries/bus"
	queries_handlers "storefront-backend/application/queries/handlers"
	"storefront-backend/infrastructure/cache"
	"storefront-backend/infrastructure/config"
	"storefront-backend/infrastructure/messaging/eventbridge"
	"storefront-backend/infrastructure/payment"
	"storefront-backend/infrastructure/persistence/dynamodb"
	"storefront-backend/pkg/auth"
	pkgerrors "storefront-backend/pkg/errors"
	"storefront-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

const tokenTTL = 24 * time.Hour

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideProductRepository creates a product repository
func ProvideProductRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ProductRepository {
	return dynamodb.NewProductRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideOrderRepository creates an order repository
func ProvideOrderRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.OrderRepository {
	return dynamodb.NewOrderRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideUserRepository creates a user repository
func ProvideUserRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserRepository {
	return dynamodb.NewUserRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideCouponRepository creates a coupon repository
func ProvideCouponRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.CouponRepository {
	return dynamodb.NewCouponRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideCache creates the in-memory response cache
func ProvideCache() ports.Cache {
	return cache.NewMemoryCache()
}

// ProvideCacheInvalidator creates the tag-based cache invalidator
func ProvideCacheInvalidator(c ports.Cache, logger *zap.Logger) ports.CacheInvalidator {
	return cache.NewInvalidator(c, logger)
}

// ProvideEventPublisher creates an EventBridge event publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates metrics instance. When metrics are disabled
// the CloudWatch client is withheld so every Record call is a no-op.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	namespace := fmt.Sprintf("Storefront/%s", cfg.Environment)
	if !cfg.EnableMetrics {
		return observability.NewMetrics(namespace, nil, logger)
	}
	return observability.NewMetrics(namespace, client, logger)
}

// ProvideMetricsRecorder exposes metrics through the application port
func ProvideMetricsRecorder(m *observability.Metrics) ports.MetricsRecorder {
	return m
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer("storefront", cfg.EnableTracing)
}

// ProvideJWTService creates the token verifier
func ProvideJWTService(cfg *config.Config) *auth.JWTService {
	return auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, tokenTTL)
}

// ProvidePaymentGateway creates the payment gateway client
func ProvidePaymentGateway(cfg *config.Config, logger *zap.Logger) ports.PaymentGateway {
	return payment.NewGateway(
		cfg.PaymentBaseURL,
		cfg.PaymentKeyID,
		cfg.PaymentKeySecret,
		cfg.PaymentCurrency,
		logger,
	)
}

// ProvideErrorHandler creates the HTTP error handler
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	products ports.ProductRepository,
	orders ports.OrderRepository,
	users ports.UserRepository,
	coupons ports.CouponRepository,
	invalidator ports.CacheInvalidator,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *bus.CommandBus {
	commandBus := bus.NewCommandBus()

	productHandler := commands_handlers.NewProductCommandHandler(products, invalidator, publisher, logger)
	commandBus.Register(commands.CreateProductCommand{}, bus.CommandHandlerFunc(
		func(ctx context.Context, cmd bus.Command) error {
			return productHandler.HandleCreate(ctx, cmd.(commands.CreateProductCommand))
		},
	))
	commandBus.Register(commands.UpdateProductCommand{}, bus.CommandHandlerFunc(
		func(ctx context.Context, cmd bus.Command) error {
			return productHandler.HandleUpdate(ctx, cmd.(commands.UpdateProductCommand))
		},
	))
	commandBus.Register(commands.DeleteProductCommand{}, bus.CommandHandlerFunc(
		func(ctx context.Context, cmd bus.Command) error {
			return productHandler.HandleDelete(ctx, cmd.(commands.DeleteProductCommand))
		},
	))

	orderHandler := commands_handlers.NewOrderCommandHandler(orders, products, invalidator, publisher, logger)
	commandBus.Register(commands.PlaceOrderCommand{}, bus.CommandHandlerFunc(
		func(ctx context.Context, cmd bus.Command) error {
			return orderHandler.HandlePlace(ctx, cmd.(commands.PlaceOrderCommand))
		},
	))
	commandBus.Register(commands.ProcessOrderCommand{}, bus.CommandHandlerFunc(
		func(ctx context.Context, cmd bus.Command) error {
			return orderHandler.HandleProcess(ctx, cmd.(commands.ProcessOrderCommand))
		},
	))
	commandBus.Register(commands.DeleteOrderCommand{}, bus.CommandHandlerFunc(
		func(ctx context.Context, cmd bus.Command) error {
			return orderHandler.HandleDelete(ctx, cmd.(commands.DeleteOrderCommand))
		},
	))

	userHandler := commands_handlers.NewUserCommandHandler(users, invalidator, logger)
	commandBus.Register(commands.CreateUserCommand{}, bus.CommandHandlerFunc(
		func(ctx context.Context, cmd bus.Command) error {
			return userHandler.HandleCreate(ctx, cmd.(commands.CreateUserCommand))
		},
	))
	commandBus.Register(commands.DeleteUserCommand{}, bus.CommandHandlerFunc(
		func(ctx context.Context, cmd bus.Command) error {
			return userHandler.HandleDelete(ctx, cmd.(commands.DeleteUserCommand))
		},
	))

	couponHandler := commands_handlers.NewCouponCommandHandler(coupons, publisher, logger)
	commandBus.Register(commands.CreateCouponCommand{}, bus.CommandHandlerFunc(
		func(ctx context.Context, cmd bus.Command) error {
			return couponHandler.HandleCreate(ctx, cmd.(commands.CreateCouponCommand))
		},
	))
	commandBus.Register(commands.DeleteCouponCommand{}, bus.CommandHandlerFunc(
		func(ctx context.Context, cmd bus.Command) error {
			return couponHandler.HandleDelete(ctx, cmd.(commands.DeleteCouponCommand))
		},
	))

	return commandBus
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	products ports.ProductRepository,
	orders ports.OrderRepository,
	users ports.UserRepository,
	coupons ports.CouponRepository,
	c ports.Cache,
	metrics ports.MetricsRecorder,
	cfg *config.Config,
	logger *zap.Logger,
) *querybus.QueryBus {
	queryBus := querybus.NewQueryBus()

	productHandler := queries_handlers.NewProductQueryHandler(products, c, metrics, logger, cfg.ProductsPerPage)
	queryBus.Register(queries.LatestProductsQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return productHandler.HandleLatest(ctx, q.(queries.LatestProductsQuery))
		},
	))
	queryBus.Register(queries.CategoriesQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return productHandler.HandleCategories(ctx, q.(queries.CategoriesQuery))
		},
	))
	queryBus.Register(queries.AdminProductsQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return productHandler.HandleAdminProducts(ctx, q.(queries.AdminProductsQuery))
		},
	))
	queryBus.Register(queries.ProductByIDQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return productHandler.HandleProductByID(ctx, q.(queries.ProductByIDQuery))
		},
	))
	queryBus.Register(queries.SearchProductsQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return productHandler.HandleSearch(ctx, q.(queries.SearchProductsQuery))
		},
	))

	orderHandler := queries_handlers.NewOrderQueryHandler(orders, c, metrics, logger)
	queryBus.Register(queries.MyOrdersQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return orderHandler.HandleMyOrders(ctx, q.(queries.MyOrdersQuery))
		},
	))
	queryBus.Register(queries.AllOrdersQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return orderHandler.HandleAllOrders(ctx, q.(queries.AllOrdersQuery))
		},
	))
	queryBus.Register(queries.OrderByIDQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return orderHandler.HandleOrderByID(ctx, q.(queries.OrderByIDQuery))
		},
	))

	userHandler := queries_handlers.NewUserQueryHandler(users)
	queryBus.Register(queries.AllUsersQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return userHandler.HandleAllUsers(ctx, q.(queries.AllUsersQuery))
		},
	))
	queryBus.Register(queries.UserByIDQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return userHandler.HandleUserByID(ctx, q.(queries.UserByIDQuery))
		},
	))

	couponHandler := queries_handlers.NewCouponQueryHandler(coupons)
	queryBus.Register(queries.AllCouponsQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return couponHandler.HandleAllCoupons(ctx, q.(queries.AllCouponsQuery))
		},
	))
	queryBus.Register(queries.ApplyDiscountQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return couponHandler.HandleApplyDiscount(ctx, q.(queries.ApplyDiscountQuery))
		},
	))

	dashboardHandler := queries_handlers.NewDashboardQueryHandler(products, orders, users, c, metrics, logger)
	queryBus.Register(queries.DashboardStatsQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return dashboardHandler.HandleStats(ctx, q.(queries.DashboardStatsQuery))
		},
	))
	queryBus.Register(queries.PieChartsQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return dashboardHandler.HandlePie(ctx, q.(queries.PieChartsQuery))
		},
	))
	queryBus.Register(queries.BarChartsQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return dashboardHandler.HandleBar(ctx, q.(queries.BarChartsQuery))
		},
	))
	queryBus.Register(queries.LineChartsQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return dashboardHandler.HandleLine(ctx, q.(queries.LineChartsQuery))
		},
	))

	return queryBus
}
