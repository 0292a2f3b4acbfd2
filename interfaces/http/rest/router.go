package rest

import (
	"net/http"

	"storefront-backend/application/commands/bus"
	querybus "storefront-backend/application/queries/bus"
	"storefront-backend/application/ports"
	"storefront-backend/infrastructure/config"
	"storefront-backend/interfaces/http/rest/handlers"
	"storefront-backend/interfaces/http/rest/middleware"
	"storefront-backend/pkg/auth"
	pkgerrors "storefront-backend/pkg/errors"
	"storefront-backend/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	gateway    ports.PaymentGateway
	jwtService *auth.JWTService
	tracer     *observability.Tracer
	errors     *pkgerrors.ErrorHandler
	cfg        *config.Config
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	gateway ports.PaymentGateway,
	jwtService *auth.JWTService,
	tracer *observability.Tracer,
	errors *pkgerrors.ErrorHandler,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		gateway:    gateway,
		jwtService: jwtService,
		tracer:     tracer,
		errors:     errors,
		cfg:        cfg,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(rt.errors.Middleware)

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		userHandler := handlers.NewUserHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)

		// Identity sync happens right after the auth provider issues a
		// token, so the profile upsert itself stays public.
		r.Post("/user/new", userHandler.CreateUser)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(rt.jwtService, rt.logger))

			productHandler := handlers.NewProductHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
			orderHandler := handlers.NewOrderHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
			paymentHandler := handlers.NewPaymentHandler(rt.commandBus, rt.queryBus, rt.gateway, rt.errors, rt.logger)

			// Catalog
			r.Get("/product/latest", productHandler.GetLatest)
			r.Get("/product/all", productHandler.Search)
			r.Get("/product/categories", productHandler.GetCategories)
			r.Get("/product/{productID}", productHandler.GetProduct)

			// Orders
			r.Post("/order/new", orderHandler.PlaceOrder)
			r.Get("/order/my", orderHandler.MyOrders)
			r.Get("/order/{orderID}", orderHandler.GetOrder)

			// Payments and discounts
			r.Post("/payment/create", paymentHandler.CreatePayment)
			r.Post("/payment/verify", paymentHandler.VerifyPayment)
			r.Get("/payment/discount", paymentHandler.ApplyDiscount)

			// Profiles
			r.Get("/user/{userID}", userHandler.GetUser)

			// Admin routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly())

				dashboardHandler := handlers.NewDashboardHandler(rt.queryBus, rt.tracer, rt.errors, rt.logger)

				r.Post("/product/new", productHandler.CreateProduct)
				r.Get("/product/admin-products", productHandler.GetAdminProducts)
				r.Put("/product/{productID}", productHandler.UpdateProduct)
				r.Delete("/product/{productID}", productHandler.DeleteProduct)

				r.Get("/order/all", orderHandler.AllOrders)
				r.Put("/order/{orderID}", orderHandler.ProcessOrder)
				r.Delete("/order/{orderID}", orderHandler.DeleteOrder)

				r.Post("/payment/coupon/new", paymentHandler.CreateCoupon)
				r.Get("/payment/coupon/all", paymentHandler.AllCoupons)
				r.Delete("/payment/coupon/{couponID}", paymentHandler.DeleteCoupon)

				r.Get("/user/all", userHandler.AllUsers)
				r.Delete("/user/{userID}", userHandler.DeleteUser)

				r.Get("/dashboard/stats", dashboardHandler.Stats)
				r.Get("/dashboard/pie", dashboardHandler.Pie)
				r.Get("/dashboard/bar", dashboardHandler.Bar)
				r.Get("/dashboard/line", dashboardHandler.Line)
			})
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
