package ports

import (
	"context"
	"time"

	"storefront-backend/domain/core/entities"
	"storefront-backend/domain/events"
)

// ProductRepository defines the interface for product persistence
// This is a port in hexagonal architecture - the application doesn't know about the implementation
type ProductRepository interface {
	// Save persists a product (create or update)
	Save(ctx context.Context, product *entities.Product) error

	// GetByID retrieves a product by its ID
	GetByID(ctx context.Context, id string) (*entities.Product, error)

	// Delete removes a product
	Delete(ctx context.Context, id string) error

	// Latest retrieves the most recently created products, newest first
	Latest(ctx context.Context, limit int) ([]*entities.Product, error)

	// All retrieves every product in the catalog
	All(ctx context.Context) ([]*entities.Product, error)

	// Search finds products matching the given criteria and reports the
	// unpaginated match count
	Search(ctx context.Context, criteria ProductSearch) ([]*entities.Product, int, error)

	// Categories retrieves the distinct product categories
	Categories(ctx context.Context) ([]string, error)

	// CountAll counts every product
	CountAll(ctx context.Context) (int, error)

	// CountByCategory counts products in one category
	CountByCategory(ctx context.Context, category string) (int, error)

	// CountOutOfStock counts products with zero stock
	CountOutOfStock(ctx context.Context) (int, error)

	// CreatedBetween retrieves products created within [start, end]
	CreatedBetween(ctx context.Context, start, end time.Time) ([]*entities.Product, error)
}

// ProductSearch defines catalog search parameters
type ProductSearch struct {
	Name     string
	Category string
	MaxPrice float64
	Sort     string // "asc" or "desc" by price; empty for no sort
	Page     int
	PerPage  int
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Save persists an order (create or update)
	Save(ctx context.Context, order *entities.Order) error

	// GetByID retrieves an order by its ID
	GetByID(ctx context.Context, id string) (*entities.Order, error)

	// Delete removes an order
	Delete(ctx context.Context, id string) error

	// ByUser retrieves all orders placed by a user
	ByUser(ctx context.Context, userID string) ([]*entities.Order, error)

	// All retrieves every order
	All(ctx context.Context) ([]*entities.Order, error)

	// Latest retrieves the most recently placed orders, newest first
	Latest(ctx context.Context, limit int) ([]*entities.Order, error)

	// CountByStatus counts orders in one fulfillment state
	CountByStatus(ctx context.Context, status entities.OrderStatus) (int, error)

	// CreatedBetween retrieves orders created within [start, end]
	CreatedBetween(ctx context.Context, start, end time.Time) ([]*entities.Order, error)
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Save persists a user (create or update)
	Save(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by its ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// Delete removes a user
	Delete(ctx context.Context, id string) error

	// All retrieves every user
	All(ctx context.Context) ([]*entities.User, error)

	// CountAll counts every user
	CountAll(ctx context.Context) (int, error)

	// CountByGender counts users of one gender
	CountByGender(ctx context.Context, gender entities.Gender) (int, error)

	// CountByRole counts users holding one role
	CountByRole(ctx context.Context, role entities.UserRole) (int, error)

	// CreatedBetween retrieves users created within [start, end]
	CreatedBetween(ctx context.Context, start, end time.Time) ([]*entities.User, error)
}

// CouponRepository defines the interface for coupon persistence
type CouponRepository interface {
	// Save persists a coupon
	Save(ctx context.Context, coupon *entities.Coupon) error

	// GetByID retrieves a coupon by its ID
	GetByID(ctx context.Context, id string) (*entities.Coupon, error)

	// GetByCode retrieves a coupon by its code
	GetByCode(ctx context.Context, code string) (*entities.Coupon, error)

	// Delete removes a coupon
	Delete(ctx context.Context, id string) error

	// All retrieves every coupon
	All(ctx context.Context) ([]*entities.Coupon, error)
}

// Cache defines the interface for the in-process read cache. Values are
// serialized JSON strings. Entries have no TTL; they live until an
// invalidation removes them or the process restarts. Operations never
// fail: deleting an absent key is a no-op.
type Cache interface {
	// Has reports whether a key is present
	Has(ctx context.Context, key string) bool

	// Get retrieves a cached value
	Get(ctx context.Context, key string) (string, bool)

	// Set stores a value, overwriting unconditionally
	Set(ctx context.Context, key, value string)

	// DeleteMany removes each key if present
	DeleteMany(ctx context.Context, keys ...string)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// GatewayOrder is a payment order registered with the external gateway
type GatewayOrder struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// PaymentGateway defines the narrow interface to the external payment
// provider. Integration details stay behind this port.
type PaymentGateway interface {
	// CreateOrder registers a payment intent for the given amount in the
	// gateway's smallest currency unit
	CreateOrder(ctx context.Context, amount float64) (*GatewayOrder, error)

	// VerifySignature checks the gateway's callback signature for an
	// order/payment pair
	VerifySignature(orderID, paymentID, signature string) bool
}
