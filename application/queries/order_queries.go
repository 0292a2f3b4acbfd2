package queries

import (
	"errors"

	"storefront-backend/domain/core/entities"
)

// OrderView is the serialized shape of an order
type OrderView struct {
	ID              string                 `json:"_id"`
	UserID          string                 `json:"user"`
	Status          string                 `json:"status"`
	Items           []entities.OrderItem   `json:"orderItems"`
	Shipping        entities.ShippingInfo  `json:"shippingInfo"`
	Subtotal        float64                `json:"subtotal"`
	Tax             float64                `json:"tax"`
	ShippingCharges float64                `json:"shippingCharges"`
	Discount        float64                `json:"discount"`
	Total           float64                `json:"total"`
	CreatedAt       string                 `json:"createdAt"`
}

// MyOrdersQuery fetches one user's orders. Cached per user.
type MyOrdersQuery struct {
	UserID string
}

// Validate validates the MyOrdersQuery
func (q MyOrdersQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// AllOrdersQuery fetches every order for the admin panel. Cached.
type AllOrdersQuery struct{}

// Validate validates the AllOrdersQuery
func (q AllOrdersQuery) Validate() error { return nil }

// OrderByIDQuery fetches a single order. Cached per id.
type OrderByIDQuery struct {
	OrderID string
}

// Validate validates the OrderByIDQuery
func (q OrderByIDQuery) Validate() error {
	if q.OrderID == "" {
		return errors.New("order ID is required")
	}
	return nil
}
