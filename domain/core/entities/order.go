package entities

import (
	"time"

	pkgerrors "storefront-backend/pkg/errors"

	"github.com/google/uuid"
)

// OrderStatus represents the fulfillment state of an order
type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
)

// OrderItem is a single line of an order
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Photo     string  `json:"photo"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// ShippingInfo holds the delivery address for an order
type ShippingInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	PinCode string `json:"pinCode"`
}

// Order is a placed order with its cost breakdown. Total is stored
// rather than derived so historical orders keep the amount actually
// charged.
type Order struct {
	ID              string
	UserID          string
	Status          OrderStatus
	Items           []OrderItem
	Shipping        ShippingInfo
	Subtotal        float64
	Tax             float64
	ShippingCharges float64
	Discount        float64
	Total           float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrder creates an order in the Processing state.
func NewOrder(userID string, items []OrderItem, shipping ShippingInfo, subtotal, tax, shippingCharges, discount, total float64) (*Order, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("order user cannot be empty")
	}
	if len(items) == 0 {
		return nil, pkgerrors.NewValidationError("order must contain at least one item")
	}
	if total < 0 {
		return nil, pkgerrors.NewValidationError("order total cannot be negative")
	}

	now := time.Now()
	return &Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Status:          StatusProcessing,
		Items:           items,
		Shipping:        shipping,
		Subtotal:        subtotal,
		Tax:             tax,
		ShippingCharges: shippingCharges,
		Discount:        discount,
		Total:           total,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Advance moves the order to the next fulfillment state. Delivered
// orders stay delivered.
func (o *Order) Advance() {
	switch o.Status {
	case StatusProcessing:
		o.Status = StatusShipped
	case StatusShipped:
		o.Status = StatusDelivered
	default:
		o.Status = StatusDelivered
	}
	o.UpdatedAt = time.Now()
}

// ProductIDs returns the distinct product ids referenced by this order.
func (o *Order) ProductIDs() []string {
	ids := make([]string, 0, len(o.Items))
	seen := make(map[string]struct{}, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}
