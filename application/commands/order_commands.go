package commands

import (
	"errors"

	"storefront-backend/domain/core/entities"
)

// PlaceOrderCommand accepts a new order from a customer
type PlaceOrderCommand struct {
	UserID          string
	Items           []entities.OrderItem
	Shipping        entities.ShippingInfo
	Subtotal        float64
	Tax             float64
	ShippingCharges float64
	Discount        float64
	Total           float64
}

// Validate validates the PlaceOrderCommand
func (c PlaceOrderCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("user ID is required")
	}
	if len(c.Items) == 0 {
		return errors.New("order items are required")
	}
	for _, item := range c.Items {
		if item.ProductID == "" {
			return errors.New("order item product ID is required")
		}
		if item.Quantity <= 0 {
			return errors.New("order item quantity must be positive")
		}
	}
	if c.Subtotal < 0 || c.Tax < 0 || c.ShippingCharges < 0 || c.Discount < 0 || c.Total < 0 {
		return errors.New("order amounts cannot be negative")
	}
	return nil
}

// ProcessOrderCommand advances an order to its next fulfillment state
type ProcessOrderCommand struct {
	OrderID string
}

// Validate validates the ProcessOrderCommand
func (c ProcessOrderCommand) Validate() error {
	if c.OrderID == "" {
		return errors.New("order ID is required")
	}
	return nil
}

// DeleteOrderCommand removes an order
type DeleteOrderCommand struct {
	OrderID string
}

// Validate validates the DeleteOrderCommand
func (c DeleteOrderCommand) Validate() error {
	if c.OrderID == "" {
		return errors.New("order ID is required")
	}
	return nil
}
