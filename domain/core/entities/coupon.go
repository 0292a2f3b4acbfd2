package entities

import (
	"time"

	pkgerrors "storefront-backend/pkg/errors"

	"github.com/google/uuid"
)

// Coupon is a flat-amount discount code.
type Coupon struct {
	ID        string
	Code      string
	Amount    float64
	CreatedAt time.Time
}

// NewCoupon creates a coupon for the given code and discount amount.
func NewCoupon(code string, amount float64) (*Coupon, error) {
	if code == "" {
		return nil, pkgerrors.NewValidationError("coupon code cannot be empty")
	}
	if amount <= 0 {
		return nil, pkgerrors.NewValidationError("coupon amount must be positive")
	}
	return &Coupon{
		ID:        uuid.New().String(),
		Code:      code,
		Amount:    amount,
		CreatedAt: time.Now(),
	}, nil
}
