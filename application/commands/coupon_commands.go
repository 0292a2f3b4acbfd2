package commands

import (
	"errors"
	"time"
)

// CreateCouponCommand issues a new discount code
type CreateCouponCommand struct {
	Code   string
	Amount float64
}

// Validate validates the CreateCouponCommand
func (c CreateCouponCommand) Validate() error {
	if c.Code == "" {
		return errors.New("coupon code is required")
	}
	if c.Amount <= 0 {
		return errors.New("coupon amount must be positive")
	}
	return nil
}

// DeleteCouponCommand revokes a discount code
type DeleteCouponCommand struct {
	CouponID string
}

// Validate validates the DeleteCouponCommand
func (c DeleteCouponCommand) Validate() error {
	if c.CouponID == "" {
		return errors.New("coupon ID is required")
	}
	return nil
}

// CreateUserCommand registers a user account
type CreateUserCommand struct {
	UserID string
	Name   string
	Email  string
	Photo  string
	Gender string
	DOB    time.Time
}

// Validate validates the CreateUserCommand
func (c CreateUserCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("user ID is required")
	}
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Email == "" {
		return errors.New("email is required")
	}
	return nil
}

// DeleteUserCommand removes a user account
type DeleteUserCommand struct {
	UserID string
}

// Validate validates the DeleteUserCommand
func (c DeleteUserCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}
