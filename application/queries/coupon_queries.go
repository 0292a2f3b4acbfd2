package queries

import "errors"

// CouponView is the serialized shape of a discount coupon
type CouponView struct {
	ID     string  `json:"_id"`
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}

// AllCouponsQuery fetches every coupon for the admin panel
type AllCouponsQuery struct{}

// Validate validates the AllCouponsQuery
func (q AllCouponsQuery) Validate() error { return nil }

// ApplyDiscountQuery resolves a coupon code to its discount amount
type ApplyDiscountQuery struct {
	Code string
}

// Validate validates the ApplyDiscountQuery
func (q ApplyDiscountQuery) Validate() error {
	if q.Code == "" {
		return errors.New("coupon code is required")
	}
	return nil
}
