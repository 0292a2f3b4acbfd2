package events

// Product events

// ProductCreated is raised when a new product enters the catalog
type ProductCreated struct {
	BaseEvent
	ProductID string `json:"product_id"`
	Category  string `json:"category"`
}

// NewProductCreated creates a ProductCreated event
func NewProductCreated(productID, category string) ProductCreated {
	return ProductCreated{
		BaseEvent: newBase(productID, "product.created"),
		ProductID: productID,
		Category:  category,
	}
}

// ProductUpdated is raised when a product's details change
type ProductUpdated struct {
	BaseEvent
	ProductID string `json:"product_id"`
}

// NewProductUpdated creates a ProductUpdated event
func NewProductUpdated(productID string) ProductUpdated {
	return ProductUpdated{
		BaseEvent: newBase(productID, "product.updated"),
		ProductID: productID,
	}
}

// ProductDeleted is raised when a product is removed from the catalog
type ProductDeleted struct {
	BaseEvent
	ProductID string `json:"product_id"`
}

// NewProductDeleted creates a ProductDeleted event
func NewProductDeleted(productID string) ProductDeleted {
	return ProductDeleted{
		BaseEvent: newBase(productID, "product.deleted"),
		ProductID: productID,
	}
}

// Order events

// OrderPlaced is raised when a new order is accepted
type OrderPlaced struct {
	BaseEvent
	OrderID    string   `json:"order_id"`
	UserID     string   `json:"user_id"`
	ProductIDs []string `json:"product_ids"`
	Total      float64  `json:"total"`
}

// NewOrderPlaced creates an OrderPlaced event
func NewOrderPlaced(orderID, userID string, productIDs []string, total float64) OrderPlaced {
	return OrderPlaced{
		BaseEvent:  newBase(orderID, "order.placed"),
		OrderID:    orderID,
		UserID:     userID,
		ProductIDs: productIDs,
		Total:      total,
	}
}

// OrderStatusChanged is raised when an order advances through fulfillment
type OrderStatusChanged struct {
	BaseEvent
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
	Status  string `json:"status"`
}

// NewOrderStatusChanged creates an OrderStatusChanged event
func NewOrderStatusChanged(orderID, userID, status string) OrderStatusChanged {
	return OrderStatusChanged{
		BaseEvent: newBase(orderID, "order.status_changed"),
		OrderID:   orderID,
		UserID:    userID,
		Status:    status,
	}
}

// OrderDeleted is raised when an order is removed
type OrderDeleted struct {
	BaseEvent
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
}

// NewOrderDeleted creates an OrderDeleted event
func NewOrderDeleted(orderID, userID string) OrderDeleted {
	return OrderDeleted{
		BaseEvent: newBase(orderID, "order.deleted"),
		OrderID:   orderID,
		UserID:    userID,
	}
}

// Coupon events

// CouponCreated is raised when a discount code is issued
type CouponCreated struct {
	BaseEvent
	CouponID string  `json:"coupon_id"`
	Code     string  `json:"code"`
	Amount   float64 `json:"amount"`
}

// NewCouponCreated creates a CouponCreated event
func NewCouponCreated(couponID, code string, amount float64) CouponCreated {
	return CouponCreated{
		BaseEvent: newBase(couponID, "coupon.created"),
		CouponID:  couponID,
		Code:      code,
		Amount:    amount,
	}
}

// CouponDeleted is raised when a discount code is revoked
type CouponDeleted struct {
	BaseEvent
	CouponID string `json:"coupon_id"`
}

// NewCouponDeleted creates a CouponDeleted event
func NewCouponDeleted(couponID string) CouponDeleted {
	return CouponDeleted{
		BaseEvent: newBase(couponID, "coupon.deleted"),
		CouponID:  couponID,
	}
}
