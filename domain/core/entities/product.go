package entities

import (
	"strings"
	"time"

	pkgerrors "storefront-backend/pkg/errors"

	"github.com/google/uuid"
)

// Product is a catalog item. Category is stored lowercased so that
// distinct-category queries and category filters agree on casing.
type Product struct {
	ID        string
	Name      string
	Category  string
	Price     float64
	Stock     int
	Photo     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProduct creates a product with required-field validation.
func NewProduct(name, category string, price float64, stock int, photo string) (*Product, error) {
	if name == "" {
		return nil, pkgerrors.NewValidationError("product name cannot be empty")
	}
	if category == "" {
		return nil, pkgerrors.NewValidationError("product category cannot be empty")
	}
	if price < 0 {
		return nil, pkgerrors.NewValidationError("product price cannot be negative")
	}
	if stock < 0 {
		return nil, pkgerrors.NewValidationError("product stock cannot be negative")
	}

	now := time.Now()
	return &Product{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  strings.ToLower(category),
		Price:     price,
		Stock:     stock,
		Photo:     photo,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ReduceStock decrements stock for a fulfilled order line.
func (p *Product) ReduceStock(quantity int) error {
	if quantity <= 0 {
		return pkgerrors.NewValidationError("quantity must be positive")
	}
	if p.Stock < quantity {
		return pkgerrors.NewConflictError("insufficient stock for product " + p.ID)
	}
	p.Stock -= quantity
	p.UpdatedAt = time.Now()
	return nil
}

// OutOfStock reports whether the product can no longer be ordered.
func (p *Product) OutOfStock() bool {
	return p.Stock <= 0
}
