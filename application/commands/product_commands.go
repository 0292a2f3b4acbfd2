package commands

import "errors"

// CreateProductCommand adds a product to the catalog
type CreateProductCommand struct {
	Name     string
	Category string
	Price    float64
	Stock    int
	Photo    string
}

// Validate validates the CreateProductCommand
func (c CreateProductCommand) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Category == "" {
		return errors.New("category is required")
	}
	if c.Price < 0 {
		return errors.New("price cannot be negative")
	}
	if c.Stock < 0 {
		return errors.New("stock cannot be negative")
	}
	return nil
}

// UpdateProductCommand changes an existing product. Nil fields are left
// untouched.
type UpdateProductCommand struct {
	ProductID string
	Name      *string
	Category  *string
	Price     *float64
	Stock     *int
	Photo     *string
}

// Validate validates the UpdateProductCommand
func (c UpdateProductCommand) Validate() error {
	if c.ProductID == "" {
		return errors.New("product ID is required")
	}
	if c.Price != nil && *c.Price < 0 {
		return errors.New("price cannot be negative")
	}
	if c.Stock != nil && *c.Stock < 0 {
		return errors.New("stock cannot be negative")
	}
	return nil
}

// DeleteProductCommand removes a product from the catalog
type DeleteProductCommand struct {
	ProductID string
}

// Validate validates the DeleteProductCommand
func (c DeleteProductCommand) Validate() error {
	if c.ProductID == "" {
		return errors.New("product ID is required")
	}
	return nil
}
