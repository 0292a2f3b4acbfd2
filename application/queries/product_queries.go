package queries

import "errors"

// ProductView is the serialized shape of a catalog product
type ProductView struct {
	ID        string  `json:"_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	Photo     string  `json:"photo"`
	CreatedAt string  `json:"createdAt"`
}

// LatestProductsQuery fetches the newest products for the storefront
// landing page. Cached under the latest-product key.
type LatestProductsQuery struct{}

// Validate validates the LatestProductsQuery
func (q LatestProductsQuery) Validate() error { return nil }

// CategoriesQuery fetches the distinct product categories. Cached.
type CategoriesQuery struct{}

// Validate validates the CategoriesQuery
func (q CategoriesQuery) Validate() error { return nil }

// AdminProductsQuery fetches the full catalog for the admin panel. Cached.
type AdminProductsQuery struct{}

// Validate validates the AdminProductsQuery
func (q AdminProductsQuery) Validate() error { return nil }

// ProductByIDQuery fetches a single product. Cached per id.
type ProductByIDQuery struct {
	ProductID string
}

// Validate validates the ProductByIDQuery
func (q ProductByIDQuery) Validate() error {
	if q.ProductID == "" {
		return errors.New("product ID is required")
	}
	return nil
}

// SearchProductsQuery filters and paginates the catalog. Not cached:
// the filter space is unbounded.
type SearchProductsQuery struct {
	Search   string
	Category string
	MaxPrice float64
	Sort     string
	Page     int
}

// Validate validates the SearchProductsQuery
func (q SearchProductsQuery) Validate() error {
	if q.Page < 0 {
		return errors.New("page cannot be negative")
	}
	if q.MaxPrice < 0 {
		return errors.New("price cannot be negative")
	}
	if q.Sort != "" && q.Sort != "asc" && q.Sort != "desc" {
		return errors.New("sort must be asc or desc")
	}
	return nil
}

// SearchProductsResult carries one page of matches and the page count
type SearchProductsResult struct {
	Products  []ProductView `json:"products"`
	TotalPage int           `json:"totalPage"`
}
