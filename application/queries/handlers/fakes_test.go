package handlers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront-backend/application/ports"
	"storefront-backend/domain/core/entities"
	pkgerrors "storefront-backend/pkg/errors"
)

// fakeCache is a map-backed ports.Cache for handler tests.
type fakeCache struct {
	mu    sync.Mutex
	items map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string]string)}
}

func (c *fakeCache) Has(_ context.Context, key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

func (c *fakeCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok
}

func (c *fakeCache) Set(_ context.Context, key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

func (c *fakeCache) DeleteMany(_ context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
}

// fakeMetrics records cache probe outcomes per key.
type fakeMetrics struct {
	hits      []string
	misses    []string
	latencies []string
}

func (m *fakeMetrics) RecordCacheHit(_ context.Context, key string)   { m.hits = append(m.hits, key) }
func (m *fakeMetrics) RecordCacheMiss(_ context.Context, key string)  { m.misses = append(m.misses, key) }
func (m *fakeMetrics) RecordLatency(_ context.Context, op string, _ time.Duration) {
	m.latencies = append(m.latencies, op)
}

// fakeProductRepo is an in-memory ports.ProductRepository. Setting err
// makes every call fail with it.
type fakeProductRepo struct {
	products []*entities.Product
	err      error
}

func (r *fakeProductRepo) Save(_ context.Context, p *entities.Product) error {
	if r.err != nil {
		return r.err
	}
	for i, existing := range r.products {
		if existing.ID == p.ID {
			r.products[i] = p
			return nil
		}
	}
	r.products = append(r.products, p)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entities.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, pkgerrors.NewNotFoundError("product")
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeProductRepo) Latest(_ context.Context, limit int) ([]*entities.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	sorted := append([]*entities.Product(nil), r.products...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (r *fakeProductRepo) All(_ context.Context) ([]*entities.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	return append([]*entities.Product(nil), r.products...), nil
}

func (r *fakeProductRepo) Search(_ context.Context, criteria ports.ProductSearch) ([]*entities.Product, int, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	var matched []*entities.Product
	for _, p := range r.products {
		if criteria.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(criteria.Name)) {
			continue
		}
		if criteria.Category != "" && p.Category != criteria.Category {
			continue
		}
		if criteria.MaxPrice > 0 && p.Price > criteria.MaxPrice {
			continue
		}
		matched = append(matched, p)
	}
	total := len(matched)

	switch criteria.Sort {
	case "asc":
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case "desc":
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	}

	start := (criteria.Page - 1) * criteria.PerPage
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + criteria.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeProductRepo) Categories(_ context.Context) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	seen := make(map[string]struct{})
	var categories []string
	for _, p := range r.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *fakeProductRepo) CountAll(_ context.Context) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	return len(r.products), nil
}

func (r *fakeProductRepo) CountByCategory(_ context.Context, category string) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	count := 0
	for _, p := range r.products {
		if p.Category == category {
			count++
		}
	}
	return count, nil
}

func (r *fakeProductRepo) CountOutOfStock(_ context.Context) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	count := 0
	for _, p := range r.products {
		if p.OutOfStock() {
			count++
		}
	}
	return count, nil
}

func (r *fakeProductRepo) CreatedBetween(_ context.Context, start, end time.Time) ([]*entities.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	var matched []*entities.Product
	for _, p := range r.products {
		if !p.CreatedAt.Before(start) && !p.CreatedAt.After(end) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// fakeOrderRepo is an in-memory ports.OrderRepository.
type fakeOrderRepo struct {
	orders []*entities.Order
	err    error
}

func (r *fakeOrderRepo) Save(_ context.Context, o *entities.Order) error {
	if r.err != nil {
		return r.err
	}
	for i, existing := range r.orders {
		if existing.ID == o.ID {
			r.orders[i] = o
			return nil
		}
	}
	r.orders = append(r.orders, o)
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*entities.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, pkgerrors.NewNotFoundError("order")
}

func (r *fakeOrderRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	for i, o := range r.orders {
		if o.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeOrderRepo) ByUser(_ context.Context, userID string) ([]*entities.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	var matched []*entities.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

func (r *fakeOrderRepo) All(_ context.Context) ([]*entities.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	return append([]*entities.Order(nil), r.orders...), nil
}

func (r *fakeOrderRepo) Latest(_ context.Context, limit int) ([]*entities.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	sorted := append([]*entities.Order(nil), r.orders...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (r *fakeOrderRepo) CountByStatus(_ context.Context, status entities.OrderStatus) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	count := 0
	for _, o := range r.orders {
		if o.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeOrderRepo) CreatedBetween(_ context.Context, start, end time.Time) ([]*entities.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	var matched []*entities.Order
	for _, o := range r.orders {
		if !o.CreatedAt.Before(start) && !o.CreatedAt.After(end) {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

// fakeUserRepo is an in-memory ports.UserRepository.
type fakeUserRepo struct {
	users []*entities.User
	err   error
}

func (r *fakeUserRepo) Save(_ context.Context, u *entities.User) error {
	if r.err != nil {
		return r.err
	}
	for i, existing := range r.users {
		if existing.ID == u.ID {
			r.users[i] = u
			return nil
		}
	}
	r.users = append(r.users, u)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entities.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pkgerrors.NewNotFoundError("user")
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepo) All(_ context.Context) ([]*entities.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	return append([]*entities.User(nil), r.users...), nil
}

func (r *fakeUserRepo) CountAll(_ context.Context) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	return len(r.users), nil
}

func (r *fakeUserRepo) CountByGender(_ context.Context, gender entities.Gender) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	count := 0
	for _, u := range r.users {
		if u.Gender == gender {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context, role entities.UserRole) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	count := 0
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) CreatedBetween(_ context.Context, start, end time.Time) ([]*entities.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	var matched []*entities.User
	for _, u := range r.users {
		if !u.CreatedAt.Before(start) && !u.CreatedAt.After(end) {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

// fakeCouponRepo is an in-memory ports.CouponRepository.
type fakeCouponRepo struct {
	coupons []*entities.Coupon
	err     error
}

func (r *fakeCouponRepo) Save(_ context.Context, c *entities.Coupon) error {
	if r.err != nil {
		return r.err
	}
	r.coupons = append(r.coupons, c)
	return nil
}

func (r *fakeCouponRepo) GetByID(_ context.Context, id string) (*entities.Coupon, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, c := range r.coupons {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, pkgerrors.NewNotFoundError("coupon")
}

func (r *fakeCouponRepo) GetByCode(_ context.Context, code string) (*entities.Coupon, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, c := range r.coupons {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, pkgerrors.NewNotFoundError("coupon")
}

func (r *fakeCouponRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	for i, c := range r.coupons {
		if c.ID == id {
			r.coupons = append(r.coupons[:i], r.coupons[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeCouponRepo) All(_ context.Context) ([]*entities.Coupon, error) {
	if r.err != nil {
		return nil, r.err
	}
	return append([]*entities.Coupon(nil), r.coupons...), nil
}
