package handlers

import (
	"context"

	"storefront-backend/application/ports"
	"storefront-backend/domain/core/entities"
	"storefront-backend/domain/events"
	pkgerrors "storefront-backend/pkg/errors"
)

// recordingInvalidator captures the tag sets fired by a handler.
type recordingInvalidator struct {
	flags []ports.InvalidationFlags
}

func (r *recordingInvalidator) Invalidate(_ context.Context, flags ports.InvalidationFlags) {
	r.flags = append(r.flags, flags)
}

// recordingPublisher captures published events. Setting err makes
// Publish fail, which handlers must tolerate.
type recordingPublisher struct {
	events []events.DomainEvent
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, event events.DomainEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	return nil
}

func (r *recordingPublisher) PublishBatch(_ context.Context, batch []events.DomainEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, batch...)
	return nil
}

// The write-side fakes embed the port interface and implement only the
// methods the command handlers reach. An unexpected call panics, which
// is what we want from a test double.

type writeProductRepo struct {
	ports.ProductRepository
	products map[string]*entities.Product
	saveErr  error
}

func newWriteProductRepo(products ...*entities.Product) *writeProductRepo {
	r := &writeProductRepo{products: make(map[string]*entities.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *writeProductRepo) Save(_ context.Context, p *entities.Product) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.products[p.ID] = p
	return nil
}

func (r *writeProductRepo) GetByID(_ context.Context, id string) (*entities.Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, pkgerrors.NewNotFoundError("product")
}

func (r *writeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

type writeOrderRepo struct {
	ports.OrderRepository
	orders  map[string]*entities.Order
	saveErr error
}

func newWriteOrderRepo(orders ...*entities.Order) *writeOrderRepo {
	r := &writeOrderRepo{orders: make(map[string]*entities.Order)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *writeOrderRepo) Save(_ context.Context, o *entities.Order) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.orders[o.ID] = o
	return nil
}

func (r *writeOrderRepo) GetByID(_ context.Context, id string) (*entities.Order, error) {
	if o, ok := r.orders[id]; ok {
		return o, nil
	}
	return nil, pkgerrors.NewNotFoundError("order")
}

func (r *writeOrderRepo) Delete(_ context.Context, id string) error {
	delete(r.orders, id)
	return nil
}

type writeUserRepo struct {
	ports.UserRepository
	users map[string]*entities.User
}

func newWriteUserRepo(users ...*entities.User) *writeUserRepo {
	r := &writeUserRepo{users: make(map[string]*entities.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *writeUserRepo) Save(_ context.Context, u *entities.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *writeUserRepo) GetByID(_ context.Context, id string) (*entities.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, pkgerrors.NewNotFoundError("user")
}

func (r *writeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type writeCouponRepo struct {
	ports.CouponRepository
	coupons map[string]*entities.Coupon
	saveErr error
}

func newWriteCouponRepo(coupons ...*entities.Coupon) *writeCouponRepo {
	r := &writeCouponRepo{coupons: make(map[string]*entities.Coupon)}
	for _, c := range coupons {
		r.coupons[c.ID] = c
	}
	return r
}

func (r *writeCouponRepo) Save(_ context.Context, c *entities.Coupon) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.coupons[c.ID] = c
	return nil
}

func (r *writeCouponRepo) GetByID(_ context.Context, id string) (*entities.Coupon, error) {
	if c, ok := r.coupons[id]; ok {
		return c, nil
	}
	return nil, pkgerrors.NewNotFoundError("coupon")
}

func (r *writeCouponRepo) Delete(_ context.Context, id string) error {
	delete(r.coupons, id)
	return nil
}
