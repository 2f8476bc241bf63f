package memory

import (
	"context"
	"fmt"

	"github.com/R3E-Network/commerce_layer/internal/app/domain/order"
	"github.com/R3E-Network/commerce_layer/internal/app/domain/product"
	"github.com/R3E-Network/commerce_layer/internal/app/domain/user"
	"github.com/R3E-Network/commerce_layer/internal/app/storage"
)

// Store is an in-memory implementation of the storage interfaces, one Table
// per entity type. Nothing survives a restart.
type Store struct {
	users    *Table[user.User]
	products *Table[product.Product]
	orders   *Table[order.Order]
}

var _ storage.UserStore = (*Store)(nil)
var _ storage.ProductStore = (*Store)(nil)
var _ storage.OrderStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		users:    NewTable[user.User](nil),
		products: NewTable[product.Product](nil),
		orders:   NewTable(order.Order.Clone),
	}
}

// UserStore implementation ----------------------------------------------------

func (s *Store) PutUser(_ context.Context, u user.User) error {
	s.users.Put(u.ID, u)
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (user.User, error) {
	u, ok := s.users.Get(id)
	if !ok {
		return user.User{}, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
	}
	return u, nil
}

func (s *Store) DeleteUser(_ context.Context, id string) (bool, error) {
	return s.users.Delete(id), nil
}

func (s *Store) ListUsers(_ context.Context) ([]user.User, error) {
	return s.users.List(), nil
}

// ProductStore implementation -------------------------------------------------

func (s *Store) PutProduct(_ context.Context, p product.Product) error {
	s.products.Put(p.ID, p)
	return nil
}

func (s *Store) GetProduct(_ context.Context, id string) (product.Product, error) {
	p, ok := s.products.Get(id)
	if !ok {
		return product.Product{}, fmt.Errorf("product %s: %w", id, storage.ErrNotFound)
	}
	return p, nil
}

func (s *Store) DeleteProduct(_ context.Context, id string) (bool, error) {
	return s.products.Delete(id), nil
}

func (s *Store) ListProducts(_ context.Context) ([]product.Product, error) {
	return s.products.List(), nil
}

// OrderStore implementation ---------------------------------------------------

func (s *Store) PutOrder(_ context.Context, o order.Order) error {
	s.orders.Put(o.ID, o)
	return nil
}

func (s *Store) GetOrder(_ context.Context, id string) (order.Order, error) {
	o, ok := s.orders.Get(id)
	if !ok {
		return order.Order{}, fmt.Errorf("order %s: %w", id, storage.ErrNotFound)
	}
	return o, nil
}

func (s *Store) DeleteOrder(_ context.Context, id string) (bool, error) {
	return s.orders.Delete(id), nil
}

func (s *Store) ListOrders(_ context.Context) ([]order.Order, error) {
	return s.orders.List(), nil
}
