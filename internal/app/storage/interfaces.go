package storage

import (
	"context"
	"errors"

	"github.com/R3E-Network/commerce_layer/internal/app/domain/order"
	"github.com/R3E-Network/commerce_layer/internal/app/domain/product"
	"github.com/R3E-Network/commerce_layer/internal/app/domain/user"
)

// ErrNotFound is returned by Get lookups when no record has the identifier.
var ErrNotFound = errors.New("not found")

// UserStore persists user records. Put inserts or overwrites; List returns
// records in first-insertion order.
type UserStore interface {
	PutUser(ctx context.Context, u user.User) error
	GetUser(ctx context.Context, id string) (user.User, error)
	DeleteUser(ctx context.Context, id string) (bool, error)
	ListUsers(ctx context.Context) ([]user.User, error)
}

// ProductStore persists catalog products.
type ProductStore interface {
	PutProduct(ctx context.Context, p product.Product) error
	GetProduct(ctx context.Context, id string) (product.Product, error)
	DeleteProduct(ctx context.Context, id string) (bool, error)
	ListProducts(ctx context.Context) ([]product.Product, error)
}

// OrderStore persists orders. Callers are expected to go through the orders
// service, which owns identifier assignment and total computation.
type OrderStore interface {
	PutOrder(ctx context.Context, o order.Order) error
	GetOrder(ctx context.Context, id string) (order.Order, error)
	DeleteOrder(ctx context.Context, id string) (bool, error)
	ListOrders(ctx context.Context) ([]order.Order, error)
}
