// Package seed loads the sample catalog, users and orders the service ships
// with so a fresh process has something to query.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/R3E-Network/commerce_layer/internal/app/domain/order"
	"github.com/R3E-Network/commerce_layer/internal/app/domain/product"
	"github.com/R3E-Network/commerce_layer/internal/app/domain/user"
	"github.com/R3E-Network/commerce_layer/internal/app/storage"
	"github.com/R3E-Network/commerce_layer/pkg/idgen"
)

// Stores are the tables seeded.
type Stores struct {
	Users    storage.UserStore
	Products storage.ProductStore
	Orders   storage.OrderStore
}

// Observers receive the fixed identifiers written by Load so generators can
// move past them. Any field may be nil.
type Observers struct {
	Users    idgen.Observer
	Products idgen.Observer
	Orders   idgen.Observer
}

func day(d int) time.Time {
	return time.Date(2023, time.January, d, 0, 0, 0, 0, time.UTC)
}

// Users returns the sample users.
func Users() []user.User {
	return []user.User{
		{ID: "1", Name: "John Doe", Email: "john@example.com", Age: 30, CreatedAt: day(1), UpdatedAt: day(1)},
		{ID: "2", Name: "Jane Smith", Email: "jane@example.com", Age: 25, CreatedAt: day(2), UpdatedAt: day(2)},
	}
}

// Products returns the sample catalog.
func Products() []product.Product {
	return []product.Product{
		{
			ID:          "1",
			Name:        "Laptop",
			Price:       decimal.RequireFromString("999.99"),
			Description: "High-performance laptop",
			Category:    "Electronics",
			InStock:     true,
			CreatedAt:   day(1),
			UpdatedAt:   day(1),
		},
		{
			ID:          "2",
			Name:        "Smartphone",
			Price:       decimal.RequireFromString("599.99"),
			Description: "Latest smartphone model",
			Category:    "Electronics",
			InStock:     true,
			CreatedAt:   day(2),
			UpdatedAt:   day(2),
		},
		{
			ID:          "3",
			Name:        "Headphones",
			Price:       decimal.RequireFromString("199.99"),
			Description: "Wireless noise-canceling headphones",
			Category:    "Audio",
			InStock:     false,
			CreatedAt:   day(3),
			UpdatedAt:   day(3),
		},
	}
}

// Orders returns the sample orders. Totals are derived from their lines.
func Orders() []order.Order {
	first := []order.LineItem{
		{ProductID: "1", Quantity: 1, Price: decimal.RequireFromString("999.99")},
	}
	second := []order.LineItem{
		{ProductID: "2", Quantity: 1, Price: decimal.RequireFromString("599.99")},
		{ProductID: "3", Quantity: 2, Price: decimal.RequireFromString("199.99")},
	}
	return []order.Order{
		{
			ID:        "1",
			UserID:    "1",
			Products:  first,
			Total:     order.SumLines(first),
			Status:    order.StatusDelivered,
			CreatedAt: day(1),
			UpdatedAt: day(1),
		},
		{
			ID:        "2",
			UserID:    "2",
			Products:  second,
			Total:     order.SumLines(second),
			Status:    order.StatusProcessing,
			CreatedAt: day(2),
			UpdatedAt: day(2),
		},
	}
}

// Load writes the sample rows and reports their ids to the observers.
func Load(ctx context.Context, stores Stores, obs Observers) error {
	for _, u := range Users() {
		if err := stores.Users.PutUser(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
		observe(obs.Users, u.ID)
	}
	for _, p := range Products() {
		if err := stores.Products.PutProduct(ctx, p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
		observe(obs.Products, p.ID)
	}
	for _, o := range Orders() {
		if err := stores.Orders.PutOrder(ctx, o); err != nil {
			return fmt.Errorf("seed order %s: %w", o.ID, err)
		}
		observe(obs.Orders, o.ID)
	}
	return nil
}

func observe(o idgen.Observer, id string) {
	if o != nil {
		o.Observe(id)
	}
}
