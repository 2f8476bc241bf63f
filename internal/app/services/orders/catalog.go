package orders

import (
	"context"

	"github.com/shopspring/decimal"
)

// Catalog is the read-only view of the product catalog the order engine
// depends on. ResolvePrice must reflect the catalog at call time and return
// an error matching storage.ErrNotFound for unknown products.
type Catalog interface {
	ResolvePrice(ctx context.Context, productID string) (decimal.Decimal, error)
}

// CatalogFunc adapts a plain function to the Catalog interface.
type CatalogFunc func(ctx context.Context, productID string) (decimal.Decimal, error)

// ResolvePrice implements Catalog.
func (f CatalogFunc) ResolvePrice(ctx context.Context, productID string) (decimal.Decimal, error) {
	return f(ctx, productID)
}
