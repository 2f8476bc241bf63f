package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/R3E-Network/commerce_layer/internal/app/domain/product"
	"github.com/R3E-Network/commerce_layer/internal/app/storage"
	"github.com/R3E-Network/commerce_layer/pkg/clock"
	"github.com/R3E-Network/commerce_layer/pkg/idgen"
	"github.com/R3E-Network/commerce_layer/pkg/logger"
)

// ErrInvalidProduct marks product input the service refuses to store.
var ErrInvalidProduct = errors.New("invalid product")

// Service manages the product catalog.
type Service struct {
	store storage.ProductStore
	ids   idgen.Generator
	now   clock.Func
	log   *logger.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(s *Service) {
		if gen != nil {
			s.ids = gen
		}
	}
}

// WithClock overrides the time source.
func WithClock(fn clock.Func) Option {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// New constructs a product service.
func New(store storage.ProductStore, log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.NewDefault("products")
	}
	s := &Service{store: store, ids: idgen.NewSequence(1), now: clock.System, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every product in insertion order.
func (s *Service) List(ctx context.Context) ([]product.Product, error) {
	return s.store.ListProducts(ctx)
}

// ListByCategory returns products whose category matches, ignoring case.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]product.Product, error) {
	return s.filter(ctx, func(p product.Product) bool {
		return strings.EqualFold(p.Category, category)
	})
}

// ListInStock returns products flagged as in stock.
func (s *Service) ListInStock(ctx context.Context) ([]product.Product, error) {
	return s.filter(ctx, func(p product.Product) bool { return p.InStock })
}

// Get fetches a product by identifier.
func (s *Service) Get(ctx context.Context, id string) (product.Product, error) {
	return s.store.GetProduct(ctx, id)
}

// ResolvePrice returns the current catalog price of a product. It reads the
// store on every call.
func (s *Service) ResolvePrice(ctx context.Context, productID string) (decimal.Decimal, error) {
	p, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return p.Price, nil
}

// Create stores a new product. Any identifier or timestamps on p are ignored.
func (s *Service) Create(ctx context.Context, p product.Product) (product.Product, error) {
	if err := validate(p); err != nil {
		return product.Product{}, err
	}

	id, err := idgen.Unused(s.ids, func(id string) (bool, error) {
		return exists(ctx, s.store, id)
	})
	if err != nil {
		return product.Product{}, fmt.Errorf("allocate product id: %w", err)
	}

	now := s.now()
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.store.PutProduct(ctx, p); err != nil {
		return product.Product{}, err
	}
	s.log.WithField("product_id", p.ID).
		WithField("price", p.Price.String()).
		Info("product created")
	return p, nil
}

// Replace overwrites every mutable field of an existing product.
func (s *Service) Replace(ctx context.Context, id string, p product.Product) (product.Product, error) {
	existing, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return product.Product{}, err
	}
	if err := validate(p); err != nil {
		return product.Product{}, err
	}

	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = clock.After(existing.UpdatedAt, s.now())
	if err := s.store.PutProduct(ctx, p); err != nil {
		return product.Product{}, err
	}
	s.log.WithField("product_id", id).Info("product replaced")
	return p, nil
}

// Patch merges the fields present in patch into an existing product.
func (s *Service) Patch(ctx context.Context, id string, patch product.Patch) (product.Product, error) {
	existing, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return product.Product{}, err
	}

	updated := existing
	patch.Apply(&updated)
	if err := validate(updated); err != nil {
		return product.Product{}, err
	}
	updated.UpdatedAt = clock.After(existing.UpdatedAt, s.now())
	if err := s.store.PutProduct(ctx, updated); err != nil {
		return product.Product{}, err
	}
	s.log.WithField("product_id", id).Info("product patched")
	return updated, nil
}

// Delete removes a product and reports whether it existed. Orders that
// reference it keep their snapshotted prices.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.store.DeleteProduct(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.WithField("product_id", id).Info("product deleted")
	}
	return deleted, nil
}

func (s *Service) filter(ctx context.Context, keep func(product.Product) bool) ([]product.Product, error) {
	all, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]product.Product, 0, len(all))
	for _, p := range all {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func validate(p product.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	return nil
}

func exists(ctx context.Context, store storage.ProductStore, id string) (bool, error) {
	_, err := store.GetProduct(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, storage.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
