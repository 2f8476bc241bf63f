package orders

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/R3E-Network/commerce_layer/internal/app/domain/order"
	"github.com/R3E-Network/commerce_layer/internal/app/metrics"
	"github.com/R3E-Network/commerce_layer/internal/app/storage"
	"github.com/R3E-Network/commerce_layer/pkg/clock"
	"github.com/R3E-Network/commerce_layer/pkg/idgen"
	"github.com/R3E-Network/commerce_layer/pkg/logger"
)

var (
	// ErrInvalidReference is returned when a line item names a product the
	// catalog cannot resolve. Nothing is written when it occurs.
	ErrInvalidReference = errors.New("invalid product reference")
	// ErrInvalidOrder is returned for malformed input that reached the
	// service, such as a non-positive quantity or an unknown status.
	ErrInvalidOrder = errors.New("invalid order")
)

// Service composes orders from catalog products and owns their totals,
// identifiers and timestamps.
type Service struct {
	// mu serialises read-resolve-write sequences across callers.
	mu      sync.Mutex
	store   storage.OrderStore
	catalog Catalog
	ids     idgen.Generator
	now     clock.Func
	log     *logger.Logger
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

// New constructs the order service.
func New(store storage.OrderStore, catalog Catalog, log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.NewDefault("orders")
	}
	s := &Service{store: store, catalog: catalog, ids: idgen.NewSequence(1), now: clock.System, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get fetches an order by identifier.
func (s *Service) Get(ctx context.Context, id string) (order.Order, error) {
	return s.store.GetOrder(ctx, id)
}

// Create prices every requested line from the catalog and stores a new
// pending order. If any product is unknown no order is written.
func (s *Service) Create(ctx context.Context, userID string, items []order.ItemRequest) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, total, err := s.resolveLines(ctx, items)
	if err != nil {
		s.reject("create", "", userID, err)
		return order.Order{}, err
	}

	id, err := idgen.Unused(s.ids, func(id string) (bool, error) {
		_, err := s.store.GetOrder(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return err == nil, err
	})
	if err != nil {
		metrics.RecordOrderOperation("create", metrics.OutcomeError)
		return order.Order{}, fmt.Errorf("allocate order id: %w", err)
	}

	now := s.now()
	created := order.Order{
		ID:        id,
		UserID:    userID,
		Products:  lines,
		Total:     total,
		Status:    order.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.PutOrder(ctx, created); err != nil {
		metrics.RecordOrderOperation("create", metrics.OutcomeError)
		return order.Order{}, err
	}

	metrics.RecordOrderOperation("create", metrics.OutcomeOK)
	s.log.WithField("order_id", created.ID).
		WithField("user_id", userID).
		WithField("lines", len(lines)).
		WithField("total", total.String()).
		Info("order created")
	return created, nil
}

// Replace re-prices an existing order from a new item list and owner. The
// identifier, creation time and status are kept. On any failure the stored
// order is left untouched.
func (s *Service) Replace(ctx context.Context, id, userID string, items []order.ItemRequest) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.GetOrder(ctx, id)
	if err != nil {
		s.reject("replace", id, userID, err)
		return order.Order{}, err
	}

	lines, total, err := s.resolveLines(ctx, items)
	if err != nil {
		s.reject("replace", id, userID, err)
		return order.Order{}, err
	}

	updated := existing
	updated.UserID = userID
	updated.Products = lines
	updated.Total = total
	updated.UpdatedAt = clock.After(existing.UpdatedAt, s.now())
	if err := s.store.PutOrder(ctx, updated); err != nil {
		metrics.RecordOrderOperation("replace", metrics.OutcomeError)
		return order.Order{}, err
	}

	metrics.RecordOrderOperation("replace", metrics.OutcomeOK)
	s.log.WithField("order_id", id).
		WithField("user_id", userID).
		WithField("total", total.String()).
		Info("order replaced")
	return updated, nil
}

// Patch merges the supplied fields into an existing order. Line items and
// total are never recomputed here.
func (s *Service) Patch(ctx context.Context, id string, patch order.Patch) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Status != nil && !patch.Status.Valid() {
		err := fmt.Errorf("%w: unknown status %q", ErrInvalidOrder, *patch.Status)
		s.reject("patch", id, "", err)
		return order.Order{}, err
	}

	existing, err := s.store.GetOrder(ctx, id)
	if err != nil {
		s.reject("patch", id, "", err)
		return order.Order{}, err
	}

	updated := existing
	if patch.Status != nil {
		updated.Status = *patch.Status
	}
	updated.UpdatedAt = clock.After(existing.UpdatedAt, s.now())
	if err := s.store.PutOrder(ctx, updated); err != nil {
		metrics.RecordOrderOperation("patch", metrics.OutcomeError)
		return order.Order{}, err
	}

	metrics.RecordOrderOperation("patch", metrics.OutcomeOK)
	entry := s.log.WithField("order_id", id)
	if patch.Status != nil && *patch.Status != existing.Status {
		entry = entry.WithField("from", existing.Status).WithField("to", updated.Status)
	}
	entry.Info("order patched")
	return updated, nil
}

// Delete removes an order unconditionally and reports whether it existed.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, err := s.store.DeleteOrder(ctx, id)
	if err != nil {
		metrics.RecordOrderOperation("delete", metrics.OutcomeError)
		return false, err
	}
	if !deleted {
		metrics.RecordOrderOperation("delete", metrics.OutcomeNotFound)
		return false, nil
	}
	metrics.RecordOrderOperation("delete", metrics.OutcomeOK)
	s.log.WithField("order_id", id).Info("order deleted")
	return true, nil
}

// resolveLines validates each requested item and snapshots its catalog price.
// Every product is resolved independently, duplicates included.
func (s *Service) resolveLines(ctx context.Context, items []order.ItemRequest) ([]order.LineItem, decimal.Decimal, error) {
	lines := make([]order.LineItem, 0, len(items))
	total := decimal.Zero
	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, decimal.Zero, fmt.Errorf("%w: item %d has quantity %d, want at least 1", ErrInvalidOrder, i, item.Quantity)
		}
		price, err := s.catalog.ResolvePrice(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, decimal.Zero, fmt.Errorf("%w: product %q not found", ErrInvalidReference, item.ProductID)
			}
			return nil, decimal.Zero, fmt.Errorf("resolve product %q: %w", item.ProductID, err)
		}
		line := order.LineItem{ProductID: item.ProductID, Quantity: item.Quantity, Price: price}
		lines = append(lines, line)
		total = total.Add(line.Subtotal())
	}
	return lines, total, nil
}

func (s *Service) reject(op, orderID, userID string, err error) {
	outcome := metrics.OutcomeError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		outcome = metrics.OutcomeNotFound
	case errors.Is(err, ErrInvalidReference):
		outcome = metrics.OutcomeInvalidReference
	case errors.Is(err, ErrInvalidOrder):
		outcome = metrics.OutcomeInvalid
	}
	metrics.RecordOrderOperation(op, outcome)

	entry := s.log.WithError(err).WithField("operation", op)
	if orderID != "" {
		entry = entry.WithField("order_id", orderID)
	}
	if userID != "" {
		entry = entry.WithField("user_id", userID)
	}
	entry.Warn("order rejected")
}
