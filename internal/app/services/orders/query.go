package orders

import (
	"context"

	"github.com/R3E-Network/commerce_layer/internal/app/domain/order"
)

// List returns a snapshot of every order in insertion order.
func (s *Service) List(ctx context.Context) ([]order.Order, error) {
	return s.store.ListOrders(ctx)
}

// ListByUser returns the orders owned by userID. The user is not looked up.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	return s.filter(ctx, func(o order.Order) bool { return o.UserID == userID })
}

// ListByStatus returns the orders whose status equals status exactly. An
// unrecognised status yields an empty result rather than an error.
func (s *Service) ListByStatus(ctx context.Context, status string) ([]order.Order, error) {
	return s.filter(ctx, func(o order.Order) bool { return string(o.Status) == status })
}

func (s *Service) filter(ctx context.Context, keep func(order.Order) bool) ([]order.Order, error) {
	all, err := s.store.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]order.Order, 0, len(all))
	for _, o := range all {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out, nil
}
