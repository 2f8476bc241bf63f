// Package testutil provides common testing utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/R3E-Network/commerce_layer/internal/app/storage"
)

// MockCatalog is a test implementation of the order engine's catalog port.
// Unknown products resolve to storage.ErrNotFound.
type MockCatalog struct {
	mu      sync.RWMutex
	prices  map[string]decimal.Decimal
	lookups []string
	err     error
}

// NewMockCatalog creates a catalog from productID -> price strings.
func NewMockCatalog(prices map[string]string) *MockCatalog {
	m := &MockCatalog{prices: make(map[string]decimal.Decimal)}
	for id, price := range prices {
		m.prices[id] = decimal.RequireFromString(price)
	}
	return m
}

// SetPrice adds or reprices a product.
func (m *MockCatalog) SetPrice(productID, price string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices[productID] = decimal.RequireFromString(price)
}

// Remove drops a product from the catalog.
func (m *MockCatalog) Remove(productID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.prices, productID)
}

// FailWith makes every subsequent lookup return err. Nil restores normal
// behaviour.
func (m *MockCatalog) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// ResolvePrice implements the catalog port and records the lookup.
func (m *MockCatalog) ResolvePrice(_ context.Context, productID string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups = append(m.lookups, productID)
	if m.err != nil {
		return decimal.Zero, m.err
	}
	price, ok := m.prices[productID]
	if !ok {
		return decimal.Zero, fmt.Errorf("product %s: %w", productID, storage.ErrNotFound)
	}
	return price, nil
}

// Lookups returns the product ids resolved so far, in call order.
func (m *MockCatalog) Lookups() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.lookups))
	copy(out, m.lookups)
	return out
}
