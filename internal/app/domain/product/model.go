package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Orders copy its price at write time and never
// hold a live reference to it.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	InStock     bool            `json:"inStock"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Patch carries the optional fields of a partial product update.
type Patch struct {
	Name        *string
	Price       *decimal.Decimal
	Description *string
	Category    *string
	InStock     *bool
}

// Apply merges the present fields into p.
func (pt Patch) Apply(p *Product) {
	if pt.Name != nil {
		p.Name = *pt.Name
	}
	if pt.Price != nil {
		p.Price = *pt.Price
	}
	if pt.Description != nil {
		p.Description = *pt.Description
	}
	if pt.Category != nil {
		p.Category = *pt.Category
	}
	if pt.InStock != nil {
		p.InStock = *pt.InStock
	}
}
