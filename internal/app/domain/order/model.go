package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an order. Any status may follow any other.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every recognised status in lifecycle order.
var Statuses = []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

// Valid reports whether s is one of the recognised statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// LineItem is one product in an order with the unit price snapshotted from
// the catalog when the order was written.
type LineItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Subtotal returns Price * Quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Order is a customer order. Total always equals the sum of its line
// subtotals.
type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Products  []LineItem      `json:"products"`
	Total     decimal.Decimal `json:"total"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ItemRequest asks for quantity units of a product. Prices are never taken
// from the caller.
type ItemRequest struct {
	ProductID string
	Quantity  int
}

// Patch carries the optional fields of a partial order update.
type Patch struct {
	Status *Status
}

// Empty reports whether the patch carries no fields.
func (p Patch) Empty() bool {
	return p.Status == nil
}

// SumLines computes the order total for the given lines.
func SumLines(lines []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range lines {
		total = total.Add(li.Subtotal())
	}
	return total
}

// Clone returns a deep copy so callers cannot mutate stored line items.
func (o Order) Clone() Order {
	if o.Products != nil {
		o.Products = append([]LineItem(nil), o.Products...)
	}
	return o
}
