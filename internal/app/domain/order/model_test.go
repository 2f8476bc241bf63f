package order

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSumLines(t *testing.T) {
	lines := []LineItem{
		{ProductID: "2", Quantity: 1, Price: decimal.RequireFromString("599.99")},
		{ProductID: "3", Quantity: 2, Price: decimal.RequireFromString("199.99")},
	}
	got := SumLines(lines)
	if !got.Equal(decimal.RequireFromString("999.97")) {
		t.Fatalf("expected 999.97, got %s", got)
	}
	if !SumLines(nil).IsZero() {
		t.Fatalf("expected zero total for no lines")
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses {
		if !s.Valid() {
			t.Fatalf("expected %s to be valid", s)
		}
	}
	if Status("returned").Valid() || Status("").Valid() {
		t.Fatalf("expected unknown statuses to be invalid")
	}
}

func TestCloneDetachesLineItems(t *testing.T) {
	o := Order{Products: []LineItem{{ProductID: "1", Quantity: 1}}}
	c := o.Clone()
	c.Products[0].Quantity = 5
	if o.Products[0].Quantity != 1 {
		t.Fatalf("clone shares line item storage")
	}
}
