package clock

import (
	"testing"
	"time"
)

func TestAfterAlwaysAdvances(t *testing.T) {
	base := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

	if got := After(base, base.Add(time.Second)); !got.Equal(base.Add(time.Second)) {
		t.Fatalf("expected later now to be kept, got %v", got)
	}
	if got := After(base, base); !got.After(base) {
		t.Fatalf("expected equal now to advance, got %v", got)
	}
	if got := After(base, base.Add(-time.Hour)); !got.After(base) {
		t.Fatalf("expected earlier now to advance past prev, got %v", got)
	}
}
