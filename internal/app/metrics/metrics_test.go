package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCanonicalPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/", "/"},
		{"/health", "/health"},
		{"/orders", "/orders"},
		{"/orders/1700000000000", "/orders/:id"},
		{"/orders/user/42", "/orders/user/:user"},
		{"/orders/status/shipped", "/orders/status/:status"},
		{"/products/category/Audio", "/products/category/:category"},
		{"/products/in-stock", "/products/in-stock"},
		{"/users/7/", "/users/:id"},
	}
	for _, tt := range tests {
		if got := canonicalPath(tt.in); got != tt.want {
			t.Fatalf("canonicalPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRecordOrderOperation(t *testing.T) {
	before := testutil.ToFloat64(orderOperations.WithLabelValues("create", OutcomeInvalidReference))
	RecordOrderOperation("create", OutcomeInvalidReference)
	after := testutil.ToFloat64(orderOperations.WithLabelValues("create", OutcomeInvalidReference))
	if after-before != 1 {
		t.Fatalf("expected counter to advance by 1, got %v", after-before)
	}
}

func TestInstrumentHandlerCountsStatus(t *testing.T) {
	h := InstrumentHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	counter := httpRequests.WithLabelValues("GET", "/orders/:id", "404")
	before := testutil.ToFloat64(counter)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/abc", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Fatalf("expected one 404 recorded, got %v", got)
	}
}
