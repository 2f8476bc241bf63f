package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	app "github.com/R3E-Network/commerce_layer/internal/app"
	"github.com/R3E-Network/commerce_layer/pkg/logger"
)

func newTestHandler(t *testing.T) (http.Handler, *AuditLog) {
	t.Helper()
	application, err := app.New(app.Stores{}, logger.Discard(), app.Options{SeedSampleData: true})
	if err != nil {
		t.Fatalf("new application: %v", err)
	}
	if err := application.Start(context.Background()); err != nil {
		t.Fatalf("start application: %v", err)
	}
	t.Cleanup(func() { _ = application.Stop(context.Background()) })

	audit, err := NewAuditLog(10, "")
	if err != nil {
		t.Fatalf("audit log: %v", err)
	}
	return NewHandler(application, Options{Log: logger.Discard(), Audit: audit}), audit
}

func do(t *testing.T, h http.Handler, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		payload = marshal(b)
	}
	req := httptest.NewRequest(method, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func marshal(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}

func decodeMap(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal %q: %v", resp.Body.String(), err)
	}
	return out
}

func decodeList(t *testing.T, resp *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal %q: %v", resp.Body.String(), err)
	}
	return out
}

func TestRootAndHealth(t *testing.T) {
	h, _ := newTestHandler(t)

	resp := do(t, h, http.MethodGet, "/", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if decodeMap(t, resp)["version"] != Version {
		t.Fatalf("unexpected root body %s", resp.Body.String())
	}

	resp = do(t, h, http.MethodGet, "/health", nil)
	body := decodeMap(t, resp)
	if body["status"] != "OK" {
		t.Fatalf("expected OK status, got %v", body["status"])
	}
	if _, ok := body["uptime"].(float64); !ok {
		t.Fatalf("expected numeric uptime, got %v", body["uptime"])
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestCreateOrderPricesFromCatalog(t *testing.T) {
	h, _ := newTestHandler(t)

	resp := do(t, h, http.MethodPost, "/orders", map[string]any{
		"userId":   "1",
		"products": []map[string]any{{"productId": "1", "quantity": 2}},
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	order := decodeMap(t, resp)
	if order["total"] != 1999.98 {
		t.Fatalf("expected total 1999.98, got %v", order["total"])
	}
	if order["status"] != "pending" {
		t.Fatalf("expected pending, got %v", order["status"])
	}
	lines := order["products"].([]any)
	if line := lines[0].(map[string]any); line["price"] != 999.99 || line["quantity"] != float64(2) {
		t.Fatalf("unexpected line %v", line)
	}
	if order["createdAt"] != order["updatedAt"] {
		t.Fatalf("expected created == updated on creation")
	}
}

func TestCreateOrderUnknownProductWritesNothing(t *testing.T) {
	h, _ := newTestHandler(t)

	resp := do(t, h, http.MethodPost, "/orders", map[string]any{
		"userId":   "1",
		"products": []map[string]any{{"productId": "1", "quantity": 1}, {"productId": "999", "quantity": 1}},
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if len(decodeList(t, do(t, h, http.MethodGet, "/orders", nil))) != 2 {
		t.Fatalf("expected only the seeded orders to remain")
	}
}

func TestCreateOrderValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	cases := map[string]any{
		"zero quantity":   map[string]any{"userId": "1", "products": []map[string]any{{"productId": "1", "quantity": 0}}},
		"missing user":    map[string]any{"products": []map[string]any{{"productId": "1", "quantity": 1}}},
		"missing items":   map[string]any{"userId": "1"},
		"unknown field":   map[string]any{"userId": "1", "products": []any{}, "total": 1},
		"malformed json":  "{",
		"fractional qty":  `{"userId":"1","products":[{"productId":"1","quantity":1.5}]}`,
		"client supplies": map[string]any{"userId": "1", "products": []map[string]any{{"productId": "1", "quantity": 1, "price": 1}}},
	}
	for name, body := range cases {
		resp := do(t, h, http.MethodPost, "/orders", body)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, resp.Code)
		}
	}
}

func TestOrderQueries(t *testing.T) {
	h, _ := newTestHandler(t)

	if got := len(decodeList(t, do(t, h, http.MethodGet, "/orders/user/2", nil))); got != 1 {
		t.Fatalf("expected 1 order for user 2, got %d", got)
	}
	if got := len(decodeList(t, do(t, h, http.MethodGet, "/orders/status/delivered", nil))); got != 1 {
		t.Fatalf("expected 1 delivered order, got %d", got)
	}
	resp := do(t, h, http.MethodGet, "/orders/status/bogus", nil)
	if resp.Code != http.StatusOK || len(decodeList(t, resp)) != 0 {
		t.Fatalf("expected empty 200 for unknown status, got %d %s", resp.Code, resp.Body.String())
	}
	if resp := do(t, h, http.MethodGet, "/orders/nope", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestReplaceOrder(t *testing.T) {
	h, _ := newTestHandler(t)

	resp := do(t, h, http.MethodPut, "/orders/1", map[string]any{
		"userId":   "2",
		"products": []map[string]any{{"productId": "3", "quantity": 2}},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	order := decodeMap(t, resp)
	if order["total"] != 399.98 || order["userId"] != "2" || order["status"] != "delivered" {
		t.Fatalf("unexpected replaced order %v", order)
	}

	resp = do(t, h, http.MethodPut, "/orders/missing", map[string]any{
		"userId":   "1",
		"products": []map[string]any{{"productId": "1", "quantity": 1}},
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	resp = do(t, h, http.MethodPut, "/orders/1", map[string]any{
		"userId":   "1",
		"products": []map[string]any{{"productId": "999", "quantity": 1}},
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if got := decodeMap(t, do(t, h, http.MethodGet, "/orders/1", nil))["total"]; got != 399.98 {
		t.Fatalf("expected order untouched after failed replace, total %v", got)
	}
}

func TestPatchOrderStatus(t *testing.T) {
	h, _ := newTestHandler(t)

	before := decodeMap(t, do(t, h, http.MethodGet, "/orders/2", nil))
	resp := do(t, h, http.MethodPatch, "/orders/2", map[string]any{"status": "shipped"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	after := decodeMap(t, resp)
	if after["status"] != "shipped" || after["total"] != before["total"] {
		t.Fatalf("unexpected patched order %v", after)
	}
	if after["updatedAt"] == before["updatedAt"] {
		t.Fatalf("expected updatedAt to advance")
	}

	if resp := do(t, h, http.MethodPatch, "/orders/2", map[string]any{"status": "lost"}); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", resp.Code)
	}
	if resp := do(t, h, http.MethodPatch, "/orders/404", map[string]any{"status": "shipped"}); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestDeleteOrder(t *testing.T) {
	h, _ := newTestHandler(t)

	resp := do(t, h, http.MethodDelete, "/orders/1", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if decodeMap(t, resp)["message"] != "Order deleted successfully" {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
	if resp := do(t, h, http.MethodDelete, "/orders/1", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on repeated delete, got %d", resp.Code)
	}
}

func TestProductPriceChangeDoesNotRepriceOrders(t *testing.T) {
	h, _ := newTestHandler(t)

	resp := do(t, h, http.MethodPatch, "/products/2", map[string]any{"price": 10})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	order := decodeMap(t, do(t, h, http.MethodGet, "/orders/2", nil))
	if order["total"] != 999.97 {
		t.Fatalf("expected seeded total to stay 999.97, got %v", order["total"])
	}
}

func TestProductRoutes(t *testing.T) {
	h, _ := newTestHandler(t)

	if got := len(decodeList(t, do(t, h, http.MethodGet, "/products/in-stock", nil))); got != 2 {
		t.Fatalf("expected 2 in-stock products, got %d", got)
	}
	if got := len(decodeList(t, do(t, h, http.MethodGet, "/products/category/electronics", nil))); got != 2 {
		t.Fatalf("expected 2 electronics, got %d", got)
	}

	resp := do(t, h, http.MethodPost, "/products", map[string]any{
		"name": "Cable", "price": 9.5, "description": "USB-C", "category": "Accessories", "inStock": true,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if id := decodeMap(t, resp)["id"]; id != "4" {
		t.Fatalf("expected id 4 after seeded products, got %v", id)
	}

	resp = do(t, h, http.MethodPost, "/products", map[string]any{
		"name": "Bad", "price": -1, "category": "X", "inStock": true,
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative price, got %d", resp.Code)
	}

	resp = do(t, h, http.MethodDelete, "/products/3", nil)
	if decodeMap(t, resp)["message"] != "Product deleted successfully" {
		t.Fatalf("unexpected delete body %s", resp.Body.String())
	}
}

func TestUserRoutes(t *testing.T) {
	h, _ := newTestHandler(t)

	resp := do(t, h, http.MethodPost, "/users", map[string]any{"name": "Ada", "email": "ada@example.com", "age": 36})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if resp := do(t, h, http.MethodPost, "/users", map[string]any{"name": "Bad", "email": "nope", "age": 1}); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad email, got %d", resp.Code)
	}

	resp = do(t, h, http.MethodPatch, "/users/1", map[string]any{"age": 31})
	if decodeMap(t, resp)["age"] != float64(31) {
		t.Fatalf("unexpected patched user %s", resp.Body.String())
	}
	if resp := do(t, h, http.MethodGet, "/users/77", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if got := decodeMap(t, do(t, h, http.MethodDelete, "/users/2", nil))["message"]; got != "User deleted successfully" {
		t.Fatalf("unexpected delete message %v", got)
	}
}

func TestAuditRecordsMutations(t *testing.T) {
	h, _ := newTestHandler(t)

	do(t, h, http.MethodGet, "/orders", nil)
	do(t, h, http.MethodPatch, "/orders/1", map[string]any{"status": "cancelled"})
	do(t, h, http.MethodDelete, "/orders/missing", nil)

	entries := decodeList(t, do(t, h, http.MethodGet, "/audit?limit=5", nil))
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	if entries[1]["status"] != float64(http.StatusNotFound) || entries[0]["method"] != http.MethodPatch {
		t.Fatalf("unexpected audit entries %v", entries)
	}
	if resp := do(t, h, http.MethodGet, "/audit?limit=x", nil); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", resp.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	h, _ := newTestHandler(t)
	if resp := do(t, h, http.MethodGet, "/nowhere", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
