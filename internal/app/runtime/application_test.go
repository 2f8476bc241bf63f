package runtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/R3E-Network/commerce_layer/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Server.ShutdownTimeout = 2 * time.Second
	cfg.Logging.Level = "panic"
	cfg.Audit.Path = filepath.Join(t.TempDir(), "audit.jsonl")
	return cfg
}

func TestRunServesAndShutsDown(t *testing.T) {
	a, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("new application: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	select {
	case <-a.Ready():
	case err := <-done:
		t.Fatalf("run exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not start")
	}

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}, Timeout: 5 * time.Second}
	resp, err := client.Post("http://"+a.Addr().String()+"/orders", "application/json",
		strings.NewReader(`{"userId":"1","products":[{"productId":"2","quantity":1}]}`))
	if err != nil {
		t.Fatalf("post order: %v", err)
	}
	var created map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated || created["total"] != 599.99 {
		t.Fatalf("unexpected response %d %v", resp.StatusCode, created)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}

	audit, err := os.ReadFile(a.cfg.Audit.Path)
	if err != nil {
		t.Fatalf("read audit file: %v", err)
	}
	if !strings.Contains(string(audit), `"path":"/orders"`) {
		t.Fatalf("expected order creation in audit file, got %s", audit)
	}
}

func TestHandlerAppliesCORS(t *testing.T) {
	cfg := testConfig(t)
	cfg.CORS.AllowedOrigins = config.Origins{"https://shop.example.com"}
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("new application: %v", err)
	}
	defer a.Shutdown(context.Background())

	req := httptest.NewRequest(http.MethodOptions, "/orders", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	a.Handler().ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", resp.Code)
	}
	if resp.Header().Get("Access-Control-Allow-Origin") != "https://shop.example.com" {
		t.Fatalf("missing allow-origin header")
	}
}

func TestNewRejectsUnknownIDStrategy(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.IDStrategy = "snowflake"
	if _, err := New(cfg); err == nil {
		t.Fatalf("expected error for unknown id strategy")
	}
}
