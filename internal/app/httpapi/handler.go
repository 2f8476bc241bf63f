package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	app "github.com/R3E-Network/commerce_layer/internal/app"
	"github.com/R3E-Network/commerce_layer/internal/app/metrics"
	"github.com/R3E-Network/commerce_layer/internal/app/services/orders"
	"github.com/R3E-Network/commerce_layer/internal/app/services/products"
	"github.com/R3E-Network/commerce_layer/internal/app/services/users"
	"github.com/R3E-Network/commerce_layer/internal/app/storage"
	"github.com/R3E-Network/commerce_layer/internal/middleware"
	"github.com/R3E-Network/commerce_layer/pkg/logger"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

var errInvalidLimit = errors.New("limit must be a non-negative integer")

func init() {
	// Prices and totals go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app   *app.Application
	log   *logger.Logger
	audit *AuditLog
}

// Options configures NewHandler.
type Options struct {
	Log *logger.Logger
	// Audit records mutating requests. Nil creates an in-memory log.
	Audit *AuditLog
	// Middleware runs outside routing, after request ids are assigned and
	// before logging. CORS and rate limiting are passed in here.
	Middleware []func(http.Handler) http.Handler
}

// NewHandler returns the REST API for application.
func NewHandler(application *app.Application, opts Options) http.Handler {
	if opts.Log == nil {
		opts.Log = logger.NewDefault("http")
	}
	if opts.Audit == nil {
		opts.Audit, _ = NewAuditLog(0, "")
	}
	h := &handler{app: application, log: opts.Log, audit: opts.Audit}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, fmt.Errorf("cannot %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed on %s", r.Method, r.URL.Path))
	})

	r.HandleFunc("/", h.root).Methods(http.MethodGet)
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/audit", h.audit.handle).Methods(http.MethodGet)

	h.userRoutes(r)
	h.productRoutes(r)
	h.orderRoutes(r)

	stack := []func(http.Handler) http.Handler{
		chimw.Recoverer,
		middleware.RequestID,
		chimw.RealIP,
	}
	stack = append(stack, opts.Middleware...)
	stack = append(stack,
		middleware.LoggingMiddleware(opts.Log),
		middleware.MetricsMiddleware(),
		h.audit.middleware,
	)

	var out http.Handler = r
	for i := len(stack) - 1; i >= 0; i-- {
		out = stack[i](out)
	}
	return out
}

func (h *handler) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message":       "Welcome to the Commerce Layer API",
		"version":       Version,
		"documentation": "/",
	})
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"timestamp": now.Format(time.RFC3339Nano),
		"uptime":    now.Sub(h.app.StartedAt()).Seconds(),
	})
}

// fail maps service errors onto HTTP statuses.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.WithError(err).
			WithField("path", r.URL.Path).
			WithField("request_id", chimw.GetReqID(r.Context())).
			Error("request failed")
	}
	writeError(w, status, err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, orders.ErrInvalidReference),
		errors.Is(err, orders.ErrInvalidOrder),
		errors.Is(err, products.ErrInvalidProduct),
		errors.Is(err, users.ErrInvalidUser):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// bind decodes the body into dst and validates it.
func bind(r *http.Request, dst any) error {
	if err := decodeJSON(r.Body, dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return validateRequest(dst)
}

func deleted(w http.ResponseWriter, kind string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": kind + " deleted successfully"})
}

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
