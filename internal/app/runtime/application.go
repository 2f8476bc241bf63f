package runtime

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	app "github.com/R3E-Network/commerce_layer/internal/app"
	"github.com/R3E-Network/commerce_layer/internal/app/httpapi"
	"github.com/R3E-Network/commerce_layer/internal/config"
	"github.com/R3E-Network/commerce_layer/internal/middleware"
	"github.com/R3E-Network/commerce_layer/pkg/logger"
)

// Application wires core dependencies and manages the HTTP server lifecycle.
type Application struct {
	cfg        *config.Config
	log        *logger.Logger
	app        *app.Application
	audit      *httpapi.AuditLog
	httpServer *http.Server

	mu    sync.Mutex
	addr  net.Addr
	ready chan struct{}
}

// NewApplication constructs a new application instance from the environment.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return New(cfg)
}

// New constructs an application from an explicit configuration.
func New(cfg *config.Config) (*Application, error) {
	log := logger.New(logger.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		FilePrefix: cfg.Logging.FilePrefix,
	})

	application, err := app.New(app.Stores{}, log, app.Options{
		IDStrategy:     cfg.Store.IDStrategy,
		SeedSampleData: cfg.Store.SeedSampleData,
	})
	if err != nil {
		return nil, fmt.Errorf("build application: %w", err)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log.Named("ratelimit"))
	if err := application.Attach(limiter); err != nil {
		return nil, fmt.Errorf("register rate limiter: %w", err)
	}

	audit, err := httpapi.NewAuditLog(cfg.Audit.MaxEntries, cfg.Audit.Path)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}

	handler := httpapi.NewHandler(application, httpapi.Options{
		Log:   log.Named("http"),
		Audit: audit,
		Middleware: []func(http.Handler) http.Handler{
			middleware.NewCORSMiddleware(cfg.CORS.AllowedOrigins).Handler,
			limiter.Handler,
		},
	})

	return &Application{
		cfg:   cfg,
		log:   log,
		app:   application,
		audit: audit,
		httpServer: &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           handler,
			ReadTimeout:       cfg.Server.ReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      cfg.Server.WriteTimeout,
		},
		ready: make(chan struct{}),
	}, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (a *Application) Handler() http.Handler {
	return a.httpServer.Handler
}

// Ready is closed once the listener is bound.
func (a *Application) Ready() <-chan struct{} {
	return a.ready
}

// Addr returns the bound listener address, or nil before Run binds it.
func (a *Application) Addr() net.Addr {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.addr
}

// Run starts the managed services and the HTTP server, and blocks until the
// context is cancelled or the server fails. It shuts everything down before
// returning.
func (a *Application) Run(ctx context.Context) error {
	if err := a.app.Start(ctx); err != nil {
		return fmt.Errorf("start services: %w", err)
	}

	ln, err := net.Listen("tcp", a.httpServer.Addr)
	if err != nil {
		_ = a.app.Stop(context.Background())
		return fmt.Errorf("listen on %s: %w", a.httpServer.Addr, err)
	}
	a.mu.Lock()
	a.addr = ln.Addr()
	a.mu.Unlock()
	close(a.ready)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Infof("HTTP server listening on %s", ln.Addr())
		if err := a.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		return a.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Shutdown gracefully shuts down the HTTP server and the managed services.
func (a *Application) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if err := a.app.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("stop services: %w", err))
	}
	if err := a.audit.Close(); err != nil {
		a.log.WithError(err).Warn("error closing audit log")
	}
	a.log.Info("shutdown complete")
	return errors.Join(errs...)
}
