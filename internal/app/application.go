package app

import (
	"context"
	"fmt"
	"time"

	"github.com/R3E-Network/commerce_layer/internal/app/seed"
	"github.com/R3E-Network/commerce_layer/internal/app/services/orders"
	"github.com/R3E-Network/commerce_layer/internal/app/services/products"
	"github.com/R3E-Network/commerce_layer/internal/app/services/users"
	"github.com/R3E-Network/commerce_layer/internal/app/storage"
	"github.com/R3E-Network/commerce_layer/internal/app/storage/memory"
	"github.com/R3E-Network/commerce_layer/internal/app/system"
	"github.com/R3E-Network/commerce_layer/pkg/clock"
	"github.com/R3E-Network/commerce_layer/pkg/idgen"
	"github.com/R3E-Network/commerce_layer/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Users    storage.UserStore
	Products storage.ProductStore
	Orders   storage.OrderStore
}

// Options tunes application construction.
type Options struct {
	// IDStrategy selects the identifier generator: "sequence" (default) or "uuid".
	IDStrategy string
	// SeedSampleData loads the sample users, products and orders.
	SeedSampleData bool
	// Clock overrides the time source for every service.
	Clock clock.Func
}

// Application ties domain services together and manages their lifecycle.
type Application struct {
	manager   *system.Manager
	log       *logger.Logger
	startedAt time.Time

	Users    *users.Service
	Products *products.Service
	Orders   *orders.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, log *logger.Logger, opts Options) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}
	now := opts.Clock
	if now == nil {
		now = clock.System
	}

	mem := memory.New()
	if stores.Users == nil {
		stores.Users = mem
	}
	if stores.Products == nil {
		stores.Products = mem
	}
	if stores.Orders == nil {
		stores.Orders = mem
	}

	userIDs, err := idgen.FromStrategy(opts.IDStrategy)
	if err != nil {
		return nil, err
	}
	productIDs, _ := idgen.FromStrategy(opts.IDStrategy)
	orderIDs, _ := idgen.FromStrategy(opts.IDStrategy)

	if opts.SeedSampleData {
		err := seed.Load(context.Background(),
			seed.Stores{Users: stores.Users, Products: stores.Products, Orders: stores.Orders},
			seed.Observers{Users: observer(userIDs), Products: observer(productIDs), Orders: observer(orderIDs)},
		)
		if err != nil {
			return nil, fmt.Errorf("seed sample data: %w", err)
		}
		log.Info("sample data loaded")
	}

	userService := users.New(stores.Users, log.Named("users"), users.WithIDGenerator(userIDs), users.WithClock(now))
	productService := products.New(stores.Products, log.Named("products"), products.WithIDGenerator(productIDs), products.WithClock(now))
	orderService := orders.New(stores.Orders, productService, log.Named("orders"), orders.WithIDGenerator(orderIDs), orders.WithClock(now))

	manager := system.NewManager()
	for _, name := range []string{"users", "products", "orders"} {
		if err := manager.Register(system.NoopService{ServiceName: name}); err != nil {
			return nil, fmt.Errorf("register %s service: %w", name, err)
		}
	}

	return &Application{
		manager:   manager,
		log:       log,
		startedAt: now(),
		Users:     userService,
		Products:  productService,
		Orders:    orderService,
	}, nil
}

func observer(gen idgen.Generator) idgen.Observer {
	if obs, ok := gen.(idgen.Observer); ok {
		return obs
	}
	return nil
}

// StartedAt reports when the application was built.
func (a *Application) StartedAt() time.Time {
	return a.startedAt
}

// Services lists the lifecycle-managed services in start order.
func (a *Application) Services() []string {
	return a.manager.Services()
}

// Attach registers an additional lifecycle-managed service. Call before Start.
func (a *Application) Attach(service system.Service) error {
	return a.manager.Register(service)
}

// Start begins all registered services.
func (a *Application) Start(ctx context.Context) error {
	if err := a.manager.Start(ctx); err != nil {
		return err
	}
	a.log.WithField("services", a.manager.Services()).Info("application started")
	return nil
}

// Stop stops all services.
func (a *Application) Stop(ctx context.Context) error {
	return a.manager.Stop(ctx)
}
