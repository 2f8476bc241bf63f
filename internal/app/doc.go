// Package app composes the commerce layer into a running application.
//
// # Package Structure
//
//	internal/app/
//	├── application.go      # Application struct, wiring, and lifecycle
//	├── domain/             # Domain models (user, product, order)
//	├── storage/            # Store interfaces and the in-memory tables
//	├── services/           # users, products, and the order engine
//	├── seed/               # Sample data loaded at start-up
//	├── httpapi/            # HTTP handlers, routing, and the audit log
//	├── runtime/            # Config, HTTP server, and process lifecycle
//	├── system/             # Lifecycle manager
//	└── metrics/            # Prometheus collectors
//
// # Dependency Direction
//
//	cmd/appserver/
//	      │
//	      ▼
//	internal/app/runtime ──► internal/app/httpapi
//	      │                         │
//	      ▼                         ▼
//	internal/app (composition) ──► services ──► storage ──► domain
//
// Orders are priced through the products service, which the order engine
// sees only as a Catalog. Services never talk to HTTP types.
package app
