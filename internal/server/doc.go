// Package server provides the HTTP server for the spares kiosk.
//
// The server uses the Gin web framework. In development mode Gin runs in
// debug mode; in production it runs in release mode. There is no TLS: the
// kiosk serves plain HTTP on a closed shop-floor network.
//
// # Architecture Overview
//
//	┌───────────────────────────────────────────────────────┐
//	│                     HTTP :8000                        │
//	├───────────────────────────────────────────────────────┤
//	│                  Middleware Stack                     │
//	│  ┌─────────────────────────────────────────────────┐  │
//	│  │  RequestLogger (request id, zap event,          │  │
//	│  │                 usage aggregation)              │  │
//	│  │  Recovery (panic recovery with zap logging)     │  │
//	│  └─────────────────────────────────────────────────┘  │
//	├───────────────────────────────────────────────────────┤
//	│                   Router (/api)                       │
//	│  ┌─────────────────────────────────────────────────┐  │
//	│  │  Handlers (registered via callback)             │  │
//	│  └─────────────────────────────────────────────────┘  │
//	└───────────────────────────────────────────────────────┘
//
// # Server Lifecycle
//
// Creation:
//
//	srv := server.NewServer(cfg, aggregator, handler.Routes)
//
// The callback receives a RouterGroup prefixed with /api.
//
// Starting:
//
//	// Blocks until error or shutdown
//	err := srv.Start()
//
// Stopping:
//
//	srv.Stop(ctx)
//
// Performs graceful shutdown, waiting for in-flight requests to complete.
//
// # Middleware
//
// RequestLogger (middleware.go):
//   - Echoes or generates an X-Request-Id header
//   - Logs one event per finished request: method, path, route template,
//     status, duration, client IP
//   - Feeds the usage aggregator with the route template so path
//     parameters do not explode bucket cardinality
//
// Recovery (ginzap.RecoveryWithZap):
//   - Recovers from panics in handlers
//   - Logs panic details with stack trace
//   - Returns 500 Internal Server Error
package server
