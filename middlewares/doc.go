// Package middlewares provides HTTP middleware for restbase applications.
//
// # Request ID
//
// RequestID middleware assigns a unique ID to each request for tracing and
// debugging. It checks incoming headers for existing IDs or generates new
// UUIDs. The same ID later keys the request's database session and shows up
// in every log line.
//
//	app := restbase.New(
//	    restbase.WithMiddleware(
//	        middlewares.RequestID(),
//	    ),
//	)
//
// Use RequestIDExtractor() with WithLogger for automatic request_id in all logs:
//
//	app := restbase.New(
//	    restbase.WithLogger("api", logger.WithExtractors(middlewares.RequestIDExtractor())),
//	    restbase.WithMiddleware(
//	        middlewares.RequestID(),
//	    ),
//	)
//
// # Logging
//
// Logging middleware writes one line per request with method, path, client
// address, status, and duration.
//
// # Recover
//
// Recover middleware catches panics and converts them to typed errors.
// The PanicError can be handled by the global ErrorHandler.
//
// # Timeout
//
// Timeout middleware enforces request timeouts and returns typed TimeoutError.
// Note: The handler goroutine continues after timeout; use context.Done() for
// early termination.
//
// # Transaction
//
// Transaction middleware gives each request an isolated database connection
// with an open transaction, available to handlers via GetSession. A clean
// handler return commits; an error or panic rolls back; the connection is
// always released back to the pool.
//
//	manager := db.NewManager(pool)
//	app := restbase.New(
//	    restbase.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Logging(),
//	        middlewares.Recover(),
//	        middlewares.Timeout(5*time.Second),
//	        middlewares.Transaction(manager),
//	    ),
//	)
//
// # Recommended Middleware Order
//
//	restbase.WithMiddleware(
//	    middlewares.RequestID(),    // First: assign ID for all subsequent logging
//	    middlewares.Logging(),      // Second: time the whole request
//	    middlewares.Recover(),      // Third: catch panics from timeout and handlers
//	    middlewares.Timeout(5*time.Second),
//	    middlewares.Transaction(manager), // Last: session lives only for the handler
//	)
package middlewares
