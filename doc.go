// Package restbase is a compact foundation for JSON REST services backed by
// PostgreSQL. It wires together an HTTP server with graceful shutdown, a
// request-scoped database session with automatic transactions, a fluent SQL
// builder with strict parameter binding, role-based access control, and a
// file-backed structured logger.
//
// # Quick Start
//
//	cfg, err := config.Load("config.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pool, err := db.Connect(ctx, db.Config{ConnectionString: cfg.App.Database.URL()})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	manager := db.NewManager(pool)
//
//	app := restbase.New(
//	    restbase.WithLogger("api",
//	        logger.WithDirectory(cfg.App.Log.Directory),
//	        logger.WithExtractors(middlewares.RequestIDExtractor()),
//	    ),
//	    restbase.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Logging(),
//	        middlewares.Recover(),
//	        middlewares.Timeout(30*time.Second),
//	        middlewares.Transaction(manager),
//	    ),
//	    restbase.WithErrorHandler(restbase.JSONErrorHandler(cfg.IsProduction())),
//	    restbase.WithNotFoundHandler(restbase.NotFoundHandler()),
//	    restbase.WithHandlers(handlers.NewAuth(manager)),
//	    restbase.WithHealthChecks(
//	        restbase.WithReadinessCheck("db", db.Healthcheck(pool)),
//	    ),
//	)
//
//	err = app.Run(fmt.Sprintf(":%d", cfg.App.Port),
//	    restbase.ShutdownHook(db.Shutdown(pool)),
//	)
//
// # Request Lifecycle
//
// Each request flows through the middleware chain in order: it receives a
// request ID, a log line, panic protection, a deadline, and finally its own
// database connection with an open transaction. Handlers reach that session
// through middlewares.GetSession and run statements directly or through the
// qb builder. A clean handler return commits; an error or panic rolls back;
// the connection always returns to the pool.
//
// # Packages
//
//   - pkg/config: JSON configuration with per-environment blocks
//   - pkg/db: pgx connection pool, request-scoped sessions, transactions
//   - pkg/qb: fluent SQL builder with strict parameter binding
//   - pkg/logger: slog handlers writing per-day stdout/stderr log files
//   - pkg/health: liveness and readiness probe handlers
//   - middlewares: request ID, logging, recover, timeout, transaction
//
// See examples/authapi for a complete service.
package restbase
