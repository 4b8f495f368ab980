// Package internal provides the core types and implementation for the
// restbase framework.
//
// This package is internal and should not be used directly. Import
// "github.com/restbase/restbase" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: Orchestrates the application lifecycle, HTTP routing, and graceful shutdown
//   - Context: Provides request/response access, RBAC, and helper methods
//   - Router: Interface handlers use to declare routes with HTTP methods and grouping
//   - Handler: Interface implemented by types that declare routes on a router
//   - HandlerFunc: Signature for individual route handlers that return errors
//   - Middleware: Wraps handlers to add cross-cutting concerns like auth or logging
//   - ErrorHandler: Custom error handling function for handler errors
//   - Envelope: Uniform JSON response body for every endpoint
//   - Permission: Named permission string for RBAC checks
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any function
// that expects a standard library context. The Deadline, Done, Err, and Value
// methods delegate to the underlying request context:
//
//	func (h *AuthHandler) getUser(c restbase.Context) error {
//	    sess := middlewares.GetSession(c)
//	    rows, err := qb.New("users").Select().Where(qb.M{"id": c.Param("id")}).Query(c, sess)
//	    ...
//	}
//
// # Application Structure
//
// Create an application with New() and configure it using options:
//
//	app := internal.New(
//	    internal.WithHandlers(authHandler),
//	    internal.WithMiddleware(requestIDMw, loggingMw, txMw),
//	    internal.WithHealthChecks(internal.WithReadinessCheck("db", dbCheck)),
//	)
//
// All routes are declared through Handler implementations before the server
// starts. Nothing registers routes at request time.
//
// # Role-Based Access Control (RBAC)
//
// Configure RBAC with WithRoles, which accepts a permission map and a role
// extractor function. The role extractor is called lazily on the first Can()
// call and the result is cached for the lifetime of the request:
//
//	app := internal.New(
//	    internal.WithRoles(
//	        internal.RolePermissions{
//	            "admin":  {"users.read", "users.write"},
//	            "member": {"users.read"},
//	        },
//	        func(c internal.Context) string {
//	            role, _ := c.Get(roleKey{}).(string)
//	            return role
//	        },
//	    ),
//	)
//
// Can() returns false if RBAC is not configured, the user has no role, or
// the role does not grant the requested permission. It never panics.
//
// # Error Handling
//
// Errors returned from handlers trigger the ErrorHandler. JSONErrorHandler
// renders the standard envelope and maps database and query-builder failures
// to appropriate status codes. In production mode internal error detail is
// replaced with generic messages.
//
// # Design Principles
//
//   - No magic: Explicit code, no reflection, no service containers
//   - Flat handlers: Business logic in handlers, extract to services only when shared
//   - Constructor injection: All dependencies visible in main.go
//   - Framework, not boilerplate: Provides utilities, not business logic
//
// See the restbase package documentation for the public API and usage examples.
package internal
