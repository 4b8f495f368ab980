package internal

// Handler declares routes on a router.
//
// Example:
//
//	type AuthHandler struct {
//	    manager *db.Manager
//	}
//
//	func (h *AuthHandler) Routes(r restbase.Router) {
//	    r.GET("/auth/list", h.list)
//	    r.POST("/auth/login", h.login)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// It receives a Context and returns an error.
// Returning a non-nil error triggers the error handling middleware.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect/modify the request, short-circuit processing,
// or wrap the response.
//
// Example:
//
//	func Auth(next restbase.HandlerFunc) restbase.HandlerFunc {
//	    return func(c restbase.Context) error {
//	        if !c.Can("users.read") {
//	            return c.JSON(http.StatusForbidden, restbase.Fail("Forbidden."))
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
