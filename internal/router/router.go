package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/Shrutis65143/Booqly/internal/handler"
)

// RegisterRoutes registers routes that require no authentication and no
// database.  Both paths serve the same liveness probe: /healthz for
// infrastructure convention, /api/health for API clients.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/api/health", handler.Health)
}

// RegisterPublic registers the unauthenticated browse endpoints: the
// book catalog and the category list.  Guests use these to browse
// before creating an account.  The cache middleware, when enabled, is
// attached here by the caller since these are the hot read paths.
func RegisterPublic(e *echo.Echo, b *handler.BookHandler, cat *handler.CategoryHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/api", mw...)
	g.GET("/books", b.List)
	g.GET("/books/:id", b.Get)
	g.GET("/categories", cat.List)
}
