package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Shrutis65143/Booqly/internal/handler"
	"github.com/Shrutis65143/Booqly/internal/middleware"
)

// RegisterAdmin registers the management endpoints: catalog and
// category writes, user administration and the circulation lifecycle
// actions.  All routes require a valid JWT carrying the admin role.
func RegisterAdmin(e *echo.Echo, b *handler.BookHandler, cat *handler.CategoryHandler,
	u *handler.UserHandler, br *handler.BorrowHandler, jwtSecret string) {
	g := e.Group(
		"/api",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("admin"),
	)

	// ---- Books ----
	g.POST("/books", b.Create)
	g.PUT("/books/:id", b.Update)
	g.PUT("/books/:id/cover", b.UpdateCover)
	g.DELETE("/books/:id", b.Delete)

	// ---- Categories ----
	g.POST("/categories", cat.Create)
	g.PUT("/categories/:id", cat.Update)
	g.DELETE("/categories/:id", cat.Delete)

	// ---- Users ----
	g.GET("/users", u.List)
	g.POST("/users", u.Create)
	g.GET("/users/:id", u.Get)
	g.PUT("/users/:id", u.Update)
	g.DELETE("/users/:id", u.Deactivate)

	// ---- Circulation lifecycle ----
	// The static segments must not collide with /borrows/:id in the
	// member router; Echo resolves static routes before params.
	g.PUT("/borrows/:id/return", br.Return)
	g.GET("/borrows/overdue", br.Overdue)
	g.GET("/borrows/stats", br.Stats)
}
