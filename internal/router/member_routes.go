package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Shrutis65143/Booqly/internal/handler"
	"github.com/Shrutis65143/Booqly/internal/middleware"
)

// RegisterMember registers the circulation endpoints available to
// every authenticated account.  Members create borrows and read their
// own records; admins reach the same endpoints and see every record.
// The admin-only lifecycle actions (return, overdue, stats) live in
// the admin router.
func RegisterMember(e *echo.Echo, b *handler.BorrowHandler, jwtSecret string) {
	g := e.Group(
		"/api",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("user", "admin"),
	)
	g.POST("/borrows", b.Create)
	g.GET("/borrows", b.List)
	g.GET("/borrows/:id", b.Get)
}
