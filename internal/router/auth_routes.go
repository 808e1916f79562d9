package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Shrutis65143/Booqly/internal/handler"
	"github.com/Shrutis65143/Booqly/internal/middleware"
)

// RegisterAuth registers the session endpoints.  Register, login and
// the two refresh variants need no access token; /api/auth/me runs
// behind the JWT middleware.  Refresh rotates the refresh token while
// refresh-access only mints a new access token, for clients retrying a
// request after an expiry mid-session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/api/auth", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}
