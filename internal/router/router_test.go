package router

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Shrutis65143/Booqly/internal/config"
	"github.com/Shrutis65143/Booqly/internal/handler"
)

// registerAll wires every route group against empty handlers.  Routes
// are only registered, never invoked, so no database is needed.
func registerAll(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	cfg := &config.Config{JWTSecret: "test-secret"}

	authH := handler.NewAuthHandler(nil, nil, cfg)
	bookH := handler.NewBookHandler(nil, nil)
	catH := handler.NewCategoryHandler(nil)
	userH := handler.NewUserHandler(nil, nil, cfg)
	borrowH := handler.NewBorrowHandler(nil, nil)

	RegisterRoutes(e)
	RegisterAuth(e, authH, cfg.JWTSecret)
	RegisterPublic(e, bookH, catH)
	RegisterMember(e, borrowH, cfg.JWTSecret)
	RegisterAdmin(e, bookH, catH, userH, borrowH, cfg.JWTSecret)
	return e
}

func routeSet(e *echo.Echo) map[string]bool {
	set := make(map[string]bool)
	for _, r := range e.Routes() {
		set[r.Method+" "+r.Path] = true
	}
	return set
}

func TestRegisteredRoutes(t *testing.T) {
	routes := routeSet(registerAll(t))

	for _, want := range []string{
		"GET /healthz",
		"GET /api/health",
		"POST /api/auth/register",
		"POST /api/auth/login",
		"POST /api/auth/refresh",
		"POST /api/auth/refresh-access",
		"POST /api/auth/logout",
		"GET /api/auth/me",
		"GET /api/books",
		"GET /api/books/:id",
		"POST /api/books",
		"PUT /api/books/:id",
		"DELETE /api/books/:id",
		"GET /api/categories",
		"POST /api/categories",
		"PUT /api/categories/:id",
		"DELETE /api/categories/:id",
		"POST /api/borrows",
		"GET /api/borrows",
		"GET /api/borrows/:id",
		"PUT /api/borrows/:id/return",
		"GET /api/borrows/overdue",
		"GET /api/borrows/stats",
		"GET /api/users",
		"POST /api/users",
		"PUT /api/users/:id",
		"DELETE /api/users/:id",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

// Cover refresh is a PUT, matching the rest of the book write surface.
func TestCoverUpdateUsesPut(t *testing.T) {
	routes := routeSet(registerAll(t))

	assert.True(t, routes[http.MethodPut+" /api/books/:id/cover"])
	assert.False(t, routes[http.MethodPatch+" /api/books/:id/cover"])
}
