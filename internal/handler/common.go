package handler // handler implements the HTTP endpoints of the API

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Shrutis65143/Booqly/internal/model"
)

// getUserID extracts the user_id placed in the context by the JWT
// middleware and converts it to uint64.  The claim arrives as float64
// after JSON decoding, but other shapes are tolerated.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// isAdmin reports whether the authenticated caller holds the admin
// role.  Used where an endpoint serves both roles with different
// scope, like the borrow listing.
func isAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == model.RoleAdmin
}

// pathID parses a numeric :id path parameter; zero is invalid.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// queryInt reads an integer query parameter, falling back to def when
// absent or malformed.
func queryInt(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// totalPages computes the page count for a listing envelope.
func totalPages(total, limit int) int {
	if limit < 1 {
		limit = 10
	}
	return (total + limit - 1) / limit
}

// listEnvelope builds the flat pagination envelope shared by the
// listing endpoints: {success, data, totalPages, currentPage,
// total<Kind>}.  countKey names the per-endpoint total field
// (totalBooks, totalBorrows, totalUsers).
func listEnvelope(data interface{}, countKey string, total, page, limit int) echo.Map {
	if page < 1 {
		page = 1
	}
	return echo.Map{
		"success":     true,
		"data":        data,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		countKey:      total,
	}
}
