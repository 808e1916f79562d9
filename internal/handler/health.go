package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health reports process liveness.  It does not touch the database;
// load balancers poll it frequently.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"status": "ok",
			"time":   time.Now().UTC(),
		},
	})
}
