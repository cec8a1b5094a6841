package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers liveness probes with a plain "ok". It intentionally does
// not touch the database or Redis so a degraded dependency never takes the
// process out of rotation.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
