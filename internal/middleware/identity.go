package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// clientID renders the authenticated client's id stored by JWTAuth as a
// string for use in rate-limit keys. Unauthenticated requests map to
// "anon" so they share one bucket per IP.
func clientID(c echo.Context) string {
	switch v := c.Get("client_id").(type) {
	case float64:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case string:
		if v != "" {
			return v
		}
	}
	return "anon"
}
