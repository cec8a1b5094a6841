// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kart-track-reservation/internal/handler"
	"github.com/iliyamo/kart-track-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the client authentication endpoints and the
// protected /v1/me route. Unauthenticated operations live under /v1/auth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout takes a refresh token in the body, so it needs no JWT.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("EMPLOYEE", "CUSTOMER"))
	auth.GET("/me", a.Me)
}

// RegisterBooking registers the reservation endpoints. Creating, reading
// and renaming reservations all require an authenticated client; the
// booking endpoint additionally sits behind the Redis token bucket so one
// client cannot hammer the conflict-checked creation path.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, jwtSecret string, rateLimit echo.MiddlewareFunc) {
	g := e.Group("/v1/reservations")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("EMPLOYEE", "CUSTOMER"))
	g.POST("", b.Create, rateLimit)
	g.GET("/:id", b.Get)
	g.GET("/:id/voucher", b.Voucher)
	g.PATCH("/:id", b.Rename)
}

// RegisterAvailability registers the public read-only calendar endpoints.
// Both responses are cacheable and wrapped by the Redis response cache.
func RegisterAvailability(e *echo.Echo, a *handler.AvailabilityHandler, cache echo.MiddlewareFunc) {
	e.GET("/v1/availability/calendar", a.Calendar, cache)
	e.GET("/v1/availability/occupied", a.Occupied, cache)
}

// RegisterReports registers the revenue report endpoints, restricted to
// employees, with the response cache in front of the aggregation queries.
func RegisterReports(e *echo.Echo, r *handler.ReportHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/v1/reports")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("EMPLOYEE"))
	g.GET("/by-tariff", r.ByTariff, cache)
	g.GET("/by-party-size", r.ByPartySize, cache)
}

// RegisterKarts registers catalog routes: listing is public, mutations are
// employee-only.
func RegisterKarts(e *echo.Echo, k *handler.KartHandler, jwtSecret string) {
	e.GET("/v1/karts", k.List)

	g := e.Group("/v1/karts")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("EMPLOYEE"))
	g.POST("", k.Create)
	g.PATCH("/:id", k.SetActive)
}
