package router // package router defines how HTTP routes are registered for the API

import (
	"database/sql"

	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/restaurant-seat-reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/restaurant-seat-reservation/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication:
// liveness at /healthz and readiness at /readyz.  db may be nil when the
// service runs without MySQL.
func RegisterRoutes(e *echo.Echo, db *sql.DB) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(db))
}

// RegisterCatalog exposes the read-only restaurant catalog.  Both routes
// go through the response cache when one is configured.
func RegisterCatalog(e *echo.Echo, cache echo.MiddlewareFunc) {
	var mw []echo.MiddlewareFunc
	if cache != nil {
		mw = append(mw, cache)
	}
	e.GET("/v1/restaurants", handler.ListRestaurants, mw...)
	e.GET("/v1/restaurants/:id", handler.GetRestaurant, mw...)
}

// RegisterAuth registers the staff session endpoints.  Login, refresh and
// logout live under /v1/auth and pass through the rate limiter; /v1/me
// requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if limiter != nil {
		g.Use(limiter)
	}
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh) // rotates the refresh token
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.GET("/me", a.Me, middleware.JWTAuth(jwtSecret))
}
