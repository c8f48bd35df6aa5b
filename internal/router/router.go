// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/office-seat-rotation/internal/config"
	"github.com/iliyamo/office-seat-rotation/internal/handler"
	"github.com/iliyamo/office-seat-rotation/internal/middleware"
)

// RegisterRoutes attaches all endpoints to the echo instance. The
// auth group is public; everything else requires a valid access
// token. rdb may be nil, in which case rate limiting and caching
// degrade to no-ops.
func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	rdb *redis.Client,
	auth *handler.AuthHandler,
	booking *handler.BookingHandler,
) {
	e.GET("/healthz", handler.Health)

	rlCfg := config.LoadRateLimitConfig()
	cacheCfg := config.LoadCacheConfig()

	v1 := e.Group("/v1")

	a := v1.Group("/auth")
	a.POST("/register", auth.Register)
	a.POST("/login", auth.Login)
	a.POST("/refresh", auth.Refresh)
	a.POST("/logout", auth.Logout)

	protected := v1.Group("",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole("EMPLOYEE", "ADMIN"),
		middleware.NewTokenBucket(rlCfg, rdb),
	)

	protected.GET("/me", auth.Me)

	// Rotation is a pure function of the date, so only this route
	// gets the response cache.
	protected.GET("/rotation", booking.Rotation, middleware.NewRotationCache(cacheCfg, rdb))

	protected.GET("/floating-stats", booking.FloatingStats)
	protected.GET("/seats", booking.Seats)
	protected.GET("/weekly-view", booking.WeeklyView)
	protected.GET("/my-bookings", booking.MyBookings)
	protected.POST("/book-seat", booking.BookSeat)
	protected.POST("/release-seat", booking.ReleaseSeat)
}
