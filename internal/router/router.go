package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/9santoshki/saloon-reservation/internal/config"
	"github.com/9santoshki/saloon-reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/9santoshki/saloon-reservation/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under
// /api/auth and are rate limited; protected endpoints live under /api.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rl echo.MiddlewareFunc) {
	g := e.Group("/api/auth", rl)
	// Registration issues a token pair immediately so the UI can log the
	// fresh account straight in.
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; logout revokes it.
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	// Routes requiring a valid access token of either role.
	auth := e.Group("/api")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("admin", "store_owner"))
	auth.GET("/me", a.Me)
	// Global sign-out: revokes every refresh token of the account.
	auth.POST("/auth/logout-all", a.LogoutAll)
}

// RegisterPublic registers the unauthenticated store catalog endpoints.
// Successful responses are cached in Redis when a client is available.
func RegisterPublic(e *echo.Echo, s *handler.StoreHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cache := middleware.NewCatalogCache(cacheCfg, rdb)
	e.GET("/api/stores", s.ListStores, cache)
	e.GET("/api/stores/:id", s.GetStore, cache)
}

// RegisterAssistant registers the chat proxy.  The endpoint is public (the
// widget is shown before login) but rate limited per client IP.
func RegisterAssistant(e *echo.Echo, a *handler.AssistantHandler, rl echo.MiddlewareFunc) {
	e.POST("/api/ai/chat", a.Chat, rl)
}
