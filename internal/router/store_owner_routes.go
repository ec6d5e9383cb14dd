package router

// This file registers store-owner routes and the shared (admin + owner)
// service listing endpoints.  Service mutations never take a store id
// from the request; the credential's embedded store id decides whose
// catalog is touched, and the repository enforces ownership on the row.

import (
	"github.com/labstack/echo/v4"

	"github.com/9santoshki/saloon-reservation/internal/handler"
	"github.com/9santoshki/saloon-reservation/internal/middleware"
)

// RegisterStoreOwner registers endpoints scoped to the caller's own store.
// All routes require a valid JWT and the store_owner role.
func RegisterStoreOwner(e *echo.Echo, s *handler.StoreHandler, sv *handler.ServiceHandler, jwtSecret string) {
	g := e.Group(
		"/api/store",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("store_owner"),
	)

	// ---- My store ----
	g.GET("/my", s.GetMyStore)
	g.PUT("/my", s.UpdateMyStore)

	// ---- My services ----
	g.POST("/services", sv.CreateService)
	g.PUT("/services/:id", sv.UpdateService)
	g.DELETE("/services/:id", sv.DeleteService)
}

// RegisterServices registers the service listing endpoints shared by both
// roles.  Admins see everything; store owners are confined to their own
// store — by scoping in the handler for the flat list, and by the
// store-scope middleware for the per-store list (403 on mismatch, never
// an empty result for someone else's store).
func RegisterServices(e *echo.Echo, sv *handler.ServiceHandler, jwtSecret string) {
	g := e.Group(
		"/api/services",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("admin", "store_owner"),
	)
	g.GET("", sv.ListServices)
	g.GET("/store/:storeId", sv.ListStoreServices, middleware.RequireStoreScope("storeId"))
}
