package router

import (
	"github.com/labstack/echo/v4"

	"github.com/9santoshki/saloon-reservation/internal/handler"
	"github.com/9santoshki/saloon-reservation/internal/middleware"
)

// RegisterAdmin registers catalog management endpoints that require the
// admin role.  All routes are mounted under /api/admin and require a
// valid JWT plus role = admin.
func RegisterAdmin(e *echo.Echo, s *handler.StoreHandler, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group(
		"/api/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("admin"),
	)

	// ---- Stores ----
	g.POST("/stores", s.CreateStore)
	g.PUT("/stores/:id", s.UpdateStore)
	g.DELETE("/stores/:id", s.DeleteStore)

	// ---- Accounts ----
	g.GET("/users", a.ListUsers)
}
