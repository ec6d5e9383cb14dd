package middleware

// storescope.go enforces that a store owner only touches their own store.
// The owned store id travels inside the JWT (claim "store_id") and is
// compared against the store id named in the request path.  Admin tokens
// never pass through this middleware; admin routes use RequireRole alone.

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// StoreIDFromContext extracts the store_id claim placed in the context by
// JWTAuth.  JWT numeric claims decode as float64; string values are parsed
// for robustness.  The second return value is false when the token carried
// no store claim (e.g. an admin token).
func StoreIDFromContext(c echo.Context) (uint64, bool) {
	switch t := c.Get("store_id").(type) {
	case float64:
		return uint64(t), true
	case uint64:
		return t, true
	case int64:
		return uint64(t), true
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// RequireStoreScope returns a middleware that matches the credential's
// embedded store id against the given path parameter.  A store owner whose
// token names a different store receives 403, not an empty result set.
// Admin tokens (which carry the "admin" role and no store claim) bypass
// the comparison so the same route can serve both roles.
func RequireStoreScope(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if role, _ := c.Get("role").(string); role == "admin" {
				return next(c)
			}
			requested, err := strconv.ParseUint(c.Param(param), 10, 64)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid store id"})
			}
			owned, ok := StoreIDFromContext(c)
			if !ok || owned != requested {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized for this store"})
			}
			return next(c)
		}
	}
}
