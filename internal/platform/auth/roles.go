// Package auth carries the reviewer role through the request. There is no
// authentication: the dashboard trusts the X-User-Role header and only uses
// it to split the coder and care-manager surfaces.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Reviewer roles.
const (
	RoleCoder       = "coder"
	RoleCareManager = "care-manager"
)

// RoleHeader names the request header carrying the reviewer role.
const RoleHeader = "X-User-Role"

type contextKey struct{}

var roleKey contextKey

// RoleMiddleware resolves the reviewer role from the request header. A
// missing header defaults to coder; an unknown value is rejected.
func RoleMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := strings.TrimSpace(c.Request().Header.Get(RoleHeader))
			if role == "" {
				role = RoleCoder
			}
			if role != RoleCoder && role != RoleCareManager {
				return echo.NewHTTPError(http.StatusBadRequest,
					fmt.Sprintf("unknown role %q", role))
			}
			ctx := context.WithValue(c.Request().Context(), roleKey, role)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RoleFromContext returns the resolved reviewer role, or empty.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}

// RequireRole returns middleware allowing only the listed roles.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			has := RoleFromContext(c.Request().Context())
			for _, required := range roles {
				if has == required {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("required role: %s", strings.Join(roles, " or ")))
		}
	}
}
