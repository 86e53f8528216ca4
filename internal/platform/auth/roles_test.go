package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func doWithRole(t *testing.T, role string, handler echo.HandlerFunc, mw ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if role != "" {
		req.Header.Set(RoleHeader, role)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := handler
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRoleMiddleware_DefaultsToCoder(t *testing.T) {
	var got string
	rec := doWithRole(t, "", func(c echo.Context) error {
		got = RoleFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	}, RoleMiddleware())

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got != RoleCoder {
		t.Errorf("expected default role coder, got %q", got)
	}
}

func TestRoleMiddleware_ResolvesHeader(t *testing.T) {
	var got string
	doWithRole(t, "care-manager", func(c echo.Context) error {
		got = RoleFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	}, RoleMiddleware())

	if got != RoleCareManager {
		t.Errorf("expected care-manager, got %q", got)
	}
}

func TestRoleMiddleware_RejectsUnknownRole(t *testing.T) {
	rec := doWithRole(t, "superuser", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RoleMiddleware())

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown role, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	rec := doWithRole(t, "coder", handler, RoleMiddleware(), RequireRole(RoleCoder))
	if rec.Code != http.StatusOK {
		t.Errorf("coder should pass a coder gate, got %d", rec.Code)
	}

	rec = doWithRole(t, "care-manager", handler, RoleMiddleware(), RequireRole(RoleCoder))
	if rec.Code != http.StatusForbidden {
		t.Errorf("care-manager should be rejected by a coder gate, got %d", rec.Code)
	}

	rec = doWithRole(t, "care-manager", handler, RoleMiddleware(), RequireRole(RoleCoder, RoleCareManager))
	if rec.Code != http.StatusOK {
		t.Errorf("multi-role gate should pass either role, got %d", rec.Code)
	}
}

func TestRoleFromContext_Unset(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := RoleFromContext(req.Context()); got != "" {
		t.Errorf("expected empty role outside the middleware, got %q", got)
	}
}
