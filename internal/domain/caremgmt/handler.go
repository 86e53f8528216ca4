package caremgmt

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/raflens/raflens/internal/domain/review"
	"github.com/raflens/raflens/internal/platform/auth"
)

// SessionLookup resolves an active review session by ID.
type SessionLookup interface {
	Session(id string) (*review.Session, error)
}

type Handler struct {
	svc      *Service
	sessions SessionLookup
}

func NewHandler(svc *Service, sessions SessionLookup) *Handler {
	return &Handler{svc: svc, sessions: sessions}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	cm := api.Group("/sessions/:id/actions", auth.RequireRole(auth.RoleCareManager))
	cm.GET("", h.ListActions)
	cm.PUT("/:memberId/status", h.SetStatus)
}

func (h *Handler) ListActions(c echo.Context) error {
	sess, err := h.sessions.Session(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	return c.JSON(http.StatusOK, h.svc.ActionList(sess))
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) SetStatus(c echo.Context) error {
	sess, err := h.sessions.Session(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}

	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	status, err := ParseStatus(req.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.svc.SetStatus(sess, c.Param("memberId"), status); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"member_id": c.Param("memberId"),
		"status":    string(status),
	})
}
