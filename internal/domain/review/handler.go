package review

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/raflens/raflens/internal/domain/raf"
	"github.com/raflens/raflens/internal/platform/analysis"
	"github.com/raflens/raflens/internal/platform/auth"
	"github.com/raflens/raflens/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/sessions", h.CreateSession)

	sess := api.Group("/sessions/:id")
	sess.GET("", h.GetSession)
	sess.DELETE("", h.DeleteSession)
	sess.GET("/members", h.ListMembers)
	sess.GET("/scores", h.GetScores)
	sess.GET("/revenue", h.GetRevenue)

	// Drill-down mutation is the coder's surface.
	coder := sess.Group("", auth.RequireRole(auth.RoleCoder))
	coder.POST("/filters", h.ApplyFilter)
	coder.DELETE("/filters/:level", h.ClearFilter)
	coder.PUT("/view", h.SwitchView)
}

// sessionResponse is the session snapshot returned by every state change,
// so the caller always sees the chain the aggregates were computed from.
type sessionResponse struct {
	ID          string        `json:"id"`
	View        ViewMode      `json:"view"`
	Filters     []FilterLevel `json:"filters"`
	Drillable   bool          `json:"drillable"`
	MemberCount int           `json:"member_count"`
	Scores      raf.RAFScores `json:"scores"`
}

func snapshot(sess *Session) sessionResponse {
	filtered := sess.FilteredMembers()
	return sessionResponse{
		ID:          sess.ID,
		View:        sess.View(),
		Filters:     sess.Filters(),
		Drillable:   sess.Drillable(),
		MemberCount: len(filtered),
		Scores:      raf.Aggregate(filtered),
	}
}

// CreateSession accepts the uploaded clinical-note files, runs the analysis
// call, and opens a review session over the result.
func (h *Handler) CreateSession(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart form with files required")
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one file is required")
	}

	var uploads []analysis.Upload
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable upload: "+fh.Filename)
		}
		defer f.Close()
		uploads = append(uploads, analysis.Upload{Filename: fh.Filename, Content: f})
	}

	sess, err := h.svc.CreateSession(c.Request().Context(), uploads)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "analysis failed")
	}
	return c.JSON(http.StatusCreated, snapshot(sess))
}

func (h *Handler) GetSession(c echo.Context) error {
	sess, err := h.svc.Session(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	return c.JSON(http.StatusOK, snapshot(sess))
}

func (h *Handler) DeleteSession(c echo.Context) error {
	h.svc.DeleteSession(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

// memberListResponse pairs the filtered page with the aggregates of the
// same subset, the dashboard's defining data-flow contract.
type memberListResponse struct {
	Members  *pagination.Response `json:"members"`
	Scores   raf.RAFScores        `json:"scores"`
	Averages *raf.Averages        `json:"averages"`
}

func (h *Handler) ListMembers(c echo.Context) error {
	sess, err := h.svc.Session(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}

	filtered := sess.FilteredMembers()
	pg := pagination.FromContext(c)
	start, end := pg.Slice(len(filtered))

	return c.JSON(http.StatusOK, memberListResponse{
		Members:  pagination.NewResponse(filtered[start:end], len(filtered), pg.Limit, pg.Offset),
		Scores:   raf.Aggregate(filtered),
		Averages: raf.MemberAverages(filtered),
	})
}

func (h *Handler) GetScores(c echo.Context) error {
	scores, err := h.svc.Scores(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	return c.JSON(http.StatusOK, scores)
}

func (h *Handler) GetRevenue(c echo.Context) error {
	projection, err := h.svc.Revenue(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	return c.JSON(http.StatusOK, projection)
}

type applyFilterRequest struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type applyFilterResponse struct {
	Applied bool `json:"applied"`
	sessionResponse
}

// ApplyFilter adds one drill-down level. A request whose prerequisite
// parent level is missing is a no-op, reported via the applied flag rather
// than an error.
func (h *Handler) ApplyFilter(c echo.Context) error {
	sess, err := h.svc.Session(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}

	var req applyFilterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ft, err := ParseFilterType(req.Type)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Value == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "filter value is required")
	}

	applied := sess.ApplyFilter(ft, req.Value)
	return c.JSON(http.StatusOK, applyFilterResponse{Applied: applied, sessionResponse: snapshot(sess)})
}

func (h *Handler) ClearFilter(c echo.Context) error {
	sess, err := h.svc.Session(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	level, err := strconv.Atoi(c.Param("level"))
	if err != nil || level < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid filter level")
	}
	sess.ClearFilter(level)
	return c.JSON(http.StatusOK, snapshot(sess))
}

type switchViewRequest struct {
	View string `json:"view"`
}

func (h *Handler) SwitchView(c echo.Context) error {
	sess, err := h.svc.Session(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	var req switchViewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	view, err := ParseViewMode(req.View)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sess.SwitchView(view)
	return c.JSON(http.StatusOK, snapshot(sess))
}
