package evidence

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/raflens/raflens/internal/platform/auth"
)

// DocumentResolver locates a member document inside an active session.
type DocumentResolver interface {
	Document(sessionID, memberID, docID string) (*MemberDocument, error)
}

type Handler struct {
	svc      *Service
	resolver DocumentResolver
}

func NewHandler(svc *Service, resolver DocumentResolver) *Handler {
	return &Handler{svc: svc, resolver: resolver}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	docs := api.Group("/sessions/:id/members/:memberId/documents/:docId")
	docs.GET("", h.GetDocument)

	// Annotation of evidence is the coder's surface.
	coder := docs.Group("", auth.RequireRole(auth.RoleCoder))
	coder.POST("/codes", h.AddCode)
	coder.PUT("/categories/:type/codes/:code", h.ReplaceEvidence)
	coder.DELETE("/categories/:type/codes/:code", h.DeleteCode)
	coder.POST("/annotations", h.SaveAnnotations)
}

func (h *Handler) document(c echo.Context) (*MemberDocument, error) {
	doc, err := h.resolver.Document(c.Param("id"), c.Param("memberId"), c.Param("docId"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return doc, nil
}

func (h *Handler) GetDocument(c echo.Context) error {
	doc, err := h.document(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

type addCodeRequest struct {
	Category    string `json:"category"`
	Code        string `json:"code"`
	Description string `json:"description"`
	RAFValue    string `json:"raf_value"`
}

// AddCode appends a reviewer-asserted code, creating the target category on
// the document when it does not exist yet.
func (h *Handler) AddCode(c echo.Context) error {
	doc, err := h.document(c)
	if err != nil {
		return err
	}

	var req addCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	catType, err := ParseCategoryType(req.Category)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	e, err := h.svc.AddCode(doc, catType, req.Code, req.Description, req.RAFValue)
	if err != nil {
		if errors.Is(err, ErrDuplicateCode) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, e)
}

type replaceEvidenceRequest struct {
	SupportingText []Snippet `json:"supporting_text"`
}

// ReplaceEvidence commits an edited snippet list. A save that would leave
// the code without supporting text is rejected with 422 and the stored
// evidence stays unchanged.
func (h *Handler) ReplaceEvidence(c echo.Context) error {
	doc, err := h.document(c)
	if err != nil {
		return err
	}
	catType, err := ParseCategoryType(c.Param("type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req replaceEvidenceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	e, err := h.svc.ReplaceEvidence(doc, catType, c.Param("code"), req.SupportingText)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyEvidence):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, ErrCategoryNotFound), errors.Is(err, ErrCodeNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) DeleteCode(c echo.Context) error {
	doc, err := h.document(c)
	if err != nil {
		return err
	}
	catType, err := ParseCategoryType(c.Param("type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.DeleteCode(doc, catType, c.Param("code")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SaveAnnotations(c echo.Context) error {
	doc, err := h.document(c)
	if err != nil {
		return err
	}
	if err := h.svc.SaveAnnotations(c.Request().Context(), doc); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "saved"})
}
