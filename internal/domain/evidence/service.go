package evidence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCodeNotFound     = errors.New("code not found")
	ErrDuplicateCode    = errors.New("code already present in category")
)

// Service mutates the coding assertions attached to a member document. All
// mutation is in-memory and session-local; there is no write path back to
// the analysis service.
type Service struct {
	logger zerolog.Logger
}

func NewService(logger zerolog.Logger) *Service {
	return &Service{logger: logger}
}

// AddCode appends a reviewer-asserted code to the given category, creating
// the category on the document if it does not exist yet. Code and
// description are required; rawRAF is parsed as a non-negative float and
// falls back to 0 when empty or malformed.
func (s *Service) AddCode(doc *MemberDocument, catType CategoryType, code, description, rawRAF string) (*CodeEvidence, error) {
	code = strings.TrimSpace(code)
	description = strings.TrimSpace(description)
	if code == "" {
		return nil, fmt.Errorf("code is required")
	}
	if description == "" {
		return nil, fmt.Errorf("description is required")
	}

	rafValue, err := strconv.ParseFloat(strings.TrimSpace(rawRAF), 64)
	if err != nil || rafValue < 0 {
		rafValue = 0
	}

	cat := doc.Category(catType)
	if cat == nil {
		cat = &DocumentCategory{Type: catType}
		doc.Categories = append(doc.Categories, cat)
	}
	if cat.FindCode(code) != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, code)
	}

	e := &CodeEvidence{
		Code:           code,
		Description:    description,
		RAFValue:       rafValue,
		SupportingText: []Snippet{},
		PageNumbers:    []int{},
	}
	cat.Codes = append(cat.Codes, e)
	return e, nil
}

// ReplaceEvidence applies an edited snippet list to an existing code using
// draft semantics: the stored evidence is only touched when the draft saves
// cleanly, and a save that would leave the code without supporting text is
// rejected.
func (s *Service) ReplaceEvidence(doc *MemberDocument, catType CategoryType, code string, snippets []Snippet) (*CodeEvidence, error) {
	e, err := s.findCode(doc, catType, code)
	if err != nil {
		return nil, err
	}

	draft := BeginEdit(e)
	draft.edited.SupportingText = nil
	for _, sn := range snippets {
		draft.edited.SupportingText = append(draft.edited.SupportingText, sn)
	}
	draft.edited.RecomputePages()

	if err := draft.Save(); err != nil {
		return nil, err
	}
	return e, nil
}

// DeleteCode removes a code from its category entirely (the editor's
// terminal "deleted" state).
func (s *Service) DeleteCode(doc *MemberDocument, catType CategoryType, code string) error {
	cat := doc.Category(catType)
	if cat == nil {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, catType)
	}
	for i, e := range cat.Codes {
		if e.Code == code {
			cat.Codes = append(cat.Codes[:i], cat.Codes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrCodeNotFound, code)
}

// SaveAnnotations is the "save" action for a reviewed document. Nothing is
// persisted past the session; the action logs and always succeeds.
func (s *Service) SaveAnnotations(ctx context.Context, doc *MemberDocument) error {
	codes := 0
	for _, c := range doc.Categories {
		codes += len(c.Codes)
	}
	s.logger.Info().
		Str("document_id", doc.ID).
		Int("categories", len(doc.Categories)).
		Int("codes", codes).
		Msg("annotations saved")
	return nil
}

func (s *Service) findCode(doc *MemberDocument, catType CategoryType, code string) (*CodeEvidence, error) {
	cat := doc.Category(catType)
	if cat == nil {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, catType)
	}
	e := cat.FindCode(code)
	if e == nil {
		return nil, fmt.Errorf("%w: %s", ErrCodeNotFound, code)
	}
	return e, nil
}
