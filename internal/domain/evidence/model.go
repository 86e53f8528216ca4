package evidence

import "fmt"

// CategoryType is the fixed set of document category kinds.
type CategoryType string

const (
	CategoryMissingHCC     CategoryType = "missing-hcc"
	CategoryCurrentHCC     CategoryType = "current-hcc"
	CategoryMissedICD      CategoryType = "missed-icd"
	CategoryPotentialVisit CategoryType = "potential-visit"
)

// ParseCategoryType validates a category string from the API boundary.
func ParseCategoryType(s string) (CategoryType, error) {
	switch t := CategoryType(s); t {
	case CategoryMissingHCC, CategoryCurrentHCC, CategoryMissedICD, CategoryPotentialVisit:
		return t, nil
	}
	return "", fmt.Errorf("unknown category type %q", s)
}

// Snippet is one supporting-text excerpt picked from the source document.
// Start/end indexes are only present when the snippet was selected from OCR
// text rather than typed in; the shape is normalized at the ingest boundary.
type Snippet struct {
	Text       string `json:"text"`
	PageNumber int    `json:"page_number"`
	StartIdx   *int   `json:"start_idx,omitempty"`
	EndIdx     *int   `json:"end_idx,omitempty"`
}

// CodeEvidence is one coding assertion with its supporting snippets.
// PageNumbers is derived: it always equals the set of distinct page numbers
// across SupportingText and is recomputed on every mutation.
type CodeEvidence struct {
	Code           string    `json:"code"`
	Description    string    `json:"description"`
	RAFValue       float64   `json:"raf_value"`
	SupportingText []Snippet `json:"supporting_text"`
	PageNumbers    []int     `json:"page_numbers"`
}

// RecomputePages rebuilds PageNumbers from SupportingText, preserving
// first-seen order of the pages.
func (e *CodeEvidence) RecomputePages() {
	seen := make(map[int]bool, len(e.SupportingText))
	pages := make([]int, 0, len(e.SupportingText))
	for _, s := range e.SupportingText {
		if !seen[s.PageNumber] {
			seen[s.PageNumber] = true
			pages = append(pages, s.PageNumber)
		}
	}
	e.PageNumbers = pages
}

// Clone returns a deep copy, used to seed an editing draft.
func (e *CodeEvidence) Clone() *CodeEvidence {
	cp := *e
	cp.SupportingText = make([]Snippet, len(e.SupportingText))
	copy(cp.SupportingText, e.SupportingText)
	cp.PageNumbers = make([]int, len(e.PageNumbers))
	copy(cp.PageNumbers, e.PageNumbers)
	return &cp
}

// DocumentCategory groups code evidence under one category kind.
type DocumentCategory struct {
	Type  CategoryType    `json:"type"`
	Codes []*CodeEvidence `json:"codes"`
}

// FindCode locates a code within the category, or nil.
func (c *DocumentCategory) FindCode(code string) *CodeEvidence {
	for _, e := range c.Codes {
		if e.Code == code {
			return e
		}
	}
	return nil
}

// MemberDocument is one source artifact (a patient's clinical note set)
// with its per-page OCR text and the categorized coding assertions.
type MemberDocument struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	URL         string              `json:"url"`
	Date        string              `json:"date"`
	Provider    string              `json:"provider"`
	Facility    string              `json:"facility"`
	Categories  []*DocumentCategory `json:"categories"`
	PageWiseOCR map[string]string   `json:"page_wise_ocr,omitempty"`
}

// Category returns the category of the given type, or nil.
func (d *MemberDocument) Category(t CategoryType) *DocumentCategory {
	for _, c := range d.Categories {
		if c.Type == t {
			return c
		}
	}
	return nil
}
