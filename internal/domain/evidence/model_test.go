package evidence

import (
	"reflect"
	"testing"
)

func snip(text string, page int) Snippet {
	return Snippet{Text: text, PageNumber: page}
}

func pageSet(e *CodeEvidence) map[int]bool {
	set := make(map[int]bool)
	for _, p := range e.PageNumbers {
		set[p] = true
	}
	return set
}

func supportingPageSet(e *CodeEvidence) map[int]bool {
	set := make(map[int]bool)
	for _, s := range e.SupportingText {
		set[s.PageNumber] = true
	}
	return set
}

func assertPagesInvariant(t *testing.T, e *CodeEvidence) {
	t.Helper()
	if !reflect.DeepEqual(pageSet(e), supportingPageSet(e)) {
		t.Errorf("pageNumbers %v does not match supporting text pages %v",
			e.PageNumbers, supportingPageSet(e))
	}
}

func TestParseCategoryType(t *testing.T) {
	for _, valid := range []string{"missing-hcc", "current-hcc", "missed-icd", "potential-visit"} {
		if _, err := ParseCategoryType(valid); err != nil {
			t.Errorf("expected %q to parse, got %v", valid, err)
		}
	}
	if _, err := ParseCategoryType("bogus"); err == nil {
		t.Error("expected error for unknown category type")
	}
}

func TestRecomputePages_Deduplicates(t *testing.T) {
	e := &CodeEvidence{
		SupportingText: []Snippet{snip("a", 1), snip("b", 3), snip("c", 1), snip("d", 2)},
	}
	e.RecomputePages()

	want := []int{1, 3, 2}
	if !reflect.DeepEqual(e.PageNumbers, want) {
		t.Errorf("expected %v, got %v", want, e.PageNumbers)
	}
	assertPagesInvariant(t, e)
}

func TestRecomputePages_Empty(t *testing.T) {
	e := &CodeEvidence{SupportingText: nil, PageNumbers: []int{1, 2}}
	e.RecomputePages()
	if len(e.PageNumbers) != 0 {
		t.Errorf("expected empty page set, got %v", e.PageNumbers)
	}
}

func TestClone_IsIndependent(t *testing.T) {
	orig := &CodeEvidence{
		Code:           "HCC19",
		SupportingText: []Snippet{snip("diabetic", 2)},
		PageNumbers:    []int{2},
	}
	cp := orig.Clone()
	cp.SupportingText[0].Text = "changed"
	cp.SupportingText = append(cp.SupportingText, snip("new", 5))
	cp.RecomputePages()

	if orig.SupportingText[0].Text != "diabetic" {
		t.Error("clone mutation leaked into original snippet")
	}
	if len(orig.SupportingText) != 1 || len(orig.PageNumbers) != 1 {
		t.Error("clone mutation changed original lengths")
	}
}

func TestDocumentCategory_Lookup(t *testing.T) {
	doc := &MemberDocument{
		Categories: []*DocumentCategory{
			{Type: CategoryCurrentHCC, Codes: []*CodeEvidence{{Code: "HCC85"}}},
		},
	}

	if doc.Category(CategoryCurrentHCC) == nil {
		t.Error("expected current-hcc category to be found")
	}
	if doc.Category(CategoryMissingHCC) != nil {
		t.Error("expected missing-hcc category to be absent")
	}
	if doc.Category(CategoryCurrentHCC).FindCode("HCC85") == nil {
		t.Error("expected HCC85 to be found")
	}
	if doc.Category(CategoryCurrentHCC).FindCode("HCC19") != nil {
		t.Error("expected HCC19 to be absent")
	}
}
