package evidence

import (
	"errors"
	"fmt"
)

// Editing errors surfaced to the handler layer.
var (
	ErrEmptyEvidence   = errors.New("evidence must retain at least one supporting snippet")
	ErrSnippetNotFound = errors.New("snippet index out of range")
	ErrNotEditing      = errors.New("no edit in progress")
)

// Draft is a local working copy of one CodeEvidence. The original is left
// untouched until Save commits the draft back; Cancel throws it away. Every
// snippet mutation recomputes the derived page set immediately so the
// pageNumbers invariant holds mid-edit, not just at rest.
type Draft struct {
	original *CodeEvidence
	edited   *CodeEvidence
}

// BeginEdit starts an editing session over the given evidence.
func BeginEdit(e *CodeEvidence) *Draft {
	return &Draft{original: e, edited: e.Clone()}
}

// Evidence exposes the draft's current state, for rendering while editing.
func (d *Draft) Evidence() *CodeEvidence {
	return d.edited
}

// AddSnippet appends a supporting snippet to the draft.
func (d *Draft) AddSnippet(text string, page int) {
	d.edited.SupportingText = append(d.edited.SupportingText, Snippet{Text: text, PageNumber: page})
	d.edited.RecomputePages()
}

// EditSnippet mutates a snippet in place. A nil text or page leaves that
// field unchanged.
func (d *Draft) EditSnippet(i int, text *string, page *int) error {
	if i < 0 || i >= len(d.edited.SupportingText) {
		return fmt.Errorf("%w: %d", ErrSnippetNotFound, i)
	}
	if text != nil {
		d.edited.SupportingText[i].Text = *text
	}
	if page != nil {
		d.edited.SupportingText[i].PageNumber = *page
	}
	d.edited.RecomputePages()
	return nil
}

// RemoveSnippet deletes the snippet at index i.
func (d *Draft) RemoveSnippet(i int) error {
	if i < 0 || i >= len(d.edited.SupportingText) {
		return fmt.Errorf("%w: %d", ErrSnippetNotFound, i)
	}
	d.edited.SupportingText = append(d.edited.SupportingText[:i], d.edited.SupportingText[i+1:]...)
	d.edited.RecomputePages()
	return nil
}

// Save commits the draft back onto the original evidence. A draft whose
// supporting text would end up empty is rejected and the edit stays open:
// every asserted code must keep at least one supporting snippet.
func (d *Draft) Save() error {
	if len(d.edited.SupportingText) == 0 {
		return ErrEmptyEvidence
	}
	*d.original = *d.edited
	d.original.RecomputePages()
	return nil
}

// Cancel discards the draft, leaving the original unchanged.
func (d *Draft) Cancel() {
	d.edited = d.original.Clone()
}
