package review

import (
	"fmt"
	"sync"
	"time"

	"github.com/raflens/raflens/internal/domain/raf"
)

// ViewMode selects between the flat member table and the drill-down
// provider table.
type ViewMode string

const (
	ViewMember   ViewMode = "member"
	ViewProvider ViewMode = "provider"
)

// ParseViewMode validates a view string from the API boundary.
func ParseViewMode(s string) (ViewMode, error) {
	switch v := ViewMode(s); v {
	case ViewMember, ViewProvider:
		return v, nil
	}
	return "", fmt.Errorf("unknown view mode %q", s)
}

// FilterType identifies one level of the drill-down hierarchy.
type FilterType string

const (
	FilterFacility FilterType = "facility"
	FilterProvider FilterType = "provider"
	FilterMember   FilterType = "member"
)

// ParseFilterType validates a filter type from the API boundary.
func ParseFilterType(s string) (FilterType, error) {
	switch t := FilterType(s); t {
	case FilterFacility, FilterProvider, FilterMember:
		return t, nil
	}
	return "", fmt.Errorf("unknown filter type %q", s)
}

// FilterLevel is one active level of the drill-down chain.
type FilterLevel struct {
	Type  FilterType `json:"type"`
	Value string     `json:"value"`
}

// maxFilterDepth is the depth of the facility → provider → member
// hierarchy; at full depth rows bottom out and are no longer drillable.
const maxFilterDepth = 3

// Session is one reviewer's working state: the analysis result set plus the
// current view mode, drill-down chain, and care-management contact statuses.
// All of it is in-memory and lost when the session is evicted or the
// process exits.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	mu           sync.Mutex
	members      []*raf.MemberImprovement
	view         ViewMode
	filters      []FilterLevel
	savedFilters []FilterLevel
	contact      map[string]string
}

// NewSession wraps an analysis result set in a fresh session starting in
// the flat member view with no filters.
func NewSession(id string, members []*raf.MemberImprovement) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		members:   members,
		view:      ViewMember,
		contact:   make(map[string]string),
	}
}

// Members returns the full, unfiltered member list.
func (s *Session) Members() []*raf.MemberImprovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members
}

// View returns the active view mode.
func (s *Session) View() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Filters returns a copy of the active filter chain.
func (s *Session) Filters() []FilterLevel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FilterLevel(nil), s.filters...)
}
