package review

import "github.com/raflens/raflens/internal/domain/raf"

// parentOf gives the prerequisite level for each filter type. Facility has
// no prerequisite; provider requires facility; member requires provider.
var parentOf = map[FilterType]FilterType{
	FilterProvider: FilterFacility,
	FilterMember:   FilterProvider,
}

// ApplyFilter adds or replaces one level of the drill-down chain. The call
// is silently ignored when the prerequisite parent level is not active.
// Replacing an existing level discards every deeper level: changing the
// facility clears any provider and member filter below it. Returns whether
// the chain changed.
func (s *Session) ApplyFilter(t FilterType, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if parent, ok := parentOf[t]; ok && !s.hasFilter(parent) {
		return false
	}

	for i, f := range s.filters {
		if f.Type == t {
			s.filters = append(s.filters[:i], FilterLevel{Type: t, Value: value})
			return true
		}
	}
	s.filters = append(s.filters, FilterLevel{Type: t, Value: value})
	return true
}

// ClearFilter truncates the chain to the given level, removing that level
// and everything below it in the hierarchy.
func (s *Session) ClearFilter(level int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if level < 0 || level >= len(s.filters) {
		return
	}
	s.filters = s.filters[:level]
}

// SwitchView changes the display mode. The flat member view always shows
// the unfiltered list, so leaving the drill-down view stashes the chain and
// clears it; returning to drill-down restores the stashed chain exactly.
func (s *Session) SwitchView(v ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v == s.view {
		return
	}
	s.view = v
	if v == ViewMember {
		s.savedFilters = s.filters
		s.filters = nil
	} else {
		s.filters = s.savedFilters
	}
}

// FilteredMembers narrows the member list by each active filter in chain
// order, matching exactly on the corresponding field. Filters only apply in
// the drill-down view; the flat view passes everything through.
func (s *Session) FilteredMembers() []*raf.MemberImprovement {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != ViewProvider {
		return s.members
	}

	data := s.members
	for _, f := range s.filters {
		narrowed := make([]*raf.MemberImprovement, 0, len(data))
		for _, m := range data {
			if filterField(m, f.Type) == f.Value {
				narrowed = append(narrowed, m)
			}
		}
		data = narrowed
	}
	return data
}

// Drillable reports whether rows can still be clicked to narrow further;
// filtering bottoms out at member granularity.
func (s *Session) Drillable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.filters) < maxFilterDepth
}

func (s *Session) hasFilter(t FilterType) bool {
	for _, f := range s.filters {
		if f.Type == t {
			return true
		}
	}
	return false
}

func filterField(m *raf.MemberImprovement, t FilterType) string {
	switch t {
	case FilterFacility:
		return m.Facility
	case FilterProvider:
		return m.Provider
	default:
		return m.Name
	}
}
