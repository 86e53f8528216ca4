package review

// ContactStatus returns the care-management contact status recorded for a
// member, defaulting to "pending" when none has been set.
func (s *Session) ContactStatus(memberID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.contact[memberID]; ok {
		return st
	}
	return "pending"
}

// SetContactStatus records a contact status for a member. Validation of the
// status value belongs to the caller.
func (s *Session) SetContactStatus(memberID, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contact[memberID] = status
}
