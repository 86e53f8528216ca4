package caremgmt

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/raflens/raflens/internal/domain/review"
)

// Service builds the care-manager work list over a review session. The
// list is derived from the full (unfiltered) member set: outreach is not
// scoped by the coder's drill-down state.
type Service struct {
	logger zerolog.Logger
}

func NewService(logger zerolog.Logger) *Service {
	return &Service{logger: logger}
}

// ActionList returns the members needing follow-up, with their current
// contact status.
func (s *Service) ActionList(sess *review.Session) []Action {
	actions := []Action{}
	for _, m := range sess.Members() {
		if m.DroppedHCCValue <= 0 && m.MissedICDImprovement <= 0 {
			continue
		}
		actions = append(actions, Action{
			MemberID:             m.MemberID,
			Name:                 m.Name,
			Facility:             m.Facility,
			Provider:             m.Provider,
			DroppedHCCValue:      m.DroppedHCCValue,
			MissedICDImprovement: m.MissedICDImprovement,
			Status:               Status(sess.ContactStatus(m.MemberID)),
		})
	}
	return actions
}

// SetStatus records a contact status for a member of the session.
func (s *Service) SetStatus(sess *review.Session, memberID string, status Status) error {
	for _, m := range sess.Members() {
		if m.MemberID == memberID {
			sess.SetContactStatus(memberID, string(status))
			s.logger.Info().
				Str("session_id", sess.ID).
				Str("member_id", memberID).
				Str("status", string(status)).
				Msg("contact status updated")
			return nil
		}
	}
	return fmt.Errorf("member %q not found", memberID)
}
