package caremgmt

import "fmt"

// Status tracks outreach progress for one member.
type Status string

const (
	StatusPending   Status = "pending"
	StatusContacted Status = "contacted"
	StatusScheduled Status = "scheduled"
)

// ParseStatus validates a contact status from the API boundary.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusContacted, StatusScheduled:
		return st, nil
	}
	return "", fmt.Errorf("unknown contact status %q", s)
}

// Action is one member whose conditions need care-management follow-up:
// either RAF was lost to undocumented conditions this period or a plan of
// care is still outstanding.
type Action struct {
	MemberID             string  `json:"member_id"`
	Name                 string  `json:"name"`
	Facility             string  `json:"facility"`
	Provider             string  `json:"provider"`
	DroppedHCCValue      float64 `json:"dropped_hcc_value"`
	MissedICDImprovement float64 `json:"missed_icd_improvement"`
	Status               Status  `json:"status"`
}
