package raf

import "github.com/raflens/raflens/internal/domain/evidence"

// MemberImprovement is one patient's coding-opportunity snapshot as returned
// by the analysis service. The improvement components and their total are
// computed upstream; this service never re-derives the sum.
type MemberImprovement struct {
	MemberID                  string                       `json:"member_id"`
	Name                      string                       `json:"name"`
	Facility                  string                       `json:"facility"`
	Provider                  string                       `json:"provider"`
	CurrentHCCValue           float64                      `json:"current_hcc_value"`
	AIIdentifiedRAF           float64                      `json:"ai_identified_raf"`
	DroppedHCCValue           float64                      `json:"dropped_hcc_value"`
	MissedICDImprovement      float64                      `json:"missed_icd_improvement"`
	TotalPotentialImprovement float64                      `json:"total_potential_improvement"`
	Documents                 []*evidence.MemberDocument   `json:"documents"`
}

// RAFScores is the aggregate view over a member list. It has no identity of
// its own: it is recomputed whenever the underlying list or filter changes.
type RAFScores struct {
	Current            float64 `json:"current"`
	Potential          float64 `json:"potential"`
	PercentageToTarget int     `json:"percentage_to_target"`
	TotalCurrent       float64 `json:"total_current"`
	TotalPotential     float64 `json:"total_potential"`
}

// Averages holds the column-wise means rendered in the table footer.
type Averages struct {
	CurrentRAF     float64 `json:"current_raf"`
	AIDeltaRAF     float64 `json:"ai_delta_raf"`
	DroppedHCC     float64 `json:"dropped_hcc"`
	MissingPOC     float64 `json:"missing_poc"`
	TotalPotential float64 `json:"total_potential"`
}
