package raf

import "math"

// Aggregate reduces a member list to its RAFScores. Current and potential
// are per-member averages for display; the totals feed revenue projection.
// An empty list yields all-zero scores.
func Aggregate(members []*MemberImprovement) RAFScores {
	if len(members) == 0 {
		return RAFScores{}
	}

	var totalCurrent, totalPotential float64
	for _, m := range members {
		totalCurrent += m.CurrentHCCValue
		totalPotential += m.TotalPotentialImprovement
	}

	n := float64(len(members))
	current := totalCurrent / n
	potential := totalPotential / n

	// A non-empty list of all-zero members would otherwise divide by zero;
	// treat it the same as the empty list and report 0%.
	pct := 0
	if current+potential != 0 {
		pct = int(math.Round(current / (current + potential) * 100))
	}

	return RAFScores{
		Current:            current,
		Potential:          potential,
		PercentageToTarget: pct,
		TotalCurrent:       totalCurrent,
		TotalPotential:     totalPotential,
	}
}

// MemberAverages computes the column-wise means shown in the table footer.
// Returns nil for an empty list (no footer row rendered).
func MemberAverages(members []*MemberImprovement) *Averages {
	if len(members) == 0 {
		return nil
	}

	avg := &Averages{}
	for _, m := range members {
		avg.CurrentRAF += m.CurrentHCCValue
		avg.AIDeltaRAF += m.AIIdentifiedRAF
		avg.DroppedHCC += m.DroppedHCCValue
		avg.MissingPOC += m.MissedICDImprovement
		avg.TotalPotential += m.TotalPotentialImprovement
	}

	n := float64(len(members))
	avg.CurrentRAF /= n
	avg.AIDeltaRAF /= n
	avg.DroppedHCC /= n
	avg.MissingPOC /= n
	avg.TotalPotential /= n
	return avg
}
