package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/raflens/raflens/internal/domain/evidence"
	"github.com/raflens/raflens/internal/domain/raf"
	"github.com/raflens/raflens/internal/platform/hcc"
)

// ToMembers normalizes the wire response into the domain model. Every RAF
// field is parsed strictly: a single malformed decimal fails the whole
// analysis, matching the no-partial-results contract.
func ToMembers(patients []PatientResponse) ([]*raf.MemberImprovement, error) {
	members := make([]*raf.MemberImprovement, 0, len(patients))
	for _, p := range patients {
		m, err := toMember(p)
		if err != nil {
			return nil, fmt.Errorf("patient %q: %w", p.BasicData.Member, err)
		}
		members = append(members, m)
	}
	return members, nil
}

func toMember(p PatientResponse) (*raf.MemberImprovement, error) {
	scores := p.RAFScores
	current, err := parseRAF("current_raf", scores.CurrentRAF)
	if err != nil {
		return nil, err
	}
	aiDelta, err := parseRAF("ai_delta_raf", scores.AIDeltaRAF)
	if err != nil {
		return nil, err
	}
	dropped, err := parseRAF("droppped_hcc_raf", scores.DroppedHCCRAF)
	if err != nil {
		return nil, err
	}
	missingPOC, err := parseRAF("missing_poc", scores.MissingPOC)
	if err != nil {
		return nil, err
	}
	totalPotential, err := parseRAF("total_potential", scores.TotalPotential)
	if err != nil {
		return nil, err
	}

	doc := &evidence.MemberDocument{
		ID:          "doc_" + p.BasicData.Member,
		Title:       "Clinical Notes - " + p.BasicData.Facility,
		URL:         p.DownloadURL,
		Date:        time.Now().Format("2006-01-02"),
		Provider:    p.BasicData.Provider,
		Facility:    p.BasicData.Facility,
		Categories:  buildCategories(p.Metadata),
		PageWiseOCR: p.PageWiseOCR,
	}

	return &raf.MemberImprovement{
		MemberID:                  p.BasicData.Member,
		Name:                      p.BasicData.Member,
		Facility:                  p.BasicData.Facility,
		Provider:                  p.BasicData.Provider,
		CurrentHCCValue:           current,
		AIIdentifiedRAF:           aiDelta,
		DroppedHCCValue:           dropped,
		MissedICDImprovement:      missingPOC,
		TotalPotentialImprovement: totalPotential,
		Documents:                 []*evidence.MemberDocument{doc},
	}, nil
}

// buildCategories maps the per-code, per-page evidence spans onto one
// current-hcc category. Empty metadata yields no categories at all.
func buildCategories(metadata map[string]map[string][]WireSpan) []*evidence.DocumentCategory {
	if len(metadata) == 0 {
		return nil
	}

	codes := make([]string, 0, len(metadata))
	for code := range metadata {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	cat := &evidence.DocumentCategory{Type: evidence.CategoryCurrentHCC}
	for _, code := range codes {
		e := &evidence.CodeEvidence{
			Code:        code,
			Description: hcc.Describe(code),
			RAFValue:    hcc.RAFValue(code),
		}
		pages := make([]string, 0, len(metadata[code]))
		for page := range metadata[code] {
			pages = append(pages, page)
		}
		sort.Slice(pages, func(i, j int) bool {
			a, _ := strconv.Atoi(pages[i])
			b, _ := strconv.Atoi(pages[j])
			return a < b
		})
		for _, page := range pages {
			pageNum, err := strconv.Atoi(page)
			if err != nil {
				continue
			}
			for _, span := range metadata[code][page] {
				if span.Text == "" {
					continue
				}
				start, end := span.StartIdx, span.EndIdx
				e.SupportingText = append(e.SupportingText, evidence.Snippet{
					Text:       span.Text,
					PageNumber: pageNum,
					StartIdx:   &start,
					EndIdx:     &end,
				})
			}
		}
		e.RecomputePages()
		cat.Codes = append(cat.Codes, e)
	}
	return []*evidence.DocumentCategory{cat}
}

func parseRAF(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed %s value %q", field, raw)
	}
	return v, nil
}
