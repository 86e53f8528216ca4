package review

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/raflens/raflens/internal/platform/analysis"
	"github.com/raflens/raflens/internal/platform/session"
)

type mockAnalyzer struct {
	patients []analysis.PatientResponse
	err      error
	calls    int
}

func (m *mockAnalyzer) Analyze(ctx context.Context, files []analysis.Upload) ([]analysis.PatientResponse, error) {
	m.calls++
	return m.patients, m.err
}

func wirePatient(member, facility, provider string) analysis.PatientResponse {
	return analysis.PatientResponse{
		BasicData: analysis.BasicData{Member: member, Facility: facility, Provider: provider},
		RAFScores: analysis.WireRAFScores{
			CurrentRAF:     "1.5",
			AIDeltaRAF:     "0.2",
			DroppedHCCRAF:  "0.1",
			MissingPOC:     "0.05",
			TotalPotential: "0.35",
		},
	}
}

func newTestReviewService(analyzer *mockAnalyzer) *Service {
	store, _ := session.NewStore[*Session](8)
	return NewService(analyzer, store, 1080.0, zerolog.Nop())
}

func TestCreateSession(t *testing.T) {
	analyzer := &mockAnalyzer{patients: []analysis.PatientResponse{
		wirePatient("Alice Nguyen", "Mercy General", "Dr. Adams"),
		wirePatient("Bob Ortiz", "St. Luke's", "Dr. Chen"),
	}}
	svc := newTestReviewService(analyzer)

	sess, err := svc.CreateSession(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.ID == "" {
		t.Error("expected a generated session ID")
	}
	if analyzer.calls != 1 {
		t.Errorf("expected one analysis call, got %d", analyzer.calls)
	}
	if got := len(sess.Members()); got != 2 {
		t.Errorf("expected 2 members, got %d", got)
	}
	if sess.View() != ViewMember {
		t.Errorf("new sessions should start in the flat view, got %q", sess.View())
	}

	// The session must be retrievable through the store.
	got, err := svc.Session(sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != sess {
		t.Error("lookup returned a different session")
	}
}

func TestCreateSession_AnalyzerError(t *testing.T) {
	analyzer := &mockAnalyzer{err: errors.New("upstream unavailable")}
	svc := newTestReviewService(analyzer)

	if _, err := svc.CreateSession(context.Background(), nil); err == nil {
		t.Fatal("expected error from failing analyzer")
	}
}

func TestCreateSession_MalformedScoreFailsWholeAnalysis(t *testing.T) {
	bad := wirePatient("Cara Singh", "Mercy General", "Dr. Baker")
	bad.RAFScores.DroppedHCCRAF = "n/a"
	analyzer := &mockAnalyzer{patients: []analysis.PatientResponse{
		wirePatient("Alice Nguyen", "Mercy General", "Dr. Adams"),
		bad,
	}}
	svc := newTestReviewService(analyzer)

	if _, err := svc.CreateSession(context.Background(), nil); err == nil {
		t.Fatal("expected error for malformed droppped_hcc_raf")
	}
}

func TestDeleteSession(t *testing.T) {
	analyzer := &mockAnalyzer{patients: []analysis.PatientResponse{
		wirePatient("Alice Nguyen", "Mercy General", "Dr. Adams"),
	}}
	svc := newTestReviewService(analyzer)
	sess, err := svc.CreateSession(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc.DeleteSession(sess.ID)
	if _, err := svc.Session(sess.ID); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestScores_ReflectActiveFilters(t *testing.T) {
	analyzer := &mockAnalyzer{patients: []analysis.PatientResponse{
		wirePatient("Alice Nguyen", "Mercy General", "Dr. Adams"),
		wirePatient("Bob Ortiz", "St. Luke's", "Dr. Chen"),
	}}
	svc := newTestReviewService(analyzer)
	sess, err := svc.CreateSession(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all, err := svc.Scores(sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if all.TotalCurrent != 3.0 {
		t.Errorf("expected total current 3.0 over both members, got %v", all.TotalCurrent)
	}

	sess.SwitchView(ViewProvider)
	sess.ApplyFilter(FilterFacility, "Mercy General")

	filtered, err := svc.Scores(sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filtered.TotalCurrent != 1.5 {
		t.Errorf("expected total current 1.5 for one facility, got %v", filtered.TotalCurrent)
	}
}

func TestRevenue(t *testing.T) {
	analyzer := &mockAnalyzer{patients: []analysis.PatientResponse{
		wirePatient("Alice Nguyen", "Mercy General", "Dr. Adams"),
	}}
	svc := newTestReviewService(analyzer)
	sess, err := svc.CreateSession(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rev, err := svc.Revenue(sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 1.5 RAF * $1080 = $1620 current; (1.5 + 0.35) * $1080 = $1998 potential.
	if rev.Current != 1620 {
		t.Errorf("expected current revenue 1620, got %v", rev.Current)
	}
	if rev.Potential != 1998 {
		t.Errorf("expected potential revenue 1998, got %v", rev.Potential)
	}
	if rev.Gap != 378 {
		t.Errorf("expected gap 378, got %v", rev.Gap)
	}
	if rev.CurrentDisplay != "$1,620" {
		t.Errorf("expected display $1,620, got %q", rev.CurrentDisplay)
	}
}

func TestDocument_Lookup(t *testing.T) {
	analyzer := &mockAnalyzer{patients: []analysis.PatientResponse{
		wirePatient("Alice Nguyen", "Mercy General", "Dr. Adams"),
	}}
	svc := newTestReviewService(analyzer)
	sess, err := svc.CreateSession(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc, err := svc.Document(sess.ID, "Alice Nguyen", "doc_Alice Nguyen")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Facility != "Mercy General" {
		t.Errorf("expected document facility Mercy General, got %q", doc.Facility)
	}

	if _, err := svc.Document(sess.ID, "Alice Nguyen", "doc_missing"); err == nil {
		t.Error("expected error for unknown document")
	}
	if _, err := svc.Document(sess.ID, "Nobody", "doc_x"); err == nil {
		t.Error("expected error for unknown member")
	}
}
