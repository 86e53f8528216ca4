package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/raflens/raflens/internal/domain/evidence"
	"github.com/raflens/raflens/internal/domain/raf"
	"github.com/raflens/raflens/internal/platform/analysis"
	"github.com/raflens/raflens/internal/platform/session"
)

// Analyzer is the outbound boundary to the analysis service.
type Analyzer interface {
	Analyze(ctx context.Context, files []analysis.Upload) ([]analysis.PatientResponse, error)
}

// Service owns the review sessions: it runs the one analysis call that
// creates a session and serves every filtered read over it. Aggregates are
// recomputed from the filtered subset on every read so they always reflect
// the current drill-down state.
type Service struct {
	analyzer Analyzer
	sessions *session.Store[*Session]
	baseRate float64
	logger   zerolog.Logger
}

func NewService(analyzer Analyzer, sessions *session.Store[*Session], baseRate float64, logger zerolog.Logger) *Service {
	return &Service{
		analyzer: analyzer,
		sessions: sessions,
		baseRate: baseRate,
		logger:   logger,
	}
}

// CreateSession submits the uploaded files for analysis and wraps the
// normalized result set in a new session. Any transport or parse failure
// aborts the whole analysis: no session is created and no partial results
// survive.
func (s *Service) CreateSession(ctx context.Context, files []analysis.Upload) (*Session, error) {
	patients, err := s.analyzer.Analyze(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("analyze clinical notes: %w", err)
	}
	members, err := analysis.ToMembers(patients)
	if err != nil {
		return nil, fmt.Errorf("analyze clinical notes: %w", err)
	}

	sess := NewSession(uuid.NewString(), members)
	s.sessions.Put(sess.ID, sess)
	s.logger.Info().
		Str("session_id", sess.ID).
		Int("members", len(members)).
		Msg("review session created")
	return sess, nil
}

// Session looks up an active session by ID.
func (s *Service) Session(id string) (*Session, error) {
	return s.sessions.Get(id)
}

// DeleteSession drops a session and all its in-memory state.
func (s *Service) DeleteSession(id string) {
	s.sessions.Delete(id)
}

// Scores recomputes RAFScores over the session's currently filtered view.
func (s *Service) Scores(id string) (raf.RAFScores, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return raf.RAFScores{}, err
	}
	return raf.Aggregate(sess.FilteredMembers()), nil
}

// RevenueProjection maps the filtered view's RAF totals onto dollar
// amounts via the configured per-point rate.
type RevenueProjection struct {
	Current          float64 `json:"current"`
	Potential        float64 `json:"potential"`
	Gap              float64 `json:"gap"`
	CurrentDisplay   string  `json:"current_display"`
	PotentialDisplay string  `json:"potential_display"`
	GapDisplay       string  `json:"gap_display"`
}

// Revenue projects current and potential revenue for the filtered view.
func (s *Service) Revenue(id string) (RevenueProjection, error) {
	scores, err := s.Scores(id)
	if err != nil {
		return RevenueProjection{}, err
	}
	current := raf.Revenue(scores.TotalCurrent, s.baseRate)
	potential := raf.Revenue(scores.TotalCurrent+scores.TotalPotential, s.baseRate)
	return RevenueProjection{
		Current:          current,
		Potential:        potential,
		Gap:              potential - current,
		CurrentDisplay:   raf.FormatCurrency(current),
		PotentialDisplay: raf.FormatCurrency(potential),
		GapDisplay:       raf.FormatCurrency(potential - current),
	}, nil
}

// Document resolves a member document inside a session, for the evidence
// editing surface.
func (s *Service) Document(sessionID, memberID, docID string) (*evidence.MemberDocument, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	for _, m := range sess.Members() {
		if m.MemberID != memberID {
			continue
		}
		for _, d := range m.Documents {
			if d.ID == docID {
				return d, nil
			}
		}
		return nil, fmt.Errorf("document %q not found for member %q", docID, memberID)
	}
	return nil, fmt.Errorf("member %q not found", memberID)
}
