package usecase

import (
	"context"
	"strings"
	"time"

	"InvestGuide/internal/domain/models"
	domrepo "InvestGuide/internal/domain/repository"
	"InvestGuide/internal/scoring"
	"InvestGuide/internal/service/llm"
	"InvestGuide/internal/service/prompt"
	"InvestGuide/internal/session"
	"InvestGuide/internal/simulation"
	xlogger "InvestGuide/pkg/logger"
)

// Advisor orchestrates the advisory round lifecycle: scoring the catalog,
// obtaining the recommendation text, recording history, and the bounded
// round accounting. One Advisor serves all sessions; each session owns its
// own state in the store.
type Advisor struct {
	catalog   []models.StrategyRecord
	sessions  *session.Store
	generator llm.Generator
	publisher domrepo.Publisher
	archiver  domrepo.Archiver
	metrics   domrepo.Metrics
	logger    *xlogger.Logger
	topN      int
}

// NewAdvisor creates the advisory use case. Publisher and archiver may be
// no-ops when the side channels are disabled.
func NewAdvisor(
	catalog []models.StrategyRecord,
	sessions *session.Store,
	generator llm.Generator,
	publisher domrepo.Publisher,
	archiver domrepo.Archiver,
	metrics domrepo.Metrics,
	logger *xlogger.Logger,
	topN int,
) *Advisor {
	return &Advisor{
		catalog:   catalog,
		sessions:  sessions,
		generator: generator,
		publisher: publisher,
		archiver:  archiver,
		metrics:   metrics,
		logger:    logger,
		topN:      topN,
	}
}

// Catalog returns the loaded strategy table.
func (a *Advisor) Catalog() []models.StrategyRecord {
	return a.catalog
}

// CreateSession starts a new advisory session.
func (a *Advisor) CreateSession(ctx context.Context) (*session.Session, error) {
	s, err := a.sessions.Create(ctx)
	if err != nil {
		return nil, err
	}
	a.metrics.RecordSessionCreated()
	return s, nil
}

// Session loads a session by id.
func (a *Advisor) Session(ctx context.Context, id string) (*session.Session, error) {
	return a.sessions.Get(ctx, id)
}

// ScenarioResult is the outcome of one accepted round.
type ScenarioResult struct {
	Session        *session.Session       `json:"-"`
	Round          int                    `json:"round"`
	NextRound      int                    `json:"next_round"`
	Limited        bool                   `json:"limited"`
	Matches        []models.ScoredMatch   `json:"matches"`
	Recommendation string                 `json:"recommendation"`
	Simulation     *models.SimulationRun  `json:"simulation,omitempty"`
}

// SubmitScenario runs one full round: merge the pending narrative into the
// profile, score the catalog, call the generator, then record the round and
// advance the counter. The generator call happens before any session
// mutation, so a service failure leaves the session exactly as it was and
// the user may simply resubmit.
func (a *Advisor) SubmitScenario(ctx context.Context, sessionID string, profile models.UserProfile, sim *simulation.Input) (*ScenarioResult, error) {
	s, err := a.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !s.CanSubmit() {
		a.metrics.RecordRound("rejected_limit")
		return nil, session.ErrRoundLimit
	}

	profile.NarrativeContext = mergeNarrative(profile.NarrativeContext, s.PendingNarrative)

	matches := scoring.SelectTop(a.catalog, profile, a.topN)
	for _, m := range matches {
		a.metrics.RecordMatchScore(m.Score)
	}

	payload := prompt.Build(profile, matches)

	start := time.Now()
	text, err := a.generator.Generate(ctx, payload.System, payload.User)
	a.metrics.RecordGeneratorLatency(time.Since(start).Seconds())
	if err != nil {
		a.metrics.RecordRound("generator_error")
		a.metrics.RecordError("recommendation_service")
		a.logger.Error("recommendation generation failed",
			xlogger.String("session", sessionID),
			xlogger.Int("round", s.Round),
			xlogger.Error(err),
		)
		return nil, err
	}

	record := models.RoundRecord{
		Round:          s.Round,
		Matches:        matches,
		Recommendation: text,
		CreatedAt:      time.Now().UTC(),
	}

	var run *models.SimulationRun
	s, err = a.sessions.Update(ctx, sessionID, func(s *session.Session) error {
		if err := s.CompleteRound(record); err != nil {
			return err
		}
		s.TakeNarrative()
		if sim != nil {
			r := simulation.Simulate(*sim)
			run = &r
			a.metrics.RecordSimulation()
			return s.AppendSimulation(r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.metrics.RecordRound("completed")
	a.emitRound(ctx, s.ID, record, profile)

	return &ScenarioResult{
		Session:        s,
		Round:          record.Round,
		NextRound:      s.Round,
		Limited:        s.Limited(),
		Matches:        matches,
		Recommendation: text,
		Simulation:     run,
	}, nil
}

// PreviewMatches scores the catalog for a profile without consuming a round
// or calling the generator. Still rejected once the session is limited.
func (a *Advisor) PreviewMatches(ctx context.Context, sessionID string, profile models.UserProfile) ([]models.ScoredMatch, error) {
	s, err := a.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !s.CanSubmit() {
		return nil, session.ErrRoundLimit
	}
	profile.NarrativeContext = mergeNarrative(profile.NarrativeContext, s.PendingNarrative)
	return scoring.SelectTop(a.catalog, profile, a.topN), nil
}

// Simulate runs a standalone growth projection and appends it to the session
// history.
func (a *Advisor) Simulate(ctx context.Context, sessionID string, in simulation.Input) (*models.SimulationRun, error) {
	var run models.SimulationRun
	_, err := a.sessions.Update(ctx, sessionID, func(s *session.Session) error {
		if !s.CanSubmit() {
			return session.ErrRoundLimit
		}
		run = simulation.Simulate(in)
		return s.AppendSimulation(run)
	})
	if err != nil {
		return nil, err
	}
	a.metrics.RecordSimulation()
	return &run, nil
}

// AppendNarrative adds a text fragment to the session's pending narrative.
func (a *Advisor) AppendNarrative(ctx context.Context, sessionID, text string) (*session.Session, error) {
	return a.sessions.Update(ctx, sessionID, func(s *session.Session) error {
		s.AppendNarrative(text)
		return nil
	})
}

// Reset returns the session to round 1 with cleared histories.
func (a *Advisor) Reset(ctx context.Context, sessionID string) (*session.Session, error) {
	return a.sessions.Update(ctx, sessionID, func(s *session.Session) error {
		s.Reset()
		return nil
	})
}

// emitRound publishes and archives the completed round, best-effort. The
// round has already been committed; side-channel failures are logged and
// counted only.
func (a *Advisor) emitRound(ctx context.Context, sessionID string, rec models.RoundRecord, profile models.UserProfile) {
	event := &models.RoundEvent{
		SessionID:      sessionID,
		Round:          rec.Round,
		RiskTolerance:  profile.RiskTolerance,
		Horizon:        profile.Horizon,
		KnowledgeLevel: profile.KnowledgeLevel,
		Recommendation: rec.Recommendation,
		CreatedAt:      rec.CreatedAt,
	}
	if len(rec.Matches) > 0 {
		event.TopStrategy = rec.Matches[0].Strategy.Name
		event.TopScore = rec.Matches[0].Score
	}

	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, event); err != nil {
			a.metrics.RecordError("round_publish")
			a.logger.Warn("round event publish failed", xlogger.String("session", sessionID), xlogger.Error(err))
		}
	}
	if a.archiver != nil {
		if err := a.archiver.Archive(ctx, event); err != nil {
			a.metrics.RecordError("round_archive")
			a.logger.Warn("round archive failed", xlogger.String("session", sessionID), xlogger.Error(err))
		}
	}
}

func mergeNarrative(typed, pending string) string {
	typed = strings.TrimSpace(typed)
	pending = strings.TrimSpace(pending)
	switch {
	case typed == "":
		return pending
	case pending == "":
		return typed
	default:
		return typed + " " + pending
	}
}
