// Package session holds the per-user advisory session: a bounded round
// counter, the accumulated round and simulation history, and the pending
// narrative text fed in by the transcript channel. Sessions are explicit
// values passed by handle; nothing here is process-wide.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"InvestGuide/internal/domain/models"
)

var (
	// ErrRoundLimit is returned when a submission arrives after the final
	// round has been used. Only Reset leaves this state.
	ErrRoundLimit = errors.New("session: round limit reached")

	// ErrNotFound is returned by the store for unknown or expired sessions.
	ErrNotFound = errors.New("session: not found")
)

// Session is one user's advisory session. Round starts at 1 and advances by
// one per completed round; once it passes MaxRounds the session is limited
// and only Reset is accepted.
type Session struct {
	ID                    string                 `json:"id"`
	Round                 int                    `json:"round"`
	MaxRounds             int                    `json:"max_rounds"`
	RecommendationHistory []models.RoundRecord   `json:"recommendation_history"`
	SimulationHistory     []models.SimulationRun `json:"simulation_history"`
	PendingNarrative      string                 `json:"pending_narrative,omitempty"`
	CreatedAt             time.Time              `json:"created_at"`
}

// New returns a fresh session in round 1.
func New(id string, maxRounds int) *Session {
	return &Session{
		ID:        id,
		Round:     1,
		MaxRounds: maxRounds,
		CreatedAt: time.Now().UTC(),
	}
}

// Limited reports whether all rounds have been used.
func (s *Session) Limited() bool {
	return s.Round > s.MaxRounds
}

// CanSubmit reports whether scoring, recommendation and simulation
// submissions are still accepted.
func (s *Session) CanSubmit() bool {
	return !s.Limited()
}

// CompleteRound appends the round record and advances the counter. It is the
// only way the counter moves forward, and callers invoke it only after the
// recommendation text has been obtained: a failed generation never touches
// the session.
func (s *Session) CompleteRound(rec models.RoundRecord) error {
	if s.Limited() {
		return ErrRoundLimit
	}
	if rec.Round != s.Round {
		return fmt.Errorf("session: round record %d does not match current round %d", rec.Round, s.Round)
	}
	s.RecommendationHistory = append(s.RecommendationHistory, rec)
	s.Round++
	return nil
}

// AppendSimulation records a simulation run in the session history.
func (s *Session) AppendSimulation(run models.SimulationRun) error {
	if s.Limited() {
		return ErrRoundLimit
	}
	s.SimulationHistory = append(s.SimulationHistory, run)
	return nil
}

// AppendNarrative adds a transcribed or typed fragment to the pending
// narrative. Fragments are only ever appended, separated by a single space,
// with surrounding whitespace trimmed. Empty fragments are dropped.
func (s *Session) AppendNarrative(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if s.PendingNarrative == "" {
		s.PendingNarrative = text
		return
	}
	s.PendingNarrative += " " + text
}

// TakeNarrative returns the pending narrative and clears it. Called when a
// round consumes the accumulated text.
func (s *Session) TakeNarrative() string {
	text := s.PendingNarrative
	s.PendingNarrative = ""
	return text
}

// Reset returns the session to round 1 with both histories and the pending
// narrative cleared. Legal in any state.
func (s *Session) Reset() {
	s.Round = 1
	s.RecommendationHistory = nil
	s.SimulationHistory = nil
	s.PendingNarrative = ""
}
