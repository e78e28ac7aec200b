package models

import "time"

// RoundRecord is the durable outcome of one completed advisory round.
type RoundRecord struct {
	Round          int           `json:"round"`
	Matches        []ScoredMatch `json:"matches"`
	Recommendation string        `json:"recommendation"`
	CreatedAt      time.Time     `json:"created_at"`
}

// RoundEvent is the flattened form of a completed round, published to the
// events topic and archived for offline analytics. Recommendation text is
// carried verbatim; the service never interprets it.
type RoundEvent struct {
	SessionID      string    `json:"session_id"`
	Round          int       `json:"round"`
	TopStrategy    string    `json:"top_strategy"`
	TopScore       int       `json:"top_score"`
	RiskTolerance  string    `json:"risk_tolerance"`
	Horizon        string    `json:"horizon"`
	KnowledgeLevel string    `json:"knowledge_level"`
	Recommendation string    `json:"recommendation"`
	CreatedAt      time.Time `json:"created_at"`
}
