package models

// StrategyRecord is one row of the strategy catalog. The catalog is loaded
// once at startup and never mutated; every scoring pass sees all rows.
type StrategyRecord struct {
	Name           string `json:"name"`
	Goals          string `json:"goals"` // comma-separated goal tags, matched as free text
	RiskTolerance  string `json:"risk_tolerance"`
	Horizon        string `json:"horizon"` // free-text label, e.g. "Short to Medium"
	KnowledgeLevel string `json:"knowledge_level"`
	Description    string `json:"description"`
}

// UserProfile is the financial profile collected for a single round. It is
// built fresh per submission and not persisted beyond the round.
type UserProfile struct {
	Goals            []string `json:"goals"`
	Horizon          string   `json:"horizon"` // e.g. "Short (1-3 years)"; leading token drives matching
	RiskTolerance    string   `json:"risk_tolerance"`
	KnowledgeLevel   string   `json:"knowledge_level"`
	MonthlyIncome    float64  `json:"monthly_income"`
	CurrentSavings   float64  `json:"current_savings"`
	NarrativeContext string   `json:"narrative_context,omitempty"`
}

// ScoredMatch pairs a catalog row with its match score for one profile.
type ScoredMatch struct {
	Strategy StrategyRecord `json:"strategy"`
	Score    int            `json:"score"`
}
