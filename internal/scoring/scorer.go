// Package scoring matches catalog strategies against a user profile. Scores
// count matched dimensions one point each; there is no partial weighting.
package scoring

import (
	"strings"

	"InvestGuide/internal/domain/models"
)

// MaxScore is the number of scored profile dimensions.
const MaxScore = 4

// Score returns how many profile dimensions the strategy satisfies, in
// [0, MaxScore]. All comparisons are case-insensitive. Goal matching is
// substring containment against the record's goals text, and horizon matching
// uses the leading token of the profile label so "Short (1-3 years)" matches
// a record horizon of "Short to Medium".
func Score(rec models.StrategyRecord, profile models.UserProfile) int {
	score := 0

	if strings.EqualFold(rec.RiskTolerance, profile.RiskTolerance) {
		score++
	}

	recGoals := strings.ToLower(rec.Goals)
	for _, goal := range profile.Goals {
		if goal == "" {
			continue
		}
		if strings.Contains(recGoals, strings.ToLower(goal)) {
			score++
			break
		}
	}

	if tok := horizonToken(profile.Horizon); tok != "" {
		if strings.Contains(strings.ToLower(rec.Horizon), tok) {
			score++
		}
	}

	if strings.EqualFold(rec.KnowledgeLevel, profile.KnowledgeLevel) {
		score++
	}

	return score
}

// horizonToken extracts the matchable part of a horizon label: the first
// whitespace-separated token, lowercased, so parenthetical ranges in the
// label never participate in matching.
func horizonToken(label string) string {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
