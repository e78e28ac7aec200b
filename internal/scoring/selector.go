package scoring

import (
	"sort"

	"InvestGuide/internal/domain/models"
)

// SelectTop scores every catalog row against the profile and returns the n
// best matches, highest score first. The sort is stable: rows with equal
// scores keep their catalog order. Score-0 rows are valid output; whether to
// warn about weak matches is a presentation decision, not ours. An empty
// catalog yields an empty slice.
func SelectTop(catalog []models.StrategyRecord, profile models.UserProfile, n int) []models.ScoredMatch {
	if n <= 0 || len(catalog) == 0 {
		return nil
	}

	matches := make([]models.ScoredMatch, len(catalog))
	for i, rec := range catalog {
		matches[i] = models.ScoredMatch{Strategy: rec, Score: Score(rec, profile)}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > n {
		matches = matches[:n]
	}
	return matches
}
