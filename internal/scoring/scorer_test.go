package scoring

import (
	"testing"

	"InvestGuide/internal/domain/models"
)

func record() models.StrategyRecord {
	return models.StrategyRecord{
		Name:           "Index Fund Core",
		Goals:          "Wealth Growth, Early Retirement",
		RiskTolerance:  "Medium",
		Horizon:        "Long (7+ years)",
		KnowledgeLevel: "Beginner",
		Description:    "Broad-market index funds.",
	}
}

func TestScoreAllDimensions(t *testing.T) {
	p := models.UserProfile{
		Goals:          []string{"Wealth Growth"},
		Horizon:        "Long (7+ years)",
		RiskTolerance:  "Medium",
		KnowledgeLevel: "Beginner",
	}
	if got := Score(record(), p); got != 4 {
		t.Fatalf("expected full score 4, got %d", got)
	}
}

func TestScoreNoDimensions(t *testing.T) {
	p := models.UserProfile{
		Goals:          []string{"Travel"},
		Horizon:        "Short (1-3 years)",
		RiskTolerance:  "High",
		KnowledgeLevel: "Advanced",
	}
	if got := Score(record(), p); got != 0 {
		t.Fatalf("expected score 0, got %d", got)
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	p := models.UserProfile{
		Goals:          []string{"wEALTH gROWTH"},
		Horizon:        "LONG (7+ YEARS)",
		RiskTolerance:  "mediuM",
		KnowledgeLevel: "BEGINNER",
	}
	if got := Score(record(), p); got != 4 {
		t.Fatalf("expected case-insensitive full score, got %d", got)
	}
}

func TestScoreHorizonLeadingToken(t *testing.T) {
	// Only the token before the parenthetical range participates in
	// matching, so the range text in the label must not matter.
	rec := record()
	rec.Horizon = "Short to Medium"

	cases := []struct {
		label string
		want  int
	}{
		{"Short (1-3 years)", 1},
		{"Medium (3-7 years)", 1},
		{"Long (7+ years)", 0},
		{"", 0},
	}
	for _, tc := range cases {
		p := models.UserProfile{Horizon: tc.label, RiskTolerance: "High", KnowledgeLevel: "Advanced"}
		if got := Score(rec, p); got != tc.want {
			t.Fatalf("horizon %q: expected %d, got %d", tc.label, tc.want, got)
		}
	}
}

func TestScoreMultipleGoalsCountOnce(t *testing.T) {
	p := models.UserProfile{
		Goals:          []string{"Wealth Growth", "Early Retirement"},
		Horizon:        "Short (1-3 years)",
		RiskTolerance:  "High",
		KnowledgeLevel: "Advanced",
	}
	// Both goals match the record but the dimension contributes exactly 1.
	if got := Score(record(), p); got != 1 {
		t.Fatalf("expected goal dimension to count once, got %d", got)
	}
}

func TestScoreBounds(t *testing.T) {
	profiles := []models.UserProfile{
		{},
		{Goals: []string{""}},
		{Goals: []string{"Wealth"}, Horizon: "Long", RiskTolerance: "Medium", KnowledgeLevel: "Beginner"},
	}
	for i, p := range profiles {
		got := Score(record(), p)
		if got < 0 || got > MaxScore {
			t.Fatalf("profile %d: score %d out of [0,%d]", i, got, MaxScore)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	p := models.UserProfile{
		Goals:          []string{"Early Retirement"},
		Horizon:        "Long (7+ years)",
		RiskTolerance:  "Medium",
		KnowledgeLevel: "Intermediate",
	}
	first := Score(record(), p)
	for i := 0; i < 10; i++ {
		if got := Score(record(), p); got != first {
			t.Fatalf("score changed between identical calls: %d then %d", first, got)
		}
	}
}
