// Package allocation serves the fixed asset-class templates shown next to
// the questionnaire. The splits are static reference material, not advice
// tailored to a profile.
package allocation

import (
	"fmt"
	"strings"

	"InvestGuide/internal/domain/models"
)

var templates = map[string]models.Allocation{
	"conservative": {
		RiskProfile: "Conservative",
		Split: []models.AllocationEntry{
			{AssetClass: "Bonds", Percent: 70},
			{AssetClass: "Dividend Stocks", Percent: 20},
			{AssetClass: "Real Estate Funds", Percent: 10},
		},
	},
	"moderate": {
		RiskProfile: "Moderate",
		Split: []models.AllocationEntry{
			{AssetClass: "Index Funds", Percent: 40},
			{AssetClass: "ETFs", Percent: 30},
			{AssetClass: "Real Estate / REITs", Percent: 20},
			{AssetClass: "Crypto", Percent: 10},
		},
	},
	"aggressive": {
		RiskProfile: "Aggressive",
		Split: []models.AllocationEntry{
			{AssetClass: "Tech Stocks / Growth ETFs", Percent: 50},
			{AssetClass: "Crypto", Percent: 30},
			{AssetClass: "Startups / Alternative Assets", Percent: 20},
		},
	},
}

// ForRiskProfile returns the template for a risk profile name,
// case-insensitively.
func ForRiskProfile(name string) (models.Allocation, error) {
	a, ok := templates[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return models.Allocation{}, fmt.Errorf("unknown risk profile %q", name)
	}
	return a, nil
}

// Profiles lists the known risk profile names.
func Profiles() []string {
	return []string{"conservative", "moderate", "aggressive"}
}
