// Package prompt assembles the request handed to the text-generation
// collaborator: the persona, a one-line profile summary, the free-text
// narrative, and the flattened top matches.
package prompt

import (
	"fmt"
	"strings"

	"InvestGuide/internal/domain/models"
)

// Persona is the fixed system instruction for every recommendation request.
const Persona = "You are a friendly financial guidance assistant for new graduates. " +
	"Using the user's profile and the candidate strategies provided, write one short, " +
	"encouraging recommendation in plain language. This is educational guidance, " +
	"not professional financial advice, and you should say so."

// NoContextPlaceholder is used when the user supplied no narrative.
const NoContextPlaceholder = "No additional context provided."

// Payload is the request sent to the generator, exactly once per accepted
// round.
type Payload struct {
	System string
	User   string
}

// Build flattens the profile and top matches into a single user message.
func Build(profile models.UserProfile, matches []models.ScoredMatch) Payload {
	var b strings.Builder

	b.WriteString("User profile: ")
	b.WriteString(summarize(profile))
	b.WriteString("\n\nAdditional context: ")
	if ctx := strings.TrimSpace(profile.NarrativeContext); ctx != "" {
		b.WriteString(ctx)
	} else {
		b.WriteString(NoContextPlaceholder)
	}

	b.WriteString("\n\nTop matched strategies:\n")
	for i, m := range matches {
		s := m.Strategy
		fmt.Fprintf(&b, "%d. %s (match score %d)\n", i+1, s.Name, m.Score)
		fmt.Fprintf(&b, "   Recommended for: %s\n", s.Goals)
		fmt.Fprintf(&b, "   Risk tolerance: %s, Horizon: %s\n", s.RiskTolerance, s.Horizon)
		fmt.Fprintf(&b, "   Description: %s\n", s.Description)
	}

	b.WriteString("\nRecommend the most suitable strategy for this user and explain why in a few sentences.")

	return Payload{System: Persona, User: b.String()}
}

func summarize(p models.UserProfile) string {
	goals := strings.Join(p.Goals, ", ")
	if goals == "" {
		goals = "none stated"
	}
	return fmt.Sprintf("goals: %s; horizon: %s; risk tolerance: %s; knowledge level: %s; monthly income: $%.0f; current savings: $%.0f",
		goals, p.Horizon, p.RiskTolerance, p.KnowledgeLevel, p.MonthlyIncome, p.CurrentSavings)
}
