package models

// Requests for the advisory HTTP endpoints. Defined in domain for consistency
// and reuse. Numeric bounds live here, at the boundary; the core packages
// accept whatever they are handed.

type ProfileRequest struct {
	Goals            []string `json:"goals" validate:"max=10,dive,min=1,max=64"`
	Horizon          string   `json:"horizon" validate:"required,max=64"`
	RiskTolerance    string   `json:"risk_tolerance" validate:"required,oneof=Low Medium High"`
	KnowledgeLevel   string   `json:"knowledge_level" validate:"required,oneof=Beginner Intermediate Advanced"`
	MonthlyIncome    float64  `json:"monthly_income" validate:"gte=0"`
	CurrentSavings   float64  `json:"current_savings" validate:"gte=0"`
	NarrativeContext string   `json:"narrative_context" validate:"max=4000"`
}

// Profile converts the validated request into the core profile value.
func (r *ProfileRequest) Profile() UserProfile {
	return UserProfile{
		Goals:            r.Goals,
		Horizon:          r.Horizon,
		RiskTolerance:    r.RiskTolerance,
		KnowledgeLevel:   r.KnowledgeLevel,
		MonthlyIncome:    r.MonthlyIncome,
		CurrentSavings:   r.CurrentSavings,
		NarrativeContext: r.NarrativeContext,
	}
}

type SimulationRequest struct {
	Label               string  `json:"label" default:"Scenario" validate:"max=64"`
	StartingBalance     float64 `json:"starting_balance" validate:"gte=0"`
	AnnualReturnPct     float64 `json:"annual_return_pct" validate:"gte=-100,lte=100"`
	ShockReturnPct      float64 `json:"shock_return_pct" validate:"gte=-100,lte=100"`
	MonthlyContribution float64 `json:"monthly_contribution" validate:"gte=0"`
	DurationYears       int     `json:"duration_years" validate:"required,gte=1,lte=60"`
	ShockIntervalYears  int     `json:"shock_interval_years" validate:"gte=0,lte=60"` // 0 disables shocks
}

type ScenarioRequest struct {
	Profile    ProfileRequest     `json:"profile" validate:"required"`
	Simulation *SimulationRequest `json:"simulation,omitempty"`
}

type NarrativeRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

type OutlookRequest struct {
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Years      int     `json:"years" default:"10" validate:"gte=1,lte=40"`
	BearPct    float64 `json:"bear_pct" default:"-5" validate:"gte=-100,lte=0"`
	NeutralPct float64 `json:"neutral_pct" default:"5" validate:"gte=0,lte=100"`
	BullPct    float64 `json:"bull_pct" default:"12" validate:"gte=0,lte=100"`
}

type BudgetRequest struct {
	MonthlyIncome      float64 `json:"monthly_income" validate:"gte=0"`
	MonthlyExpenses    float64 `json:"monthly_expenses" validate:"gte=0"`
	StudentLoanBalance float64 `json:"student_loan_balance" validate:"gte=0"`
}
