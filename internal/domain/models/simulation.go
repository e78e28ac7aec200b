package models

// SimulationRun is the year-by-year output of one growth projection.
// All series have length DurationYears+1, including the year-0 value.
type SimulationRun struct {
	Label          string    `json:"label"`
	Years          []int     `json:"years"`
	PortfolioValue []float64 `json:"portfolio_value"`
	NetWorth       []float64 `json:"net_worth,omitempty"`
	ShockYears     []int     `json:"shock_years"`
}

// OutlookResult holds bear/neutral/bull future values of a lump sum over a
// fixed horizon.
type OutlookResult struct {
	Amount  float64 `json:"amount"`
	Years   int     `json:"years"`
	Bear    float64 `json:"bear"`
	Neutral float64 `json:"neutral"`
	Bull    float64 `json:"bull"`
}

// BudgetSummary is the savings and net-worth projection excluding investment
// returns.
type BudgetSummary struct {
	MonthlySavings   float64 `json:"monthly_savings"`
	AnnualSavings    float64 `json:"annual_savings"`
	FiveYearNetWorth float64 `json:"five_year_net_worth"`
}

// Allocation is a fixed asset-class split for a named risk profile.
type Allocation struct {
	RiskProfile string            `json:"risk_profile"`
	Split       []AllocationEntry `json:"split"`
}

// AllocationEntry is one asset class and its share of the allocation.
type AllocationEntry struct {
	AssetClass string `json:"asset_class"`
	Percent    int    `json:"percent"`
}
