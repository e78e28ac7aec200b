package simulation

import (
	"github.com/shopspring/decimal"

	"InvestGuide/internal/domain/models"
)

// Outlook computes the closed-form future value of a lump sum under bear,
// neutral and bull average annual returns. Unlike Simulate there are no
// contributions and no stepwise rounding; only the final values are rounded.
func Outlook(amount float64, years int, bearPct, neutralPct, bullPct float64) models.OutlookResult {
	return models.OutlookResult{
		Amount:  amount,
		Years:   years,
		Bear:    futureValue(amount, bearPct, years),
		Neutral: futureValue(amount, neutralPct, years),
		Bull:    futureValue(amount, bullPct, years),
	}
}

func futureValue(amount, pct float64, years int) float64 {
	factor := one.Add(decimal.NewFromFloat(pct).Div(hundred))
	v := decimal.NewFromFloat(amount).Mul(factor.Pow(decimal.NewFromInt(int64(years))))
	return v.Round(2).InexactFloat64()
}

// Budget derives monthly and annual savings from income and expenses, plus a
// flat five-year net-worth projection that ignores investment returns.
func Budget(monthlyIncome, monthlyExpenses, studentLoanBalance float64) models.BudgetSummary {
	monthly := decimal.NewFromFloat(monthlyIncome).Sub(decimal.NewFromFloat(monthlyExpenses))
	annual := monthly.Mul(twelve)
	fiveYear := annual.Mul(decimal.NewFromInt(5)).Sub(decimal.NewFromFloat(studentLoanBalance))

	return models.BudgetSummary{
		MonthlySavings:   monthly.Round(2).InexactFloat64(),
		AnnualSavings:    annual.Round(2).InexactFloat64(),
		FiveYearNetWorth: fiveYear.Round(2).InexactFloat64(),
	}
}
