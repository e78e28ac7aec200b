// Package simulation projects portfolio growth with scheduled downturn years.
// All currency values are rounded to 2 decimals at every step and the rounded
// value is carried into the next year; the compounding of that rounding is
// part of the observable contract, so everything runs on decimals rather than
// floats.
package simulation

import (
	"github.com/shopspring/decimal"

	"InvestGuide/internal/domain/models"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Input is the full parameter set for one projection. No bounds are enforced
// here; callers validate ranges before handing the input over.
type Input struct {
	Label               string
	StartingBalance     float64
	AnnualReturnPct     float64
	ShockReturnPct      float64
	MonthlyContribution float64
	DurationYears       int
	ShockIntervalYears  int // 0 means no shock years
}

// Simulate runs the projection year by year. Each year the annual contribution
// is added before growth is applied; a shock year uses the shock return rate
// instead of the baseline. Output series include the year-0 starting value.
func Simulate(in Input) models.SimulationRun {
	growth := one.Add(decimal.NewFromFloat(in.AnnualReturnPct).Div(hundred))
	shock := one.Add(decimal.NewFromFloat(in.ShockReturnPct).Div(hundred))
	contrib := decimal.NewFromFloat(in.MonthlyContribution).Mul(twelve)

	run := models.SimulationRun{
		Label:          in.Label,
		Years:          make([]int, 0, in.DurationYears+1),
		PortfolioValue: make([]float64, 0, in.DurationYears+1),
		NetWorth:       make([]float64, 0, in.DurationYears+1),
		ShockYears:     []int{},
	}

	value := decimal.NewFromFloat(in.StartingBalance).Round(2)
	run.Years = append(run.Years, 0)
	run.PortfolioValue = append(run.PortfolioValue, value.InexactFloat64())
	run.NetWorth = append(run.NetWorth, netWorth(value, contrib, in.DurationYears))

	for y := 1; y <= in.DurationYears; y++ {
		value = value.Add(contrib)
		if in.ShockIntervalYears > 0 && y%in.ShockIntervalYears == 0 {
			value = value.Mul(shock)
			run.ShockYears = append(run.ShockYears, y)
		} else {
			value = value.Mul(growth)
		}
		value = value.Round(2)

		run.Years = append(run.Years, y)
		run.PortfolioValue = append(run.PortfolioValue, value.InexactFloat64())
		run.NetWorth = append(run.NetWorth, netWorth(value, contrib, in.DurationYears-y))
	}

	return run
}

// netWorth adds the contributions still to arrive over the remaining horizon.
func netWorth(value, annualContrib decimal.Decimal, yearsLeft int) float64 {
	remaining := annualContrib.Mul(decimal.NewFromInt(int64(yearsLeft)))
	return value.Add(remaining).Round(2).InexactFloat64()
}
