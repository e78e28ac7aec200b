package simulation

import (
	"reflect"
	"testing"
)

func TestSimulateShockFinalYear(t *testing.T) {
	run := Simulate(Input{
		Label:              "Baseline",
		StartingBalance:    1000,
		AnnualReturnPct:    7,
		ShockReturnPct:     -15,
		DurationYears:      6,
		ShockIntervalYears: 6,
	})

	wantValues := []float64{1000.00, 1070.00, 1144.90, 1225.04, 1310.79, 1402.55, 1192.17}
	if !reflect.DeepEqual(run.PortfolioValue, wantValues) {
		t.Fatalf("portfolio values: expected %v, got %v", wantValues, run.PortfolioValue)
	}
	if !reflect.DeepEqual(run.ShockYears, []int{6}) {
		t.Fatalf("expected shock year 6, got %v", run.ShockYears)
	}
	if run.Label != "Baseline" {
		t.Fatalf("expected label carried through, got %q", run.Label)
	}
}

func TestSimulateContributionsNoShocks(t *testing.T) {
	run := Simulate(Input{
		StartingBalance:     0,
		AnnualReturnPct:     10,
		ShockReturnPct:      -10,
		MonthlyContribution: 100,
		DurationYears:       2,
		ShockIntervalYears:  0,
	})

	wantValues := []float64{0.00, 1320.00, 2772.00}
	if !reflect.DeepEqual(run.PortfolioValue, wantValues) {
		t.Fatalf("portfolio values: expected %v, got %v", wantValues, run.PortfolioValue)
	}
	wantNetWorth := []float64{2400.00, 2520.00, 2772.00}
	if !reflect.DeepEqual(run.NetWorth, wantNetWorth) {
		t.Fatalf("net worth: expected %v, got %v", wantNetWorth, run.NetWorth)
	}
	if len(run.ShockYears) != 0 {
		t.Fatalf("interval 0 must disable shocks, got %v", run.ShockYears)
	}
}

func TestSimulateRepeatedShocks(t *testing.T) {
	run := Simulate(Input{
		StartingBalance:    10000,
		AnnualReturnPct:    8,
		ShockReturnPct:     -20,
		DurationYears:      4,
		ShockIntervalYears: 2,
	})

	wantValues := []float64{10000.00, 10800.00, 8640.00, 9331.20, 7464.96}
	if !reflect.DeepEqual(run.PortfolioValue, wantValues) {
		t.Fatalf("portfolio values: expected %v, got %v", wantValues, run.PortfolioValue)
	}
	if !reflect.DeepEqual(run.ShockYears, []int{2, 4}) {
		t.Fatalf("expected shock years [2 4], got %v", run.ShockYears)
	}
}

func TestSimulateSeriesShape(t *testing.T) {
	const years = 15
	run := Simulate(Input{StartingBalance: 500, AnnualReturnPct: 5, DurationYears: years})

	if len(run.Years) != years+1 || len(run.PortfolioValue) != years+1 || len(run.NetWorth) != years+1 {
		t.Fatalf("expected %d points per series, got years=%d values=%d net=%d",
			years+1, len(run.Years), len(run.PortfolioValue), len(run.NetWorth))
	}
	for i, y := range run.Years {
		if y != i {
			t.Fatalf("year axis must be 0..%d, position %d holds %d", years, i, y)
		}
	}
}

func TestSimulateNetWorthConvergesToValue(t *testing.T) {
	run := Simulate(Input{
		StartingBalance:     2500,
		AnnualReturnPct:     6,
		MonthlyContribution: 50,
		DurationYears:       5,
	})

	last := len(run.Years) - 1
	if run.NetWorth[last] != run.PortfolioValue[last] {
		t.Fatalf("final net worth %v must equal final portfolio value %v",
			run.NetWorth[last], run.PortfolioValue[last])
	}
}
