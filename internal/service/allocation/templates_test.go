package allocation

import "testing"

func TestForRiskProfileCaseInsensitive(t *testing.T) {
	a, err := ForRiskProfile("  MODERATE ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.RiskProfile != "Moderate" {
		t.Fatalf("unexpected profile %q", a.RiskProfile)
	}
}

func TestForRiskProfileUnknown(t *testing.T) {
	if _, err := ForRiskProfile("reckless"); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestSplitsSumToHundred(t *testing.T) {
	for _, name := range Profiles() {
		a, err := ForRiskProfile(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		total := 0
		for _, e := range a.Split {
			total += e.Percent
		}
		if total != 100 {
			t.Fatalf("%s: split sums to %d", name, total)
		}
	}
}
