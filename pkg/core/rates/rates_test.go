package rates

import (
	"math"
	"testing"
)

func TestEffectiveAnnualRate(t *testing.T) {
	tests := []struct {
		name       string
		nominalPct float64
		n          int
		expected   float64
	}{
		{"12% monthly", 12.0, 12, 12.6825},
		{"6% monthly", 6.0, 12, 6.1678},
		{"10% annual is identity", 10.0, 1, 10.0},
		{"zero rate", 0.0, 12, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveAnnualRate(tt.nominalPct, tt.n)
			if math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("EffectiveAnnualRate(%v, %d) = %v, want %v", tt.nominalPct, tt.n, got, tt.expected)
			}
		})
	}
}

func TestPeriodicRate_PreservesCompounding(t *testing.T) {
	// Applying the monthly periodic fraction 12 times must reproduce the
	// annual rate exactly, otherwise the drift compounds over 25 years.
	for _, annual := range []float64{4.4, 6.95, 9.1, 2.0} {
		frac := PeriodicFraction(annual, 12)
		grown := math.Pow(1+frac, 12)
		if math.Abs(grown-(1+annual/100)) > 1e-12 {
			t.Errorf("annual %.2f%%: 12 periods grow %.12f, want %.12f", annual, grown, 1+annual/100)
		}
	}
}

func TestPeriodicRate_Fortnightly(t *testing.T) {
	frac := PeriodicFraction(5.0, 26)
	grown := math.Pow(1+frac, 26)
	if math.Abs(grown-1.05) > 1e-12 {
		t.Errorf("26 fortnights grow %.12f, want 1.05", grown)
	}
}

func TestPeriodicRate_DriftOverLongHorizon(t *testing.T) {
	// $100,000 at 7% compounded via the periodic fraction for 25 years must
	// match direct annual compounding to well under a currency unit.
	frac := PeriodicFraction(7.0, 12)
	balance := 100000.0
	for i := 0; i < 25*12; i++ {
		balance *= 1 + frac
	}
	direct := 100000.0 * math.Pow(1.07, 25)
	t.Logf("periodic: %.4f direct: %.4f", balance, direct)
	if math.Abs(balance-direct) > 0.01 {
		t.Errorf("25y drift = %.6f, want < 0.01", math.Abs(balance-direct))
	}
}
