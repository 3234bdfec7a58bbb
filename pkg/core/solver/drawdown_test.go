package solver

import (
	"math"
	"testing"

	"equity_release/pkg/core/rates"
)

func TestSolveDrawdownForBalance_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		balance float64
		periods int
		annual  float64
	}{
		{"150k over 15y at 7%", 150000, 180, 7.0},
		{"50k over 10y at 5%", 50000, 120, 5.0},
		{"300k over 25y at 9%", 300000, 300, 9.0},
		{"20k over 5y at 0%", 20000, 60, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate := rates.PeriodicFraction(tt.annual, 12)
			drawdown, err := SolveDrawdownForBalance(tt.balance, tt.periods, rate)
			if err != nil {
				t.Fatalf("SolveDrawdownForBalance failed: %v", err)
			}
			terminal := TerminalBalance(tt.balance, drawdown, tt.periods, rate)
			t.Logf("drawdown %.2f/period, terminal %.4f", drawdown, terminal)
			if math.Abs(terminal) >= 1.0 {
				t.Errorf("terminal balance %.4f, want |terminal| < 1 currency unit", terminal)
			}
		})
	}
}

func TestSolveDrawdownForBalance_ZeroRateIsStraightLine(t *testing.T) {
	drawdown, err := SolveDrawdownForBalance(12000, 12, 0)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	// With no interest, 12 equal drawdowns of ~1000 exhaust 12000.
	if math.Abs(drawdown-1000) > 1.0 {
		t.Errorf("drawdown = %.2f, want ~1000", drawdown)
	}
}

func TestSolveBalanceForDrawdown_RoundTrip(t *testing.T) {
	rate := rates.PeriodicFraction(6.5, 12)
	balance, err := SolveBalanceForDrawdown(800, 240, rate)
	if err != nil {
		t.Fatalf("SolveBalanceForDrawdown failed: %v", err)
	}
	terminal := TerminalBalance(balance, 800, 240, rate)
	t.Logf("balance %.2f, terminal %.4f", balance, terminal)
	if math.Abs(terminal) >= 1.0 {
		t.Errorf("terminal balance %.4f, want |terminal| < 1", terminal)
	}
	// PV of the schedule sits strictly below the undiscounted total.
	if balance >= 800*240 {
		t.Errorf("balance %.2f not discounted below %v", balance, 800*240)
	}
}

func TestSolversAreInverses(t *testing.T) {
	rate := rates.PeriodicFraction(7.25, 12)
	drawdown, err := SolveDrawdownForBalance(180000, 180, rate)
	if err != nil {
		t.Fatalf("forward solve failed: %v", err)
	}
	balance, err := SolveBalanceForDrawdown(drawdown, 180, rate)
	if err != nil {
		t.Fatalf("inverse solve failed: %v", err)
	}
	t.Logf("180000 -> %.2f/period -> %.2f", drawdown, balance)
	// Both ends converge to one currency unit, so the reconstructed balance
	// sits within a few units of the original.
	if math.Abs(balance-180000) > 10 {
		t.Errorf("reconstructed balance %.2f, want within 10 of 180000", balance)
	}
}
