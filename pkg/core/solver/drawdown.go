// Package solver reconciles fixed-horizon balance/drawdown pairs by bisection
// over the terminal-balance recurrence shared with the projection engine.
// It backs the legacy simplified projections and the maximum-drawdown figure
// the eligibility validator reports for income products.
package solver

import (
	"math"

	"equity_release/pkg/core/calcerr"
)

const (
	// maxIterations is a termination guarantee, never an expected outcome.
	maxIterations = 100

	// tolerance is one currency unit on the terminal balance.
	tolerance = 1.0
)

// TerminalBalance runs a level drawdown against an opening balance for a
// fixed number of periods and returns the closing balance. Interest for a
// period accrues on the mid-period balance (opening balance less half the
// drawdown), modelling the drawdown as occurring evenly through the period.
// periodicRate is the per-period fraction, e.g. rates.PeriodicFraction.
func TerminalBalance(openingBalance, drawdown float64, horizonPeriods int, periodicRate float64) float64 {
	balance := openingBalance
	for t := 0; t < horizonPeriods; t++ {
		interest := (balance - drawdown/2) * periodicRate
		balance = balance - drawdown + interest
	}
	return balance
}

// SolveDrawdownForBalance finds the level per-period drawdown that exhausts
// openingBalance over horizonPeriods, leaving a terminal balance within one
// currency unit of zero.
func SolveDrawdownForBalance(openingBalance float64, horizonPeriods int, periodicRate float64) (float64, error) {
	low, high := 0.0, openingBalance
	for i := 0; i < maxIterations; i++ {
		mid := (low + high) / 2
		terminal := TerminalBalance(openingBalance, mid, horizonPeriods, periodicRate)
		if math.Abs(terminal) < tolerance {
			return mid, nil
		}
		if terminal > 0 {
			// Balance left over: draw harder.
			low = mid
		} else {
			high = mid
		}
	}
	return 0, &calcerr.ComputationError{Op: "solve drawdown for balance", Iterations: maxIterations}
}

// SolveBalanceForDrawdown is the inverse search: the opening balance that a
// level drawdown of targetDrawdown exhausts over horizonPeriods.
func SolveBalanceForDrawdown(targetDrawdown float64, horizonPeriods int, periodicRate float64) (float64, error) {
	// The present value of the schedule never exceeds the undiscounted total.
	low, high := 0.0, targetDrawdown*float64(horizonPeriods)
	for i := 0; i < maxIterations; i++ {
		mid := (low + high) / 2
		terminal := TerminalBalance(mid, targetDrawdown, horizonPeriods, periodicRate)
		if math.Abs(terminal) < tolerance {
			return mid, nil
		}
		if terminal > 0 {
			high = mid
		} else {
			low = mid
		}
	}
	return 0, &calcerr.ComputationError{Op: "solve balance for drawdown", Iterations: maxIterations}
}
