// Package rates converts annual nominal percentages between the compounding
// bases used across the calculation core. All rates are plain numbers
// (4.4 means 4.4%), matching the input contract of the engine.
package rates

import "math"

// EffectiveAnnualRate converts an annual nominal percentage compounded n
// times per year into the true effective annual percentage:
//
//	((1 + nominal/(n*100))^n - 1) * 100
//
// Used to turn a base rate plus margin into the effective rate quoted in
// disclosures.
func EffectiveAnnualRate(nominalPct float64, compoundingPerYear int) float64 {
	n := float64(compoundingPerYear)
	return (math.Pow(1+nominalPct/(n*100), n) - 1) * 100
}

// PeriodicRate converts an annual percentage into the equivalent nominal
// annual percentage applied once per internal period:
//
//	((1 + annual/100)^(1/n) - 1) * n * 100
//
// The conversion preserves compounding across long horizons; a 5% annual
// rate applied monthly through PeriodicRate reproduces exactly 5% over a
// full year. Small conversion errors here compound materially over a
// 15-25 year projection, so the formula is kept in this exact shape.
func PeriodicRate(annualPct float64, periodsPerYear int) float64 {
	n := float64(periodsPerYear)
	return (math.Pow(1+annualPct/100, 1/n) - 1) * n * 100
}

// PeriodicFraction is the per-period multiplier the recurrences actually
// apply: PeriodicRate scaled back down to a plain fraction.
func PeriodicFraction(annualPct float64, periodsPerYear int) float64 {
	return PeriodicRate(annualPct, periodsPerYear) / (float64(periodsPerYear) * 100)
}
