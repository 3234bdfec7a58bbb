// Package projection simulates the loan balance, home value and home equity
// of a reverse-mortgage loan forward in time, under the regulator-mandated
// base and stress scenarios, and derives the disclosure views built on the
// trajectory. Everything here is pure computation on request-scoped values;
// nothing is cached or shared between calls.
package projection

import (
	"equity_release/pkg/core/assumption"
	"equity_release/pkg/core/eligibility"
)

// Scenario names a parameter perturbation of the shared recurrence.
type Scenario string

const (
	// ScenarioBase runs the configured rates unchanged.
	ScenarioBase Scenario = "base"
	// ScenarioHousePriceStress forces house-price inflation to the
	// policy's shocked level.
	ScenarioHousePriceStress Scenario = "house_price_stress"
	// ScenarioRateStress adds the policy's fixed shock to the total rate.
	ScenarioRateStress Scenario = "rate_stress"
	// ScenarioInterestPayment forces the interest-only payment on
	// regardless of the base configuration.
	ScenarioInterestPayment Scenario = "interest_payment"
	// ScenarioPoint reruns the base recurrence and extracts only the two
	// regulator-mandated disclosure points.
	ScenarioPoint Scenario = "point"
)

// Input is the fully-typed record a projection call consumes. Required:
// profile valuation and age(s). Everything else defaults sensibly.
type Input struct {
	Profile  eligibility.BorrowerProfile `json:"profile"`
	Terms    eligibility.LoanTerms       `json:"terms"`
	Economic assumption.Economic         `json:"economic"`
	Policy   assumption.Policy           `json:"policy"`

	// LoanLimit is the authoritative limit from the eligibility validator.
	// Zero means derive it from the LVR schedule alone.
	LoanLimit float64 `json:"loanLimit"`

	// AccruedInterest already owing at inception, carried into the
	// opening balance.
	AccruedInterest float64 `json:"accruedInterest"`

	// PensionIncome is the borrower's annual pension at inception,
	// indexed by inflation once per year (stepped, not smoothed).
	PensionIncome float64 `json:"pensionIncome"`

	// Optional interest-only payment, subtracted directly from the
	// balance while within its contracted period when enabled (always
	// enabled under ScenarioInterestPayment).
	InterestPayment        float64 `json:"interestPayment"`
	InterestPaymentPeriods int     `json:"interestPaymentPeriods"`
	InterestPaymentEnabled bool    `json:"interestPaymentEnabled"`

	// PeriodsPerYear of the internal clock. Defaults to monthly.
	PeriodsPerYear int `json:"periodsPerYear"`
}

// Period is one row of the trajectory. Rows are built strictly forward:
// period t is a pure function of period t-1 and the scenario parameters,
// and is never revisited once appended.
type Period struct {
	Index int     `json:"index"`
	Age   float64 `json:"age"`

	LumpDrawdown    float64 `json:"lumpDrawdown"`
	RegularDrawdown float64 `json:"regularDrawdown"`
	Fee             float64 `json:"fee"`
	InterestPayment float64 `json:"interestPayment"`

	Balance       float64 `json:"balance"`
	HouseValue    float64 `json:"houseValue"`
	HomeEquity    float64 `json:"homeEquity"`
	HomeEquityPct float64 `json:"homeEquityPct"`
	Income        float64 `json:"income"`

	CumulativeLump    float64 `json:"cumulativeLump"`
	CumulativeRegular float64 `json:"cumulativeRegular"`
	CumulativeFees    float64 `json:"cumulativeFees"`
	CumulativeDrawn   float64 `json:"cumulativeDrawn"`
}

// AccruedInterest is always derived from the balance and the cumulative
// drawn total, never accumulated independently, so rounding cannot drift.
func (p Period) AccruedInterest() float64 {
	return p.Balance - p.CumulativeDrawn
}

// Trajectory is the ordered, append-only period sequence for one scenario.
// Index 0 is inception.
type Trajectory struct {
	Scenario Scenario `json:"scenario"`
	Periods  []Period `json:"periods"`
}

// Final returns the terminal period.
func (tr Trajectory) Final() Period {
	return tr.Periods[len(tr.Periods)-1]
}

// PointDisclosure is the regulator-mandated point-in-time view at one of
// the two disclosure horizons.
type PointDisclosure struct {
	Years         int     `json:"years"`
	Age           float64 `json:"age"`
	HouseValue    float64 `json:"houseValue"`
	Balance       float64 `json:"balance"`
	HomeEquity    float64 `json:"homeEquity"`
	HomeEquityPct float64 `json:"homeEquityPct"`
}

// Series is the chart-oriented list extraction: stock series sampled at the
// anchor years, the income flow summed over the 12 periods following each
// anchor (never the instantaneous value).
type Series struct {
	Years         []int     `json:"years"`
	Balance       []float64 `json:"balance"`
	HouseValue    []float64 `json:"houseValue"`
	HomeEquity    []float64 `json:"homeEquity"`
	HomeEquityPct []float64 `json:"homeEquityPct"`
	Income        []float64 `json:"income"`
}

// Result bundles the base trajectory with its named scenario variants and
// the summary extractions callers feed into disclosures and charts.
type Result struct {
	Base             Trajectory        `json:"base"`
	HousePriceStress Trajectory        `json:"housePriceStress"`
	RateStress       Trajectory        `json:"rateStress"`
	InterestPayment  Trajectory        `json:"interestPayment"`
	Points           []PointDisclosure `json:"points"`
	Series           Series            `json:"series"`

	// EffectiveComparisonRate is the effective annual comparison rate
	// disclosed alongside the projection.
	EffectiveComparisonRate float64 `json:"effectiveComparisonRate"`
}
