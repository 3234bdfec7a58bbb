package projection

import (
	"math"

	"equity_release/pkg/core/assumption"
	"equity_release/pkg/core/calcerr"
	"equity_release/pkg/core/eligibility"
	"equity_release/pkg/core/rates"
)

// Engine projects one validated loan. Construction resolves the borrower
// clock and converts every annual rate to the internal periodic basis;
// projecting a scenario then walks the recurrence forward without touching
// any shared state, so one engine may project all scenarios concurrently.
type Engine struct {
	input Input

	minAge         int
	periodsPerYear int
	horizonYears   int

	// Disclosure horizons for the point scenario, in years from inception.
	pointYears [2]int
}

// NewEngine validates required fields and precomputes the projection
// horizon. Missing inputs fail fast with a DataError naming the field; no
// computation is attempted.
func NewEngine(input Input) (*Engine, error) {
	if input.Profile.Valuation <= 0 {
		return nil, &calcerr.DataError{Field: "valuation"}
	}
	if input.Profile.Age <= 0 {
		return nil, &calcerr.DataError{Field: "age"}
	}
	if input.Profile.LoanType == eligibility.LoanTypeJoint && input.Profile.SecondAge <= 0 {
		return nil, &calcerr.DataError{Field: "secondAge"}
	}

	if input.PeriodsPerYear <= 0 {
		input.PeriodsPerYear = 12
	}
	// A zero-valued policy would collapse the horizon and the derived loan
	// limit to nothing; treat it as unset like the other optional inputs.
	if input.Policy == (assumption.Policy{}) {
		input.Policy = assumption.DefaultPolicy()
	}
	if input.Terms.EstablishmentFeeRate == 0 {
		input.Terms.EstablishmentFeeRate = input.Policy.EstablishmentFeeRatePct
	}

	e := &Engine{
		input:          input,
		minAge:         input.Profile.YoungestAge(),
		periodsPerYear: input.PeriodsPerYear,
	}

	// Run to the later of the minimum terminal age and a minimum number
	// of years beyond the current age; both constants are regulator
	// influenced.
	terminalAge := e.minAge + input.Policy.MinYearsBeyond
	if input.Policy.MinTerminalAge > terminalAge {
		terminalAge = input.Policy.MinTerminalAge
	}
	e.horizonYears = terminalAge - e.minAge

	switch {
	case e.minAge < 75:
		e.pointYears[0] = 15
	case e.minAge < 80:
		e.pointYears[0] = 10
	default:
		e.pointYears[0] = 5
	}
	e.pointYears[1] = e.horizonYears

	return e, nil
}

// HorizonYears exposes the computed projection horizon.
func (e *Engine) HorizonYears() int {
	return e.horizonYears
}

// PointYears exposes the two disclosure horizons in years from inception.
func (e *Engine) PointYears() [2]int {
	return e.pointYears
}

// loanLimit is the authoritative limit: the caller-supplied one when
// present, otherwise derived from the LVR schedule.
func (e *Engine) loanLimit() float64 {
	if e.input.LoanLimit > 0 {
		return e.input.LoanLimit
	}
	p := e.input.Policy
	lvr := p.BaseLVRPct + float64(e.minAge-p.BaseLVRAge)*p.LVRIncrementPct
	if e.input.Profile.Dwelling == eligibility.DwellingApartment {
		lvr -= p.ApartmentDiscountPct
	}
	lvr *= 1 - e.input.Terms.ProtectedEquityPct/100
	return math.Max(lvr, 0) / 100 * e.input.Profile.Valuation
}

// scenarioParams resolves the perturbed rate set for one scenario.
type scenarioParams struct {
	periodicRate    float64 // per-period lending rate fraction
	periodicHPI     float64 // per-period house-price inflation fraction
	interestPayment bool    // interest-only payment active
}

func (e *Engine) params(scenario Scenario) scenarioParams {
	totalRate := e.input.Economic.TotalRate()
	hpi := e.input.Economic.HousePriceInflation
	interestPayment := e.input.InterestPaymentEnabled

	switch scenario {
	case ScenarioHousePriceStress:
		hpi = e.input.Policy.StressedHPIPct
	case ScenarioRateStress:
		totalRate += e.input.Policy.InterestRateShockPct
	case ScenarioInterestPayment:
		interestPayment = true
	}

	return scenarioParams{
		periodicRate:    rates.PeriodicFraction(totalRate, e.periodsPerYear),
		periodicHPI:     rates.PeriodicFraction(hpi, e.periodsPerYear),
		interestPayment: interestPayment,
	}
}

// Project walks the recurrence for one scenario and returns its trajectory.
func (e *Engine) Project(scenario Scenario) Trajectory {
	params := e.params(scenario)
	terms := e.input.Terms
	n := e.periodsPerYear
	totalPeriods := e.horizonYears * n
	feeRate := terms.EstablishmentFeeRate / 100

	// The contracted regular schedules are simulated period by period, so
	// the lump sum booked at inception is the total requested amount less
	// the portion attributable to those schedules.
	topUp := e.onEngineClock(terms.TopUpDrawdown)
	care := e.onEngineClock(terms.CareDrawdown)
	regularTotal := regularCommitment(terms.TopUpDrawdown) + regularCommitment(terms.CareDrawdown)
	lump := math.Max(terms.PurposeTotal()-regularTotal, 0)
	// The validator's loan limit is authoritative; the booked lump never
	// exceeds it.
	lump = math.Min(lump, e.loanLimit())
	lumpFee := lump * feeRate

	periods := make([]Period, 0, totalPeriods+1)

	opening := Period{
		Index:           0,
		Age:             float64(e.minAge),
		LumpDrawdown:    lump,
		Fee:             lumpFee,
		Balance:         lump + lumpFee + e.input.AccruedInterest,
		HouseValue:      e.input.Profile.Valuation,
		Income:          e.input.PensionIncome / float64(n),
		CumulativeLump:  lump,
		CumulativeFees:  lumpFee,
		CumulativeDrawn: lump + lumpFee,
	}
	opening.HomeEquity = opening.HouseValue - opening.Balance
	opening.HomeEquityPct = equityPct(opening.Balance, opening.HouseValue)
	periods = append(periods, opening)

	prev := opening
	for t := 1; t <= totalPeriods; t++ {
		regular := topUp.at(t) + care.at(t)
		fee := regular * feeRate

		interestPayment := 0.0
		if params.interestPayment && e.input.InterestPayment > 0 && t <= e.input.InterestPaymentPeriods {
			interestPayment = e.input.InterestPayment
		}

		totalDrawdown := regular + fee

		cur := Period{
			Index:           t,
			Age:             prev.Age + 1/float64(n),
			RegularDrawdown: regular,
			Fee:             fee,
			InterestPayment: interestPayment,
			Balance:         prev.Balance*(1+params.periodicRate) - interestPayment + totalDrawdown,
			HouseValue:      prev.HouseValue * (1 + params.periodicHPI),

			CumulativeLump:    prev.CumulativeLump,
			CumulativeRegular: prev.CumulativeRegular + regular,
			CumulativeFees:    prev.CumulativeFees + fee,
			CumulativeDrawn:   prev.CumulativeDrawn + totalDrawdown,
		}
		cur.HomeEquity = cur.HouseValue - cur.Balance
		cur.HomeEquityPct = equityPct(cur.Balance, cur.HouseValue)

		// Pension indexes by inflation once per year, stepped.
		yearIndex := (t - 1) / n
		pension := e.input.PensionIncome / float64(n) * math.Pow(1+e.input.Economic.InflationRate/100, float64(yearIndex))
		cur.Income = pension + regular

		periods = append(periods, cur)
		prev = cur
	}

	return Trajectory{Scenario: scenario, Periods: periods}
}

// ProjectAll runs every named scenario variant and assembles the summary
// extractions. Each variant re-walks the recurrence with its own parameters
// and shares no mutable state with the others.
func (e *Engine) ProjectAll() *Result {
	base := e.Project(ScenarioBase)

	result := &Result{
		Base:             base,
		HousePriceStress: e.Project(ScenarioHousePriceStress),
		RateStress:       e.Project(ScenarioRateStress),
		InterestPayment:  e.Project(ScenarioInterestPayment),
		Points:           e.Points(base),
		Series:           e.Series(base),

		EffectiveComparisonRate: rates.EffectiveAnnualRate(e.input.Economic.ComparisonRate(), e.periodsPerYear),
	}
	return result
}

// regularCommitment is the total contractually scheduled amount of one
// regular stream, the portion backed out of the inception lump sum.
func regularCommitment(d eligibility.RegularDrawdown) float64 {
	if !d.Active() {
		return 0
	}
	return d.Amount * float64(d.ContractedPeriods)
}

// engineSchedule is a regular stream restated on the engine clock: the
// amount paid per engine period and the engine-period count the contracted
// schedule spans.
type engineSchedule struct {
	amount  float64
	periods int
}

// at returns the stream's amount while period t is inside the contracted
// schedule. The plan period count may be longer; it is a customer-facing
// expectation, never a payment trigger.
func (s engineSchedule) at(t int) float64 {
	if t > s.periods {
		return 0
	}
	return s.amount
}

// onEngineClock converts a contracted schedule's frequency onto the engine
// clock, preserving its annual flow rate and contracted duration. A
// fortnightly stream on a monthly clock pays 26/12 of its amount per period
// and finishes in 12/26 of its period count, rounded up to a whole engine
// period.
func (e *Engine) onEngineClock(d eligibility.RegularDrawdown) engineSchedule {
	if !d.Active() {
		return engineSchedule{}
	}
	sppy := d.Frequency.PeriodsPerYear()
	if sppy == e.periodsPerYear {
		return engineSchedule{amount: d.Amount, periods: d.ContractedPeriods}
	}
	ratio := float64(sppy) / float64(e.periodsPerYear)
	return engineSchedule{
		amount:  d.Amount * ratio,
		periods: int(math.Ceil(float64(d.ContractedPeriods) / ratio)),
	}
}

func equityPct(balance, houseValue float64) float64 {
	if houseValue <= 0 {
		return 0
	}
	return math.Max(1-balance/houseValue, 0) * 100
}
