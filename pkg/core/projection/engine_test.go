package projection

import (
	"math"
	"testing"

	"equity_release/pkg/core/assumption"
	"equity_release/pkg/core/calcerr"
	"equity_release/pkg/core/eligibility"
)

func testInput() Input {
	return Input{
		Profile: eligibility.BorrowerProfile{
			LoanType:  eligibility.LoanTypeSingle,
			Age:       65,
			Dwelling:  eligibility.DwellingHouse,
			Valuation: 750000,
			Postcode:  "2000",
		},
		Terms: eligibility.LoanTerms{
			TopUpAmount:          100000,
			EstablishmentFeeRate: 1.5,
		},
		Economic: assumption.Economic{
			BaseRate:            5.2,
			LendingMargin:       1.75,
			InflationRate:       2.5,
			HousePriceInflation: 3.0,
		},
		Policy: assumption.DefaultPolicy(),
	}
}

func mustEngine(t *testing.T, input Input) *Engine {
	t.Helper()
	e, err := NewEngine(input)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return e
}

func TestNewEngine_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		field  string
	}{
		{"no valuation", func(in *Input) { in.Profile.Valuation = 0 }, "valuation"},
		{"no age", func(in *Input) { in.Profile.Age = 0 }, "age"},
		{"joint without second age", func(in *Input) {
			in.Profile.LoanType = eligibility.LoanTypeJoint
			in.Profile.SecondAge = 0
		}, "secondAge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := testInput()
			tt.mutate(&input)
			_, err := NewEngine(input)
			if err == nil {
				t.Fatal("expected DataError")
			}
			if !calcerr.IsDataError(err) {
				t.Fatalf("error type = %T, want DataError", err)
			}
			de := err.(*calcerr.DataError)
			if de.Field != tt.field {
				t.Errorf("field = %q, want %q", de.Field, tt.field)
			}
		})
	}
}

func TestHorizon(t *testing.T) {
	tests := []struct {
		age     int
		horizon int
	}{
		{65, 25}, // to age 90
		{60, 30},
		{85, 10}, // minimum 10 years beyond current age
		{90, 10},
	}
	for _, tt := range tests {
		input := testInput()
		input.Profile.Age = tt.age
		e := mustEngine(t, input)
		if e.HorizonYears() != tt.horizon {
			t.Errorf("age %d: horizon = %d, want %d", tt.age, e.HorizonYears(), tt.horizon)
		}
	}
}

func TestPointHorizonsByAge(t *testing.T) {
	tests := []struct {
		age   int
		first int
	}{
		{65, 15},
		{74, 15},
		{75, 10},
		{79, 10},
		{80, 5},
		{90, 5},
	}
	for _, tt := range tests {
		input := testInput()
		input.Profile.Age = tt.age
		e := mustEngine(t, input)
		points := e.PointYears()
		if points[0] != tt.first {
			t.Errorf("age %d: first point = %d, want %d", tt.age, points[0], tt.first)
		}
		if points[1] != e.HorizonYears() {
			t.Errorf("age %d: second point = %d, want full horizon %d", tt.age, points[1], e.HorizonYears())
		}
	}
}

func TestJointClockUsesYoungerBorrower(t *testing.T) {
	// Scenario B: joint 60/70 runs every age-gated computation off 60.
	input := testInput()
	input.Profile.LoanType = eligibility.LoanTypeJoint
	input.Profile.Age = 70
	input.Profile.SecondAge = 60

	e := mustEngine(t, input)
	if e.HorizonYears() != 30 {
		t.Errorf("horizon = %d, want 30 (driven by age 60)", e.HorizonYears())
	}
	base := e.Project(ScenarioBase)
	if base.Periods[0].Age != 60 {
		t.Errorf("opening age = %v, want 60", base.Periods[0].Age)
	}
}

func TestOpeningPeriod_FeeBooking(t *testing.T) {
	// Scenario D: 1.5% fee on a $100,000 lump books $101,500.
	e := mustEngine(t, testInput())
	base := e.Project(ScenarioBase)
	opening := base.Periods[0]

	if math.Abs(opening.Balance-101500) > 1e-9 {
		t.Errorf("opening balance = %v, want 101500", opening.Balance)
	}
	if opening.HouseValue != 750000 {
		t.Errorf("opening house value = %v, want 750000", opening.HouseValue)
	}
	if math.Abs(opening.HomeEquity-(750000-101500)) > 1e-9 {
		t.Errorf("opening equity = %v", opening.HomeEquity)
	}
	if opening.CumulativeDrawn != opening.Balance {
		t.Errorf("cumulative drawn %v != balance %v at inception", opening.CumulativeDrawn, opening.Balance)
	}
	if opening.AccruedInterest() != 0 {
		t.Errorf("accrued interest at inception = %v, want 0", opening.AccruedInterest())
	}
}

func TestBalanceMonotoneWithoutInterestPayments(t *testing.T) {
	e := mustEngine(t, testInput())
	base := e.Project(ScenarioBase)
	for i := 1; i < len(base.Periods); i++ {
		if base.Periods[i].Balance < base.Periods[i-1].Balance {
			t.Fatalf("balance decreased at period %d: %v -> %v",
				i, base.Periods[i-1].Balance, base.Periods[i].Balance)
		}
	}
}

func TestEquityPctNonIncreasingWhenRateBeatsHPI(t *testing.T) {
	// HPI 3% < total rate 6.95%, so equity percentage must never rise.
	e := mustEngine(t, testInput())
	base := e.Project(ScenarioBase)
	for i := 1; i < len(base.Periods); i++ {
		if base.Periods[i].HomeEquityPct > base.Periods[i-1].HomeEquityPct+1e-9 {
			t.Fatalf("equity%% increased at period %d: %v -> %v",
				i, base.Periods[i-1].HomeEquityPct, base.Periods[i].HomeEquityPct)
		}
	}
}

func TestRateStressExceedsBase_ScenarioC(t *testing.T) {
	e := mustEngine(t, testInput())
	base := e.Project(ScenarioBase)
	stressed := e.Project(ScenarioRateStress)

	idx := 15 * 12
	baseBalance := base.Periods[idx].Balance
	stressedBalance := stressed.Periods[idx].Balance
	t.Logf("year 15: base %.2f, +2%% stress %.2f", baseBalance, stressedBalance)
	if stressedBalance <= baseBalance {
		t.Errorf("rate stress balance %.2f not strictly above base %.2f", stressedBalance, baseBalance)
	}
}

func TestHousePriceStressFlattensHouseValue(t *testing.T) {
	e := mustEngine(t, testInput())
	stressed := e.Project(ScenarioHousePriceStress)
	opening := stressed.Periods[0].HouseValue
	final := stressed.Final().HouseValue
	if math.Abs(final-opening) > 1e-6 {
		t.Errorf("stressed house value moved %v -> %v, want flat at 0%% HPI", opening, final)
	}
}

func TestInterestPaymentScenarioForcesPayments(t *testing.T) {
	input := testInput()
	input.InterestPayment = 500
	input.InterestPaymentPeriods = 120
	// Deliberately disabled in the base configuration.
	input.InterestPaymentEnabled = false

	e := mustEngine(t, input)
	base := e.Project(ScenarioBase)
	forced := e.Project(ScenarioInterestPayment)

	if base.Periods[1].InterestPayment != 0 {
		t.Error("base scenario must not apply a disabled interest payment")
	}
	if forced.Periods[1].InterestPayment != 500 {
		t.Errorf("interest-payment scenario payment = %v, want 500", forced.Periods[1].InterestPayment)
	}
	if forced.Periods[121].InterestPayment != 0 {
		t.Error("payment must stop after the contracted period")
	}
	if forced.Final().Balance >= base.Final().Balance {
		t.Error("interest payments must reduce the terminal balance")
	}
}

func TestRegularDrawdownStopsAtContractedPeriods(t *testing.T) {
	input := testInput()
	input.Terms.TopUpAmount = 0
	input.Terms.TopUpDrawdown = eligibility.RegularDrawdown{
		Amount:            1000,
		Frequency:         eligibility.FrequencyMonthly,
		ContractedPeriods: 60,
		PlanPeriods:       120, // display expectation only
	}

	e := mustEngine(t, input)
	base := e.Project(ScenarioBase)

	if base.Periods[60].RegularDrawdown != 1000 {
		t.Errorf("period 60 drawdown = %v, want 1000", base.Periods[60].RegularDrawdown)
	}
	// Contracted, not plan, bounds the schedule.
	if base.Periods[61].RegularDrawdown != 0 {
		t.Errorf("period 61 drawdown = %v, want 0", base.Periods[61].RegularDrawdown)
	}
	if math.Abs(base.Final().CumulativeRegular-60000) > 1e-6 {
		t.Errorf("cumulative regular = %v, want 60000", base.Final().CumulativeRegular)
	}
	// Each drawdown carries its pro-rata fee in the same period.
	if math.Abs(base.Periods[1].Fee-15) > 1e-9 {
		t.Errorf("period 1 fee = %v, want 15", base.Periods[1].Fee)
	}
}

func TestFortnightlyScheduleOnMonthlyClock(t *testing.T) {
	// $500 per fortnight for 26 fortnights is a one-year, $13,000 contract
	// and must land inside the first 12 monthly periods.
	input := testInput()
	input.Terms.TopUpAmount = 0
	input.Terms.TopUpDrawdown = eligibility.RegularDrawdown{
		Amount:            500,
		Frequency:         eligibility.FrequencyFortnightly,
		ContractedPeriods: 26,
	}

	e := mustEngine(t, input)
	base := e.Project(ScenarioBase)

	perMonth := 500.0 * 26 / 12
	if math.Abs(base.Periods[1].RegularDrawdown-perMonth) > 1e-9 {
		t.Errorf("period 1 drawdown = %v, want %v", base.Periods[1].RegularDrawdown, perMonth)
	}
	if math.Abs(base.Periods[12].CumulativeRegular-13000) > 1e-6 {
		t.Errorf("year-1 cumulative regular = %v, want full 13000 contract", base.Periods[12].CumulativeRegular)
	}
	if base.Periods[13].RegularDrawdown != 0 {
		t.Errorf("period 13 drawdown = %v, want 0 after the contracted year", base.Periods[13].RegularDrawdown)
	}
}

func TestZeroPolicyFallsBackToDefaults(t *testing.T) {
	input := testInput()
	input.Policy = assumption.Policy{}

	e := mustEngine(t, input)
	if e.HorizonYears() != 25 {
		t.Errorf("horizon = %d, want 25 under the published policy", e.HorizonYears())
	}

	base := e.Project(ScenarioBase)
	if len(base.Periods) != 25*12+1 {
		t.Fatalf("periods = %d, want %d", len(base.Periods), 25*12+1)
	}
	// The requested lump must survive the derived loan limit.
	if base.Periods[0].Balance < 100000 {
		t.Errorf("opening balance = %v, want the requested lump booked", base.Periods[0].Balance)
	}
}

func TestFeeFreePolicy(t *testing.T) {
	// A fee-free product is expressed through a zero policy fee rate; the
	// zero in Terms then stays zero instead of pulling in a default.
	input := testInput()
	input.Terms.EstablishmentFeeRate = 0
	input.Policy.EstablishmentFeeRatePct = 0

	e := mustEngine(t, input)
	base := e.Project(ScenarioBase)
	opening := base.Periods[0]

	if opening.Fee != 0 {
		t.Errorf("opening fee = %v, want 0", opening.Fee)
	}
	if opening.Balance != 100000 {
		t.Errorf("opening balance = %v, want bare 100000 lump", opening.Balance)
	}
}

func TestAccruedInterestDerivation(t *testing.T) {
	e := mustEngine(t, testInput())
	base := e.Project(ScenarioBase)
	final := base.Final()

	derived := final.Balance - final.CumulativeDrawn
	if math.Abs(final.AccruedInterest()-derived) > 1e-9 {
		t.Errorf("AccruedInterest() = %v, want %v", final.AccruedInterest(), derived)
	}
	if final.AccruedInterest() <= 0 {
		t.Error("interest must accrue over a 25-year horizon")
	}
}

func TestPensionIndexationIsSteppedAnnually(t *testing.T) {
	input := testInput()
	input.Terms.TopUpAmount = 0
	input.PensionIncome = 24000 // 2000/month at inception

	e := mustEngine(t, input)
	base := e.Project(ScenarioBase)

	// Within the first year the per-period pension is flat.
	if base.Periods[1].Income != base.Periods[12].Income {
		t.Errorf("income stepped inside year 1: %v vs %v", base.Periods[1].Income, base.Periods[12].Income)
	}
	// The step lands at the year boundary.
	year1 := base.Periods[12].Income
	year2 := base.Periods[13].Income
	if math.Abs(year2-year1*1.025) > 1e-9 {
		t.Errorf("year-2 income = %v, want %v", year2, year1*1.025)
	}
}

func TestProjectAll(t *testing.T) {
	e := mustEngine(t, testInput())
	result := e.ProjectAll()

	if len(result.Points) != 2 {
		t.Fatalf("points = %d, want 2", len(result.Points))
	}
	if result.Points[0].Years != 15 || result.Points[1].Years != 25 {
		t.Errorf("point years = %+v, want [15 25]", result.Points)
	}
	if len(result.Series.Years) != 4 {
		t.Errorf("series anchors = %v, want 4", result.Series.Years)
	}
	if result.EffectiveComparisonRate <= e.input.Economic.TotalRate() {
		t.Errorf("effective comparison rate %v should exceed the nominal total %v",
			result.EffectiveComparisonRate, e.input.Economic.TotalRate())
	}
}

func TestSeries_FlowIsTwelvePeriodSum(t *testing.T) {
	input := testInput()
	input.Terms.TopUpAmount = 0
	input.PensionIncome = 12000

	e := mustEngine(t, input)
	base := e.Project(ScenarioBase)
	series := e.Series(base)

	// Year-0 income is the sum of periods 1..12, not the inception value.
	var want float64
	for t2 := 1; t2 <= 12; t2++ {
		want += base.Periods[t2].Income
	}
	if math.Abs(series.Income[0]-want) > 1e-9 {
		t.Errorf("year-0 income = %v, want 12-period sum %v", series.Income[0], want)
	}
}

func TestEquityImageBucket(t *testing.T) {
	tests := []struct {
		pct  float64
		want int
	}{
		{83.0, 85},
		{82.0, 80},
		{47.4, 45},
		{1.0, 2},
		{0.0, 2},
		{100.0, 100},
	}
	for _, tt := range tests {
		if got := EquityImageBucket(tt.pct); got != tt.want {
			t.Errorf("EquityImageBucket(%v) = %d, want %d", tt.pct, got, tt.want)
		}
	}
}
