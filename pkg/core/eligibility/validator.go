package eligibility

import (
	"math"

	"equity_release/pkg/core/assumption"
	"equity_release/pkg/core/postcode"
	"equity_release/pkg/core/rates"
	"equity_release/pkg/core/solver"
)

// Validator runs the eligibility pipeline against a lending policy and a
// postcode service-area table. It holds no per-call state and is safe for
// arbitrary concurrent use.
type Validator struct {
	policy    assumption.Policy
	postcodes postcode.Table
}

// NewValidator wires a validator. A nil table treats every postcode as
// outside the service area.
func NewValidator(policy assumption.Policy, postcodes postcode.Table) *Validator {
	return &Validator{policy: policy, postcodes: postcodes}
}

// Policy exposes the active lending policy for callers that need the same
// constants (the projection engine, the API layer).
func (v *Validator) Policy() assumption.Policy {
	return v.policy
}

// MaxLVR computes the maximum loan-to-value ratio in percent:
// base LVR plus an increment per year of age above the baseline age, less
// the apartment discount, scaled down by protected equity, floored at 0.
// Monotone non-decreasing in age above the baseline.
func (v *Validator) MaxLVR(age int, apartment bool, protectedEquityPct float64) float64 {
	p := v.policy
	lvr := p.BaseLVRPct + float64(age-p.BaseLVRAge)*p.LVRIncrementPct
	if apartment {
		lvr -= p.ApartmentDiscountPct
	}
	lvr *= 1 - protectedEquityPct/100
	return math.Max(lvr, 0)
}

// Limits derives the overall loan limit and the per-purpose sub-limits.
// The loan limit never exceeds maxLVR% x valuation nor the postcode cap;
// every sub-limit is additionally capped at the loan limit.
func (v *Validator) Limits(maxLVR, valuation, postcodeCap float64) Limits {
	p := v.policy
	base := maxLVR / 100 * valuation

	loanLimit := base
	if postcodeCap > 0 {
		loanLimit = math.Min(loanLimit, postcodeCap)
	}

	subLimit := func(pct float64) float64 {
		return math.Min(base*pct/100, loanLimit)
	}

	return Limits{
		MaxLVR:         maxLVR,
		LoanLimit:      loanLimit,
		RefinanceLimit: subLimit(p.RefinancePct),
		GiveLimit:      subLimit(p.GivePct),
		TravelLimit:    subLimit(p.TravelPct),
	}
}

// ValidateLoan runs the ordered, fail-fast rule chain. On the first failing
// rule it returns that rule's canonical reason and nothing else; on success
// it returns the computed limits.
func (v *Validator) ValidateLoan(input Input) (Result, error) {
	p := v.policy
	profile := input.Profile

	// 1. Service area. Refer-list postcodes pass but stay flagged.
	var entry postcode.Entry
	if v.postcodes != nil {
		var ok bool
		entry, ok = v.postcodes.Lookup(profile.Postcode)
		if !ok || entry.Status == postcode.StatusReject {
			return Result{Status: StatusError, Reason: ReasonPostcodeIneligible}, nil
		}
	} else {
		return Result{Status: StatusError, Reason: ReasonPostcodeIneligible}, nil
	}

	// 2. Age minima. Joint loans are gated on the younger borrower against
	// the stricter joint minimum.
	if profile.LoanType == LoanTypeJoint {
		if profile.YoungestAge() < p.MinJointAge {
			return Result{Status: StatusError, Reason: ReasonJointBorrowerTooYoung}, nil
		}
	} else if profile.Age < p.MinSingleAge {
		return Result{Status: StatusError, Reason: ReasonBorrowerTooYoung}, nil
	}

	maxLVR := v.MaxLVR(profile.YoungestAge(), profile.Dwelling == DwellingApartment, input.Terms.ProtectedEquityPct)
	limits := v.Limits(maxLVR, profile.Valuation, entry.Cap)
	limits.PostcodeReferred = entry.Status == postcode.StatusRefer

	// 3. Minimum size. Lump-sum products must clear the minimum loan size
	// before any postcode cap; income products must sustain the minimum
	// monthly drawdown.
	if input.Product == ProductIncome {
		maxDrawdown, maxMonthly, err := v.maxDrawdown(limits.LoanLimit, input)
		if err != nil {
			return Result{}, err
		}
		limits.MaxDrawdown = maxDrawdown
		limits.MaxMonthlyDrawdown = maxMonthly
		if maxMonthly < p.MinMonthlyDrawdown {
			return Result{Status: StatusError, Reason: ReasonDrawdownBelowMinimum}, nil
		}
	} else if maxLVR/100*profile.Valuation < p.MinLoanSize {
		return Result{Status: StatusError, Reason: ReasonLoanBelowMinimum}, nil
	}

	// 4. Refinance feasibility.
	if input.ExistingMortgage > limits.RefinanceLimit {
		return Result{Status: StatusError, Reason: ReasonRefinanceExceedsLimit}, nil
	}

	return Result{Status: StatusOK, Limits: &limits}, nil
}

// maxDrawdown solves for the level drawdown the loan limit sustains over
// the plan horizon at the configured lending rate, and scales it to a
// monthly figure for the minimum-size rule.
func (v *Validator) maxDrawdown(loanLimit float64, input Input) (perPeriod, monthly float64, err error) {
	schedule := input.Terms.TopUpDrawdown
	if !schedule.Active() {
		schedule = input.Terms.CareDrawdown
	}

	periodsPerYear := schedule.Frequency.PeriodsPerYear()
	horizon := schedule.PlanPeriods
	if horizon <= 0 {
		horizon = schedule.ContractedPeriods
	}
	if horizon <= 0 {
		// No schedule supplied: assume a 10-year monthly plan.
		periodsPerYear = 12
		horizon = 120
	}

	rate := rates.PeriodicFraction(input.Economic.TotalRate(), periodsPerYear)
	perPeriod, solveErr := solver.SolveDrawdownForBalance(loanLimit, horizon, rate)
	if solveErr != nil {
		return 0, 0, solveErr
	}
	monthly = perPeriod * float64(periodsPerYear) / 12
	return perPeriod, monthly, nil
}
