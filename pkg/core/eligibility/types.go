// Package eligibility determines how much a borrower may borrow and
// validates the binding business rules: service area, age minima, minimum
// loan size and refinance feasibility. Every call is a stateless function
// of its input; results are recomputed fresh and never cached.
package eligibility

import "equity_release/pkg/core/assumption"

// LoanType distinguishes single and joint borrowers.
type LoanType string

const (
	LoanTypeSingle LoanType = "single"
	LoanTypeJoint  LoanType = "joint"
)

// DwellingType of the security property.
type DwellingType string

const (
	DwellingHouse     DwellingType = "house"
	DwellingApartment DwellingType = "apartment"
)

// Product distinguishes lump-sum and income-drawdown products; the minimum
// size rule differs between them.
type Product string

const (
	ProductLumpSum Product = "lump_sum"
	ProductIncome  Product = "income"
)

// Frequency of a regular drawdown schedule.
type Frequency string

const (
	FrequencyFortnightly Frequency = "FORTNIGHTLY"
	FrequencyMonthly     Frequency = "MONTHLY"
)

// PeriodsPerYear maps the frequency code to its period count. Unset
// frequencies default to monthly.
func (f Frequency) PeriodsPerYear() int {
	if f == FrequencyFortnightly {
		return 26
	}
	return 12
}

// BorrowerProfile is immutable per calculation call.
type BorrowerProfile struct {
	LoanType  LoanType     `json:"loanType"`
	Age       int          `json:"age"`
	SecondAge int          `json:"secondAge,omitempty"` // joint loans only
	Dwelling  DwellingType `json:"dwelling"`
	Valuation float64      `json:"valuation"`
	Postcode  string       `json:"postcode"`
	State     string       `json:"state"`
}

// YoungestAge drives every age-gated computation. For joint loans the
// younger borrower is the clock.
func (p BorrowerProfile) YoungestAge() int {
	if p.LoanType == LoanTypeJoint && p.SecondAge > 0 && p.SecondAge < p.Age {
		return p.SecondAge
	}
	return p.Age
}

// RegularDrawdown describes a periodic drawdown schedule. The contracted
// period count is the binding legal schedule; the plan period count is the
// longer customer-facing expectation used for display only.
type RegularDrawdown struct {
	Amount            float64   `json:"amount"`
	Frequency         Frequency `json:"frequency"`
	ContractedPeriods int       `json:"contractedPeriods"`
	PlanPeriods       int       `json:"planPeriods"`
}

// Active reports whether the schedule draws anything at all.
func (d RegularDrawdown) Active() bool {
	return d.Amount > 0 && d.ContractedPeriods > 0
}

// LoanTerms carries the requested purpose amounts and fee settings. Zero
// values mean the purpose was not requested.
type LoanTerms struct {
	TopUpAmount      float64 `json:"topUpAmount"`
	TopUpContingency float64 `json:"topUpContingency"`
	RefinanceAmount  float64 `json:"refinanceAmount"`
	GiveAmount       float64 `json:"giveAmount"`
	RenovateAmount   float64 `json:"renovateAmount"`
	TravelAmount     float64 `json:"travelAmount"`
	CareAmount       float64 `json:"careAmount"`

	ProtectedEquityPct float64 `json:"protectedEquityPct"`

	// EstablishmentFeeRate is the fee percent charged on every drawdown.
	// Zero defers to the policy rate; a fee-free product is expressed by
	// setting the policy rate itself to zero.
	EstablishmentFeeRate float64 `json:"establishmentFeeRate"`

	TopUpDrawdown RegularDrawdown `json:"topUpDrawdown"`
	CareDrawdown  RegularDrawdown `json:"careDrawdown"`
}

// PurposeTotal is the sum of all requested lump amounts, before fees.
func (t LoanTerms) PurposeTotal() float64 {
	return t.TopUpAmount + t.TopUpContingency + t.RefinanceAmount +
		t.GiveAmount + t.RenovateAmount + t.TravelAmount + t.CareAmount
}

// Input is the single fully-typed record each validator call consumes.
// The caller assembles it once; the validator never merges partial maps.
type Input struct {
	Profile          BorrowerProfile     `json:"profile"`
	Terms            LoanTerms           `json:"terms"`
	Economic         assumption.Economic `json:"economic"`
	Product          Product             `json:"product"`
	ExistingMortgage float64             `json:"existingMortgage"`
	AccruedInterest  float64             `json:"accruedInterest"`
}

// Status of a validation result.
type Status string

const (
	StatusOK    Status = "Ok"
	StatusError Status = "Error"
)

// Canonical reason strings. The validator is the single source of truth for
// which reason applies; user-facing copy belongs to the presentation layer.
const (
	ReasonPostcodeIneligible    = "postcode not in service area"
	ReasonBorrowerTooYoung      = "borrower below minimum age"
	ReasonJointBorrowerTooYoung = "younger joint borrower below minimum age"
	ReasonLoanBelowMinimum      = "maximum loan below minimum loan size"
	ReasonDrawdownBelowMinimum  = "maximum drawdown below minimum monthly amount"
	ReasonRefinanceExceedsLimit = "existing mortgage exceeds refinance limit"
	ReasonExceedsLoanLimit      = "requested amount exceeds loan limit"
)

// Limits is the data payload of a successful validation.
type Limits struct {
	MaxLVR         float64 `json:"maxLVR"`
	LoanLimit      float64 `json:"loanLimit"`
	RefinanceLimit float64 `json:"refinanceLimit"`
	GiveLimit      float64 `json:"giveLimit"`
	TravelLimit    float64 `json:"travelLimit"`

	// Income products: the level per-period drawdown the loan limit
	// sustains over the plan horizon, and its monthly equivalent.
	MaxDrawdown        float64 `json:"maxDrawdown,omitempty"`
	MaxMonthlyDrawdown float64 `json:"maxMonthlyDrawdown,omitempty"`

	// PostcodeReferred flags a refer-list postcode that was allowed
	// through for manual review.
	PostcodeReferred bool `json:"postcodeReferred,omitempty"`
}

// Result is the outcome of ValidateLoan. Either Limits is populated
// (StatusOK) or Reason carries the first failing rule (StatusError); no
// partial state is ever returned.
type Result struct {
	Status Status  `json:"status"`
	Reason string  `json:"reason,omitempty"`
	Limits *Limits `json:"data,omitempty"`
}

// Purpose identifies a requested loan purpose in a status breakdown.
type Purpose string

const (
	PurposeTopUp            Purpose = "topUp"
	PurposeTopUpContingency Purpose = "topUpContingency"
	PurposeRefinance        Purpose = "refinance"
	PurposeGive             Purpose = "give"
	PurposeRenovate         Purpose = "renovate"
	PurposeTravel           Purpose = "travel"
	PurposeCare             Purpose = "care"
)

// PurposeStatus flags one requested purpose against its own cap and the
// shared loan limit.
type PurposeStatus struct {
	Purpose          Purpose `json:"purpose"`
	Amount           float64 `json:"amount"`
	Fee              float64 `json:"fee"` // exact pro-rata establishment fee
	Cap              float64 `json:"cap"`
	ExceedsCap       bool    `json:"exceedsCap"`
	ExceedsLoanLimit bool    `json:"exceedsLoanLimit"`
}

// StatusData is the payload of the live Status call, recomputed on every
// keystroke while a user adjusts purpose amounts.
type StatusData struct {
	Limits          Limits          `json:"limits"`
	TotalRequested  float64         `json:"totalRequested"`  // purposes plus exact fees
	TotalFees       float64         `json:"totalFees"`       // exact pro-rata fees
	AvailableAmount float64         `json:"availableAmount"` // headroom net of the maximum possible fee
	Purposes        []PurposeStatus `json:"purposes"`
}

// StatusResult is the outcome of Status.
type StatusResult struct {
	Status Status      `json:"status"`
	Reason string      `json:"reason,omitempty"`
	Data   *StatusData `json:"data,omitempty"`
}
