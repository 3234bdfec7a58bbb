// Package assumption holds the economic assumptions supplied by callers and
// the lending-policy constants the validator and projection engine apply.
// Assumptions are authoritative inputs: nothing in the core ever looks a rate
// up on its own.
package assumption

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Economic carries the caller-supplied rate environment. All values are
// plain annual percentages (4.4 means 4.4%).
type Economic struct {
	BaseRate                float64 `yaml:"base_rate" json:"baseRate"`
	LendingMargin           float64 `yaml:"lending_margin" json:"lendingMargin"`
	InflationRate           float64 `yaml:"inflation_rate" json:"inflationRate"`
	HousePriceInflation     float64 `yaml:"house_price_inflation" json:"housePriceInflation"`
	ComparisonRateIncrement float64 `yaml:"comparison_rate_increment" json:"comparisonRateIncrement"`
}

// TotalRate is the full lending rate charged on the loan balance.
func (e Economic) TotalRate() float64 {
	return e.BaseRate + e.LendingMargin
}

// ComparisonRate is the nominal annual rate used for comparison-rate
// disclosure, before conversion to an effective rate.
func (e Economic) ComparisonRate() float64 {
	return e.TotalRate() + e.ComparisonRateIncrement
}

// DefaultEconomic returns the published rate environment used when no
// assumptions file is configured.
func DefaultEconomic() Economic {
	return Economic{
		BaseRate:                5.2,
		LendingMargin:           1.75,
		InflationRate:           2.5,
		HousePriceInflation:     3.0,
		ComparisonRateIncrement: 0.15,
	}
}

// LoadEconomic reads an Economic assumption set from a YAML file.
func LoadEconomic(path string) (Economic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Economic{}, fmt.Errorf("read assumptions: %w", err)
	}
	var e Economic
	if err := yaml.Unmarshal(data, &e); err != nil {
		return Economic{}, fmt.Errorf("parse assumptions: %w", err)
	}
	return e, nil
}

// Policy groups every lending-policy constant in one place so that the
// validator and the engine read from the same source. Percentages are plain
// numbers; ages are whole years; money is whole currency units.
type Policy struct {
	// Loan-to-value schedule.
	BaseLVRPct           float64 // LVR at BaseLVRAge
	BaseLVRAge           int     // age at which the schedule starts
	LVRIncrementPct      float64 // added per year of age above BaseLVRAge
	ApartmentDiscountPct float64 // subtracted for apartment security

	// Age minima. The joint minimum binds on the younger borrower and is
	// deliberately stricter than the single minimum.
	MinSingleAge int
	MinJointAge  int

	// Minimum product sizes.
	MinLoanSize        float64 // lump-sum products
	MinMonthlyDrawdown float64 // income-drawdown products

	// Per-purpose sub-limits as percentages of maxLVR% x valuation.
	RefinancePct float64
	GivePct      float64
	TravelPct    float64

	// Establishment fee charged on every drawdown, percent.
	EstablishmentFeeRatePct float64

	// Stress-scenario shocks.
	InterestRateShockPct float64 // added to the total rate
	StressedHPIPct       float64 // house-price inflation under stress

	// Projection horizon: run to max(MinTerminalAge, minAge+MinYearsBeyond).
	MinTerminalAge int
	MinYearsBeyond int
}

// DefaultPolicy returns the current published lending policy.
func DefaultPolicy() Policy {
	return Policy{
		BaseLVRPct:           15.0,
		BaseLVRAge:           60,
		LVRIncrementPct:      1.0,
		ApartmentDiscountPct: 2.0,

		MinSingleAge: 60,
		MinJointAge:  65,

		MinLoanSize:        10000,
		MinMonthlyDrawdown: 300,

		RefinancePct: 90.0,
		GivePct:      25.0,
		TravelPct:    10.0,

		EstablishmentFeeRatePct: 1.5,

		InterestRateShockPct: 2.0,
		StressedHPIPct:       0.0,

		MinTerminalAge: 90,
		MinYearsBeyond: 10,
	}
}
