// Verification harness: runs a worked base-scenario quote end to end and
// prints every intermediate so the figures can be checked against the
// product spreadsheet by hand.
package main

import (
	"fmt"
	"os"

	"equity_release/pkg/core/assumption"
	"equity_release/pkg/core/eligibility"
	"equity_release/pkg/core/postcode"
	"equity_release/pkg/core/projection"
	"equity_release/pkg/core/rates"
)

func main() {
	policy := assumption.DefaultPolicy()
	economic := assumption.DefaultEconomic()

	table := postcode.StaticTable{"2000": {Status: postcode.StatusAccept}}
	validator := eligibility.NewValidator(policy, table)

	input := eligibility.Input{
		Profile: eligibility.BorrowerProfile{
			LoanType:  eligibility.LoanTypeSingle,
			Age:       70,
			Dwelling:  eligibility.DwellingHouse,
			Valuation: 800000,
			Postcode:  "2000",
			State:     "NSW",
		},
		Terms: eligibility.LoanTerms{
			TopUpAmount:          100000,
			EstablishmentFeeRate: policy.EstablishmentFeeRatePct,
		},
		Economic: economic,
		Product:  eligibility.ProductLumpSum,
	}

	fmt.Println("====================================================================")
	fmt.Println("                    RATE CONVERSIONS")
	fmt.Println("====================================================================")
	total := economic.TotalRate()
	fmt.Printf("%-40s %10.4f%%\n", "Total annual rate", total)
	fmt.Printf("%-40s %10.4f%%\n", "Effective annual (monthly compounding)", rates.EffectiveAnnualRate(total, 12))
	fmt.Printf("%-40s %10.6f%%\n", "Periodic rate (monthly)", rates.PeriodicRate(total, 12))
	fmt.Printf("%-40s %10.4f%%\n", "Effective comparison rate", rates.EffectiveAnnualRate(economic.ComparisonRate(), 12))

	fmt.Println("====================================================================")
	fmt.Println("                    ELIGIBILITY")
	fmt.Println("====================================================================")
	validation, err := validator.ValidateLoan(input)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if validation.Status != eligibility.StatusOK {
		fmt.Printf("Ineligible: %s\n", validation.Reason)
		os.Exit(1)
	}
	fmt.Printf("%-40s %10.1f%%\n", "Max LVR", validation.Limits.MaxLVR)
	fmt.Printf("%-40s %12.0f\n", "Loan limit", validation.Limits.LoanLimit)
	fmt.Printf("%-40s %12.0f\n", "Refinance limit", validation.Limits.RefinanceLimit)
	fmt.Printf("%-40s %12.0f\n", "Give limit", validation.Limits.GiveLimit)
	fmt.Printf("%-40s %12.0f\n", "Travel limit", validation.Limits.TravelLimit)

	fmt.Println("====================================================================")
	fmt.Println("                    BASE SCENARIO TRAJECTORY")
	fmt.Println("====================================================================")
	engine, err := projection.NewEngine(projection.Input{
		Profile:   input.Profile,
		Terms:     input.Terms,
		Economic:  economic,
		Policy:    policy,
		LoanLimit: validation.Limits.LoanLimit,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	result := engine.ProjectAll()
	fmt.Printf("Horizon: %d years, disclosure points at %v years\n\n", engine.HorizonYears(), engine.PointYears())

	fmt.Printf("%6s | %5s | %14s | %14s | %14s | %8s\n", "Period", "Age", "Balance", "House value", "Home equity", "Equity %")
	fmt.Println("--------------------------------------------------------------------")
	for _, p := range result.Base.Periods {
		if p.Index%60 != 0 {
			continue
		}
		fmt.Printf("%6d | %5.1f | %14.2f | %14.2f | %14.2f | %7.1f%%\n",
			p.Index, p.Age, p.Balance, p.HouseValue, p.HomeEquity, p.HomeEquityPct)
	}

	fmt.Println("====================================================================")
	fmt.Println("                    SCENARIO COMPARISON (FINAL PERIOD)")
	fmt.Println("====================================================================")
	for _, tr := range []projection.Trajectory{
		result.Base, result.HousePriceStress, result.RateStress, result.InterestPayment,
	} {
		final := tr.Final()
		fmt.Printf("%-22s balance %14.2f  equity %14.2f (%.1f%%)\n",
			tr.Scenario, final.Balance, final.HomeEquity, final.HomeEquityPct)
	}

	fmt.Println("====================================================================")
	fmt.Println("                    DISCLOSURE POINTS")
	fmt.Println("====================================================================")
	for _, pt := range result.Points {
		fmt.Printf("Year %2d (age %5.1f): balance %12.2f, equity %12.2f (%.1f%%)\n",
			pt.Years, pt.Age, pt.Balance, pt.HomeEquity, pt.HomeEquityPct)
	}
}
