package eligibility

// Status recomputes limits and headroom continuously while a user adjusts
// purpose amounts. Unlike ValidateLoan it is not a one-shot gate: it always
// returns the full breakdown, flagging each purpose against its own cap and
// the shared loan limit.
//
// The establishment fee enters twice, deliberately with two different
// calculations: the exact pro-rata fee on each concrete purpose amount feeds
// the totals, while AvailableAmount reserves the maximum possible fee (the
// fee rate applied to the whole loan limit) so the displayed headroom never
// promises more than remains once fees are charged.
func (v *Validator) Status(input Input) (StatusResult, error) {
	validated, err := v.ValidateLoan(input)
	if err != nil {
		return StatusResult{}, err
	}
	if validated.Status != StatusOK {
		return StatusResult{Status: StatusError, Reason: validated.Reason}, nil
	}
	limits := *validated.Limits

	feeRate := input.Terms.EstablishmentFeeRate
	if feeRate == 0 {
		feeRate = v.policy.EstablishmentFeeRatePct
	}

	requested := []struct {
		purpose Purpose
		amount  float64
		cap     float64
	}{
		{PurposeTopUp, input.Terms.TopUpAmount, limits.LoanLimit},
		{PurposeTopUpContingency, input.Terms.TopUpContingency, limits.LoanLimit},
		{PurposeRefinance, input.Terms.RefinanceAmount, limits.RefinanceLimit},
		{PurposeGive, input.Terms.GiveAmount, limits.GiveLimit},
		{PurposeRenovate, input.Terms.RenovateAmount, limits.LoanLimit},
		{PurposeTravel, input.Terms.TravelAmount, limits.TravelLimit},
		{PurposeCare, input.Terms.CareAmount, limits.LoanLimit},
	}

	data := StatusData{Limits: limits}
	principal := 0.0
	anyExceeded := false

	for _, r := range requested {
		if r.amount == 0 {
			continue
		}
		fee := r.amount * feeRate / 100
		ps := PurposeStatus{
			Purpose:          r.purpose,
			Amount:           r.amount,
			Fee:              fee,
			Cap:              r.cap,
			ExceedsCap:       r.amount > r.cap,
			ExceedsLoanLimit: r.amount > limits.LoanLimit,
		}
		if ps.ExceedsCap || ps.ExceedsLoanLimit {
			anyExceeded = true
		}
		principal += r.amount
		data.TotalFees += fee
		data.Purposes = append(data.Purposes, ps)
	}

	data.TotalRequested = principal + data.TotalFees

	maxFee := limits.LoanLimit * feeRate / 100
	data.AvailableAmount = limits.LoanLimit - principal - maxFee - input.AccruedInterest

	result := StatusResult{Status: StatusOK, Data: &data}
	if principal > limits.LoanLimit || anyExceeded {
		result.Status = StatusError
		result.Reason = ReasonExceedsLoanLimit
	}
	return result, nil
}
