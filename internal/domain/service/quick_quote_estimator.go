package service

import "github.com/bibbank/refinance-service/internal/domain/model"

// QuickQuoteEstimator produces the teaser shown before full intake.
type QuickQuoteEstimator struct {
	policy QuickQuotePolicy
}

// NewQuickQuoteEstimator returns an estimator using the policy's quick quote
// parameters.
func NewQuickQuoteEstimator(policy Policy) QuickQuoteEstimator {
	return QuickQuoteEstimator{policy: policy.QuickQuote}
}

// DefaultRatePercent is the rate assumed when the caller does not supply one.
func (q QuickQuoteEstimator) DefaultRatePercent() float64 { return q.policy.DefaultRatePercent }

// Estimate prices the outstanding balance over the fixed quick quote tenure.
// Without a current installment the savings are measured against the same
// balance at the baseline rate. Cash-out potential is only offered for the
// cash-out goal when a property value was given.
func (q QuickQuoteEstimator) Estimate(in model.QuickQuoteInput, assumedRatePercent float64) model.QuickQuote {
	tenure := q.policy.TenureYears
	newPayment := model.MonthlyPayment(in.OutstandingBalance, assumedRatePercent, tenure)

	current := in.CurrentInstallment
	if current <= 0 {
		current = model.MonthlyPayment(in.OutstandingBalance, q.policy.BaselineRatePercent, tenure)
	}
	savings := current - newPayment

	var cashOut float64
	if in.Goal.IsCashOut() && in.EstimatedValue > 0 {
		cashOut = max(0, in.EstimatedValue*q.policy.CashOutLTVRatio-in.OutstandingBalance)
	}

	return model.QuickQuote{
		AssumedRatePercent: assumedRatePercent,
		TenureYears:        tenure,
		NewMonthlyPayment:  newPayment,
		MonthlySavings:     savings,
		PotentialCashOut:   cashOut,
		TotalInterestSaved: savings * float64(tenure*12),
		Approximate:        true,
	}
}
