package service

import (
	"fmt"

	"github.com/bibbank/refinance-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// EligibilityEvaluator – domain service for refinance decisioning
// ---------------------------------------------------------------------------

// EligibilityEvaluator decides whether a refinance request is approvable and
// how much the applicant could borrow. It holds no state beyond its policy
// and is safe for concurrent use.
type EligibilityEvaluator struct {
	policy      Policy
	income      IncomeRecognizer
	commitments CommitmentAggregator
}

// NewEligibilityEvaluator returns an evaluator bound to policy.
func NewEligibilityEvaluator(policy Policy) *EligibilityEvaluator {
	return &EligibilityEvaluator{
		policy:      policy,
		income:      NewIncomeRecognizer(policy),
		commitments: NewCommitmentAggregator(policy),
	}
}

// Policy returns the policy the evaluator applies.
func (e *EligibilityEvaluator) Policy() Policy { return e.policy }

// IncomeBreakdown exposes the recognizer used by the evaluator.
func (e *EligibilityEvaluator) IncomeBreakdown(income model.Income) IncomeBreakdown {
	return e.income.Breakdown(income)
}

// Evaluate runs every check against the applicant at proposedRatePercent and
// the requested tenure. All failed checks are reported, in the order credit
// flags, DSR, stress DSR, LTV, NDI. The maximum eligible loan is computed
// whether or not the request is approved.
func (e *EligibilityEvaluator) Evaluate(a model.Applicant, proposedRatePercent float64) model.DecisionResult {
	p := e.policy
	tenure := a.Request.DesiredTenureYears

	// 1. Income and commitments.
	income := e.income.Recognise(a.Income)
	nonMortgage := e.commitments.Total(a.Commitments)

	// 2. Proposed loan and installments.
	requestedLoan := a.Property.OutstandingBalance + a.Request.DesiredCashOut
	newPayment := model.MonthlyPayment(requestedLoan, proposedRatePercent, tenure)
	stressRate := proposedRatePercent + p.StressBufferPercent
	stressPayment := model.MonthlyPayment(requestedLoan, stressRate, tenure)

	// 3. Ratios.
	dsr := debtServiceRatio(nonMortgage+newPayment, income)
	stressDSR := debtServiceRatio(nonMortgage+stressPayment, income)
	maxLTV := p.maxLTVPercent(a.Request.Goal.IsCashOut())
	ltv := loanToValue(requestedLoan, a.Property.MarketValue)
	ndi := income - (nonMortgage + newPayment)

	// 4. Checklist.
	var reasons []model.Reason
	reject := func(code model.ReasonCode, msg string) {
		reasons = append(reasons, model.Reason{Code: code, Message: msg})
	}
	if a.Credit.DebtManagementProgram {
		reject(model.ReasonDebtManagementProgram, "Under debt-management program")
	}
	if a.Credit.Bankruptcy {
		reject(model.ReasonBankruptcy, "Bankruptcy history")
	}
	if a.Credit.SevereLatePayments {
		reject(model.ReasonSevereLatePayments, "Severe late payments (>2 months)")
	}
	if dsr > p.MaxDSRPercent {
		reject(model.ReasonDSRTooHigh, fmt.Sprintf("DSR too high (%.1f%% > %g%%)", dsr, p.MaxDSRPercent))
	}
	if stressDSR > p.MaxStressDSRPercent {
		reject(model.ReasonStressTestFailed, fmt.Sprintf("Failed stress test (DSR %.1f%% > %g%%)", stressDSR, p.MaxStressDSRPercent))
	}
	if ltv > maxLTV {
		reject(model.ReasonLTVExceeded, fmt.Sprintf("LTV exceeds limit (%.1f%% > %g%%)", ltv, maxLTV))
	}
	if ndi < p.MinNetDisposableIncome {
		reject(model.ReasonLowDisposableIncome, "Net disposable income too low")
	}

	// 5. Back-solve the largest loan the applicant qualifies for.
	available := max(0, income*p.MaxCommitmentRatio-nonMortgage)
	maxByDSR := model.PresentValue(available, proposedRatePercent, tenure)
	maxByLTV := max(0, a.Property.MarketValue) * maxLTV / 100

	// 6. Comparison against the current loan.
	current := a.Property.CurrentInstallment
	if current == 0 {
		current = model.MonthlyPayment(
			a.Property.OutstandingBalance,
			a.Property.CurrentRatePercent,
			a.Property.RemainingTenureYears,
		)
	}

	return model.DecisionResult{
		Approved:               len(reasons) == 0,
		Reasons:                reasons,
		RecognisedIncome:       income,
		NonMortgageCommitments: nonMortgage,
		RequestedLoan:          requestedLoan,
		NewMonthlyPayment:      newPayment,
		StressRatePercent:      stressRate,
		StressMonthlyPayment:   stressPayment,
		DSR:                    dsr,
		StressDSR:              stressDSR,
		LTV:                    ltv,
		MaxLTV:                 maxLTV,
		NDI:                    ndi,
		MaxLoanByDSR:           maxByDSR,
		MaxLoanByLTV:           maxByLTV,
		MaxEligibleLoan:        min(maxByDSR, maxByLTV),
		CurrentInstallment:     current,
		MonthlySavings:         current - newPayment,
		TotalInterestNew:       newPayment*float64(tenure*12) - requestedLoan,
	}
}

// debtServiceRatio is commitments as a percentage of income. Without income
// the ratio is pinned at 100 so the request always fails the DSR check.
func debtServiceRatio(commitments, income float64) float64 {
	if income <= 0 {
		return 100
	}
	return commitments / income * 100
}

// loanToValue is the loan as a percentage of the property value. A property
// without a value is treated as fully leveraged.
func loanToValue(loan, marketValue float64) float64 {
	if marketValue <= 0 {
		return 100
	}
	return loan / marketValue * 100
}
