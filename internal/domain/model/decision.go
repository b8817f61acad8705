package model

// ReasonCode identifies a rejection rule independent of its wording.
type ReasonCode string

const (
	ReasonDebtManagementProgram ReasonCode = "DEBT_MANAGEMENT_PROGRAM"
	ReasonBankruptcy            ReasonCode = "BANKRUPTCY"
	ReasonSevereLatePayments    ReasonCode = "SEVERE_LATE_PAYMENTS"
	ReasonDSRTooHigh            ReasonCode = "DSR_TOO_HIGH"
	ReasonStressTestFailed      ReasonCode = "STRESS_TEST_FAILED"
	ReasonLTVExceeded           ReasonCode = "LTV_EXCEEDED"
	ReasonLowDisposableIncome   ReasonCode = "LOW_DISPOSABLE_INCOME"
)

// Reason is one failed check, in the order the checks ran.
type Reason struct {
	Code    ReasonCode `json:"code"`
	Message string     `json:"message"`
}

func (r Reason) String() string { return r.Message }

// DecisionResult is the outcome of one evaluation. It is derived fresh each
// time and carries every intermediate figure an underwriter needs to audit the
// decision. Percentages are 0–100.
type DecisionResult struct {
	Approved bool     `json:"approved"`
	Reasons  []Reason `json:"reasons"`

	RecognisedIncome       float64 `json:"recognised_income"`
	NonMortgageCommitments float64 `json:"non_mortgage_commitments"`
	RequestedLoan          float64 `json:"requested_loan"`

	NewMonthlyPayment    float64 `json:"new_monthly_payment"`
	StressRatePercent    float64 `json:"stress_rate_percent"`
	StressMonthlyPayment float64 `json:"stress_monthly_payment"`

	DSR       float64 `json:"dsr"`
	StressDSR float64 `json:"stress_dsr"`
	LTV       float64 `json:"ltv"`
	MaxLTV    float64 `json:"max_ltv"`
	NDI       float64 `json:"ndi"`

	MaxLoanByDSR    float64 `json:"max_loan_by_dsr"`
	MaxLoanByLTV    float64 `json:"max_loan_by_ltv"`
	MaxEligibleLoan float64 `json:"max_eligible_loan"`

	CurrentInstallment float64 `json:"current_installment"`
	MonthlySavings     float64 `json:"monthly_savings"`
	TotalInterestNew   float64 `json:"total_interest_new"`
}

// ReasonMessages returns the human readable reasons in order.
func (d DecisionResult) ReasonMessages() []string {
	out := make([]string, len(d.Reasons))
	for i, r := range d.Reasons {
		out[i] = r.Message
	}
	return out
}
