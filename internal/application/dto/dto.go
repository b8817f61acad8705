package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Intake DTOs
// ---------------------------------------------------------------------------

// ContactRequest identifies the prospect.
type ContactRequest struct {
	Name     string `json:"name"`
	ICNumber string `json:"ic_number,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone"`
}

// PersonalRequest is display-only profile data.
type PersonalRequest struct {
	Age            int    `json:"age,omitempty"`
	Citizenship    string `json:"citizenship,omitempty"`
	MaritalStatus  string `json:"marital_status,omitempty"`
	Dependents     int    `json:"dependents,omitempty"`
	EmployerName   string `json:"employer_name,omitempty"`
	JobTitle       string `json:"job_title,omitempty"`
	YearsInService int    `json:"years_in_service,omitempty"`
}

// IncomeRequest carries the fields for every employment type; only those
// relevant to EmploymentType are read.
type IncomeRequest struct {
	EmploymentType string `json:"employment_type"`

	FixedSalary        decimal.Decimal `json:"fixed_salary"`
	FixedAllowance     decimal.Decimal `json:"fixed_allowance"`
	VariableCommission decimal.Decimal `json:"variable_commission"`
	VariableBonus      decimal.Decimal `json:"variable_bonus"`
	VariableOvertime   decimal.Decimal `json:"variable_overtime"`

	AvgMonthlyCommission decimal.Decimal `json:"avg_monthly_commission"`

	AnnualDeclaredIncome decimal.Decimal `json:"annual_declared_income"`
	AvgMonthlyRevenue    decimal.Decimal `json:"avg_monthly_revenue"`
	AnnualTaxPaid        decimal.Decimal `json:"annual_tax_paid"`
	BusinessNature       string          `json:"business_nature,omitempty"`

	Rental   decimal.Decimal `json:"rental"`
	PartTime decimal.Decimal `json:"part_time"`
}

// CommitmentsRequest lists monthly obligations. CreditCardOutstanding is the
// card balance, not a repayment.
type CommitmentsRequest struct {
	CarLoans              decimal.Decimal `json:"car_loans"`
	PersonalLoans         decimal.Decimal `json:"personal_loans"`
	CreditCardOutstanding decimal.Decimal `json:"credit_card_outstanding"`
	PTPTN                 decimal.Decimal `json:"ptptn"`
	OtherLiabilities      decimal.Decimal `json:"other_liabilities"`
	ExistingHomeLoan      decimal.Decimal `json:"existing_home_loan"`
}

// PropertyRequest describes the collateral and current loan.
type PropertyRequest struct {
	MarketValue          decimal.Decimal `json:"market_value"`
	OutstandingBalance   decimal.Decimal `json:"outstanding_balance"`
	CurrentRatePercent   decimal.Decimal `json:"current_rate_percent"`
	CurrentInstallment   decimal.Decimal `json:"current_installment"`
	RemainingTenureYears int             `json:"remaining_tenure_years"`
}

// CreditRequest holds the credit questions. A nil answer means the question
// was not answered and fails validation.
type CreditRequest struct {
	DebtManagementProgram *bool `json:"debt_management_program"`
	Bankruptcy            *bool `json:"bankruptcy"`
	SevereLatePayments    *bool `json:"severe_late_payments"`
}

// LoanRequest is the refinance being asked for.
type LoanRequest struct {
	Goal               string          `json:"goal"`
	DesiredCashOut     decimal.Decimal `json:"desired_cash_out"`
	DesiredTenureYears int             `json:"desired_tenure_years"`
}

// ApplicantRequest is the full intake form minus contact details.
type ApplicantRequest struct {
	Personal    PersonalRequest    `json:"personal"`
	Income      IncomeRequest      `json:"income"`
	Commitments CommitmentsRequest `json:"commitments"`
	Property    PropertyRequest    `json:"property"`
	Credit      CreditRequest      `json:"credit"`
	Request     LoanRequest        `json:"request"`
}

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// EvaluateRequest asks for a stateless eligibility decision. RatePercent
// defaults to the configured rate.
type EvaluateRequest struct {
	Applicant   ApplicantRequest `json:"applicant"`
	RatePercent *decimal.Decimal `json:"rate_percent,omitempty"`
}

// QuickQuoteRequest is the four-field teaser form.
type QuickQuoteRequest struct {
	Goal               string           `json:"goal"`
	OutstandingBalance decimal.Decimal  `json:"outstanding_balance"`
	CurrentInstallment decimal.Decimal  `json:"current_installment"`
	EstimatedValue     decimal.Decimal  `json:"estimated_value"`
	RatePercent        *decimal.Decimal `json:"rate_percent,omitempty"`
}

// CaptureLeadRequest saves a quick quote with the prospect's contact details.
type CaptureLeadRequest struct {
	Contact ContactRequest    `json:"contact"`
	Quote   QuickQuoteRequest `json:"quote"`
}

// SubmitApplicationRequest stores a full intake. LeadID continues an existing
// lead instead of creating a new application.
type SubmitApplicationRequest struct {
	LeadID      string           `json:"lead_id,omitempty"`
	Contact     ContactRequest   `json:"contact"`
	Applicant   ApplicantRequest `json:"applicant"`
	RatePercent *decimal.Decimal `json:"rate_percent,omitempty"`
}

// GetApplicationRequest identifies an application.
type GetApplicationRequest struct {
	ApplicationID string `json:"application_id"`
}

// ListApplicationsRequest selects a pipeline stage.
type ListApplicationsRequest struct {
	Stage string `json:"stage"`
	Limit int    `json:"limit,omitempty"`
}

// ReevaluateApplicationRequest re-runs the engine on a stored application.
type ReevaluateApplicationRequest struct {
	ApplicationID string           `json:"application_id"`
	RatePercent   *decimal.Decimal `json:"rate_percent,omitempty"`
}

// UpdateStatusRequest overrides the decision status.
type UpdateStatusRequest struct {
	ApplicationID string `json:"application_id"`
	Status        string `json:"status"`
}

// SetLinkSentRequest records whether the follow-up link was sent.
type SetLinkSentRequest struct {
	ApplicationID string `json:"application_id"`
	Sent          bool   `json:"sent"`
}

// CompareSavingsRequest prices refinancing an existing loan.
type CompareSavingsRequest struct {
	Balance            decimal.Decimal `json:"balance"`
	CurrentRatePercent decimal.Decimal `json:"current_rate_percent"`
	CurrentInstallment decimal.Decimal `json:"current_installment"`
	NewRatePercent     decimal.Decimal `json:"new_rate_percent"`
	NewTenureYears     int             `json:"new_tenure_years"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// DecisionResponse is the external representation of a decision.
type DecisionResponse struct {
	Approved    bool     `json:"approved"`
	Reasons     []string `json:"reasons"`
	ReasonCodes []string `json:"reason_codes"`

	RecognisedIncome       decimal.Decimal `json:"recognised_income"`
	NonMortgageCommitments decimal.Decimal `json:"non_mortgage_commitments"`
	RequestedLoan          decimal.Decimal `json:"requested_loan"`
	NewMonthlyPayment      decimal.Decimal `json:"new_monthly_payment"`
	StressRatePercent      decimal.Decimal `json:"stress_rate_percent"`
	StressMonthlyPayment   decimal.Decimal `json:"stress_monthly_payment"`
	DSR                    decimal.Decimal `json:"dsr"`
	StressDSR              decimal.Decimal `json:"stress_dsr"`
	LTV                    decimal.Decimal `json:"ltv"`
	MaxLTV                 decimal.Decimal `json:"max_ltv"`
	NDI                    decimal.Decimal `json:"ndi"`
	MaxLoanByDSR           decimal.Decimal `json:"max_loan_by_dsr"`
	MaxLoanByLTV           decimal.Decimal `json:"max_loan_by_ltv"`
	MaxEligibleLoan        decimal.Decimal `json:"max_eligible_loan"`
	CurrentInstallment     decimal.Decimal `json:"current_installment"`
	MonthlySavings         decimal.Decimal `json:"monthly_savings"`
	TotalInterestNew       decimal.Decimal `json:"total_interest_new"`
}

// YearlyAmortizationResponse is one row of a yearly schedule.
type YearlyAmortizationResponse struct {
	Year          int             `json:"year"`
	InterestPaid  decimal.Decimal `json:"interest_paid"`
	PrincipalPaid decimal.Decimal `json:"principal_paid"`
	EndingBalance decimal.Decimal `json:"ending_balance"`
}

// IncomeBreakdownResponse shows how recognised income was built up.
type IncomeBreakdownResponse struct {
	Category  string          `json:"category"`
	Fixed     decimal.Decimal `json:"fixed"`
	Variable  decimal.Decimal `json:"variable"`
	Secondary decimal.Decimal `json:"secondary"`
	Total     decimal.Decimal `json:"total"`
}

// EligibilityResponse is returned by the stateless evaluation.
type EligibilityResponse struct {
	RatePercent     decimal.Decimal              `json:"rate_percent"`
	TenureYears     int                          `json:"tenure_years"`
	Currency        string                       `json:"currency"`
	Decision        DecisionResponse             `json:"decision"`
	IncomeBreakdown IncomeBreakdownResponse      `json:"income_breakdown"`
	Schedule        []YearlyAmortizationResponse `json:"schedule"`
}

// QuickQuoteResponse is the teaser estimate. The lifetime figure is labelled
// as an estimate because it ignores the remaining term of the current loan.
type QuickQuoteResponse struct {
	AssumedRatePercent         decimal.Decimal `json:"assumed_rate_percent"`
	TenureYears                int             `json:"tenure_years"`
	NewMonthlyPayment          decimal.Decimal `json:"new_monthly_payment"`
	MonthlySavings             decimal.Decimal `json:"monthly_savings"`
	PotentialCashOut           decimal.Decimal `json:"potential_cash_out"`
	TotalInterestSavedEstimate decimal.Decimal `json:"total_interest_saved_estimate"`
	Approximate                bool            `json:"approximate"`
	Headline                   string          `json:"headline"`
}

// ContactResponse echoes contact details to authorised callers.
type ContactResponse struct {
	Name     string `json:"name"`
	ICNumber string `json:"ic_number,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone"`
}

// ApplicationResponse is the external representation of a refinance
// application.
type ApplicationResponse struct {
	ID          string              `json:"id"`
	Stage       string              `json:"stage"`
	Status      string              `json:"status"`
	Contact     ContactResponse     `json:"contact"`
	Goal        string              `json:"goal,omitempty"`
	QuickQuote  *QuickQuoteResponse `json:"quick_quote,omitempty"`
	RatePercent decimal.Decimal     `json:"rate_percent"`
	Decision    *DecisionResponse   `json:"decision,omitempty"`
	LinkSent    bool                `json:"link_sent"`
	DeletedAt   *time.Time          `json:"deleted_at,omitempty"`
	Version     int                 `json:"version"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ListApplicationsResponse is one page of a pipeline stage.
type ListApplicationsResponse struct {
	Stage        string                `json:"stage"`
	Applications []ApplicationResponse `json:"applications"`
}

// ReevaluationResponse adds the income breakdown an underwriter needs to
// audit the new decision.
type ReevaluationResponse struct {
	Application     ApplicationResponse     `json:"application"`
	IncomeBreakdown IncomeBreakdownResponse `json:"income_breakdown"`
}

// SavingsComparisonResponse is the result of the refinance savings calculator.
type SavingsComparisonResponse struct {
	NewMonthlyPayment decimal.Decimal              `json:"new_monthly_payment"`
	MonthlySaving     decimal.Decimal              `json:"monthly_saving"`
	RemainingMonths   decimal.Decimal              `json:"remaining_months"`
	CurrentTotalCost  decimal.Decimal              `json:"current_total_cost"`
	NewTotalCost      decimal.Decimal              `json:"new_total_cost"`
	LifetimeSaving    decimal.Decimal              `json:"lifetime_saving"`
	Valid             bool                         `json:"valid"`
	InvalidReason     string                       `json:"invalid_reason,omitempty"`
	Schedule          []YearlyAmortizationResponse `json:"schedule"`
}

// PurgeTrashResponse reports how many trashed applications were deleted.
type PurgeTrashResponse struct {
	Purged int `json:"purged"`
}
