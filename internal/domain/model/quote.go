package model

import "github.com/bibbank/refinance-service/internal/domain/valueobject"

// QuickQuoteInput is the four-field teaser form. Zero means not supplied.
type QuickQuoteInput struct {
	Goal               valueobject.RefinanceGoal
	OutstandingBalance float64
	CurrentInstallment float64
	EstimatedValue     float64
}

// QuickQuote is a reduced-precision estimate used to capture leads. It is not
// an eligibility decision.
type QuickQuote struct {
	AssumedRatePercent float64 `json:"assumed_rate_percent"`
	TenureYears        int     `json:"tenure_years"`
	NewMonthlyPayment  float64 `json:"new_monthly_payment"`
	MonthlySavings     float64 `json:"monthly_savings"`
	PotentialCashOut   float64 `json:"potential_cash_out"`
	// TotalInterestSaved projects MonthlySavings over the full tenure and
	// ignores discounting and the shorter remaining term of the current loan.
	TotalInterestSaved float64 `json:"total_interest_saved"`
	Approximate        bool    `json:"approximate"`
}

// SavingsComparison contrasts keeping the current loan with refinancing the
// same balance.
type SavingsComparison struct {
	NewMonthlyPayment float64              `json:"new_monthly_payment"`
	MonthlySaving     float64              `json:"monthly_saving"`
	RemainingMonths   float64              `json:"remaining_months"`
	CurrentTotalCost  float64              `json:"current_total_cost"`
	NewTotalCost      float64              `json:"new_total_cost"`
	LifetimeSaving    float64              `json:"lifetime_saving"`
	Valid             bool                 `json:"valid"`
	InvalidReason     string               `json:"invalid_reason,omitempty"`
	Schedule          []YearlyAmortization `json:"schedule"`
}
