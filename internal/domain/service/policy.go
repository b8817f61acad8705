package service

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Policy – underwriting parameters
// ---------------------------------------------------------------------------

// Policy carries every haircut, threshold and buffer used by the engine.
// Percentages are 0–100; haircuts and ratios are 0–1. The zero value is not
// usable; start from DefaultPolicy and override.
type Policy struct {
	Haircuts IncomeHaircuts `yaml:"haircuts" json:"haircuts"`

	// CreditCardRepaymentRate is the share of the outstanding card balance
	// counted as a monthly commitment.
	CreditCardRepaymentRate float64 `yaml:"credit_card_repayment_rate" json:"credit_card_repayment_rate"`

	MaxDSRPercent       float64 `yaml:"max_dsr_percent" json:"max_dsr_percent"`
	MaxStressDSRPercent float64 `yaml:"max_stress_dsr_percent" json:"max_stress_dsr_percent"`
	StressBufferPercent float64 `yaml:"stress_buffer_percent" json:"stress_buffer_percent"`

	MaxLTVCashOutPercent      float64 `yaml:"max_ltv_cash_out_percent" json:"max_ltv_cash_out_percent"`
	MaxLTVSaveInterestPercent float64 `yaml:"max_ltv_save_interest_percent" json:"max_ltv_save_interest_percent"`

	MinNetDisposableIncome float64 `yaml:"min_net_disposable_income" json:"min_net_disposable_income"`

	// MaxCommitmentRatio caps total monthly commitments as a share of
	// recognised income when back-solving the maximum loan.
	MaxCommitmentRatio float64 `yaml:"max_commitment_ratio" json:"max_commitment_ratio"`

	QuickQuote QuickQuotePolicy `yaml:"quick_quote" json:"quick_quote"`
}

// IncomeHaircuts are the fractions of each income component that count.
type IncomeHaircuts struct {
	Rental           float64 `yaml:"rental" json:"rental"`
	PartTime         float64 `yaml:"part_time" json:"part_time"`
	Commission       float64 `yaml:"commission" json:"commission"`
	Bonus            float64 `yaml:"bonus" json:"bonus"`
	Overtime         float64 `yaml:"overtime" json:"overtime"`
	CommissionEarner float64 `yaml:"commission_earner" json:"commission_earner"`
}

// QuickQuotePolicy parameterises the lead-funnel teaser.
type QuickQuotePolicy struct {
	DefaultRatePercent  float64 `yaml:"default_rate_percent" json:"default_rate_percent"`
	BaselineRatePercent float64 `yaml:"baseline_rate_percent" json:"baseline_rate_percent"`
	TenureYears         int     `yaml:"tenure_years" json:"tenure_years"`
	CashOutLTVRatio     float64 `yaml:"cash_out_ltv_ratio" json:"cash_out_ltv_ratio"`
}

// DefaultPolicy returns the standard retail refinancing policy.
func DefaultPolicy() Policy {
	return Policy{
		Haircuts: IncomeHaircuts{
			Rental:           0.75,
			PartTime:         0.50,
			Commission:       0.60,
			Bonus:            0.50,
			Overtime:         0.50,
			CommissionEarner: 0.80,
		},
		CreditCardRepaymentRate:   0.05,
		MaxDSRPercent:             70,
		MaxStressDSRPercent:       75,
		StressBufferPercent:       1.75,
		MaxLTVCashOutPercent:      85,
		MaxLTVSaveInterestPercent: 90,
		MinNetDisposableIncome:    1000,
		MaxCommitmentRatio:        0.70,
		QuickQuote: QuickQuotePolicy{
			DefaultRatePercent:  3.55,
			BaselineRatePercent: 4.5,
			TenureYears:         30,
			CashOutLTVRatio:     0.80,
		},
	}
}

// Validate reports every out-of-range parameter.
func (p Policy) Validate() error {
	var errs []error
	fraction := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be between 0 and 1, got %v", name, v))
		}
	}
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	fraction("haircuts.rental", p.Haircuts.Rental)
	fraction("haircuts.part_time", p.Haircuts.PartTime)
	fraction("haircuts.commission", p.Haircuts.Commission)
	fraction("haircuts.bonus", p.Haircuts.Bonus)
	fraction("haircuts.overtime", p.Haircuts.Overtime)
	fraction("haircuts.commission_earner", p.Haircuts.CommissionEarner)
	fraction("credit_card_repayment_rate", p.CreditCardRepaymentRate)
	fraction("max_commitment_ratio", p.MaxCommitmentRatio)
	fraction("quick_quote.cash_out_ltv_ratio", p.QuickQuote.CashOutLTVRatio)

	positive("max_dsr_percent", p.MaxDSRPercent)
	positive("max_stress_dsr_percent", p.MaxStressDSRPercent)
	positive("max_ltv_cash_out_percent", p.MaxLTVCashOutPercent)
	positive("max_ltv_save_interest_percent", p.MaxLTVSaveInterestPercent)
	positive("quick_quote.baseline_rate_percent", p.QuickQuote.BaselineRatePercent)
	if p.StressBufferPercent < 0 {
		errs = append(errs, fmt.Errorf("stress_buffer_percent must not be negative, got %v", p.StressBufferPercent))
	}
	if p.MinNetDisposableIncome < 0 {
		errs = append(errs, fmt.Errorf("min_net_disposable_income must not be negative, got %v", p.MinNetDisposableIncome))
	}
	if p.QuickQuote.DefaultRatePercent < 0 {
		errs = append(errs, fmt.Errorf("quick_quote.default_rate_percent must not be negative, got %v", p.QuickQuote.DefaultRatePercent))
	}
	if p.QuickQuote.TenureYears <= 0 {
		errs = append(errs, fmt.Errorf("quick_quote.tenure_years must be positive, got %d", p.QuickQuote.TenureYears))
	}

	return errors.Join(errs...)
}

// maxLTVPercent returns the LTV ceiling for the goal.
func (p Policy) maxLTVPercent(cashOut bool) float64 {
	if cashOut {
		return p.MaxLTVCashOutPercent
	}
	return p.MaxLTVSaveInterestPercent
}
