package model

import (
	"iter"
	"math"
)

// YearlyAmortization is an immutable value object summarising one year of an
// amortization schedule.
type YearlyAmortization struct {
	Year          int     `json:"year"`
	InterestPaid  float64 `json:"interest_paid"`
	PrincipalPaid float64 `json:"principal_paid"`
	EndingBalance float64 `json:"ending_balance"`
}

// monthlyRate converts an annual percentage (3.55 = 3.55%) to a monthly
// decimal rate.
func monthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100 / 12
}

// MonthlyPayment returns the level monthly installment that fully amortizes
// principal over years at annualRatePercent.
//
//	r       = annualRatePercent / 100 / 12
//	n       = years * 12
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate splits the principal evenly. A non-positive tenure yields 0.
func MonthlyPayment(principal, annualRatePercent float64, years int) float64 {
	if years <= 0 {
		return 0
	}
	n := float64(years * 12)
	r := monthlyRate(annualRatePercent)
	if r == 0 {
		return principal / n
	}
	factor := math.Pow(1+r, n)
	return principal * r * factor / (factor - 1)
}

// PresentValue is the inverse of MonthlyPayment: the principal that a given
// monthly installment can service over years at annualRatePercent.
//
//	PV = PMT * ((1+r)^n - 1) / (r * (1+r)^n)
func PresentValue(installment, annualRatePercent float64, years int) float64 {
	if years <= 0 {
		return 0
	}
	n := float64(years * 12)
	r := monthlyRate(annualRatePercent)
	if r == 0 {
		return installment * n
	}
	factor := math.Pow(1+r, n)
	return installment * (factor - 1) / (r * factor)
}

// AmortizationSchedule yields one row per year for a level-payment loan. The
// sequence is computed lazily month by month and can be ranged over any number
// of times; every pass produces the same rows. The balance never goes below
// zero.
func AmortizationSchedule(principal, annualRatePercent float64, years int) iter.Seq[YearlyAmortization] {
	return func(yield func(YearlyAmortization) bool) {
		if years <= 0 || principal <= 0 {
			return
		}
		payment := MonthlyPayment(principal, annualRatePercent, years)
		r := monthlyRate(annualRatePercent)
		balance := principal

		for year := 1; year <= years; year++ {
			row := YearlyAmortization{Year: year}
			for month := 0; month < 12; month++ {
				interest := balance * r
				principalPart := payment - interest
				// Final installment absorbs floating point drift.
				if year == years && month == 11 {
					principalPart = balance
				}
				balance -= principalPart
				if balance < 0 {
					principalPart += balance
					balance = 0
				}
				row.InterestPaid += interest
				row.PrincipalPaid += principalPart
			}
			row.EndingBalance = balance
			if !yield(row) {
				return
			}
		}
	}
}

// CollectSchedule materialises AmortizationSchedule into a slice.
func CollectSchedule(principal, annualRatePercent float64, years int) []YearlyAmortization {
	schedule := make([]YearlyAmortization, 0, max(years, 0))
	for row := range AmortizationSchedule(principal, annualRatePercent, years) {
		schedule = append(schedule, row)
	}
	return schedule
}

// RemainingTermMonths derives how many monthly installments are left on an
// existing loan from its balance, rate and current installment:
//
//	n = -ln(1 - r*PV/PMT) / ln(1+r)
//
// ok is false when the installment does not even cover the first month's
// interest, in which case the loan never amortizes.
func RemainingTermMonths(balance, annualRatePercent, installment float64) (months float64, ok bool) {
	if balance <= 0 {
		return 0, true
	}
	if installment <= 0 {
		return 0, false
	}
	r := monthlyRate(annualRatePercent)
	if r == 0 {
		return balance / installment, true
	}
	if installment <= balance*r {
		return 0, false
	}
	n := -math.Log(1-r*balance/installment) / math.Log(1+r)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
