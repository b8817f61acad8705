package service

import (
	"github.com/bibbank/refinance-service/internal/domain/model"
)

// SavingsInput describes the current loan and the refinance offer.
type SavingsInput struct {
	Balance            float64
	CurrentRatePercent float64
	CurrentInstallment float64
	NewRatePercent     float64
	NewTenureYears     int
}

// SavingsCalculator compares the remaining cost of the current loan with the
// total cost of refinancing the same balance.
type SavingsCalculator struct{}

// NewSavingsCalculator returns a calculator.
func NewSavingsCalculator() SavingsCalculator { return SavingsCalculator{} }

// Compare derives the remaining term of the current loan from its installment
// and sets Valid to false when that installment never pays the loan down.
func (SavingsCalculator) Compare(in SavingsInput) model.SavingsComparison {
	newPayment := model.MonthlyPayment(in.Balance, in.NewRatePercent, in.NewTenureYears)
	out := model.SavingsComparison{
		NewMonthlyPayment: newPayment,
		MonthlySaving:     in.CurrentInstallment - newPayment,
		NewTotalCost:      newPayment * float64(in.NewTenureYears*12),
		Schedule:          model.CollectSchedule(in.Balance, in.NewRatePercent, in.NewTenureYears),
	}

	months, ok := model.RemainingTermMonths(in.Balance, in.CurrentRatePercent, in.CurrentInstallment)
	if !ok {
		out.InvalidReason = "current installment does not cover the monthly interest"
		return out
	}

	out.Valid = true
	out.RemainingMonths = months
	out.CurrentTotalCost = in.CurrentInstallment * months
	out.LifetimeSaving = out.CurrentTotalCost - out.NewTotalCost
	return out
}
