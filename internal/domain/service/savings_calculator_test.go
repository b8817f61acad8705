package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/refinance-service/internal/domain/model"
	"github.com/bibbank/refinance-service/internal/domain/service"
)

func TestSavingsCalculator_Compare(t *testing.T) {
	calc := service.NewSavingsCalculator()

	t.Run("refinancing a costlier loan saves money", func(t *testing.T) {
		out := calc.Compare(service.SavingsInput{
			Balance:            300_000,
			CurrentRatePercent: 4.5,
			CurrentInstallment: 1_800,
			NewRatePercent:     3.55,
			NewTenureYears:     25,
		})

		require.True(t, out.Valid)
		assert.Empty(t, out.InvalidReason)
		assert.InDelta(t, 262.04, out.RemainingMonths, 0.01)
		assert.InDelta(t, 1_800*out.RemainingMonths, out.CurrentTotalCost, 1e-6)

		payment := model.MonthlyPayment(300_000, 3.55, 25)
		assert.InDelta(t, payment, out.NewMonthlyPayment, 1e-9)
		assert.InDelta(t, 1_800-payment, out.MonthlySaving, 1e-9)
		assert.InDelta(t, payment*300, out.NewTotalCost, 1e-6)
		assert.InDelta(t, out.CurrentTotalCost-out.NewTotalCost, out.LifetimeSaving, 1e-6)
		assert.Len(t, out.Schedule, 25)
	})

	t.Run("installment below interest is invalid", func(t *testing.T) {
		out := calc.Compare(service.SavingsInput{
			Balance:            300_000,
			CurrentRatePercent: 6,
			CurrentInstallment: 1_400,
			NewRatePercent:     3.55,
			NewTenureYears:     30,
		})

		assert.False(t, out.Valid)
		assert.NotEmpty(t, out.InvalidReason)
		assert.Zero(t, out.LifetimeSaving)
		assert.Positive(t, out.NewMonthlyPayment)
	})
}
