package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/refinance-service/internal/domain/model"
)

func TestMonthlyPayment_30YearMortgage(t *testing.T) {
	// RM100,000 at 5.00% for 30 years is approximately RM536.82.
	payment := model.MonthlyPayment(100_000, 5, 30)
	assert.InDelta(t, 536.82, payment, 0.01)
}

func TestMonthlyPayment_ZeroRate(t *testing.T) {
	assert.Equal(t, 120_000.0/120, model.MonthlyPayment(120_000, 0, 10))
}

func TestMonthlyPayment_NonPositiveTenure(t *testing.T) {
	assert.Zero(t, model.MonthlyPayment(100_000, 3.5, 0))
	assert.Zero(t, model.MonthlyPayment(100_000, 3.5, -5))
}

func TestPresentValue_InverseOfMonthlyPayment(t *testing.T) {
	cases := []struct {
		name      string
		principal float64
		rate      float64
		years     int
	}{
		{"typical refinance", 430_000, 3.55, 30},
		{"short tenure", 50_000, 8, 5},
		{"high rate", 250_000, 12.5, 35},
		{"zero rate", 90_000, 0, 15},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payment := model.MonthlyPayment(tc.principal, tc.rate, tc.years)
			assert.InEpsilon(t, tc.principal, model.PresentValue(payment, tc.rate, tc.years), 1e-9)
		})
	}
}

func TestPresentValue_ZeroRate(t *testing.T) {
	assert.Equal(t, 1_000.0*360, model.PresentValue(1_000, 0, 30))
}

func TestAmortizationSchedule_Conservation(t *testing.T) {
	const principal = 430_000.0

	schedule := model.CollectSchedule(principal, 3.55, 30)
	require.Len(t, schedule, 30)

	var totalPrincipal, totalInterest float64
	for i, row := range schedule {
		assert.Equal(t, i+1, row.Year)
		assert.GreaterOrEqual(t, row.EndingBalance, 0.0)
		totalPrincipal += row.PrincipalPaid
		totalInterest += row.InterestPaid
	}

	assert.InEpsilon(t, principal, totalPrincipal, 1e-6)
	assert.Zero(t, schedule[len(schedule)-1].EndingBalance)

	payment := model.MonthlyPayment(principal, 3.55, 30)
	assert.InEpsilon(t, payment*360-principal, totalInterest, 1e-6)
}

func TestAmortizationSchedule_BalanceDecreases(t *testing.T) {
	prev := 200_000.0
	for row := range model.AmortizationSchedule(prev, 4.2, 20) {
		assert.Less(t, row.EndingBalance, prev, "year %d", row.Year)
		prev = row.EndingBalance
	}
}

func TestAmortizationSchedule_Restartable(t *testing.T) {
	seq := model.AmortizationSchedule(150_000, 3.9, 10)

	var first, second []model.YearlyAmortization
	for row := range seq {
		first = append(first, row)
	}
	for row := range seq {
		second = append(second, row)
	}

	require.Len(t, first, 10)
	assert.Equal(t, first, second)
}

func TestAmortizationSchedule_EarlyBreak(t *testing.T) {
	var years []int
	for row := range model.AmortizationSchedule(150_000, 3.9, 10) {
		years = append(years, row.Year)
		if row.Year == 3 {
			break
		}
	}
	assert.Equal(t, []int{1, 2, 3}, years)
}

func TestAmortizationSchedule_ZeroRate(t *testing.T) {
	schedule := model.CollectSchedule(120_000, 0, 10)
	require.Len(t, schedule, 10)
	for _, row := range schedule {
		assert.Zero(t, row.InterestPaid)
		assert.InDelta(t, 12_000, row.PrincipalPaid, 1e-6)
	}
	assert.Zero(t, schedule[9].EndingBalance)
}

func TestAmortizationSchedule_Empty(t *testing.T) {
	assert.Empty(t, model.CollectSchedule(0, 3.5, 30))
	assert.Empty(t, model.CollectSchedule(100_000, 3.5, 0))
}

func TestRemainingTermMonths(t *testing.T) {
	t.Run("round trips a scheduled installment", func(t *testing.T) {
		payment := model.MonthlyPayment(300_000, 4.5, 25)
		months, ok := model.RemainingTermMonths(300_000, 4.5, payment)
		require.True(t, ok)
		assert.InDelta(t, 300, months, 1e-6)
	})

	t.Run("larger installment shortens the term", func(t *testing.T) {
		months, ok := model.RemainingTermMonths(300_000, 4.5, 1_800)
		require.True(t, ok)
		assert.InDelta(t, 262.04, months, 0.01)
	})

	t.Run("installment below interest never amortizes", func(t *testing.T) {
		// Monthly interest on 300,000 at 4.5% is 1,125.
		_, ok := model.RemainingTermMonths(300_000, 4.5, 1_125)
		assert.False(t, ok)
	})

	t.Run("zero rate", func(t *testing.T) {
		months, ok := model.RemainingTermMonths(120_000, 0, 1_000)
		require.True(t, ok)
		assert.Equal(t, 120.0, months)
	})

	t.Run("no installment", func(t *testing.T) {
		_, ok := model.RemainingTermMonths(120_000, 3, 0)
		assert.False(t, ok)
	})
}
