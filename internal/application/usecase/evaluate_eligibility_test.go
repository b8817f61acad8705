package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/refinance-service/internal/application/usecase"
	"github.com/bibbank/refinance-service/internal/domain/model"
	"github.com/bibbank/refinance-service/internal/domain/service"
)

func newEvaluator() *service.EligibilityEvaluator {
	return service.NewEligibilityEvaluator(service.DefaultPolicy())
}

func TestEvaluateEligibility_Execute(t *testing.T) {
	t.Run("approves a qualifying applicant at the default rate", func(t *testing.T) {
		recorder := &mockRecorder{}
		uc := usecase.NewEvaluateEligibilityUseCase(newEvaluator(), 3.55, recorder)

		resp, err := uc.Execute(context.Background(), usecaseEvaluateRequest())

		require.NoError(t, err)
		assert.True(t, resp.Decision.Approved, "reasons: %v", resp.Decision.Reasons)
		assert.Empty(t, resp.Decision.Reasons)
		assert.Equal(t, "3.55", resp.RatePercent.String())
		assert.Equal(t, 30, resp.TenureYears)
		assert.Equal(t, "MYR", resp.Currency)
		assert.True(t, resp.Decision.RequestedLoan.Equal(decimal.NewFromInt(430_000)))
		assert.True(t, resp.IncomeBreakdown.Total.Equal(decimal.NewFromInt(9_900)))
		assert.Equal(t, "EMPLOYEE", resp.IncomeBreakdown.Category)
		require.Len(t, resp.Schedule, 30)
		assert.True(t, resp.Schedule[29].EndingBalance.IsZero())
		assert.Equal(t, []string{"evaluate"}, recorder.decisions)
	})

	t.Run("reports every failed check with its code", func(t *testing.T) {
		uc := usecase.NewEvaluateEligibilityUseCase(newEvaluator(), 3.55, nil)

		req := usecaseEvaluateRequest()
		req.Applicant.Credit.Bankruptcy = boolPtr(true)
		req.Applicant.Request.DesiredCashOut = dec(200_000)

		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.False(t, resp.Decision.Approved)
		assert.Equal(t, []string{"BANKRUPTCY", "LTV_EXCEEDED"}, resp.Decision.ReasonCodes)
		assert.Equal(t, "Bankruptcy history", resp.Decision.Reasons[0])
		assert.Contains(t, resp.Decision.Reasons[1], "LTV exceeds limit")
	})

	t.Run("uses the requested rate", func(t *testing.T) {
		uc := usecase.NewEvaluateEligibilityUseCase(newEvaluator(), 3.55, nil)

		req := usecaseEvaluateRequest()
		rate := decimal.RequireFromString("4.25")
		req.RatePercent = &rate

		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "4.25", resp.RatePercent.String())
		assert.Equal(t, "6", resp.Decision.StressRatePercent.String())
	})

	t.Run("rejects unanswered credit questions as invalid input", func(t *testing.T) {
		uc := usecase.NewEvaluateEligibilityUseCase(newEvaluator(), 3.55, nil)

		req := usecaseEvaluateRequest()
		req.Applicant.Credit.SevereLatePayments = nil

		_, err := uc.Execute(context.Background(), req)

		require.Error(t, err)
		assert.ErrorIs(t, err, usecase.ErrInvalidRequest)
		assert.ErrorIs(t, err, model.ErrUnansweredCreditQuestion)
	})

	t.Run("rejects an unknown employment type", func(t *testing.T) {
		uc := usecase.NewEvaluateEligibilityUseCase(newEvaluator(), 3.55, nil)

		req := usecaseEvaluateRequest()
		req.Applicant.Income.EmploymentType = "astronaut"

		_, err := uc.Execute(context.Background(), req)

		require.Error(t, err)
		assert.ErrorIs(t, err, usecase.ErrInvalidRequest)
		var fe *model.FieldError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "income.employment_type", fe.Field)
	})

	t.Run("rejects a tenure outside the accepted range", func(t *testing.T) {
		uc := usecase.NewEvaluateEligibilityUseCase(newEvaluator(), 3.55, nil)

		req := usecaseEvaluateRequest()
		req.Applicant.Request.DesiredTenureYears = 40

		_, err := uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, model.ErrTenureOutOfRange)
	})

	t.Run("rejects a negative rate", func(t *testing.T) {
		uc := usecase.NewEvaluateEligibilityUseCase(newEvaluator(), 3.55, nil)

		req := usecaseEvaluateRequest()
		rate := decimal.NewFromInt(-1)
		req.RatePercent = &rate

		_, err := uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, model.ErrNegativeAmount)
	})
}
