package usecase

import (
	"context"

	"github.com/bibbank/refinance-service/internal/application/dto"
	"github.com/bibbank/refinance-service/internal/domain/model"
	"github.com/bibbank/refinance-service/internal/domain/service"
	"github.com/bibbank/refinance-service/pkg/money"
)

// CompareSavingsUseCase prices refinancing an existing loan against keeping
// it.
type CompareSavingsUseCase struct {
	calculator service.SavingsCalculator
}

func NewCompareSavingsUseCase(calculator service.SavingsCalculator) *CompareSavingsUseCase {
	return &CompareSavingsUseCase{calculator: calculator}
}

func (uc *CompareSavingsUseCase) Execute(_ context.Context, req dto.CompareSavingsRequest) (dto.SavingsComparisonResponse, error) {
	// 1. Validate.
	for _, c := range []struct {
		field    string
		negative bool
	}{
		{"balance", req.Balance.IsNegative()},
		{"current_rate_percent", req.CurrentRatePercent.IsNegative()},
		{"current_installment", req.CurrentInstallment.IsNegative()},
		{"new_rate_percent", req.NewRatePercent.IsNegative()},
	} {
		if c.negative {
			return dto.SavingsComparisonResponse{}, invalid(&model.FieldError{Field: c.field, Err: model.ErrNegativeAmount})
		}
	}
	if !req.Balance.IsPositive() {
		return dto.SavingsComparisonResponse{}, invalid(&model.FieldError{Field: "balance", Err: model.ErrMissingRequiredField})
	}
	if req.NewTenureYears < model.MinTenureYears || req.NewTenureYears > model.MaxTenureYears {
		return dto.SavingsComparisonResponse{}, invalid(&model.FieldError{Field: "new_tenure_years", Err: model.ErrTenureOutOfRange})
	}

	// 2. Compare.
	c := uc.calculator.Compare(service.SavingsInput{
		Balance:            money.Float(req.Balance),
		CurrentRatePercent: money.Float(req.CurrentRatePercent),
		CurrentInstallment: money.Float(req.CurrentInstallment),
		NewRatePercent:     money.Float(req.NewRatePercent),
		NewTenureYears:     req.NewTenureYears,
	})

	return dto.SavingsComparisonResponse{
		NewMonthlyPayment: money.Amount(c.NewMonthlyPayment),
		MonthlySaving:     money.Amount(c.MonthlySaving),
		RemainingMonths:   money.Amount(c.RemainingMonths),
		CurrentTotalCost:  money.Amount(c.CurrentTotalCost),
		NewTotalCost:      money.Amount(c.NewTotalCost),
		LifetimeSaving:    money.Amount(c.LifetimeSaving),
		Valid:             c.Valid,
		InvalidReason:     c.InvalidReason,
		Schedule:          toScheduleResponse(c.Schedule),
	}, nil
}
