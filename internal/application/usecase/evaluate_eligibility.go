package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/bibbank/refinance-service/internal/application/dto"
	"github.com/bibbank/refinance-service/internal/domain/model"
	"github.com/bibbank/refinance-service/internal/domain/port"
	"github.com/bibbank/refinance-service/internal/domain/service"
	"github.com/bibbank/refinance-service/pkg/money"
)

// EvaluateEligibilityUseCase runs the eligibility engine on an intake without
// storing anything.
type EvaluateEligibilityUseCase struct {
	evaluator   *service.EligibilityEvaluator
	defaultRate float64
	recorder    port.DecisionRecorder
}

func NewEvaluateEligibilityUseCase(
	evaluator *service.EligibilityEvaluator,
	defaultRatePercent float64,
	recorder port.DecisionRecorder,
) *EvaluateEligibilityUseCase {
	if recorder == nil {
		recorder = NoopRecorder{}
	}
	return &EvaluateEligibilityUseCase{
		evaluator:   evaluator,
		defaultRate: defaultRatePercent,
		recorder:    recorder,
	}
}

func (uc *EvaluateEligibilityUseCase) Execute(ctx context.Context, req dto.EvaluateRequest) (dto.EligibilityResponse, error) {
	ctx, span := tracer.Start(ctx, "EvaluateEligibility")
	defer span.End()

	// 1. Map and validate the intake.
	applicant, err := toApplicant(req.Applicant)
	if err != nil {
		return dto.EligibilityResponse{}, fmt.Errorf("map applicant: %w", err)
	}
	rate, err := resolveRate(req.RatePercent, uc.defaultRate)
	if err != nil {
		return dto.EligibilityResponse{}, err
	}

	// 2. Decide.
	decision := uc.evaluator.Evaluate(applicant, rate)
	uc.recorder.RecordDecision(ctx, "evaluate", decision)
	logDecision(ctx, "", decision)
	span.SetAttributes(
		attribute.Bool("refinance.approved", decision.Approved),
		attribute.Int("refinance.reasons", len(decision.Reasons)),
	)

	// 3. Build the response with the schedule of the proposed loan.
	tenure := applicant.Request.DesiredTenureYears
	return dto.EligibilityResponse{
		RatePercent:     money.Ratio(rate),
		TenureYears:     tenure,
		Currency:        money.MYR.String(),
		Decision:        toDecisionResponse(decision),
		IncomeBreakdown: toIncomeBreakdownResponse(uc.evaluator.IncomeBreakdown(applicant.Income)),
		Schedule:        toScheduleResponse(model.CollectSchedule(decision.RequestedLoan, rate, tenure)),
	}, nil
}
