package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/bibbank/refinance-service/internal/application/dto"
	"github.com/bibbank/refinance-service/internal/domain/model"
	"github.com/bibbank/refinance-service/internal/domain/port"
	"github.com/bibbank/refinance-service/internal/domain/service"
)

// SubmitApplicationUseCase stores a full intake with its decision. When a
// lead ID is given the lead is moved to ELIGIBILITY; otherwise a new
// application is created there.
type SubmitApplicationUseCase struct {
	repo        port.ApplicationRepository
	publisher   port.EventPublisher
	evaluator   *service.EligibilityEvaluator
	defaultRate float64
	recorder    port.DecisionRecorder
	now         Clock
}

func NewSubmitApplicationUseCase(
	repo port.ApplicationRepository,
	publisher port.EventPublisher,
	evaluator *service.EligibilityEvaluator,
	defaultRatePercent float64,
	recorder port.DecisionRecorder,
) *SubmitApplicationUseCase {
	if recorder == nil {
		recorder = NoopRecorder{}
	}
	return &SubmitApplicationUseCase{
		repo:        repo,
		publisher:   publisher,
		evaluator:   evaluator,
		defaultRate: defaultRatePercent,
		recorder:    recorder,
		now:         systemClock,
	}
}

// WithClock overrides the time source.
func (uc *SubmitApplicationUseCase) WithClock(c Clock) *SubmitApplicationUseCase {
	uc.now = c
	return uc
}

func (uc *SubmitApplicationUseCase) Execute(ctx context.Context, req dto.SubmitApplicationRequest) (dto.ApplicationResponse, error) {
	ctx, span := tracer.Start(ctx, "SubmitApplication")
	defer span.End()

	// 1. Map and validate the intake.
	applicant, err := toApplicant(req.Applicant)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("map applicant: %w", err)
	}
	rate, err := resolveRate(req.RatePercent, uc.defaultRate)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	// 2. Decide.
	decision := uc.evaluator.Evaluate(applicant, rate)
	uc.recorder.RecordDecision(ctx, "submit", decision)
	span.SetAttributes(attribute.Bool("refinance.approved", decision.Approved))

	// 3. Continue the lead or start a new application.
	contact := toContact(req.Contact)
	now := uc.now()
	var app model.RefinanceApplication
	if req.LeadID != "" {
		lead, err := uc.repo.FindByID(ctx, req.LeadID)
		if err != nil {
			return dto.ApplicationResponse{}, fmt.Errorf("find lead: %w", err)
		}
		app, err = lead.RecordEligibility(contact, applicant, rate, decision, now)
		if err != nil {
			return dto.ApplicationResponse{}, fmt.Errorf("record eligibility: %w", err)
		}
	} else {
		app, err = model.NewEvaluatedApplication(contact, applicant, rate, decision, now)
		if err != nil {
			return dto.ApplicationResponse{}, invalid(fmt.Errorf("create application: %w", err))
		}
	}

	// 4. Persist and publish.
	app, err = persist(ctx, uc.repo, uc.publisher, app)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}
	logDecision(ctx, app.ID(), decision)
	return toApplicationResponse(app), nil
}

// ---------------------------------------------------------------------------
// Proceed to submission
// ---------------------------------------------------------------------------

// ProceedToSubmissionUseCase moves an approved application to SUBMISSION.
type ProceedToSubmissionUseCase struct {
	repo      port.ApplicationRepository
	publisher port.EventPublisher
	now       Clock
}

func NewProceedToSubmissionUseCase(repo port.ApplicationRepository, publisher port.EventPublisher) *ProceedToSubmissionUseCase {
	return &ProceedToSubmissionUseCase{repo: repo, publisher: publisher, now: systemClock}
}

// WithClock overrides the time source.
func (uc *ProceedToSubmissionUseCase) WithClock(c Clock) *ProceedToSubmissionUseCase {
	uc.now = c
	return uc
}

func (uc *ProceedToSubmissionUseCase) Execute(ctx context.Context, req dto.GetApplicationRequest) (dto.ApplicationResponse, error) {
	app, err := uc.repo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}
	app, err = app.Submit(uc.now())
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("submit application: %w", err)
	}
	app, err = persist(ctx, uc.repo, uc.publisher, app)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}
	return toApplicationResponse(app), nil
}
