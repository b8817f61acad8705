package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bibbank/refinance-service/internal/application/dto"
	"github.com/bibbank/refinance-service/internal/domain/model"
	"github.com/bibbank/refinance-service/internal/domain/port"
	"github.com/bibbank/refinance-service/internal/domain/service"
	"github.com/bibbank/refinance-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Re-evaluation
// ---------------------------------------------------------------------------

// ReevaluateApplicationUseCase re-runs the engine on a stored application,
// optionally at a different rate, and returns the income breakdown alongside
// the new decision.
type ReevaluateApplicationUseCase struct {
	repo      port.ApplicationRepository
	publisher port.EventPublisher
	evaluator *service.EligibilityEvaluator
	recorder  port.DecisionRecorder
	now       Clock
}

func NewReevaluateApplicationUseCase(
	repo port.ApplicationRepository,
	publisher port.EventPublisher,
	evaluator *service.EligibilityEvaluator,
	recorder port.DecisionRecorder,
) *ReevaluateApplicationUseCase {
	if recorder == nil {
		recorder = NoopRecorder{}
	}
	return &ReevaluateApplicationUseCase{
		repo:      repo,
		publisher: publisher,
		evaluator: evaluator,
		recorder:  recorder,
		now:       systemClock,
	}
}

// WithClock overrides the time source.
func (uc *ReevaluateApplicationUseCase) WithClock(c Clock) *ReevaluateApplicationUseCase {
	uc.now = c
	return uc
}

func (uc *ReevaluateApplicationUseCase) Execute(ctx context.Context, req dto.ReevaluateApplicationRequest) (dto.ReevaluationResponse, error) {
	ctx, span := tracer.Start(ctx, "ReevaluateApplication")
	defer span.End()

	// 1. Load the application.
	app, err := uc.repo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.ReevaluationResponse{}, fmt.Errorf("find application: %w", err)
	}
	applicant := app.Applicant()
	if applicant == nil {
		return dto.ReevaluationResponse{}, fmt.Errorf("reevaluate application: %w", valueobject.ErrInvalidStageTransition)
	}

	// 2. Keep the stored rate unless a new one was given.
	rate, err := resolveRate(req.RatePercent, app.RatePercent())
	if err != nil {
		return dto.ReevaluationResponse{}, err
	}

	// 3. Decide again.
	decision := uc.evaluator.Evaluate(*applicant, rate)
	uc.recorder.RecordDecision(ctx, "reevaluate", decision)
	app, err = app.Reevaluate(rate, decision, uc.now())
	if err != nil {
		return dto.ReevaluationResponse{}, fmt.Errorf("reevaluate application: %w", err)
	}

	// 4. Persist and publish.
	app, err = persist(ctx, uc.repo, uc.publisher, app)
	if err != nil {
		return dto.ReevaluationResponse{}, err
	}
	logDecision(ctx, app.ID(), decision)
	return dto.ReevaluationResponse{
		Application:     toApplicationResponse(app),
		IncomeBreakdown: toIncomeBreakdownResponse(uc.evaluator.IncomeBreakdown(applicant.Income)),
	}, nil
}

// ---------------------------------------------------------------------------
// Pipeline management
// ---------------------------------------------------------------------------

// UpdateApplicationStatusUseCase records an administrator's status override.
type UpdateApplicationStatusUseCase struct {
	repo      port.ApplicationRepository
	publisher port.EventPublisher
	now       Clock
}

func NewUpdateApplicationStatusUseCase(repo port.ApplicationRepository, publisher port.EventPublisher) *UpdateApplicationStatusUseCase {
	return &UpdateApplicationStatusUseCase{repo: repo, publisher: publisher, now: systemClock}
}

func (uc *UpdateApplicationStatusUseCase) Execute(ctx context.Context, req dto.UpdateStatusRequest) (dto.ApplicationResponse, error) {
	status, err := valueobject.NewApplicationStatus(strings.ToUpper(req.Status))
	if err != nil {
		return dto.ApplicationResponse{}, invalid(err)
	}
	return mutate(ctx, uc.repo, uc.publisher, req.ApplicationID, "override status",
		func(app model.RefinanceApplication) (model.RefinanceApplication, error) {
			return app.OverrideStatus(status, uc.now())
		})
}

// SetLinkSentUseCase records whether the follow-up link was sent.
type SetLinkSentUseCase struct {
	repo      port.ApplicationRepository
	publisher port.EventPublisher
	now       Clock
}

func NewSetLinkSentUseCase(repo port.ApplicationRepository, publisher port.EventPublisher) *SetLinkSentUseCase {
	return &SetLinkSentUseCase{repo: repo, publisher: publisher, now: systemClock}
}

func (uc *SetLinkSentUseCase) Execute(ctx context.Context, req dto.SetLinkSentRequest) (dto.ApplicationResponse, error) {
	return mutate(ctx, uc.repo, uc.publisher, req.ApplicationID, "set link sent",
		func(app model.RefinanceApplication) (model.RefinanceApplication, error) {
			return app.SetLinkSent(req.Sent, uc.now()), nil
		})
}

// TrashApplicationUseCase moves an application to TRASH.
type TrashApplicationUseCase struct {
	repo      port.ApplicationRepository
	publisher port.EventPublisher
	now       Clock
}

func NewTrashApplicationUseCase(repo port.ApplicationRepository, publisher port.EventPublisher) *TrashApplicationUseCase {
	return &TrashApplicationUseCase{repo: repo, publisher: publisher, now: systemClock}
}

// WithClock overrides the time source.
func (uc *TrashApplicationUseCase) WithClock(c Clock) *TrashApplicationUseCase {
	uc.now = c
	return uc
}

func (uc *TrashApplicationUseCase) Execute(ctx context.Context, req dto.GetApplicationRequest) (dto.ApplicationResponse, error) {
	return mutate(ctx, uc.repo, uc.publisher, req.ApplicationID, "move to trash",
		func(app model.RefinanceApplication) (model.RefinanceApplication, error) {
			return app.MoveToTrash(uc.now())
		})
}

// PurgeTrashUseCase deletes trashed applications past their retention.
type PurgeTrashUseCase struct {
	repo   port.ApplicationRepository
	logger *slog.Logger
	now    Clock
}

func NewPurgeTrashUseCase(repo port.ApplicationRepository, logger *slog.Logger) *PurgeTrashUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &PurgeTrashUseCase{repo: repo, logger: logger, now: systemClock}
}

// WithClock overrides the time source.
func (uc *PurgeTrashUseCase) WithClock(c Clock) *PurgeTrashUseCase {
	uc.now = c
	return uc
}

func (uc *PurgeTrashUseCase) Execute(ctx context.Context) (dto.PurgeTrashResponse, error) {
	cutoff := uc.now().Add(-model.TrashRetention)
	n, err := uc.repo.PurgeTrashed(ctx, cutoff)
	if err != nil {
		return dto.PurgeTrashResponse{}, fmt.Errorf("purge trashed applications: %w", err)
	}
	if n > 0 {
		uc.logger.InfoContext(ctx, "purged trashed applications", "count", n, "cutoff", cutoff)
	}
	return dto.PurgeTrashResponse{Purged: n}, nil
}

func mutate(
	ctx context.Context,
	repo port.ApplicationRepository,
	publisher port.EventPublisher,
	id, step string,
	fn func(model.RefinanceApplication) (model.RefinanceApplication, error),
) (dto.ApplicationResponse, error) {
	app, err := repo.FindByID(ctx, id)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}
	app, err = fn(app)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("%s: %w", step, err)
	}
	app, err = persist(ctx, repo, publisher, app)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}
	return toApplicationResponse(app), nil
}
