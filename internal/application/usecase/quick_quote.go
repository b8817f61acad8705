package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/bibbank/refinance-service/internal/application/dto"
	"github.com/bibbank/refinance-service/internal/domain/model"
	"github.com/bibbank/refinance-service/internal/domain/port"
	"github.com/bibbank/refinance-service/internal/domain/service"
)

// QuickQuoteUseCase prices the teaser form. Identical inputs are served from
// the quote cache when one is configured; cache failures are logged and
// otherwise ignored.
type QuickQuoteUseCase struct {
	estimator service.QuickQuoteEstimator
	cache     port.QuoteCache
	ttl       time.Duration
	recorder  port.DecisionRecorder
	logger    *slog.Logger
}

func NewQuickQuoteUseCase(
	estimator service.QuickQuoteEstimator,
	cache port.QuoteCache,
	ttl time.Duration,
	recorder port.DecisionRecorder,
	logger *slog.Logger,
) *QuickQuoteUseCase {
	if recorder == nil {
		recorder = NoopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &QuickQuoteUseCase{
		estimator: estimator,
		cache:     cache,
		ttl:       ttl,
		recorder:  recorder,
		logger:    logger,
	}
}

func (uc *QuickQuoteUseCase) Execute(ctx context.Context, req dto.QuickQuoteRequest) (dto.QuickQuoteResponse, error) {
	ctx, span := tracer.Start(ctx, "QuickQuote")
	defer span.End()

	q, _, err := uc.quote(ctx, req)
	if err != nil {
		return dto.QuickQuoteResponse{}, err
	}
	return toQuickQuoteResponse(q), nil
}

// quote is shared with lead capture so that a saved lead carries the same
// figures the prospect saw.
func (uc *QuickQuoteUseCase) quote(ctx context.Context, req dto.QuickQuoteRequest) (model.QuickQuote, model.QuickQuoteInput, error) {
	// 1. Validate input.
	in, err := toQuickQuoteInput(req)
	if err != nil {
		return model.QuickQuote{}, model.QuickQuoteInput{}, err
	}
	rate, err := resolveRate(req.RatePercent, uc.estimator.DefaultRatePercent())
	if err != nil {
		return model.QuickQuote{}, model.QuickQuoteInput{}, err
	}

	// 2. Try the cache.
	key := quoteCacheKey(in, rate)
	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx, key)
		if err != nil {
			uc.logger.WarnContext(ctx, "quote cache read failed", "error", err)
		} else if ok {
			uc.recorder.RecordQuickQuote(ctx, true)
			return cached, in, nil
		}
	}

	// 3. Estimate and populate the cache.
	q := uc.estimator.Estimate(in, rate)
	uc.recorder.RecordQuickQuote(ctx, false)
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, q, uc.ttl); err != nil {
			uc.logger.WarnContext(ctx, "quote cache write failed", "error", err)
		}
	}
	return q, in, nil
}

func quoteCacheKey(in model.QuickQuoteInput, rate float64) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
	return strings.Join([]string{
		"quickquote",
		in.Goal.String(),
		f(in.OutstandingBalance),
		f(in.CurrentInstallment),
		f(in.EstimatedValue),
		strconv.FormatFloat(rate, 'f', 4, 64),
	}, ":")
}

// ---------------------------------------------------------------------------
// Lead capture
// ---------------------------------------------------------------------------

// CaptureLeadUseCase stores a quick quote with contact details as a LEAD.
type CaptureLeadUseCase struct {
	quotes    *QuickQuoteUseCase
	repo      port.ApplicationRepository
	publisher port.EventPublisher
	now       Clock
}

func NewCaptureLeadUseCase(
	quotes *QuickQuoteUseCase,
	repo port.ApplicationRepository,
	publisher port.EventPublisher,
) *CaptureLeadUseCase {
	return &CaptureLeadUseCase{
		quotes:    quotes,
		repo:      repo,
		publisher: publisher,
		now:       systemClock,
	}
}

// WithClock overrides the time source.
func (uc *CaptureLeadUseCase) WithClock(c Clock) *CaptureLeadUseCase {
	uc.now = c
	return uc
}

func (uc *CaptureLeadUseCase) Execute(ctx context.Context, req dto.CaptureLeadRequest) (dto.ApplicationResponse, error) {
	ctx, span := tracer.Start(ctx, "CaptureLead")
	defer span.End()

	// 1. Price the quote.
	q, in, err := uc.quotes.quote(ctx, req.Quote)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	// 2. Create the lead.
	app, err := model.NewLead(toContact(req.Contact), in, q, uc.now())
	if err != nil {
		return dto.ApplicationResponse{}, invalid(fmt.Errorf("create lead: %w", err))
	}

	// 3. Persist and publish.
	app, err = persist(ctx, uc.repo, uc.publisher, app)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}
	return toApplicationResponse(app), nil
}
