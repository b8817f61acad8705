package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/bibbank/refinance-service/internal/domain/model"
	"github.com/bibbank/refinance-service/internal/domain/port"
)

var tracer = otel.Tracer("github.com/bibbank/refinance-service/internal/application/usecase")

// Clock returns the current time. Tests replace it to pin timestamps.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

// NoopRecorder discards decision metrics.
type NoopRecorder struct{}

func (NoopRecorder) RecordDecision(context.Context, string, model.DecisionResult) {}
func (NoopRecorder) RecordQuickQuote(context.Context, bool)                      {}

// persist saves the aggregate, publishes its pending events and returns the
// aggregate with its event list cleared.
func persist(
	ctx context.Context,
	repo port.ApplicationRepository,
	publisher port.EventPublisher,
	app model.RefinanceApplication,
) (model.RefinanceApplication, error) {
	if err := repo.Save(ctx, app); err != nil {
		return model.RefinanceApplication{}, fmt.Errorf("save application: %w", err)
	}
	if events := app.DomainEvents(); len(events) > 0 {
		if err := publisher.Publish(ctx, events...); err != nil {
			return model.RefinanceApplication{}, fmt.Errorf("publish events: %w", err)
		}
	}
	return app.ClearEvents(), nil
}

// logDecision records the outcome without any applicant PII.
func logDecision(ctx context.Context, applicationID string, d model.DecisionResult) {
	slog.InfoContext(ctx, "eligibility decided",
		"application_id", applicationID,
		"approved", d.Approved,
		"dsr", d.DSR,
		"reason_count", len(d.Reasons),
	)
}
