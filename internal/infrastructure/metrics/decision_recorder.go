// Package metrics records decision outcomes as OpenTelemetry instruments.
package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bibbank/refinance-service/internal/domain/model"
	"github.com/bibbank/refinance-service/internal/domain/port"
)

const meterName = "github.com/bibbank/refinance-service"

// DecisionRecorder implements port.DecisionRecorder.
type DecisionRecorder struct {
	decisions metric.Int64Counter
	reasons   metric.Int64Counter
	dsr       metric.Float64Histogram
	quotes    metric.Int64Counter
}

var _ port.DecisionRecorder = (*DecisionRecorder)(nil)

// NewDecisionRecorder creates the instruments on provider.
func NewDecisionRecorder(provider metric.MeterProvider) (*DecisionRecorder, error) {
	meter := provider.Meter(meterName)

	decisions, err := meter.Int64Counter("refinance_decisions",
		metric.WithDescription("Eligibility decisions by source and outcome."))
	if err != nil {
		return nil, fmt.Errorf("create decisions counter: %w", err)
	}
	reasons, err := meter.Int64Counter("refinance_rejection_reasons",
		metric.WithDescription("Rejection reasons by code."))
	if err != nil {
		return nil, fmt.Errorf("create reasons counter: %w", err)
	}
	dsr, err := meter.Float64Histogram("refinance_dsr_percent",
		metric.WithDescription("Debt service ratio of evaluated applicants."),
		metric.WithExplicitBucketBoundaries(20, 30, 40, 50, 60, 70, 80, 100))
	if err != nil {
		return nil, fmt.Errorf("create dsr histogram: %w", err)
	}
	quotes, err := meter.Int64Counter("refinance_quick_quotes",
		metric.WithDescription("Quick quotes served, split by cache hit."))
	if err != nil {
		return nil, fmt.Errorf("create quotes counter: %w", err)
	}

	return &DecisionRecorder{decisions: decisions, reasons: reasons, dsr: dsr, quotes: quotes}, nil
}

func (r *DecisionRecorder) RecordDecision(ctx context.Context, source string, d model.DecisionResult) {
	src := attribute.String("source", source)
	r.decisions.Add(ctx, 1, metric.WithAttributes(src, attribute.Bool("approved", d.Approved)))
	r.dsr.Record(ctx, d.DSR, metric.WithAttributes(src))
	for _, reason := range d.Reasons {
		r.reasons.Add(ctx, 1, metric.WithAttributes(attribute.String("code", string(reason.Code))))
	}
}

func (r *DecisionRecorder) RecordQuickQuote(ctx context.Context, cached bool) {
	r.quotes.Add(ctx, 1, metric.WithAttributes(attribute.Bool("cached", cached)))
}
