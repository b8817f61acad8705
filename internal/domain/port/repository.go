package port

import (
	"context"
	"errors"
	"time"

	"github.com/bibbank/refinance-service/internal/domain/event"
	"github.com/bibbank/refinance-service/internal/domain/model"
	"github.com/bibbank/refinance-service/internal/domain/valueobject"
)

// ErrApplicationNotFound is returned by repositories when no application has
// the requested ID.
var ErrApplicationNotFound = errors.New("refinance application not found")

// ErrConcurrentModification is returned by Save when the stored version no
// longer matches the aggregate being saved.
var ErrConcurrentModification = errors.New("optimistic locking conflict on refinance application")

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// ApplicationRepository persists and retrieves refinance applications.
type ApplicationRepository interface {
	Save(ctx context.Context, app model.RefinanceApplication) error
	FindByID(ctx context.Context, id string) (model.RefinanceApplication, error)
	// ListByStage returns applications in the stage, newest first.
	ListByStage(ctx context.Context, stage valueobject.PipelineStage, limit int) ([]model.RefinanceApplication, error)
	// PurgeTrashed permanently deletes applications trashed before cutoff and
	// returns how many were removed.
	PurgeTrashed(ctx context.Context, cutoff time.Time) (int, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Cache port
// ---------------------------------------------------------------------------

// QuoteCache memoises quick quotes for identical inputs. A miss is reported
// with ok == false and a nil error.
type QuoteCache interface {
	Get(ctx context.Context, key string) (quote model.QuickQuote, ok bool, err error)
	Set(ctx context.Context, key string, quote model.QuickQuote, ttl time.Duration) error
}

// ---------------------------------------------------------------------------
// Metrics port
// ---------------------------------------------------------------------------

// DecisionRecorder records decision outcomes for monitoring. Source names the
// flow that produced the decision, such as "evaluate" or "reevaluate".
type DecisionRecorder interface {
	RecordDecision(ctx context.Context, source string, decision model.DecisionResult)
	RecordQuickQuote(ctx context.Context, cached bool)
}
