// Package memory holds an in-process ApplicationRepository used when no
// database is configured and in tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bibbank/refinance-service/internal/domain/model"
	"github.com/bibbank/refinance-service/internal/domain/port"
	"github.com/bibbank/refinance-service/internal/domain/valueobject"
)

// ApplicationRepo implements port.ApplicationRepository over a map.
type ApplicationRepo struct {
	mu   sync.RWMutex
	apps map[string]model.RefinanceApplication
}

func NewApplicationRepo() *ApplicationRepo {
	return &ApplicationRepo{apps: make(map[string]model.RefinanceApplication)}
}

var _ port.ApplicationRepository = (*ApplicationRepo)(nil)

// Save stores app if its version matches the stored one. New applications must
// carry the version they were created with.
func (r *ApplicationRepo) Save(_ context.Context, app model.RefinanceApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := app.Version()
	if cur, ok := r.apps[app.ID()]; ok {
		if cur.Version() != app.Version() {
			return port.ErrConcurrentModification
		}
		next = cur.Version() + 1
	}
	r.apps[app.ID()] = withVersion(app, next)
	return nil
}

func (r *ApplicationRepo) FindByID(_ context.Context, id string) (model.RefinanceApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.apps[id]
	if !ok {
		return model.RefinanceApplication{}, port.ErrApplicationNotFound
	}
	return app, nil
}

// ListByStage returns up to limit applications in stage, newest first.
func (r *ApplicationRepo) ListByStage(_ context.Context, stage valueobject.PipelineStage, limit int) ([]model.RefinanceApplication, error) {
	r.mu.RLock()
	var out []model.RefinanceApplication
	for _, app := range r.apps {
		if app.Stage().Equal(stage) {
			out = append(out, app)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].ID() < out[j].ID()
		}
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ApplicationRepo) PurgeTrashed(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, app := range r.apps {
		if !app.Stage().Equal(valueobject.StageTrash) || app.DeletedAt().After(cutoff) {
			continue
		}
		delete(r.apps, id)
		n++
	}
	return n, nil
}

// withVersion returns a stored copy of app without pending events.
func withVersion(app model.RefinanceApplication, version int) model.RefinanceApplication {
	return model.ReconstructRefinanceApplication(
		app.ID(), app.Stage(), app.Status(), app.Contact(),
		app.QuickQuoteInput(), app.QuickQuote(), app.Applicant(),
		app.RatePercent(), app.Decision(),
		app.LinkSent(), app.DeletedAt(), version,
		app.CreatedAt(), app.UpdatedAt(),
	)
}
