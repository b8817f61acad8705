package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bibbank/refinance-service/internal/domain/model"
	"github.com/bibbank/refinance-service/internal/domain/port"
	"github.com/bibbank/refinance-service/internal/domain/valueobject"
	pkgpostgres "github.com/bibbank/refinance-service/pkg/postgres"
)

// ApplicationRepo implements port.ApplicationRepository.
type ApplicationRepo struct {
	db pkgpostgres.Querier
}

// NewApplicationRepo creates a new repository backed by PostgreSQL.
func NewApplicationRepo(db pkgpostgres.Querier) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

var _ port.ApplicationRepository = (*ApplicationRepo)(nil)

const selectColumns = `
	id, stage, status, contact_name, contact_ic, contact_email, contact_phone,
	rate_percent, quote_input, quote, applicant, decision,
	link_sent, deleted_at, version, created_at, updated_at`

// Save persists an application (upsert by ID with optimistic locking).
func (r *ApplicationRepo) Save(ctx context.Context, app model.RefinanceApplication) error {
	quoteInput, quote, applicant, decision, err := marshalSnapshots(app)
	if err != nil {
		return err
	}

	var (
		goal          string
		requestedLoan *decimal.Decimal
		approved      *bool
		deletedAt     *time.Time
	)
	if in := app.QuickQuoteInput(); in != nil {
		goal = in.Goal.String()
	}
	if a := app.Applicant(); a != nil {
		goal = a.Request.Goal.String()
	}
	if d := app.Decision(); d != nil {
		loan := decimal.NewFromFloat(d.RequestedLoan).Round(2)
		requestedLoan = &loan
		approved = &d.Approved
	}
	if t := app.DeletedAt(); !t.IsZero() {
		deletedAt = &t
	}
	c := app.Contact()

	query := `
		INSERT INTO refinance_applications (
			id, stage, status, contact_name, contact_ic, contact_email, contact_phone,
			goal, rate_percent, requested_loan, approved,
			quote_input, quote, applicant, decision,
			link_sent, deleted_at, version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		ON CONFLICT (id) DO UPDATE SET
			stage          = EXCLUDED.stage,
			status         = EXCLUDED.status,
			contact_name   = EXCLUDED.contact_name,
			contact_ic     = EXCLUDED.contact_ic,
			contact_email  = EXCLUDED.contact_email,
			contact_phone  = EXCLUDED.contact_phone,
			goal           = EXCLUDED.goal,
			rate_percent   = EXCLUDED.rate_percent,
			requested_loan = EXCLUDED.requested_loan,
			approved       = EXCLUDED.approved,
			applicant      = EXCLUDED.applicant,
			decision       = EXCLUDED.decision,
			link_sent      = EXCLUDED.link_sent,
			deleted_at     = EXCLUDED.deleted_at,
			version        = refinance_applications.version + 1,
			updated_at     = EXCLUDED.updated_at
		WHERE refinance_applications.version = $18
	`
	tag, err := r.db.Exec(ctx, query,
		app.ID(), app.Stage().String(), app.Status().String(),
		c.Name, c.ICNumber, c.Email, c.Phone,
		goal, decimal.NewFromFloat(app.RatePercent()), requestedLoan, approved,
		quoteInput, quote, applicant, decision,
		app.LinkSent(), deletedAt, app.Version(), app.CreatedAt(), app.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save refinance application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrConcurrentModification
	}
	return nil
}

// FindByID retrieves a single application.
func (r *ApplicationRepo) FindByID(ctx context.Context, id string) (model.RefinanceApplication, error) {
	query := `SELECT ` + selectColumns + ` FROM refinance_applications WHERE id = $1`
	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.RefinanceApplication{}, port.ErrApplicationNotFound
	}
	return app, err
}

// ListByStage returns up to limit applications in stage, newest first.
func (r *ApplicationRepo) ListByStage(ctx context.Context, stage valueobject.PipelineStage, limit int) ([]model.RefinanceApplication, error) {
	query := `SELECT ` + selectColumns + `
		FROM refinance_applications
		WHERE stage = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, stage.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("query refinance applications: %w", err)
	}
	defer rows.Close()

	var result []model.RefinanceApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

// PurgeTrashed deletes applications trashed before cutoff.
func (r *ApplicationRepo) PurgeTrashed(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM refinance_applications WHERE stage = $1 AND deleted_at <= $2`,
		valueobject.StageTrash.String(), cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("purge trashed applications: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// scan helpers
// ---------------------------------------------------------------------------

type scannable interface {
	Scan(dest ...any) error
}

func scanApplication(s scannable) (model.RefinanceApplication, error) {
	var (
		id, stageStr, statusStr   string
		name, ic, email, phone    string
		rate                      decimal.Decimal
		quoteInputRaw, quoteRaw   []byte
		applicantRaw, decisionRaw []byte
		linkSent                  bool
		deletedAt                 *time.Time
		version                   int
		createdAt, updatedAt      time.Time
	)

	err := s.Scan(
		&id, &stageStr, &statusStr, &name, &ic, &email, &phone,
		&rate, &quoteInputRaw, &quoteRaw, &applicantRaw, &decisionRaw,
		&linkSent, &deletedAt, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.RefinanceApplication{}, err
		}
		return model.RefinanceApplication{}, fmt.Errorf("scan refinance application: %w", err)
	}

	stage, err := valueobject.NewPipelineStage(stageStr)
	if err != nil {
		return model.RefinanceApplication{}, fmt.Errorf("parse stage: %w", err)
	}
	status, err := valueobject.NewApplicationStatus(statusStr)
	if err != nil {
		return model.RefinanceApplication{}, fmt.Errorf("parse status: %w", err)
	}

	var (
		quoteInput *model.QuickQuoteInput
		quote      *model.QuickQuote
		applicant  *model.Applicant
		decision   *model.DecisionResult
	)
	if quoteInputRaw != nil {
		var rec quoteInputRecord
		if err := json.Unmarshal(quoteInputRaw, &rec); err != nil {
			return model.RefinanceApplication{}, fmt.Errorf("decode quote input: %w", err)
		}
		in, err := rec.toModel()
		if err != nil {
			return model.RefinanceApplication{}, err
		}
		quoteInput = &in
	}
	if quoteRaw != nil {
		quote = new(model.QuickQuote)
		if err := json.Unmarshal(quoteRaw, quote); err != nil {
			return model.RefinanceApplication{}, fmt.Errorf("decode quote: %w", err)
		}
	}
	if applicantRaw != nil {
		var rec applicantRecord
		if err := json.Unmarshal(applicantRaw, &rec); err != nil {
			return model.RefinanceApplication{}, fmt.Errorf("decode applicant: %w", err)
		}
		a, err := rec.toModel()
		if err != nil {
			return model.RefinanceApplication{}, err
		}
		applicant = &a
	}
	if decisionRaw != nil {
		decision = new(model.DecisionResult)
		if err := json.Unmarshal(decisionRaw, decision); err != nil {
			return model.RefinanceApplication{}, fmt.Errorf("decode decision: %w", err)
		}
	}

	var deleted time.Time
	if deletedAt != nil {
		deleted = deletedAt.UTC()
	}

	return model.ReconstructRefinanceApplication(
		id, stage, status,
		model.Contact{Name: name, ICNumber: ic, Email: email, Phone: phone},
		quoteInput, quote, applicant,
		rate.InexactFloat64(), decision,
		linkSent, deleted, version,
		createdAt.UTC(), updatedAt.UTC(),
	), nil
}

// marshalSnapshots encodes the JSONB columns. Absent parts are stored as NULL.
func marshalSnapshots(app model.RefinanceApplication) (quoteInput, quote, applicant, decision []byte, err error) {
	if in := app.QuickQuoteInput(); in != nil {
		if quoteInput, err = json.Marshal(toQuoteInputRecord(*in)); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("encode quote input: %w", err)
		}
	}
	if q := app.QuickQuote(); q != nil {
		if quote, err = json.Marshal(q); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("encode quote: %w", err)
		}
	}
	if a := app.Applicant(); a != nil {
		if applicant, err = json.Marshal(toApplicantRecord(*a)); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("encode applicant: %w", err)
		}
	}
	if d := app.Decision(); d != nil {
		if decision, err = json.Marshal(d); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("encode decision: %w", err)
		}
	}
	return quoteInput, quote, applicant, decision, nil
}
