package usecase_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/refinance-service/internal/application/dto"
	"github.com/bibbank/refinance-service/internal/domain/event"
	"github.com/bibbank/refinance-service/internal/domain/model"
	"github.com/bibbank/refinance-service/internal/domain/port"
	"github.com/bibbank/refinance-service/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockApplicationRepository struct {
	saveFunc         func(ctx context.Context, app model.RefinanceApplication) error
	findByIDFunc     func(ctx context.Context, id string) (model.RefinanceApplication, error)
	listByStageFunc  func(ctx context.Context, stage valueobject.PipelineStage, limit int) ([]model.RefinanceApplication, error)
	purgeTrashedFunc func(ctx context.Context, cutoff time.Time) (int, error)
	savedApps        []model.RefinanceApplication
}

func (m *mockApplicationRepository) Save(ctx context.Context, app model.RefinanceApplication) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, app)
	}
	m.savedApps = append(m.savedApps, app)
	return nil
}

// FindByID returns the most recently saved copy unless overridden.
func (m *mockApplicationRepository) FindByID(ctx context.Context, id string) (model.RefinanceApplication, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	for i := len(m.savedApps) - 1; i >= 0; i-- {
		if m.savedApps[i].ID() == id {
			return m.savedApps[i].ClearEvents(), nil
		}
	}
	return model.RefinanceApplication{}, port.ErrApplicationNotFound
}

func (m *mockApplicationRepository) ListByStage(ctx context.Context, stage valueobject.PipelineStage, limit int) ([]model.RefinanceApplication, error) {
	if m.listByStageFunc != nil {
		return m.listByStageFunc(ctx, stage, limit)
	}
	return nil, nil
}

func (m *mockApplicationRepository) PurgeTrashed(ctx context.Context, cutoff time.Time) (int, error) {
	if m.purgeTrashedFunc != nil {
		return m.purgeTrashedFunc(ctx, cutoff)
	}
	return 0, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

func (m *mockEventPublisher) types() []string {
	out := make([]string, len(m.publishedEvents))
	for i, e := range m.publishedEvents {
		out[i] = e.EventType()
	}
	return out
}

type mockQuoteCache struct {
	getFunc func(ctx context.Context, key string) (model.QuickQuote, bool, error)
	setFunc func(ctx context.Context, key string, q model.QuickQuote, ttl time.Duration) error
	entries map[string]model.QuickQuote
}

func (m *mockQuoteCache) Get(ctx context.Context, key string) (model.QuickQuote, bool, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	q, ok := m.entries[key]
	return q, ok, nil
}

func (m *mockQuoteCache) Set(ctx context.Context, key string, q model.QuickQuote, ttl time.Duration) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, key, q, ttl)
	}
	if m.entries == nil {
		m.entries = make(map[string]model.QuickQuote)
	}
	m.entries[key] = q
	return nil
}

type mockRecorder struct {
	decisions []string
	quotes    []bool
}

func (m *mockRecorder) RecordDecision(_ context.Context, source string, _ model.DecisionResult) {
	m.decisions = append(m.decisions, source)
}

func (m *mockRecorder) RecordQuickQuote(_ context.Context, cached bool) {
	m.quotes = append(m.quotes, cached)
}

// --- Fixtures ---

var fixedNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func boolPtr(b bool) *bool { return &b }

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// approvableApplicant earns 9,900 recognised a month and asks for 430,000
// against a 600,000 property.
func approvableApplicant() dto.ApplicantRequest {
	return dto.ApplicantRequest{
		Income: dto.IncomeRequest{
			EmploymentType: "Permanent",
			FixedSalary:    dec(8_500),
			FixedAllowance: dec(500),
			Rental:         dec(1_200),
		},
		Commitments: dto.CommitmentsRequest{
			CarLoans:              dec(800),
			CreditCardOutstanding: dec(5_000),
		},
		Property: dto.PropertyRequest{
			MarketValue:          dec(600_000),
			OutstandingBalance:   dec(380_000),
			CurrentRatePercent:   decimal.RequireFromString("4.5"),
			RemainingTenureYears: 25,
		},
		Credit: dto.CreditRequest{
			DebtManagementProgram: boolPtr(false),
			Bankruptcy:            boolPtr(false),
			SevereLatePayments:    boolPtr(false),
		},
		Request: dto.LoanRequest{
			Goal:               "cash_out",
			DesiredCashOut:     dec(50_000),
			DesiredTenureYears: 30,
		},
	}
}

func contact() dto.ContactRequest {
	return dto.ContactRequest{Name: "Aisyah", Phone: "+60123456789", Email: "aisyah@example.com"}
}

func quickQuoteRequest() dto.QuickQuoteRequest {
	return dto.QuickQuoteRequest{
		Goal:               "SAVE_INTEREST",
		OutstandingBalance: dec(400_000),
		CurrentInstallment: dec(2_300),
		EstimatedValue:     dec(550_000),
	}
}

func usecaseEvaluateRequest() dto.EvaluateRequest {
	return dto.EvaluateRequest{Applicant: approvableApplicant()}
}
