package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/refinance-service/internal/domain/event"
	"github.com/bibbank/refinance-service/internal/domain/valueobject"
)

// TrashRetention is how long a trashed application is kept before it is
// purged.
const TrashRetention = 7 * 24 * time.Hour

// Contact identifies the person behind an application. It is PII and is never
// logged.
type Contact struct {
	Name     string
	ICNumber string
	Email    string
	Phone    string
}

// IsZero reports whether no contact detail was supplied.
func (c Contact) IsZero() bool { return c == Contact{} }

// ---------------------------------------------------------------------------
// RefinanceApplication aggregate root
// ---------------------------------------------------------------------------

// RefinanceApplication tracks one prospect through the pipeline
// LEAD -> ELIGIBILITY -> SUBMISSION, with TRASH reachable from any stage.
// It is an immutable aggregate. Every mutation returns a new copy.
type RefinanceApplication struct {
	id          string
	stage       valueobject.PipelineStage
	status      valueobject.ApplicationStatus
	contact     Contact
	quoteInput  *QuickQuoteInput
	quote       *QuickQuote
	applicant   *Applicant
	ratePercent float64
	decision    *DecisionResult
	linkSent    bool
	deletedAt   time.Time
	version     int
	createdAt   time.Time
	updatedAt   time.Time

	domainEvents []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewLead creates an application at LEAD from a quick quote.
func NewLead(contact Contact, input QuickQuoteInput, quote QuickQuote, now time.Time) (RefinanceApplication, error) {
	if strings.TrimSpace(contact.Name) == "" {
		return RefinanceApplication{}, errors.New("contact name is required")
	}
	if strings.TrimSpace(contact.Phone) == "" {
		return RefinanceApplication{}, errors.New("contact phone is required")
	}
	if input.Goal.IsZero() {
		return RefinanceApplication{}, errors.New("goal is required")
	}

	id := uuid.New().String()
	app := RefinanceApplication{
		id:         id,
		stage:      valueobject.StageLead,
		status:     valueobject.ApplicationStatusPending,
		contact:    contact,
		quoteInput: &input,
		quote:      &quote,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}
	app.domainEvents = append(app.domainEvents, event.NewLeadCaptured(
		id, input.Goal.String(), input.OutstandingBalance, quote.MonthlySavings, quote.PotentialCashOut, now,
	))
	return app, nil
}

// NewEvaluatedApplication creates an application straight at ELIGIBILITY for
// applicants who skipped the quick quote.
func NewEvaluatedApplication(
	contact Contact,
	applicant Applicant,
	ratePercent float64,
	decision DecisionResult,
	now time.Time,
) (RefinanceApplication, error) {
	if strings.TrimSpace(contact.Name) == "" {
		return RefinanceApplication{}, errors.New("contact name is required")
	}

	app := RefinanceApplication{
		id:        uuid.New().String(),
		stage:     valueobject.StageLead,
		status:    valueobject.ApplicationStatusPending,
		contact:   contact,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}
	return app.RecordEligibility(contact, applicant, ratePercent, decision, now)
}

// ReconstructRefinanceApplication rebuilds an aggregate from persistence
// without side-effects.
func ReconstructRefinanceApplication(
	id string,
	stage valueobject.PipelineStage,
	status valueobject.ApplicationStatus,
	contact Contact,
	quoteInput *QuickQuoteInput,
	quote *QuickQuote,
	applicant *Applicant,
	ratePercent float64,
	decision *DecisionResult,
	linkSent bool,
	deletedAt time.Time,
	version int,
	createdAt, updatedAt time.Time,
) RefinanceApplication {
	return RefinanceApplication{
		id:          id,
		stage:       stage,
		status:      status,
		contact:     contact,
		quoteInput:  quoteInput,
		quote:       quote,
		applicant:   applicant,
		ratePercent: ratePercent,
		decision:    decision,
		linkSent:    linkSent,
		deletedAt:   deletedAt,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// RecordEligibility stores a full intake and its decision and moves
// LEAD|ELIGIBILITY -> ELIGIBILITY. Non-empty contact fields replace the ones
// captured with the lead.
func (a RefinanceApplication) RecordEligibility(
	contact Contact,
	applicant Applicant,
	ratePercent float64,
	decision DecisionResult,
	now time.Time,
) (RefinanceApplication, error) {
	if !a.stage.Equal(valueobject.StageLead) && !a.stage.Equal(valueobject.StageEligibility) {
		return a, valueobject.ErrInvalidStageTransition
	}
	next := a
	next.contact = mergeContact(a.contact, contact)
	next.stage = valueobject.StageEligibility
	next.domainEvents = copyEvents(a.domainEvents)
	return next.applyDecision(applicant, ratePercent, decision, now), nil
}

// Reevaluate replaces the decision with one computed again for the stored
// applicant, for example at a different rate. Trashed and lead-only
// applications cannot be re-evaluated.
func (a RefinanceApplication) Reevaluate(ratePercent float64, decision DecisionResult, now time.Time) (RefinanceApplication, error) {
	if a.applicant == nil || a.stage.Equal(valueobject.StageTrash) {
		return a, valueobject.ErrInvalidStageTransition
	}
	next := a
	next.domainEvents = copyEvents(a.domainEvents)
	return next.applyDecision(*a.applicant, ratePercent, decision, now), nil
}

// Submit moves an approved application ELIGIBILITY -> SUBMISSION.
func (a RefinanceApplication) Submit(now time.Time) (RefinanceApplication, error) {
	if !a.stage.Equal(valueobject.StageEligibility) ||
		!a.status.Equal(valueobject.ApplicationStatusApproved) ||
		a.applicant == nil {
		return a, valueobject.ErrInvalidStageTransition
	}
	next := a
	next.stage = valueobject.StageSubmission
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewApplicationSubmitted(
		a.id,
		a.applicant.Property.OutstandingBalance+a.applicant.Request.DesiredCashOut,
		a.applicant.Request.DesiredTenureYears,
		now,
	))
	return next, nil
}

// MoveToTrash moves any live application to TRASH and starts the retention
// clock.
func (a RefinanceApplication) MoveToTrash(now time.Time) (RefinanceApplication, error) {
	if a.stage.Equal(valueobject.StageTrash) {
		return a, valueobject.ErrInvalidStageTransition
	}
	next := a
	next.stage = valueobject.StageTrash
	next.deletedAt = now
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewStageChanged(
		a.id, a.stage.String(), valueobject.StageTrash.String(), now,
	))
	return next, nil
}

// OverrideStatus records an administrator's manual decision.
func (a RefinanceApplication) OverrideStatus(status valueobject.ApplicationStatus, now time.Time) (RefinanceApplication, error) {
	if status.IsZero() || a.stage.Equal(valueobject.StageTrash) {
		return a, valueobject.ErrInvalidStageTransition
	}
	if a.status.Equal(status) {
		return a, nil
	}
	next := a
	next.status = status
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewStatusChanged(
		a.id, a.status.String(), status.String(), now,
	))
	return next, nil
}

// SetLinkSent records whether the follow-up link was sent to the prospect.
func (a RefinanceApplication) SetLinkSent(sent bool, now time.Time) RefinanceApplication {
	next := a
	next.linkSent = sent
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	return next
}

// PurgeableAt reports whether a trashed application has outlived its
// retention period.
func (a RefinanceApplication) PurgeableAt(now time.Time) bool {
	return a.stage.Equal(valueobject.StageTrash) && !a.deletedAt.IsZero() &&
		!now.Before(a.deletedAt.Add(TrashRetention))
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a RefinanceApplication) ID() string                            { return a.id }
func (a RefinanceApplication) Stage() valueobject.PipelineStage      { return a.stage }
func (a RefinanceApplication) Status() valueobject.ApplicationStatus { return a.status }
func (a RefinanceApplication) Contact() Contact                      { return a.contact }
func (a RefinanceApplication) QuickQuoteInput() *QuickQuoteInput     { return a.quoteInput }
func (a RefinanceApplication) QuickQuote() *QuickQuote               { return a.quote }
func (a RefinanceApplication) Applicant() *Applicant                 { return a.applicant }
func (a RefinanceApplication) RatePercent() float64                  { return a.ratePercent }
func (a RefinanceApplication) Decision() *DecisionResult             { return a.decision }
func (a RefinanceApplication) LinkSent() bool                        { return a.linkSent }
func (a RefinanceApplication) DeletedAt() time.Time                  { return a.deletedAt }
func (a RefinanceApplication) Version() int                          { return a.version }
func (a RefinanceApplication) CreatedAt() time.Time                  { return a.createdAt }
func (a RefinanceApplication) UpdatedAt() time.Time                  { return a.updatedAt }
func (a RefinanceApplication) DomainEvents() []event.DomainEvent     { return a.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a RefinanceApplication) ClearEvents() RefinanceApplication {
	next := a
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func (a RefinanceApplication) applyDecision(
	applicant Applicant,
	ratePercent float64,
	decision DecisionResult,
	now time.Time,
) RefinanceApplication {
	a.applicant = &applicant
	a.ratePercent = ratePercent
	a.decision = &decision
	if decision.Approved {
		a.status = valueobject.ApplicationStatusApproved
	} else {
		a.status = valueobject.ApplicationStatusRejected
	}
	a.updatedAt = now
	a.domainEvents = append(a.domainEvents, event.NewEligibilityEvaluated(
		a.id,
		decision.Approved,
		decision.ReasonMessages(),
		ratePercent,
		decision.DSR,
		decision.LTV,
		decision.MaxEligibleLoan,
		now,
	))
	return a
}

func mergeContact(base, update Contact) Contact {
	if update.Name != "" {
		base.Name = update.Name
	}
	if update.ICNumber != "" {
		base.ICNumber = update.ICNumber
	}
	if update.Email != "" {
		base.Email = update.Email
	}
	if update.Phone != "" {
		base.Phone = update.Phone
	}
	return base
}

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
