package event

import (
	"time"

	"github.com/bibbank/refinance-service/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const aggregateType = "RefinanceApplication"

// Event type names, also used as Kafka message headers.
const (
	TypeLeadCaptured         = "refinance.lead.captured"
	TypeEligibilityEvaluated = "refinance.eligibility.evaluated"
	TypeApplicationSubmitted = "refinance.application.submitted"
	TypeStageChanged         = "refinance.application.stage_changed"
	TypeStatusChanged        = "refinance.application.status_changed"
)

// ---------------------------------------------------------------------------
// Pipeline events
// ---------------------------------------------------------------------------

// LeadCaptured is raised when a quick quote is saved with contact details.
type LeadCaptured struct {
	events.BaseEvent
	Goal               string  `json:"goal"`
	OutstandingBalance float64 `json:"outstanding_balance"`
	MonthlySavings     float64 `json:"monthly_savings"`
	PotentialCashOut   float64 `json:"potential_cash_out"`
}

func NewLeadCaptured(
	applicationID, goal string,
	outstanding, monthlySavings, cashOut float64,
	now time.Time,
) LeadCaptured {
	return LeadCaptured{
		BaseEvent:          events.NewBaseEvent(TypeLeadCaptured, applicationID, aggregateType, now),
		Goal:               goal,
		OutstandingBalance: outstanding,
		MonthlySavings:     monthlySavings,
		PotentialCashOut:   cashOut,
	}
}

// EligibilityEvaluated is raised whenever the engine decides on an application,
// including administrator re-evaluations.
type EligibilityEvaluated struct {
	events.BaseEvent
	Approved        bool     `json:"approved"`
	Reasons         []string `json:"reasons"`
	RatePercent     float64  `json:"rate_percent"`
	DSR             float64  `json:"dsr"`
	LTV             float64  `json:"ltv"`
	MaxEligibleLoan float64  `json:"max_eligible_loan"`
}

func NewEligibilityEvaluated(
	applicationID string,
	approved bool, reasons []string,
	ratePercent, dsr, ltv, maxEligibleLoan float64,
	now time.Time,
) EligibilityEvaluated {
	return EligibilityEvaluated{
		BaseEvent:       events.NewBaseEvent(TypeEligibilityEvaluated, applicationID, aggregateType, now),
		Approved:        approved,
		Reasons:         reasons,
		RatePercent:     ratePercent,
		DSR:             dsr,
		LTV:             ltv,
		MaxEligibleLoan: maxEligibleLoan,
	}
}

// ApplicationSubmitted is raised when an approved applicant proceeds to
// document submission.
type ApplicationSubmitted struct {
	events.BaseEvent
	RequestedLoan float64 `json:"requested_loan"`
	TenureYears   int     `json:"tenure_years"`
}

func NewApplicationSubmitted(applicationID string, requestedLoan float64, tenureYears int, now time.Time) ApplicationSubmitted {
	return ApplicationSubmitted{
		BaseEvent:     events.NewBaseEvent(TypeApplicationSubmitted, applicationID, aggregateType, now),
		RequestedLoan: requestedLoan,
		TenureYears:   tenureYears,
	}
}

// ---------------------------------------------------------------------------
// Back-office events
// ---------------------------------------------------------------------------

// StageChanged is raised when an application moves between pipeline stages
// outside the normal flow, such as being moved to trash.
type StageChanged struct {
	events.BaseEvent
	From string `json:"from"`
	To   string `json:"to"`
}

func NewStageChanged(applicationID, from, to string, now time.Time) StageChanged {
	return StageChanged{
		BaseEvent: events.NewBaseEvent(TypeStageChanged, applicationID, aggregateType, now),
		From:      from,
		To:        to,
	}
}

// StatusChanged is raised when an administrator overrides the decision.
type StatusChanged struct {
	events.BaseEvent
	From string `json:"from"`
	To   string `json:"to"`
}

func NewStatusChanged(applicationID, from, to string, now time.Time) StatusChanged {
	return StatusChanged{
		BaseEvent: events.NewBaseEvent(TypeStatusChanged, applicationID, aggregateType, now),
		From:      from,
		To:        to,
	}
}
