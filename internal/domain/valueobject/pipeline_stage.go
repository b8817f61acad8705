package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// PipelineStage – immutable value object
// ---------------------------------------------------------------------------

// PipelineStage is where an application sits in the back-office funnel.
type PipelineStage struct {
	value string
}

const (
	stageLead        = "LEAD"
	stageEligibility = "ELIGIBILITY"
	stageSubmission  = "SUBMISSION"
	stageTrash       = "TRASH"
)

var (
	StageLead        = PipelineStage{value: stageLead}
	StageEligibility = PipelineStage{value: stageEligibility}
	StageSubmission  = PipelineStage{value: stageSubmission}
	StageTrash       = PipelineStage{value: stageTrash}
)

var validPipelineStages = map[string]PipelineStage{
	stageLead:        StageLead,
	stageEligibility: StageEligibility,
	stageSubmission:  StageSubmission,
	stageTrash:       StageTrash,
}

// NewPipelineStage creates a PipelineStage from a raw string.
func NewPipelineStage(s string) (PipelineStage, error) {
	v, ok := validPipelineStages[s]
	if !ok {
		return PipelineStage{}, fmt.Errorf("invalid pipeline stage: %q", s)
	}
	return v, nil
}

// String returns the string representation of the stage.
func (s PipelineStage) String() string { return s.value }

// IsZero returns true if the stage has not been initialised.
func (s PipelineStage) IsZero() bool { return s.value == "" }

// Equal returns true when both stages carry the same value.
func (s PipelineStage) Equal(other PipelineStage) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// ApplicationStatus – immutable value object
// ---------------------------------------------------------------------------

// ApplicationStatus is the underwriting outcome recorded on an application.
// The evaluator sets it; an administrator may override it.
type ApplicationStatus struct {
	value string
}

const (
	appStatusPending  = "PENDING"
	appStatusApproved = "APPROVED"
	appStatusRejected = "REJECTED"
)

var (
	ApplicationStatusPending  = ApplicationStatus{value: appStatusPending}
	ApplicationStatusApproved = ApplicationStatus{value: appStatusApproved}
	ApplicationStatusRejected = ApplicationStatus{value: appStatusRejected}
)

var validApplicationStatuses = map[string]ApplicationStatus{
	appStatusPending:  ApplicationStatusPending,
	appStatusApproved: ApplicationStatusApproved,
	appStatusRejected: ApplicationStatusRejected,
}

// NewApplicationStatus creates an ApplicationStatus from a raw string.
func NewApplicationStatus(s string) (ApplicationStatus, error) {
	v, ok := validApplicationStatuses[s]
	if !ok {
		return ApplicationStatus{}, fmt.Errorf("invalid application status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s ApplicationStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s ApplicationStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s ApplicationStatus) Equal(other ApplicationStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStageTransition = errors.New("invalid stage transition")
)
