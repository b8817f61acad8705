package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// RefinanceGoal – immutable value object
// ---------------------------------------------------------------------------

// RefinanceGoal is what the applicant wants out of the refinance. It selects
// the loan-to-value ceiling applied by the evaluator.
type RefinanceGoal struct {
	value string
}

const (
	goalCashOut      = "CASH_OUT"
	goalSaveInterest = "SAVE_INTEREST"
)

var (
	GoalCashOut      = RefinanceGoal{value: goalCashOut}
	GoalSaveInterest = RefinanceGoal{value: goalSaveInterest}
)

var validRefinanceGoals = map[string]RefinanceGoal{
	goalCashOut:      GoalCashOut,
	goalSaveInterest: GoalSaveInterest,
}

// NewRefinanceGoal creates a RefinanceGoal from a raw string.
func NewRefinanceGoal(s string) (RefinanceGoal, error) {
	v, ok := validRefinanceGoals[s]
	if !ok {
		return RefinanceGoal{}, fmt.Errorf("invalid refinance goal: %q", s)
	}
	return v, nil
}

// String returns the string representation of the goal.
func (g RefinanceGoal) String() string { return g.value }

// IsZero returns true if the goal has not been initialised.
func (g RefinanceGoal) IsZero() bool { return g.value == "" }

// Equal returns true when both goals carry the same value.
func (g RefinanceGoal) Equal(other RefinanceGoal) bool { return g.value == other.value }

// IsCashOut reports whether the goal releases equity.
func (g RefinanceGoal) IsCashOut() bool { return g.value == goalCashOut }
