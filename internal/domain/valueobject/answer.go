package valueobject

import (
	"fmt"
	"strings"
)

// Answer is a yes/no question on the intake form that may not have been
// answered yet. The zero value is Unanswered.
type Answer struct {
	value string
}

const (
	answerYes = "YES"
	answerNo  = "NO"
)

var (
	AnswerUnanswered = Answer{}
	AnswerYes        = Answer{value: answerYes}
	AnswerNo         = Answer{value: answerNo}
)

// NewAnswer parses "yes"/"no" in any case. An empty string is Unanswered.
func NewAnswer(s string) (Answer, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return AnswerUnanswered, nil
	case answerYes, "TRUE":
		return AnswerYes, nil
	case answerNo, "FALSE":
		return AnswerNo, nil
	}
	return Answer{}, fmt.Errorf("invalid answer: %q", s)
}

// AnswerFromBool converts a definite boolean into an Answer.
func AnswerFromBool(b bool) Answer {
	if b {
		return AnswerYes
	}
	return AnswerNo
}

func (a Answer) String() string {
	if a.value == "" {
		return "UNANSWERED"
	}
	return a.value
}

// IsAnswered returns false for the zero value.
func (a Answer) IsAnswered() bool { return a.value != "" }

// Bool returns the answer and whether the question was answered at all.
func (a Answer) Bool() (value, ok bool) {
	return a.value == answerYes, a.IsAnswered()
}
