package valueobject

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// EmploymentCategory – immutable value object
// ---------------------------------------------------------------------------

// EmploymentCategory decides which income recognition rule applies.
type EmploymentCategory struct {
	value string
}

const (
	categoryEmployee         = "EMPLOYEE"
	categoryCommissionEarner = "COMMISSION_EARNER"
	categoryBusinessOwner    = "BUSINESS_OWNER"
)

var (
	EmploymentCategoryEmployee         = EmploymentCategory{value: categoryEmployee}
	EmploymentCategoryCommissionEarner = EmploymentCategory{value: categoryCommissionEarner}
	EmploymentCategoryBusinessOwner    = EmploymentCategory{value: categoryBusinessOwner}
)

var validEmploymentCategories = map[string]EmploymentCategory{
	categoryEmployee:         EmploymentCategoryEmployee,
	categoryCommissionEarner: EmploymentCategoryCommissionEarner,
	categoryBusinessOwner:    EmploymentCategoryBusinessOwner,
}

// employmentTypeLabels maps the employment types shown on the intake form to
// the category used for income recognition.
var employmentTypeLabels = map[string]EmploymentCategory{
	"permanent":         EmploymentCategoryEmployee,
	"contract":          EmploymentCategoryEmployee,
	"freelance":         EmploymentCategoryEmployee,
	"employee":          EmploymentCategoryEmployee,
	"commission earner": EmploymentCategoryCommissionEarner,
	"commission_earner": EmploymentCategoryCommissionEarner,
	"self-employed":     EmploymentCategoryBusinessOwner,
	"self_employed":     EmploymentCategoryBusinessOwner,
	"business owner":    EmploymentCategoryBusinessOwner,
	"business_owner":    EmploymentCategoryBusinessOwner,
}

// NewEmploymentCategory creates an EmploymentCategory from a raw string.
func NewEmploymentCategory(s string) (EmploymentCategory, error) {
	v, ok := validEmploymentCategories[s]
	if !ok {
		return EmploymentCategory{}, fmt.Errorf("invalid employment category: %q", s)
	}
	return v, nil
}

// ParseEmploymentType resolves a free-form employment type label such as
// "Permanent" or "Self-Employed" into its recognition category.
func ParseEmploymentType(label string) (EmploymentCategory, error) {
	if c, err := NewEmploymentCategory(label); err == nil {
		return c, nil
	}
	v, ok := employmentTypeLabels[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return EmploymentCategory{}, fmt.Errorf("invalid employment type: %q", label)
	}
	return v, nil
}

// String returns the string representation of the category.
func (c EmploymentCategory) String() string { return c.value }

// IsZero returns true if the category has not been initialised.
func (c EmploymentCategory) IsZero() bool { return c.value == "" }

// Equal returns true when both categories carry the same value.
func (c EmploymentCategory) Equal(other EmploymentCategory) bool { return c.value == other.value }
