package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/bibbank/refinance-service/internal/domain/valueobject"
)

// Desired tenure bounds accepted at intake.
const (
	MinTenureYears = 5
	MaxTenureYears = 35
)

// ---------------------------------------------------------------------------
// Applicant – value object evaluated by the eligibility engine
// ---------------------------------------------------------------------------

// Applicant is everything the engine needs to decide on a refinance. All
// amounts are monthly RM unless the field name says otherwise; absent values
// are zero.
type Applicant struct {
	Personal    PersonalDetails
	Income      Income
	Commitments Commitments
	Property    Property
	Credit      CreditProfile
	Request     LoanRequest
}

// PersonalDetails are shown to underwriters and never enter the math.
type PersonalDetails struct {
	Age            int
	Citizenship    string
	MaritalStatus  string
	Dependents     int
	EmployerName   string
	JobTitle       string
	YearsInService int
}

// Income combines the category-specific primary income with secondary income
// shared by every category.
type Income struct {
	Primary   IncomeProfile
	Secondary SecondaryIncome
}

// SecondaryIncome applies to every employment category.
type SecondaryIncome struct {
	Rental   float64
	PartTime float64
}

// IncomeProfile is implemented only by EmployeeIncome, CommissionEarnerIncome
// and BusinessOwnerIncome. A profile carries exactly the fields that its
// category's recognition rule reads.
type IncomeProfile interface {
	Category() valueobject.EmploymentCategory
	isIncomeProfile()
}

// EmployeeIncome is a salaried applicant's monthly pay slip.
type EmployeeIncome struct {
	FixedSalary        float64
	FixedAllowance     float64
	VariableCommission float64
	VariableBonus      float64
	VariableOvertime   float64
}

// CommissionEarnerIncome is paid mainly on commission.
type CommissionEarnerIncome struct {
	AvgMonthlyCommission float64 // six-month average
}

// BusinessOwnerIncome covers business owners and the self-employed.
// AvgMonthlyRevenue and AnnualTaxPaid are informational only.
type BusinessOwnerIncome struct {
	AnnualDeclaredIncome float64
	AvgMonthlyRevenue    float64
	AnnualTaxPaid        float64
	BusinessNature       string
}

func (EmployeeIncome) Category() valueobject.EmploymentCategory {
	return valueobject.EmploymentCategoryEmployee
}

func (CommissionEarnerIncome) Category() valueobject.EmploymentCategory {
	return valueobject.EmploymentCategoryCommissionEarner
}

func (BusinessOwnerIncome) Category() valueobject.EmploymentCategory {
	return valueobject.EmploymentCategoryBusinessOwner
}

func (EmployeeIncome) isIncomeProfile()         {}
func (CommissionEarnerIncome) isIncomeProfile() {}
func (BusinessOwnerIncome) isIncomeProfile()    {}

// Commitments are the applicant's monthly non-mortgage obligations, except
// CreditCardOutstanding which is a balance.
type Commitments struct {
	CarLoans              float64
	PersonalLoans         float64
	CreditCardOutstanding float64
	PTPTN                 float64
	OtherLiabilities      float64
	// ExistingHomeLoan is the installment being refinanced and is excluded
	// from the debt service ratio.
	ExistingHomeLoan float64
}

// Property describes the collateral and the loan currently secured on it.
type Property struct {
	MarketValue          float64
	OutstandingBalance   float64
	CurrentRatePercent   float64
	CurrentInstallment   float64 // 0 when not supplied
	RemainingTenureYears int
}

// CreditProfile holds the resolved credit flags. Any true flag rejects.
type CreditProfile struct {
	DebtManagementProgram bool
	Bankruptcy            bool
	SevereLatePayments    bool
}

// LoanRequest is what the applicant is asking for.
type LoanRequest struct {
	Goal               valueobject.RefinanceGoal
	DesiredCashOut     float64
	DesiredTenureYears int
}

// ---------------------------------------------------------------------------
// Intake validation
// ---------------------------------------------------------------------------

var (
	ErrMissingRequiredField     = errors.New("missing required field")
	ErrNegativeAmount           = errors.New("amount must not be negative")
	ErrTenureOutOfRange         = errors.New("tenure out of range")
	ErrUnansweredCreditQuestion = errors.New("credit question not answered")
)

// FieldError ties a validation failure to the offending field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return fmt.Sprintf("%s: %v", e.Field, e.Err) }

func (e *FieldError) Unwrap() error { return e.Err }

// CreditDeclaration is the credit section of the intake form before every
// question has been answered.
type CreditDeclaration struct {
	DebtManagementProgram valueobject.Answer
	Bankruptcy            valueobject.Answer
	SevereLatePayments    valueobject.Answer
}

// Resolve converts the declaration into definite flags. Every question must
// have been answered.
func (d CreditDeclaration) Resolve() (CreditProfile, error) {
	var errs []error
	resolve := func(field string, a valueobject.Answer) bool {
		v, ok := a.Bool()
		if !ok {
			errs = append(errs, &FieldError{Field: field, Err: ErrUnansweredCreditQuestion})
		}
		return v
	}
	profile := CreditProfile{
		DebtManagementProgram: resolve("credit.debt_management_program", d.DebtManagementProgram),
		Bankruptcy:            resolve("credit.bankruptcy", d.Bankruptcy),
		SevereLatePayments:    resolve("credit.severe_late_payments", d.SevereLatePayments),
	}
	if len(errs) > 0 {
		return CreditProfile{}, errors.Join(errs...)
	}
	return profile, nil
}

// Validate checks an applicant before evaluation. All failures are returned
// joined; each one is a *FieldError.
func (a Applicant) Validate() error {
	var errs []error
	amount := func(field string, v float64) {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, &FieldError{Field: field, Err: ErrNegativeAmount})
		}
	}

	switch p := a.Income.Primary.(type) {
	case nil:
		errs = append(errs, &FieldError{Field: "income.employment_type", Err: ErrMissingRequiredField})
	case EmployeeIncome:
		amount("income.fixed_salary", p.FixedSalary)
		amount("income.fixed_allowance", p.FixedAllowance)
		amount("income.variable_commission", p.VariableCommission)
		amount("income.variable_bonus", p.VariableBonus)
		amount("income.variable_overtime", p.VariableOvertime)
	case CommissionEarnerIncome:
		amount("income.avg_monthly_commission", p.AvgMonthlyCommission)
	case BusinessOwnerIncome:
		amount("income.annual_declared_income", p.AnnualDeclaredIncome)
		amount("income.avg_monthly_revenue", p.AvgMonthlyRevenue)
		amount("income.annual_tax_paid", p.AnnualTaxPaid)
	}
	amount("income.rental", a.Income.Secondary.Rental)
	amount("income.part_time", a.Income.Secondary.PartTime)

	amount("commitments.car_loans", a.Commitments.CarLoans)
	amount("commitments.personal_loans", a.Commitments.PersonalLoans)
	amount("commitments.credit_card_outstanding", a.Commitments.CreditCardOutstanding)
	amount("commitments.ptptn", a.Commitments.PTPTN)
	amount("commitments.other_liabilities", a.Commitments.OtherLiabilities)
	amount("commitments.existing_home_loan", a.Commitments.ExistingHomeLoan)

	if a.Property.MarketValue <= 0 {
		errs = append(errs, &FieldError{Field: "property.market_value", Err: ErrMissingRequiredField})
	}
	amount("property.market_value", a.Property.MarketValue)
	amount("property.outstanding_balance", a.Property.OutstandingBalance)
	amount("property.current_rate_percent", a.Property.CurrentRatePercent)
	amount("property.current_installment", a.Property.CurrentInstallment)
	if a.Property.RemainingTenureYears < 0 {
		errs = append(errs, &FieldError{Field: "property.remaining_tenure_years", Err: ErrTenureOutOfRange})
	}

	if a.Request.Goal.IsZero() {
		errs = append(errs, &FieldError{Field: "request.goal", Err: ErrMissingRequiredField})
	}
	amount("request.desired_cash_out", a.Request.DesiredCashOut)
	if t := a.Request.DesiredTenureYears; t < MinTenureYears || t > MaxTenureYears {
		errs = append(errs, &FieldError{Field: "request.desired_tenure_years", Err: ErrTenureOutOfRange})
	}

	return errors.Join(errs...)
}
