package postgres

import (
	"fmt"

	"github.com/bibbank/refinance-service/internal/domain/model"
	"github.com/bibbank/refinance-service/internal/domain/valueobject"
)

// JSONB snapshots of the value objects held by an application. They keep the
// domain model free of storage tags and make the income variant explicit.

type applicantRecord struct {
	Personal    personalRecord    `json:"personal"`
	Income      incomeRecord      `json:"income"`
	Commitments commitmentsRecord `json:"commitments"`
	Property    propertyRecord    `json:"property"`
	Credit      creditRecord      `json:"credit"`
	Request     requestRecord     `json:"request"`
}

type personalRecord struct {
	Age            int    `json:"age,omitempty"`
	Citizenship    string `json:"citizenship,omitempty"`
	MaritalStatus  string `json:"marital_status,omitempty"`
	Dependents     int    `json:"dependents,omitempty"`
	EmployerName   string `json:"employer_name,omitempty"`
	JobTitle       string `json:"job_title,omitempty"`
	YearsInService int    `json:"years_in_service,omitempty"`
}

type incomeRecord struct {
	Category string `json:"category"`

	FixedSalary        float64 `json:"fixed_salary,omitempty"`
	FixedAllowance     float64 `json:"fixed_allowance,omitempty"`
	VariableCommission float64 `json:"variable_commission,omitempty"`
	VariableBonus      float64 `json:"variable_bonus,omitempty"`
	VariableOvertime   float64 `json:"variable_overtime,omitempty"`

	AvgMonthlyCommission float64 `json:"avg_monthly_commission,omitempty"`

	AnnualDeclaredIncome float64 `json:"annual_declared_income,omitempty"`
	AvgMonthlyRevenue    float64 `json:"avg_monthly_revenue,omitempty"`
	AnnualTaxPaid        float64 `json:"annual_tax_paid,omitempty"`
	BusinessNature       string  `json:"business_nature,omitempty"`

	Rental   float64 `json:"rental,omitempty"`
	PartTime float64 `json:"part_time,omitempty"`
}

type commitmentsRecord struct {
	CarLoans              float64 `json:"car_loans"`
	PersonalLoans         float64 `json:"personal_loans"`
	CreditCardOutstanding float64 `json:"credit_card_outstanding"`
	PTPTN                 float64 `json:"ptptn"`
	OtherLiabilities      float64 `json:"other_liabilities"`
	ExistingHomeLoan      float64 `json:"existing_home_loan"`
}

type propertyRecord struct {
	MarketValue          float64 `json:"market_value"`
	OutstandingBalance   float64 `json:"outstanding_balance"`
	CurrentRatePercent   float64 `json:"current_rate_percent"`
	CurrentInstallment   float64 `json:"current_installment"`
	RemainingTenureYears int     `json:"remaining_tenure_years"`
}

type creditRecord struct {
	DebtManagementProgram bool `json:"debt_management_program"`
	Bankruptcy            bool `json:"bankruptcy"`
	SevereLatePayments    bool `json:"severe_late_payments"`
}

type requestRecord struct {
	Goal               string  `json:"goal"`
	DesiredCashOut     float64 `json:"desired_cash_out"`
	DesiredTenureYears int     `json:"desired_tenure_years"`
}

type quoteInputRecord struct {
	Goal               string  `json:"goal"`
	OutstandingBalance float64 `json:"outstanding_balance"`
	CurrentInstallment float64 `json:"current_installment"`
	EstimatedValue     float64 `json:"estimated_value"`
}

// ---------------------------------------------------------------------------
// domain -> record
// ---------------------------------------------------------------------------

func toApplicantRecord(a model.Applicant) applicantRecord {
	inc := incomeRecord{
		Rental:   a.Income.Secondary.Rental,
		PartTime: a.Income.Secondary.PartTime,
	}
	switch p := a.Income.Primary.(type) {
	case model.EmployeeIncome:
		inc.Category = p.Category().String()
		inc.FixedSalary = p.FixedSalary
		inc.FixedAllowance = p.FixedAllowance
		inc.VariableCommission = p.VariableCommission
		inc.VariableBonus = p.VariableBonus
		inc.VariableOvertime = p.VariableOvertime
	case model.CommissionEarnerIncome:
		inc.Category = p.Category().String()
		inc.AvgMonthlyCommission = p.AvgMonthlyCommission
	case model.BusinessOwnerIncome:
		inc.Category = p.Category().String()
		inc.AnnualDeclaredIncome = p.AnnualDeclaredIncome
		inc.AvgMonthlyRevenue = p.AvgMonthlyRevenue
		inc.AnnualTaxPaid = p.AnnualTaxPaid
		inc.BusinessNature = p.BusinessNature
	}

	return applicantRecord{
		Personal:    personalRecord(a.Personal),
		Income:      inc,
		Commitments: commitmentsRecord(a.Commitments),
		Property:    propertyRecord(a.Property),
		Credit:      creditRecord(a.Credit),
		Request: requestRecord{
			Goal:               a.Request.Goal.String(),
			DesiredCashOut:     a.Request.DesiredCashOut,
			DesiredTenureYears: a.Request.DesiredTenureYears,
		},
	}
}

func toQuoteInputRecord(in model.QuickQuoteInput) quoteInputRecord {
	return quoteInputRecord{
		Goal:               in.Goal.String(),
		OutstandingBalance: in.OutstandingBalance,
		CurrentInstallment: in.CurrentInstallment,
		EstimatedValue:     in.EstimatedValue,
	}
}

// ---------------------------------------------------------------------------
// record -> domain
// ---------------------------------------------------------------------------

func (r applicantRecord) toModel() (model.Applicant, error) {
	category, err := valueobject.NewEmploymentCategory(r.Income.Category)
	if err != nil {
		return model.Applicant{}, fmt.Errorf("parse employment category: %w", err)
	}
	goal, err := valueobject.NewRefinanceGoal(r.Request.Goal)
	if err != nil {
		return model.Applicant{}, fmt.Errorf("parse goal: %w", err)
	}

	var primary model.IncomeProfile
	switch {
	case category.Equal(valueobject.EmploymentCategoryEmployee):
		primary = model.EmployeeIncome{
			FixedSalary:        r.Income.FixedSalary,
			FixedAllowance:     r.Income.FixedAllowance,
			VariableCommission: r.Income.VariableCommission,
			VariableBonus:      r.Income.VariableBonus,
			VariableOvertime:   r.Income.VariableOvertime,
		}
	case category.Equal(valueobject.EmploymentCategoryCommissionEarner):
		primary = model.CommissionEarnerIncome{AvgMonthlyCommission: r.Income.AvgMonthlyCommission}
	default:
		primary = model.BusinessOwnerIncome{
			AnnualDeclaredIncome: r.Income.AnnualDeclaredIncome,
			AvgMonthlyRevenue:    r.Income.AvgMonthlyRevenue,
			AnnualTaxPaid:        r.Income.AnnualTaxPaid,
			BusinessNature:       r.Income.BusinessNature,
		}
	}

	return model.Applicant{
		Personal: model.PersonalDetails(r.Personal),
		Income: model.Income{
			Primary:   primary,
			Secondary: model.SecondaryIncome{Rental: r.Income.Rental, PartTime: r.Income.PartTime},
		},
		Commitments: model.Commitments(r.Commitments),
		Property:    model.Property(r.Property),
		Credit:      model.CreditProfile(r.Credit),
		Request: model.LoanRequest{
			Goal:               goal,
			DesiredCashOut:     r.Request.DesiredCashOut,
			DesiredTenureYears: r.Request.DesiredTenureYears,
		},
	}, nil
}

func (r quoteInputRecord) toModel() (model.QuickQuoteInput, error) {
	goal, err := valueobject.NewRefinanceGoal(r.Goal)
	if err != nil {
		return model.QuickQuoteInput{}, fmt.Errorf("parse goal: %w", err)
	}
	return model.QuickQuoteInput{
		Goal:               goal,
		OutstandingBalance: r.OutstandingBalance,
		CurrentInstallment: r.CurrentInstallment,
		EstimatedValue:     r.EstimatedValue,
	}, nil
}
