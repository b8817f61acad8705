package service

import (
	"github.com/bibbank/refinance-service/internal/domain/model"
)

// IncomeBreakdown splits recognised monthly income into its parts so an
// underwriter can see where the number came from.
type IncomeBreakdown struct {
	Category  string  `json:"category"`
	Fixed     float64 `json:"fixed"`
	Variable  float64 `json:"variable"`
	Secondary float64 `json:"secondary"`
	Total     float64 `json:"total"`
}

// IncomeRecognizer applies the per-category haircuts to declared income.
type IncomeRecognizer struct {
	haircuts IncomeHaircuts
}

// NewIncomeRecognizer returns a recognizer using the policy's haircuts.
func NewIncomeRecognizer(policy Policy) IncomeRecognizer {
	return IncomeRecognizer{haircuts: policy.Haircuts}
}

// Recognise returns the monthly income the bank accepts for DSR purposes.
func (r IncomeRecognizer) Recognise(income model.Income) float64 {
	return r.Breakdown(income).Total
}

// Breakdown recognises income and keeps the components separate.
//
//	Employee:          salary + allowance + commission*0.60 + bonus*0.50 + overtime*0.50
//	CommissionEarner:  avgMonthlyCommission*0.80
//	BusinessOwner:     annualDeclaredIncome/12
//
// Every category adds rental*0.75 + partTime*0.50. Business revenue is not
// income and is ignored.
func (r IncomeRecognizer) Breakdown(income model.Income) IncomeBreakdown {
	h := r.haircuts
	var b IncomeBreakdown

	switch p := income.Primary.(type) {
	case model.EmployeeIncome:
		b.Category = p.Category().String()
		b.Fixed = p.FixedSalary + p.FixedAllowance
		b.Variable = p.VariableCommission*h.Commission +
			p.VariableBonus*h.Bonus +
			p.VariableOvertime*h.Overtime
	case model.CommissionEarnerIncome:
		b.Category = p.Category().String()
		b.Variable = p.AvgMonthlyCommission * h.CommissionEarner
	case model.BusinessOwnerIncome:
		b.Category = p.Category().String()
		b.Fixed = p.AnnualDeclaredIncome / 12
	}

	b.Secondary = income.Secondary.Rental*h.Rental + income.Secondary.PartTime*h.PartTime
	b.Total = b.Fixed + b.Variable + b.Secondary
	return b
}
