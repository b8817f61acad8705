package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bibbank/refinance-service/internal/application/dto"
	"github.com/bibbank/refinance-service/internal/domain/model"
	"github.com/bibbank/refinance-service/internal/domain/service"
	"github.com/bibbank/refinance-service/internal/domain/valueobject"
	"github.com/bibbank/refinance-service/pkg/money"
)

// ErrInvalidRequest marks errors caused by the caller's input.
var ErrInvalidRequest = errors.New("invalid request")

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
}

// ---------------------------------------------------------------------------
// Request mapping
// ---------------------------------------------------------------------------

// toApplicant converts the intake form into a validated Applicant.
func toApplicant(req dto.ApplicantRequest) (model.Applicant, error) {
	var errs []error
	f := money.Float

	category, err := valueobject.ParseEmploymentType(req.Income.EmploymentType)
	if err != nil {
		errs = append(errs, fieldError("income.employment_type", req.Income.EmploymentType, err))
	}

	goal, err := valueobject.NewRefinanceGoal(strings.ToUpper(req.Request.Goal))
	if err != nil {
		errs = append(errs, fieldError("request.goal", req.Request.Goal, err))
	}

	credit, err := model.CreditDeclaration{
		DebtManagementProgram: toAnswer(req.Credit.DebtManagementProgram),
		Bankruptcy:            toAnswer(req.Credit.Bankruptcy),
		SevereLatePayments:    toAnswer(req.Credit.SevereLatePayments),
	}.Resolve()
	if err != nil {
		errs = append(errs, err)
	}

	in := req.Income
	var primary model.IncomeProfile
	switch {
	case category.Equal(valueobject.EmploymentCategoryEmployee):
		primary = model.EmployeeIncome{
			FixedSalary:        f(in.FixedSalary),
			FixedAllowance:     f(in.FixedAllowance),
			VariableCommission: f(in.VariableCommission),
			VariableBonus:      f(in.VariableBonus),
			VariableOvertime:   f(in.VariableOvertime),
		}
	case category.Equal(valueobject.EmploymentCategoryCommissionEarner):
		primary = model.CommissionEarnerIncome{AvgMonthlyCommission: f(in.AvgMonthlyCommission)}
	case category.Equal(valueobject.EmploymentCategoryBusinessOwner):
		primary = model.BusinessOwnerIncome{
			AnnualDeclaredIncome: f(in.AnnualDeclaredIncome),
			AvgMonthlyRevenue:    f(in.AvgMonthlyRevenue),
			AnnualTaxPaid:        f(in.AnnualTaxPaid),
			BusinessNature:       in.BusinessNature,
		}
	}

	applicant := model.Applicant{
		Personal: model.PersonalDetails{
			Age:            req.Personal.Age,
			Citizenship:    req.Personal.Citizenship,
			MaritalStatus:  req.Personal.MaritalStatus,
			Dependents:     req.Personal.Dependents,
			EmployerName:   req.Personal.EmployerName,
			JobTitle:       req.Personal.JobTitle,
			YearsInService: req.Personal.YearsInService,
		},
		Income: model.Income{
			Primary:   primary,
			Secondary: model.SecondaryIncome{Rental: f(in.Rental), PartTime: f(in.PartTime)},
		},
		Commitments: model.Commitments{
			CarLoans:              f(req.Commitments.CarLoans),
			PersonalLoans:         f(req.Commitments.PersonalLoans),
			CreditCardOutstanding: f(req.Commitments.CreditCardOutstanding),
			PTPTN:                 f(req.Commitments.PTPTN),
			OtherLiabilities:      f(req.Commitments.OtherLiabilities),
			ExistingHomeLoan:      f(req.Commitments.ExistingHomeLoan),
		},
		Property: model.Property{
			MarketValue:          f(req.Property.MarketValue),
			OutstandingBalance:   f(req.Property.OutstandingBalance),
			CurrentRatePercent:   f(req.Property.CurrentRatePercent),
			CurrentInstallment:   f(req.Property.CurrentInstallment),
			RemainingTenureYears: req.Property.RemainingTenureYears,
		},
		Credit: credit,
		Request: model.LoanRequest{
			Goal:               goal,
			DesiredCashOut:     f(req.Request.DesiredCashOut),
			DesiredTenureYears: req.Request.DesiredTenureYears,
		},
	}

	// Unparseable category or goal already reported; skip duplicates.
	if err := applicant.Validate(); err != nil && len(errs) == 0 {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return model.Applicant{}, invalid(errors.Join(errs...))
	}
	return applicant, nil
}

func toQuickQuoteInput(req dto.QuickQuoteRequest) (model.QuickQuoteInput, error) {
	goal, err := valueobject.NewRefinanceGoal(strings.ToUpper(req.Goal))
	if err != nil {
		return model.QuickQuoteInput{}, invalid(fieldError("goal", req.Goal, err))
	}
	if req.OutstandingBalance.IsNegative() || req.CurrentInstallment.IsNegative() || req.EstimatedValue.IsNegative() {
		return model.QuickQuoteInput{}, invalid(&model.FieldError{Field: "quote", Err: model.ErrNegativeAmount})
	}
	if !req.OutstandingBalance.IsPositive() {
		return model.QuickQuoteInput{}, invalid(&model.FieldError{Field: "outstanding_balance", Err: model.ErrMissingRequiredField})
	}
	return model.QuickQuoteInput{
		Goal:               goal,
		OutstandingBalance: money.Float(req.OutstandingBalance),
		CurrentInstallment: money.Float(req.CurrentInstallment),
		EstimatedValue:     money.Float(req.EstimatedValue),
	}, nil
}

func toContact(req dto.ContactRequest) model.Contact {
	return model.Contact{
		Name:     strings.TrimSpace(req.Name),
		ICNumber: strings.TrimSpace(req.ICNumber),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
	}
}

func toAnswer(b *bool) valueobject.Answer {
	if b == nil {
		return valueobject.AnswerUnanswered
	}
	return valueobject.AnswerFromBool(*b)
}

// resolveRate returns the requested rate or the fallback when none was given.
func resolveRate(requested *decimal.Decimal, fallback float64) (float64, error) {
	if requested == nil {
		return fallback, nil
	}
	if requested.IsNegative() {
		return 0, invalid(&model.FieldError{Field: "rate_percent", Err: model.ErrNegativeAmount})
	}
	return money.Float(*requested), nil
}

func fieldError(field, value string, err error) error {
	if strings.TrimSpace(value) == "" {
		return &model.FieldError{Field: field, Err: model.ErrMissingRequiredField}
	}
	return &model.FieldError{Field: field, Err: err}
}

// ---------------------------------------------------------------------------
// Response mapping
// ---------------------------------------------------------------------------

func toDecisionResponse(d model.DecisionResult) dto.DecisionResponse {
	codes := make([]string, len(d.Reasons))
	for i, r := range d.Reasons {
		codes[i] = string(r.Code)
	}
	a := money.Amount
	return dto.DecisionResponse{
		Approved:               d.Approved,
		Reasons:                d.ReasonMessages(),
		ReasonCodes:            codes,
		RecognisedIncome:       a(d.RecognisedIncome),
		NonMortgageCommitments: a(d.NonMortgageCommitments),
		RequestedLoan:          a(d.RequestedLoan),
		NewMonthlyPayment:      a(d.NewMonthlyPayment),
		StressRatePercent:      money.Ratio(d.StressRatePercent),
		StressMonthlyPayment:   a(d.StressMonthlyPayment),
		DSR:                    money.Ratio(d.DSR),
		StressDSR:              money.Ratio(d.StressDSR),
		LTV:                    money.Ratio(d.LTV),
		MaxLTV:                 money.Ratio(d.MaxLTV),
		NDI:                    a(d.NDI),
		MaxLoanByDSR:           a(d.MaxLoanByDSR),
		MaxLoanByLTV:           a(d.MaxLoanByLTV),
		MaxEligibleLoan:        a(d.MaxEligibleLoan),
		CurrentInstallment:     a(d.CurrentInstallment),
		MonthlySavings:         a(d.MonthlySavings),
		TotalInterestNew:       a(d.TotalInterestNew),
	}
}

func toIncomeBreakdownResponse(b service.IncomeBreakdown) dto.IncomeBreakdownResponse {
	return dto.IncomeBreakdownResponse{
		Category:  b.Category,
		Fixed:     money.Amount(b.Fixed),
		Variable:  money.Amount(b.Variable),
		Secondary: money.Amount(b.Secondary),
		Total:     money.Amount(b.Total),
	}
}

func toScheduleResponse(rows []model.YearlyAmortization) []dto.YearlyAmortizationResponse {
	out := make([]dto.YearlyAmortizationResponse, len(rows))
	for i, r := range rows {
		out[i] = dto.YearlyAmortizationResponse{
			Year:          r.Year,
			InterestPaid:  money.Amount(r.InterestPaid),
			PrincipalPaid: money.Amount(r.PrincipalPaid),
			EndingBalance: money.Amount(r.EndingBalance),
		}
	}
	return out
}

func toQuickQuoteResponse(q model.QuickQuote) dto.QuickQuoteResponse {
	resp := dto.QuickQuoteResponse{
		AssumedRatePercent:         money.Ratio(q.AssumedRatePercent),
		TenureYears:                q.TenureYears,
		NewMonthlyPayment:          money.Amount(q.NewMonthlyPayment),
		MonthlySavings:             money.Amount(q.MonthlySavings),
		PotentialCashOut:           money.Amount(q.PotentialCashOut),
		TotalInterestSavedEstimate: money.Amount(q.TotalInterestSaved),
		Approximate:                q.Approximate,
	}
	switch {
	case resp.PotentialCashOut.IsPositive():
		resp.Headline = "Release up to " + money.Format(resp.PotentialCashOut) + " in cash"
	case resp.MonthlySavings.IsPositive():
		resp.Headline = "Save about " + money.Format(resp.MonthlySavings) + " a month"
	default:
		resp.Headline = "Your current rate is already competitive"
	}
	return resp
}

func toApplicationResponse(app model.RefinanceApplication) dto.ApplicationResponse {
	c := app.Contact()
	resp := dto.ApplicationResponse{
		ID:     app.ID(),
		Stage:  app.Stage().String(),
		Status: app.Status().String(),
		Contact: dto.ContactResponse{
			Name:     c.Name,
			ICNumber: c.ICNumber,
			Email:    c.Email,
			Phone:    c.Phone,
		},
		RatePercent: money.Ratio(app.RatePercent()),
		LinkSent:    app.LinkSent(),
		Version:     app.Version(),
		CreatedAt:   app.CreatedAt(),
		UpdatedAt:   app.UpdatedAt(),
	}
	if in := app.QuickQuoteInput(); in != nil {
		resp.Goal = in.Goal.String()
	}
	if a := app.Applicant(); a != nil {
		resp.Goal = a.Request.Goal.String()
	}
	if q := app.QuickQuote(); q != nil {
		qr := toQuickQuoteResponse(*q)
		resp.QuickQuote = &qr
	}
	if d := app.Decision(); d != nil {
		dr := toDecisionResponse(*d)
		resp.Decision = &dr
	}
	if t := app.DeletedAt(); !t.IsZero() {
		resp.DeletedAt = &t
	}
	return resp
}
