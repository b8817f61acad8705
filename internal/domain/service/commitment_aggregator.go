package service

import "github.com/bibbank/refinance-service/internal/domain/model"

// CommitmentAggregator totals the monthly obligations that compete with the
// new mortgage installment.
type CommitmentAggregator struct {
	creditCardRate float64
}

// NewCommitmentAggregator returns an aggregator using the policy's card
// repayment rate.
func NewCommitmentAggregator(policy Policy) CommitmentAggregator {
	return CommitmentAggregator{creditCardRate: policy.CreditCardRepaymentRate}
}

// Total returns car + personal + PTPTN + other + 5% of the card balance.
// The home loan being refinanced is excluded.
func (a CommitmentAggregator) Total(c model.Commitments) float64 {
	return c.CarLoans +
		c.PersonalLoans +
		c.PTPTN +
		c.OtherLiabilities +
		c.CreditCardOutstanding*a.creditCardRate
}
