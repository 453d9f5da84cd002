package models

import "github.com/shopspring/decimal"

// Summary is the derived financial summary for one user. It is
// recomputed fresh from the user's transactions on every request and
// never persisted or cached.
type Summary struct {
	TotalIncome        decimal.Decimal `json:"total_income"`
	TotalExpense       decimal.Decimal `json:"total_expense"`
	TotalLoansGiven    decimal.Decimal `json:"total_loans_given"`
	TotalLoansReceived decimal.Decimal `json:"total_loans_received"`

	// Balance = income - expense + loansReceived - loansGiven.
	Balance decimal.Decimal `json:"balance"`
}

// ZeroSummary returns a summary with every field set to zero, the
// result an unauthenticated caller receives.
func ZeroSummary() Summary {
	return Summary{
		TotalIncome:        decimal.Zero,
		TotalExpense:       decimal.Zero,
		TotalLoansGiven:    decimal.Zero,
		TotalLoansReceived: decimal.Zero,
		Balance:            decimal.Zero,
	}
}
