// Package calculator holds the pure aggregation logic that turns a
// user's transactions into a financial summary. It has no storage or
// transport dependencies so it can be tested in isolation.
package calculator

import "github.com/finbook/backend/internal/models"

// Summarize reduces a transaction list into a financial summary.
//
// Algorithm:
//   - bucket each amount by kind (income, expense, loan given/received)
//   - balance = income - expense + loans received - loans given
//
// Unknown kinds are ignored rather than rejected; the store only ever
// holds the four known kinds, but a summary over partially migrated
// data should not fail.
func Summarize(transactions []models.Transaction) models.Summary {
	summary := models.ZeroSummary()

	for _, tx := range transactions {
		switch tx.Kind {
		case models.KindIncome:
			summary.TotalIncome = summary.TotalIncome.Add(tx.Amount)
		case models.KindExpense:
			summary.TotalExpense = summary.TotalExpense.Add(tx.Amount)
		case models.KindLoanGiven:
			summary.TotalLoansGiven = summary.TotalLoansGiven.Add(tx.Amount)
		case models.KindLoanReceived:
			summary.TotalLoansReceived = summary.TotalLoansReceived.Add(tx.Amount)
		}
	}

	summary.Balance = summary.TotalIncome.
		Sub(summary.TotalExpense).
		Add(summary.TotalLoansReceived).
		Sub(summary.TotalLoansGiven)

	return summary
}

// AllPaid reports whether every participant of a bill has paid. It is
// the settled predicate persisted alongside participant mutations.
func AllPaid(participants []models.Participant) bool {
	for _, p := range participants {
		if !p.Paid {
			return false
		}
	}
	return true
}
