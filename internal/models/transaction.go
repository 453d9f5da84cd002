package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a transaction entry.
type TransactionKind string

const (
	KindIncome       TransactionKind = "income"
	KindExpense      TransactionKind = "expense"
	KindLoanGiven    TransactionKind = "loan_given"
	KindLoanReceived TransactionKind = "loan_received"
)

// ParseTransactionKind validates a wire-format kind string.
func ParseTransactionKind(s string) (TransactionKind, error) {
	switch k := TransactionKind(s); k {
	case KindIncome, KindExpense, KindLoanGiven, KindLoanReceived:
		return k, nil
	}
	return "", fmt.Errorf("unknown transaction kind %q", s)
}

// Transaction represents a single ledger entry for one user.
// Transactions are immutable after creation; the only mutation is deletion.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string `json:"id"`

	// UserID is the owning user. A transaction is only ever visible to,
	// and deletable by, its owner.
	UserID string `json:"user_id"`

	// Kind is income, expense, loan_given or loan_received.
	Kind TransactionKind `json:"kind"`

	// Amount is the transaction amount. The sign is not checked at
	// write time; a negative amount simply skews the summary.
	Amount decimal.Decimal `json:"amount"`

	// Description is a free-form note.
	Description string `json:"description"`

	// Category is a user-chosen label (e.g. "Groceries", "Salary").
	Category string `json:"category"`

	// Date is the calendar date of the transaction as entered by the
	// user (YYYY-MM-DD). Kept as a string; it is display data, not an
	// ordering key.
	Date string `json:"date"`

	// CreatedAt is the Unix millisecond timestamp when the record was
	// created. Lists are ordered by it, newest first.
	CreatedAt int64 `json:"created_at"`
}
